package matchsetup

import (
	"errors"
	"time"

	"github.com/riskibarqy/wissel-coach/internal/domain/match"
)

// Step is a stage of the match setup wizard.
type Step string

const (
	StepSelectPlayers   Step = "select-players"
	StepSelectKeepers   Step = "select-keepers"
	StepCreateGroups    Step = "create-groups"
	StepAssignPositions Step = "assign-positions"
	StepFormation       Step = "formation"
)

var (
	ErrWrongStep       = errors.New("operation not available in this setup step")
	ErrIncomplete      = errors.New("setup step is incomplete")
	ErrSelectionFull   = errors.New("squad is already complete")
	ErrNotSelected     = errors.New("player is not selected")
	ErrInvalidKeeper   = errors.New("invalid keeper choice")
	ErrGroupFull       = errors.New("group is full")
	ErrKeeperImmovable = errors.New("keepers stay in group 1")
	ErrInvalidPosition = errors.New("invalid position")
	ErrPositionTaken   = errors.New("position already belongs to the other group")
	ErrPositionsFull   = errors.New("group has no free positions")
)

// Rules fixes the squad shape of a match.
type Rules struct {
	SquadSize      int
	GroupSize      int
	Group1Outfield int
	Group2Outfield int
}

// DefaultRules is the 6-a-side format: eight players, two groups of four.
func DefaultRules() Rules {
	return Rules{
		SquadSize:      8,
		GroupSize:      4,
		Group1Outfield: 2,
		Group2Outfield: 3,
	}
}

func (r Rules) outfieldFor(g match.GroupID) int {
	if g == match.Group1 {
		return r.Group1Outfield
	}
	return r.Group2Outfield
}

// State is the in-progress wizard stored in the setup slot.
type State struct {
	Step            Step
	SelectedPlayers []match.PlayerRef
	Keeper1         string
	Keeper2         string
	Group1          []string
	Group2          []string
	Group1Positions []match.Position
	Group2Positions []match.Position
	UpdatedAt       time.Time
}

// New returns an empty wizard at the first step.
func New() State {
	return State{Step: StepSelectPlayers}
}

func (s State) IsSelected(id string) bool {
	for _, p := range s.SelectedPlayers {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (s *State) group(g match.GroupID) *[]string {
	if g == match.Group1 {
		return &s.Group1
	}
	return &s.Group2
}

func (s *State) positions(g match.GroupID) *[]match.Position {
	if g == match.Group1 {
		return &s.Group1Positions
	}
	return &s.Group2Positions
}

// GroupOf reports which group holds a player.
func (s State) GroupOf(id string) (match.GroupID, bool) {
	for _, g := range match.Groups {
		for _, item := range *s.group(g) {
			if item == id {
				return g, true
			}
		}
	}
	return 0, false
}
