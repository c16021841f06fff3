package matchsetup

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/riskibarqy/wissel-coach/internal/domain/match"
)

// Wizard applies the setup rules to a State.
type Wizard struct {
	rules   Rules
	shuffle func([]string)
}

// NewWizard builds a wizard. A nil shuffle uses math/rand.
func NewWizard(rules Rules, shuffle func([]string)) *Wizard {
	if shuffle == nil {
		shuffle = func(ids []string) {
			rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
		}
	}
	return &Wizard{rules: rules, shuffle: shuffle}
}

func (w *Wizard) Rules() Rules {
	return w.rules
}

// TogglePlayer adds or removes a player from the squad and reports whether
// the player is selected afterwards.
func (w *Wizard) TogglePlayer(s *State, p match.PlayerRef) (bool, error) {
	if err := expectStep(s, StepSelectPlayers); err != nil {
		return false, err
	}

	for i, item := range s.SelectedPlayers {
		if item.ID == p.ID {
			s.SelectedPlayers = slices.Delete(s.SelectedPlayers, i, i+1)
			return false, nil
		}
	}
	if len(s.SelectedPlayers) >= w.rules.SquadSize {
		return false, fmt.Errorf("%w: maximum %d players", ErrSelectionFull, w.rules.SquadSize)
	}
	s.SelectedPlayers = append(s.SelectedPlayers, p)
	return true, nil
}

// SetKeepers assigns both keeper slots. An empty id clears that slot.
func (w *Wizard) SetKeepers(s *State, keeper1, keeper2 string) error {
	if err := expectStep(s, StepSelectKeepers); err != nil {
		return err
	}
	for _, id := range []string{keeper1, keeper2} {
		if id != "" && !s.IsSelected(id) {
			return fmt.Errorf("%w: %s", ErrNotSelected, id)
		}
	}
	if keeper1 != "" && keeper1 == keeper2 {
		return fmt.Errorf("%w: keeper 1 and keeper 2 must differ", ErrInvalidKeeper)
	}

	s.Keeper1 = keeper1
	s.Keeper2 = keeper2
	return nil
}

// RandomGroups puts both keepers plus random players in group 1, the rest
// in group 2, and moves on to position assignment.
func (w *Wizard) RandomGroups(s *State) error {
	if err := expectStep(s, StepCreateGroups); err != nil {
		return err
	}

	others := w.outfieldPlayers(s)
	w.shuffle(others)

	fill := w.rules.GroupSize - 2
	if fill < 0 || fill > len(others) {
		return fmt.Errorf("%w: not enough players for group 1", ErrIncomplete)
	}
	s.Group1 = append([]string{s.Keeper1, s.Keeper2}, others[:fill]...)
	s.Group2 = append([]string(nil), others[fill:]...)
	if len(s.Group2) > w.rules.GroupSize {
		s.Group2 = s.Group2[:w.rules.GroupSize]
	}
	s.Group1Positions = nil
	s.Group2Positions = nil
	s.Step = StepAssignPositions
	return nil
}

// SeedGroups starts manual grouping: keepers in group 1, everyone else in
// group 2.
func (w *Wizard) SeedGroups(s *State) error {
	if err := expectStep(s, StepCreateGroups); err != nil {
		return err
	}
	s.Group1 = []string{s.Keeper1, s.Keeper2}
	s.Group2 = w.outfieldPlayers(s)
	return nil
}

// MovePlayer moves an outfield player to the other group.
func (w *Wizard) MovePlayer(s *State, playerID string, to match.GroupID) error {
	if err := expectStep(s, StepCreateGroups); err != nil {
		return err
	}
	if !to.Valid() {
		return fmt.Errorf("%w: unknown group %d", ErrInvalidPosition, to)
	}
	if playerID == s.Keeper1 || playerID == s.Keeper2 {
		return ErrKeeperImmovable
	}
	from, ok := s.GroupOf(playerID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotSelected, playerID)
	}
	if from == to {
		return nil
	}
	target := s.group(to)
	if len(*target) >= w.rules.GroupSize {
		return fmt.Errorf("%w: group %d already has %d players", ErrGroupFull, to, w.rules.GroupSize)
	}

	source := s.group(from)
	*source = slices.DeleteFunc(*source, func(id string) bool { return id == playerID })
	*target = append(*target, playerID)
	return nil
}

// AssignPosition gives an outfield position label to a group.
func (w *Wizard) AssignPosition(s *State, g match.GroupID, pos match.Position) error {
	if err := expectStep(s, StepAssignPositions); err != nil {
		return err
	}
	if !g.Valid() {
		return fmt.Errorf("%w: unknown group %d", ErrInvalidPosition, g)
	}
	if !pos.Valid() || pos.IsKeeper() {
		return fmt.Errorf("%w: %q", ErrInvalidPosition, pos)
	}
	if slices.Contains(*s.positions(g), pos) {
		return nil
	}
	if slices.Contains(*s.positions(g.Other()), pos) {
		return fmt.Errorf("%w: %s", ErrPositionTaken, pos)
	}
	labels := s.positions(g)
	if len(*labels) >= w.rules.outfieldFor(g) {
		return fmt.Errorf("%w: group %d holds %d positions", ErrPositionsFull, g, w.rules.outfieldFor(g))
	}
	*labels = append(*labels, pos)
	return nil
}

// UnassignPosition releases a position label from whichever group holds it.
func (w *Wizard) UnassignPosition(s *State, pos match.Position) error {
	if err := expectStep(s, StepAssignPositions); err != nil {
		return err
	}
	for _, g := range match.Groups {
		labels := s.positions(g)
		*labels = slices.DeleteFunc(*labels, func(p match.Position) bool { return p == pos })
	}
	return nil
}

// Next validates the current step and advances the wizard.
func (w *Wizard) Next(s *State) error {
	switch s.Step {
	case StepSelectPlayers:
		if len(s.SelectedPlayers) != w.rules.SquadSize {
			return fmt.Errorf("%w: select exactly %d players", ErrIncomplete, w.rules.SquadSize)
		}
		s.Step = StepSelectKeepers
	case StepSelectKeepers:
		if s.Keeper1 == "" || s.Keeper2 == "" {
			return fmt.Errorf("%w: choose both keepers", ErrIncomplete)
		}
		s.Step = StepCreateGroups
	case StepCreateGroups:
		if len(s.Group1) != w.rules.GroupSize || len(s.Group2) != w.rules.GroupSize {
			return fmt.Errorf("%w: both groups need %d players", ErrIncomplete, w.rules.GroupSize)
		}
		s.Group1Positions = nil
		s.Group2Positions = nil
		s.Step = StepAssignPositions
	case StepAssignPositions:
		if len(s.Group1Positions) != w.rules.Group1Outfield || len(s.Group2Positions) != w.rules.Group2Outfield {
			return fmt.Errorf("%w: group 1 needs %d positions and group 2 needs %d",
				ErrIncomplete, w.rules.Group1Outfield, w.rules.Group2Outfield)
		}
		s.Group1Positions = append([]match.Position{match.PositionKeeper}, s.Group1Positions...)
		s.Step = StepFormation
	default:
		return fmt.Errorf("%w: %s is the last step", ErrWrongStep, s.Step)
	}
	return nil
}

// Back returns to the previous step and drops what the current step produced.
func (w *Wizard) Back(s *State) error {
	switch s.Step {
	case StepFormation:
		s.Group1Positions = slices.DeleteFunc(s.Group1Positions, func(p match.Position) bool { return p.IsKeeper() })
		s.Step = StepAssignPositions
	case StepAssignPositions:
		s.Group1Positions = nil
		s.Group2Positions = nil
		s.Step = StepCreateGroups
	case StepCreateGroups:
		s.Group1 = nil
		s.Group2 = nil
		s.Step = StepSelectKeepers
	case StepSelectKeepers:
		s.Keeper1 = ""
		s.Keeper2 = ""
		s.Step = StepSelectPlayers
	default:
		return fmt.Errorf("%w: %s is the first step", ErrWrongStep, s.Step)
	}
	return nil
}

// Build turns a finished wizard into the initial match state.
func (w *Wizard) Build(s State, matchID string, now time.Time) (match.State, error) {
	if err := expectStep(&s, StepFormation); err != nil {
		return match.State{}, err
	}
	return match.NewState(matchID, match.Setup{
		Players:         s.SelectedPlayers,
		Keeper1:         s.Keeper1,
		Keeper2:         s.Keeper2,
		Group1:          s.Group1,
		Group2:          s.Group2,
		Group1Positions: s.Group1Positions,
		Group2Positions: s.Group2Positions,
	}, now)
}

func (w *Wizard) outfieldPlayers(s *State) []string {
	out := make([]string, 0, len(s.SelectedPlayers))
	for _, p := range s.SelectedPlayers {
		if p.ID != s.Keeper1 && p.ID != s.Keeper2 {
			out = append(out, p.ID)
		}
	}
	return out
}

func expectStep(s *State, want Step) error {
	if s.Step != want {
		return fmt.Errorf("%w: expected %s, currently %s", ErrWrongStep, want, s.Step)
	}
	return nil
}
