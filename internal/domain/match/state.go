package match

import (
	"fmt"
	"strings"
	"time"
)

// PlayerRef is the roster snapshot a match keeps for each selected player.
type PlayerRef struct {
	ID     string
	Name   string
	Number *int
}

// Setup is the outcome of the setup wizard handed to the engine.
type Setup struct {
	Players         []PlayerRef
	Keeper1         string
	Keeper2         string
	Group1          []string
	Group2          []string
	Group1Positions []Position
	Group2Positions []Position
}

// State is the live match: clock, groups, position labels and playing time.
type State struct {
	ID                 string
	SelectedPlayers    []PlayerRef
	Keeper1            string
	Keeper2            string
	Group1             []string
	Group2             []string
	Group1Positions    []Position
	Group2Positions    []Position
	CurrentKeeper      int
	MatchTimeSeconds   int
	IsRunning          bool
	Half               int
	PlayingTimeSeconds map[string]int
	CreatedAt          time.Time
}

// Slot pairs a position label with the player currently holding it.
type Slot struct {
	Position Position
	PlayerID string
}

// NewState validates a finished setup and builds the initial match state.
func NewState(id string, setup Setup, createdAt time.Time) (State, error) {
	if strings.TrimSpace(id) == "" {
		return State{}, fmt.Errorf("%w: match id is required", ErrInvalidSetup)
	}
	if err := setup.Validate(); err != nil {
		return State{}, err
	}

	playing := make(map[string]int, len(setup.Players))
	for _, p := range setup.Players {
		playing[p.ID] = 0
	}

	return State{
		ID:                 id,
		SelectedPlayers:    append([]PlayerRef(nil), setup.Players...),
		Keeper1:            setup.Keeper1,
		Keeper2:            setup.Keeper2,
		Group1:             append([]string(nil), setup.Group1...),
		Group2:             append([]string(nil), setup.Group2...),
		Group1Positions:    append([]Position(nil), setup.Group1Positions...),
		Group2Positions:    append([]Position(nil), setup.Group2Positions...),
		CurrentKeeper:      1,
		Half:               1,
		PlayingTimeSeconds: playing,
		CreatedAt:          createdAt,
	}, nil
}

// Validate reports ErrInvalidSetup when the setup cannot start a match.
func (s Setup) Validate() error {
	known := make(map[string]struct{}, len(s.Players))
	for _, p := range s.Players {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("%w: player id is required", ErrInvalidSetup)
		}
		if _, dup := known[p.ID]; dup {
			return fmt.Errorf("%w: duplicate player %s", ErrInvalidSetup, p.ID)
		}
		known[p.ID] = struct{}{}
	}

	if s.Keeper1 == "" || s.Keeper2 == "" {
		return fmt.Errorf("%w: two keepers are required", ErrInvalidSetup)
	}
	if s.Keeper1 == s.Keeper2 {
		return fmt.Errorf("%w: keepers must be different players", ErrInvalidSetup)
	}

	seen := make(map[string]GroupID, len(s.Group1)+len(s.Group2))
	for _, g := range Groups {
		for _, id := range s.group(g) {
			if _, ok := known[id]; !ok {
				return fmt.Errorf("%w: player %s is not selected", ErrInvalidSetup, id)
			}
			if _, dup := seen[id]; dup {
				return fmt.Errorf("%w: player %s is in more than one group", ErrInvalidSetup, id)
			}
			seen[id] = g
		}
	}
	for _, keeper := range []string{s.Keeper1, s.Keeper2} {
		if seen[keeper] != Group1 {
			return fmt.Errorf("%w: keeper %s must be in group 1", ErrInvalidSetup, keeper)
		}
	}

	labels := make(map[Position]struct{}, len(OutfieldPositions)+1)
	for _, g := range Groups {
		outfield := 0
		keeper := 0
		for _, pos := range s.positions(g) {
			if !pos.Valid() {
				return fmt.Errorf("%w: unknown position %q", ErrInvalidSetup, pos)
			}
			if _, dup := labels[pos]; dup {
				return fmt.Errorf("%w: position %s assigned twice", ErrInvalidSetup, pos)
			}
			labels[pos] = struct{}{}
			if pos.IsKeeper() {
				keeper++
				continue
			}
			outfield++
		}
		if g == Group1 && keeper != 1 {
			return fmt.Errorf("%w: group 1 must hold the keeper position", ErrInvalidSetup)
		}
		if g == Group2 && keeper != 0 {
			return fmt.Errorf("%w: keeper position belongs to group 1", ErrInvalidSetup)
		}
		if outfield > MaxOutfieldPerGroup {
			return fmt.Errorf("%w: group %d holds more than %d positions", ErrInvalidSetup, g, MaxOutfieldPerGroup)
		}

		nonKeepers := 0
		for _, id := range s.group(g) {
			if id != s.Keeper1 && id != s.Keeper2 {
				nonKeepers++
			}
		}
		if outfield > nonKeepers {
			return fmt.Errorf("%w: group %d has %d positions but only %d field players", ErrInvalidSetup, g, outfield, nonKeepers)
		}
	}

	return nil
}

func (s Setup) group(g GroupID) []string {
	if g == Group1 {
		return s.Group1
	}
	return s.Group2
}

func (s Setup) positions(g GroupID) []Position {
	if g == Group1 {
		return s.Group1Positions
	}
	return s.Group2Positions
}

// Clone returns a deep copy safe to hand outside the owning controller.
func (s State) Clone() State {
	out := s
	out.SelectedPlayers = append([]PlayerRef(nil), s.SelectedPlayers...)
	out.Group1 = append([]string(nil), s.Group1...)
	out.Group2 = append([]string(nil), s.Group2...)
	out.Group1Positions = append([]Position(nil), s.Group1Positions...)
	out.Group2Positions = append([]Position(nil), s.Group2Positions...)
	out.PlayingTimeSeconds = make(map[string]int, len(s.PlayingTimeSeconds))
	for k, v := range s.PlayingTimeSeconds {
		out.PlayingTimeSeconds[k] = v
	}
	return out
}

func (s *State) group(g GroupID) *[]string {
	if g == Group1 {
		return &s.Group1
	}
	return &s.Group2
}

func (s *State) positions(g GroupID) *[]Position {
	if g == Group1 {
		return &s.Group1Positions
	}
	return &s.Group2Positions
}

// Player returns the roster snapshot for id.
func (s State) Player(id string) (PlayerRef, bool) {
	for _, p := range s.SelectedPlayers {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerRef{}, false
}

// GroupOf reports which group a player belongs to.
func (s State) GroupOf(id string) (GroupID, bool) {
	for _, g := range Groups {
		for _, item := range *s.group(g) {
			if item == id {
				return g, true
			}
		}
	}
	return 0, false
}

// IsKeeper reports whether id is one of the two designated keepers, on the
// field or not.
func (s State) IsKeeper(id string) bool {
	return id != "" && (id == s.Keeper1 || id == s.Keeper2)
}

// CurrentKeeperID returns the keeper defending the goal right now.
func (s State) CurrentKeeperID() string {
	if s.CurrentKeeper == 2 {
		return s.Keeper2
	}
	return s.Keeper1
}

// ReserveKeeperID returns the keeper waiting on the bench.
func (s State) ReserveKeeperID() string {
	if s.CurrentKeeper == 2 {
		return s.Keeper1
	}
	return s.Keeper2
}

// FieldSize is the number of outfield slots a group occupies.
func (s State) FieldSize(g GroupID) int {
	size := 0
	for _, pos := range *s.positions(g) {
		if !pos.IsKeeper() {
			size++
		}
	}
	return size
}

func (s State) nonKeepers(g GroupID) []string {
	members := *s.group(g)
	out := make([]string, 0, len(members))
	for _, id := range members {
		if !s.IsKeeper(id) {
			out = append(out, id)
		}
	}
	return out
}

// OnField returns the outfield players of a group currently playing, in slot order.
func (s State) OnField(g GroupID) []string {
	players := s.nonKeepers(g)
	size := s.FieldSize(g)
	if size > len(players) {
		size = len(players)
	}
	return players[:size]
}

// Bench returns the outfield players of a group waiting to come in.
func (s State) Bench(g GroupID) []string {
	players := s.nonKeepers(g)
	size := s.FieldSize(g)
	if size > len(players) {
		size = len(players)
	}
	return players[size:]
}

// FieldPlayers returns every player accruing playing time, keeper included.
func (s State) FieldPlayers() []string {
	out := make([]string, 0, 1+s.FieldSize(Group1)+s.FieldSize(Group2))
	if keeper := s.CurrentKeeperID(); keeper != "" {
		out = append(out, keeper)
	}
	for _, g := range Groups {
		out = append(out, s.OnField(g)...)
	}
	return out
}

// IsOnField reports whether id currently holds a field slot in either group.
func (s State) IsOnField(id string) bool {
	if id == "" {
		return false
	}
	for _, item := range s.FieldPlayers() {
		if item == id {
			return true
		}
	}
	return false
}

// Lineup maps each position label of a group to the player holding it.
func (s State) Lineup(g GroupID) []Slot {
	onField := s.OnField(g)
	out := make([]Slot, 0, len(*s.positions(g)))
	i := 0
	for _, pos := range *s.positions(g) {
		if pos.IsKeeper() {
			out = append(out, Slot{Position: pos, PlayerID: s.CurrentKeeperID()})
			continue
		}
		slot := Slot{Position: pos}
		if i < len(onField) {
			slot.PlayerID = onField[i]
		}
		out = append(out, slot)
		i++
	}
	return out
}

// PositionOf returns the label a player currently holds.
func (s State) PositionOf(id string) (Position, bool) {
	g, ok := s.GroupOf(id)
	if !ok {
		return "", false
	}
	for _, slot := range s.Lineup(g) {
		if slot.PlayerID == id {
			return slot.Position, true
		}
	}
	return "", false
}

// PlayingTime returns accumulated on-field seconds for a player.
func (s State) PlayingTime(id string) int {
	return s.PlayingTimeSeconds[id]
}
