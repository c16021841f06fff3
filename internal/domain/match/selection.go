package match

// SelectionMode is the state of the player-click state machine.
type SelectionMode string

const (
	ModeIdle                     SelectionMode = "idle"
	ModeAwaitingSwapTarget       SelectionMode = "awaiting_swap_target"
	ModeAwaitingSubstituteTarget SelectionMode = "awaiting_substitute_target"
)

// Selection is the pending first pick, if any.
type Selection struct {
	Mode     SelectionMode
	PlayerID string
	Position Position
	Group    GroupID
}

// SelectionAction describes what a pick did.
type SelectionAction string

const (
	ActionPending     SelectionAction = "pending"
	ActionCancelled   SelectionAction = "cancelled"
	ActionSwapped     SelectionAction = "swapped"
	ActionSubstituted SelectionAction = "substituted"
)

// SelectionOutcome reports the effect of a pick and the resulting mode.
type SelectionOutcome struct {
	Action    SelectionAction
	Selection Selection
	FirstID   string
	SecondID  string
}

// Selector turns two consecutive player picks into a swap or substitution.
type Selector struct {
	current Selection
}

// NewSelector returns a selector with no pending pick.
func NewSelector() *Selector {
	return &Selector{current: Selection{Mode: ModeIdle}}
}

func (x *Selector) Current() Selection {
	if x.current.Mode == "" {
		return Selection{Mode: ModeIdle}
	}
	return x.current
}

// Restore puts back a selection previously read with Current.
func (x *Selector) Restore(sel Selection) {
	if sel.Mode == "" {
		sel = Selection{Mode: ModeIdle}
	}
	x.current = sel
}

// Cancel drops any pending pick.
func (x *Selector) Cancel() {
	x.current = Selection{Mode: ModeIdle}
}

// BeginSwap starts swap mode from an on-field player.
func (x *Selector) BeginSwap(s *State, playerID string) (SelectionOutcome, error) {
	g, ok := s.GroupOf(playerID)
	if !ok {
		x.Cancel()
		return SelectionOutcome{}, ErrUnknownPlayer
	}
	pos, onField := s.PositionOf(playerID)
	if !onField {
		x.Cancel()
		return SelectionOutcome{}, ErrNotOnField
	}
	if pos.IsKeeper() {
		x.Cancel()
		return SelectionOutcome{}, ErrKeeperLocked
	}

	x.current = Selection{
		Mode:     ModeAwaitingSwapTarget,
		PlayerID: playerID,
		Position: pos,
		Group:    g,
	}
	return SelectionOutcome{Action: ActionPending, Selection: x.current, FirstID: playerID}, nil
}

// OnPlayerSelected feeds one player pick into the state machine. A failed
// operation leaves the match untouched.
func (x *Selector) OnPlayerSelected(s *State, playerID string) (SelectionOutcome, error) {
	g, ok := s.GroupOf(playerID)
	if !ok {
		return SelectionOutcome{Selection: x.Current()}, ErrUnknownPlayer
	}

	switch x.Current().Mode {
	case ModeAwaitingSwapTarget:
		return x.completeSwap(s, playerID, g)
	case ModeAwaitingSubstituteTarget:
		return x.completePair(s, playerID, g)
	default:
		x.current = Selection{
			Mode:     ModeAwaitingSubstituteTarget,
			PlayerID: playerID,
			Group:    g,
		}
		if pos, onField := s.PositionOf(playerID); onField {
			x.current.Position = pos
		}
		return SelectionOutcome{Action: ActionPending, Selection: x.current, FirstID: playerID}, nil
	}
}

func (x *Selector) completeSwap(s *State, playerID string, g GroupID) (SelectionOutcome, error) {
	first := x.current
	if playerID == first.PlayerID {
		x.Cancel()
		return SelectionOutcome{Action: ActionCancelled, Selection: x.current, FirstID: playerID}, nil
	}
	if g != first.Group {
		x.Cancel()
		return SelectionOutcome{Selection: x.current}, ErrCrossGroup
	}
	if !s.IsOnField(playerID) {
		return SelectionOutcome{Selection: x.current}, ErrNotOnField
	}

	if err := s.SwapPositions(first.PlayerID, playerID); err != nil {
		x.Cancel()
		return SelectionOutcome{Selection: x.current}, err
	}
	x.Cancel()
	return SelectionOutcome{
		Action:    ActionSwapped,
		Selection: x.current,
		FirstID:   first.PlayerID,
		SecondID:  playerID,
	}, nil
}

func (x *Selector) completePair(s *State, playerID string, g GroupID) (SelectionOutcome, error) {
	first := x.current
	x.Cancel()
	if playerID == first.PlayerID {
		return SelectionOutcome{Action: ActionCancelled, Selection: x.current, FirstID: playerID}, nil
	}
	if g != first.Group {
		return SelectionOutcome{Selection: x.current}, ErrCrossGroup
	}

	firstOn := s.IsOnField(first.PlayerID)
	secondOn := s.IsOnField(playerID)
	out := SelectionOutcome{Selection: x.current, FirstID: first.PlayerID, SecondID: playerID}

	switch {
	case firstOn && secondOn:
		if err := s.SwapPositions(first.PlayerID, playerID); err != nil {
			return SelectionOutcome{Selection: x.current}, err
		}
		out.Action = ActionSwapped
	case firstOn:
		if err := s.Substitute(first.PlayerID, playerID); err != nil {
			return SelectionOutcome{Selection: x.current}, err
		}
		out.Action = ActionSubstituted
	case secondOn:
		if err := s.Substitute(playerID, first.PlayerID); err != nil {
			return SelectionOutcome{Selection: x.current}, err
		}
		out.Action = ActionSubstituted
	default:
		return SelectionOutcome{Selection: x.current}, ErrNotOnField
	}
	return out, nil
}
