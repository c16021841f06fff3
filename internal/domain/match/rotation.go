package match

import (
	"fmt"
	"slices"
)

// SwapPositions exchanges the position labels of two on-field players of
// the same group. The group's player order is left untouched.
func (s *State) SwapPositions(playerA, playerB string) error {
	groupA, okA := s.GroupOf(playerA)
	groupB, okB := s.GroupOf(playerB)
	if !okA || !okB {
		return ErrUnknownPlayer
	}
	if groupA != groupB {
		return ErrCrossGroup
	}
	if playerA == playerB {
		return nil
	}
	if s.IsKeeper(playerA) || s.IsKeeper(playerB) {
		return fmt.Errorf("%w: the keeper position cannot be swapped", ErrKeeperLocked)
	}

	posA, fieldA := s.PositionOf(playerA)
	posB, fieldB := s.PositionOf(playerB)
	if !fieldA || !fieldB {
		return ErrNotOnField
	}

	labels := *s.positions(groupA)
	i := slices.Index(labels, posA)
	j := slices.Index(labels, posB)
	labels[i], labels[j] = labels[j], labels[i]
	return nil
}

// Substitute brings a bench player on for an on-field player of the same
// group by exchanging their slots in the group order. The current keeper can
// only be exchanged with the reserve keeper, which hands over the goal.
func (s *State) Substitute(outID, inID string) error {
	groupOut, okOut := s.GroupOf(outID)
	groupIn, okIn := s.GroupOf(inID)
	if !okOut || !okIn {
		return ErrUnknownPlayer
	}
	if groupOut != groupIn {
		return ErrCrossGroup
	}
	if outID == inID {
		return nil
	}

	if s.IsKeeper(outID) || s.IsKeeper(inID) {
		if outID != s.CurrentKeeperID() || inID != s.ReserveKeeperID() {
			return ErrKeeperLocked
		}
		s.flipKeeper()
		return nil
	}

	if !slices.Contains(s.OnField(groupOut), outID) {
		return fmt.Errorf("%w: %s", ErrNotOnField, outID)
	}
	if !slices.Contains(s.Bench(groupIn), inID) {
		return fmt.Errorf("%w: %s", ErrNotOnBench, inID)
	}

	members := *s.group(groupOut)
	i := slices.Index(members, outID)
	j := slices.Index(members, inID)
	members[i], members[j] = members[j], members[i]
	return nil
}

// ChangeKeeper hands the goal to the other keeper at half time. It can be
// used once per match.
func (s *State) ChangeKeeper() error {
	if s.Half >= 2 {
		return ErrKeeperChangeUsed
	}
	s.flipKeeper()
	s.Half = 2
	return nil
}

func (s *State) flipKeeper() {
	if s.CurrentKeeper == 2 {
		s.CurrentKeeper = 1
		return
	}
	s.CurrentKeeper = 2
}
