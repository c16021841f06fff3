package match

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func testSetup() Setup {
	return Setup{
		Players: []PlayerRef{
			{ID: "k1", Name: "Kim"},
			{ID: "k2", Name: "Kees"},
			{ID: "a", Name: "Anna"},
			{ID: "b", Name: "Bram"},
			{ID: "c", Name: "Cas"},
			{ID: "d", Name: "Dirk"},
			{ID: "e", Name: "Eva"},
			{ID: "f", Name: "Finn"},
		},
		Keeper1:         "k1",
		Keeper2:         "k2",
		Group1:          []string{"k1", "k2", "a", "b"},
		Group2:          []string{"c", "d", "e", "f"},
		Group1Positions: []Position{PositionKeeper, PositionLeftBack, PositionRightBack},
		Group2Positions: []Position{PositionMidfield, PositionLeftForward, PositionRightForward},
	}
}

func newTestState(t *testing.T) State {
	t.Helper()

	state, err := NewState("match-1", testSetup(), time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	return state
}

func TestNewState_InitialValues(t *testing.T) {
	state := newTestState(t)

	if state.Half != 1 || state.CurrentKeeper != 1 {
		t.Fatalf("unexpected half/keeper: %d/%d", state.Half, state.CurrentKeeper)
	}
	if state.IsRunning || state.MatchTimeSeconds != 0 {
		t.Fatalf("expected paused clock at zero")
	}
	if len(state.PlayingTimeSeconds) != 8 {
		t.Fatalf("expected playing time for 8 players, got %d", len(state.PlayingTimeSeconds))
	}

	want := []string{"k1", "a", "b", "c", "d", "e"}
	if got := state.FieldPlayers(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected field players: %v", got)
	}
	if got := state.Bench(Group2); !reflect.DeepEqual(got, []string{"f"}) {
		t.Fatalf("unexpected group 2 bench: %v", got)
	}
	if got := state.Bench(Group1); len(got) != 0 {
		t.Fatalf("expected empty outfield bench in group 1, got %v", got)
	}
}

func TestNewState_RejectsInvalidSetup(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Setup)
	}{
		{name: "same keeper twice", mutate: func(s *Setup) { s.Keeper2 = "k1" }},
		{name: "keeper in group 2", mutate: func(s *Setup) {
			s.Group1 = []string{"k1", "c", "a", "b"}
			s.Group2 = []string{"k2", "d", "e", "f"}
		}},
		{name: "keeper label in group 2", mutate: func(s *Setup) {
			s.Group2Positions = []Position{PositionKeeper, PositionLeftForward, PositionRightForward}
		}},
		{name: "label in both groups", mutate: func(s *Setup) {
			s.Group2Positions = []Position{PositionLeftBack, PositionLeftForward, PositionRightForward}
		}},
		{name: "unknown label", mutate: func(s *Setup) {
			s.Group2Positions = []Position{"spits", PositionLeftForward, PositionRightForward}
		}},
		{name: "player in both groups", mutate: func(s *Setup) { s.Group2 = []string{"a", "d", "e", "f"} }},
		{name: "unselected player", mutate: func(s *Setup) { s.Group2 = []string{"x", "d", "e", "f"} }},
		{name: "more slots than players", mutate: func(s *Setup) {
			s.Group1Positions = []Position{PositionKeeper, PositionLeftBack, PositionRightBack, PositionMidfield}
			s.Group2Positions = []Position{PositionLeftForward, PositionRightForward}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setup := testSetup()
			tc.mutate(&setup)
			_, err := NewState("match-1", setup, time.Now())
			if !errors.Is(err, ErrInvalidSetup) {
				t.Fatalf("expected ErrInvalidSetup, got %v", err)
			}
		})
	}
}

func TestState_Lineup(t *testing.T) {
	state := newTestState(t)

	got := state.Lineup(Group1)
	want := []Slot{
		{Position: PositionKeeper, PlayerID: "k1"},
		{Position: PositionLeftBack, PlayerID: "a"},
		{Position: PositionRightBack, PlayerID: "b"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected lineup: %+v", got)
	}

	if pos, ok := state.PositionOf("e"); !ok || pos != PositionRightForward {
		t.Fatalf("unexpected position for e: %q %v", pos, ok)
	}
	if _, ok := state.PositionOf("f"); ok {
		t.Fatalf("bench player should not hold a position")
	}
}

func TestState_CloneIsIndependent(t *testing.T) {
	state := newTestState(t)
	clone := state.Clone()

	clone.Group1[2] = "zz"
	clone.PlayingTimeSeconds["a"] = 99
	clone.Group2Positions[0] = PositionKeeper

	if state.Group1[2] != "a" || state.PlayingTimeSeconds["a"] != 0 || state.Group2Positions[0] != PositionMidfield {
		t.Fatalf("clone shares memory with original")
	}
}
