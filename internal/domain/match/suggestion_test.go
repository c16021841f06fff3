package match

import (
	"errors"
	"reflect"
	"testing"
)

func scenarioState() State {
	return State{
		ID: "scenario",
		SelectedPlayers: []PlayerRef{
			{ID: "alice", Name: "Alice"},
			{ID: "bob", Name: "Bob"},
			{ID: "carol", Name: "Carol"},
			{ID: "dan", Name: "Dan"},
		},
		Group1:          []string{"alice", "bob", "carol", "dan"},
		Group1Positions: []Position{PositionLeftBack, PositionRightBack},
		Half:            1,
		CurrentKeeper:   1,
		PlayingTimeSeconds: map[string]int{
			"alice": 90,
			"bob":   60,
			"carol": 10,
			"dan":   5,
		},
	}
}

func TestSuggest_MaxOutMinIn(t *testing.T) {
	state := scenarioState()

	got, ok := state.Suggest(Group1)
	if !ok {
		t.Fatalf("expected a suggestion")
	}
	if got.OutID != "alice" || got.InID != "dan" {
		t.Fatalf("unexpected suggestion: out=%s in=%s", got.OutID, got.InID)
	}
	if got.OutSeconds != 90 || got.InSeconds != 5 {
		t.Fatalf("unexpected suggestion times: %+v", got)
	}
}

func TestExecuteSuggestion_SwapsArraySlots(t *testing.T) {
	state := scenarioState()

	if _, err := state.ExecuteSuggestion(Group1); err != nil {
		t.Fatalf("execute suggestion: %v", err)
	}

	if want := []string{"dan", "bob", "carol", "alice"}; !reflect.DeepEqual(state.Group1, want) {
		t.Fatalf("unexpected group order: %v", state.Group1)
	}
	if !reflect.DeepEqual(state.OnField(Group1), []string{"dan", "bob"}) {
		t.Fatalf("unexpected field players: %v", state.OnField(Group1))
	}
	if state.PlayingTime("dan") != 5 || state.PlayingTime("alice") != 90 {
		t.Fatalf("execution must not touch playing time")
	}
}

func TestSuggest_TieWithinOneSecondPicksAlphabetically(t *testing.T) {
	state := scenarioState()
	state.SelectedPlayers[0].Name = "Zed"
	state.PlayingTimeSeconds["bob"] = 89
	state.PlayingTimeSeconds["carol"] = 6

	got, ok := state.Suggest(Group1)
	if !ok {
		t.Fatalf("expected a suggestion")
	}
	if got.OutID != "bob" {
		t.Fatalf("expected Bob to win the tie over Zed, got %s", got.OutID)
	}
	if got.InID != "carol" {
		t.Fatalf("expected Carol to win the tie over Dan, got %s", got.InID)
	}
}

func TestSuggest_EmptyBenchHasNoSuggestion(t *testing.T) {
	state := newTestState(t)

	if _, ok := state.Suggest(Group1); ok {
		t.Fatalf("group 1 has no outfield bench, expected no suggestion")
	}
	if got := state.Suggestions(); len(got) != 1 || got[0].Group != Group2 {
		t.Fatalf("expected only a group 2 suggestion, got %+v", got)
	}

	before := state.Clone()
	if _, err := state.ExecuteSuggestion(Group1); !errors.Is(err, ErrNoSuggestion) {
		t.Fatalf("expected ErrNoSuggestion, got %v", err)
	}
	if !reflect.DeepEqual(state, before) {
		t.Fatalf("failed execution mutated state")
	}
}
