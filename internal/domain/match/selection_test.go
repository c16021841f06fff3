package match

import (
	"errors"
	"reflect"
	"testing"
)

func TestSelector_FieldThenBenchSubstitutes(t *testing.T) {
	state := newTestState(t)
	sel := NewSelector()

	out, err := sel.OnPlayerSelected(&state, "e")
	if err != nil {
		t.Fatalf("first pick: %v", err)
	}
	if out.Action != ActionPending || out.Selection.Mode != ModeAwaitingSubstituteTarget {
		t.Fatalf("unexpected outcome after first pick: %+v", out)
	}
	if out.Selection.Position != PositionRightForward || out.Selection.Group != Group2 {
		t.Fatalf("selection should remember position and group: %+v", out.Selection)
	}

	out, err = sel.OnPlayerSelected(&state, "f")
	if err != nil {
		t.Fatalf("second pick: %v", err)
	}
	if out.Action != ActionSubstituted {
		t.Fatalf("expected substitution, got %s", out.Action)
	}
	if !state.IsOnField("f") || state.IsOnField("e") {
		t.Fatalf("substitution not applied")
	}
	if sel.Current().Mode != ModeIdle {
		t.Fatalf("expected idle after completion")
	}
}

func TestSelector_BenchThenFieldSubstitutes(t *testing.T) {
	state := newTestState(t)
	sel := NewSelector()

	if _, err := sel.OnPlayerSelected(&state, "f"); err != nil {
		t.Fatalf("first pick: %v", err)
	}
	out, err := sel.OnPlayerSelected(&state, "c")
	if err != nil {
		t.Fatalf("second pick: %v", err)
	}
	if out.Action != ActionSubstituted || !state.IsOnField("f") || state.IsOnField("c") {
		t.Fatalf("expected f to replace c, outcome %+v", out)
	}
}

func TestSelector_TwoFieldPlayersSwap(t *testing.T) {
	state := newTestState(t)
	sel := NewSelector()

	_, _ = sel.OnPlayerSelected(&state, "a")
	out, err := sel.OnPlayerSelected(&state, "b")
	if err != nil {
		t.Fatalf("second pick: %v", err)
	}
	if out.Action != ActionSwapped {
		t.Fatalf("expected swap, got %s", out.Action)
	}
	if pos, _ := state.PositionOf("a"); pos != PositionRightBack {
		t.Fatalf("expected a at rechtsachter, got %q", pos)
	}
}

func TestSelector_CrossGroupClearsModeAndKeepsState(t *testing.T) {
	state := newTestState(t)
	before := state.Clone()
	sel := NewSelector()

	_, _ = sel.OnPlayerSelected(&state, "a")
	_, err := sel.OnPlayerSelected(&state, "c")
	if !errors.Is(err, ErrCrossGroup) {
		t.Fatalf("expected ErrCrossGroup, got %v", err)
	}
	if sel.Current().Mode != ModeIdle {
		t.Fatalf("mode should be cleared after a rejected pick")
	}
	if !reflect.DeepEqual(state, before) {
		t.Fatalf("rejected pick mutated state")
	}
}

func TestSelector_SamePlayerCancels(t *testing.T) {
	state := newTestState(t)
	sel := NewSelector()

	_, _ = sel.OnPlayerSelected(&state, "a")
	out, err := sel.OnPlayerSelected(&state, "a")
	if err != nil {
		t.Fatalf("cancel pick: %v", err)
	}
	if out.Action != ActionCancelled || sel.Current().Mode != ModeIdle {
		t.Fatalf("expected cancellation, got %+v", out)
	}
}

func TestSelector_SwapModeRequiresFieldTarget(t *testing.T) {
	state := newTestState(t)
	sel := NewSelector()

	out, err := sel.BeginSwap(&state, "c")
	if err != nil {
		t.Fatalf("begin swap: %v", err)
	}
	if out.Selection.Mode != ModeAwaitingSwapTarget || out.Selection.Position != PositionMidfield {
		t.Fatalf("unexpected swap selection: %+v", out.Selection)
	}

	if _, err := sel.OnPlayerSelected(&state, "f"); !errors.Is(err, ErrNotOnField) {
		t.Fatalf("expected ErrNotOnField, got %v", err)
	}
	if sel.Current().Mode != ModeAwaitingSwapTarget {
		t.Fatalf("swap mode should survive a bench pick")
	}

	out, err = sel.OnPlayerSelected(&state, "e")
	if err != nil {
		t.Fatalf("swap target: %v", err)
	}
	if out.Action != ActionSwapped {
		t.Fatalf("expected swap, got %s", out.Action)
	}
	if pos, _ := state.PositionOf("c"); pos != PositionRightForward {
		t.Fatalf("expected c at rechtsvoor, got %q", pos)
	}
}

func TestSelector_BeginSwapRejectsBenchAndKeeper(t *testing.T) {
	state := newTestState(t)
	sel := NewSelector()

	if _, err := sel.BeginSwap(&state, "f"); !errors.Is(err, ErrNotOnField) {
		t.Fatalf("expected ErrNotOnField, got %v", err)
	}
	if _, err := sel.BeginSwap(&state, "k1"); !errors.Is(err, ErrKeeperLocked) {
		t.Fatalf("expected ErrKeeperLocked, got %v", err)
	}
	if sel.Current().Mode != ModeIdle {
		t.Fatalf("expected idle after rejected swap start")
	}
}

func TestSelector_KeeperPairHandsOverGoal(t *testing.T) {
	state := newTestState(t)
	sel := NewSelector()

	_, _ = sel.OnPlayerSelected(&state, "k2")
	out, err := sel.OnPlayerSelected(&state, "k1")
	if err != nil {
		t.Fatalf("keeper pair: %v", err)
	}
	if out.Action != ActionSubstituted || state.CurrentKeeperID() != "k2" {
		t.Fatalf("expected k2 in goal, outcome %+v", out)
	}
}

func TestSelector_RestorePendingPick(t *testing.T) {
	state := newTestState(t)
	sel := NewSelector()

	if _, err := sel.OnPlayerSelected(&state, "e"); err != nil {
		t.Fatalf("first pick: %v", err)
	}
	pending := sel.Current()

	sel.Cancel()
	sel.Restore(pending)
	if !reflect.DeepEqual(sel.Current(), pending) {
		t.Fatalf("restore: got %+v want %+v", sel.Current(), pending)
	}

	sel.Restore(Selection{})
	if sel.Current().Mode != ModeIdle {
		t.Fatalf("zero selection should restore to idle, got %s", sel.Current().Mode)
	}
}
