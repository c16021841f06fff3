package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_NewID(t *testing.T) {
	gen := NewUUIDGenerator()

	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("expected uuid, got %q: %v", first, err)
	}
	second, _ := gen.NewID()
	if first == second {
		t.Fatalf("expected unique ids")
	}
}

func TestSequence_NewID(t *testing.T) {
	seq := NewSequence("player")
	a, _ := seq.NewID()
	b, _ := seq.NewID()
	if a != "player-1" || b != "player-2" {
		t.Fatalf("unexpected ids: %s %s", a, b)
	}
}
