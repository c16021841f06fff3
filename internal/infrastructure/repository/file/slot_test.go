package file

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/wissel-coach/internal/domain/match"
	"github.com/riskibarqy/wissel-coach/internal/domain/matchsetup"
	"github.com/riskibarqy/wissel-coach/internal/infrastructure/repository/document"
)

func TestMatchStateRepository_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := t.Context()

	repo, err := NewMatchStateRepository(dir)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	if _, exists, err := repo.Load(ctx); err != nil || exists {
		t.Fatalf("expected empty slot, exists=%v err=%v", exists, err)
	}

	state := match.State{
		ID:                 "m1",
		SelectedPlayers:    []match.PlayerRef{{ID: "k1", Name: "Kim"}},
		Keeper1:            "k1",
		Keeper2:            "k2",
		Group1:             []string{"k1", "k2"},
		Group2:             []string{},
		Group1Positions:    []match.Position{match.PositionKeeper},
		CurrentKeeper:      1,
		MatchTimeSeconds:   42,
		IsRunning:          true,
		Half:               1,
		PlayingTimeSeconds: map[string]int{"k1": 42},
		CreatedAt:          time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	}
	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("save: %v", err)
	}

	reopened, err := NewMatchStateRepository(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, exists, err := reopened.Load(ctx)
	if err != nil || !exists {
		t.Fatalf("expected stored match, exists=%v err=%v", exists, err)
	}
	if got.MatchTimeSeconds != 42 || !got.IsRunning || got.PlayingTime("k1") != 42 {
		t.Fatalf("unexpected loaded match: %+v", got)
	}

	if err := reopened.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := reopened.Clear(ctx); err != nil {
		t.Fatalf("clear twice: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "match.json")); !os.IsNotExist(err) {
		t.Fatalf("expected slot file removed, stat err=%v", err)
	}
}

func TestSetupRepository_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewSetupRepository(dir)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}

	state := matchsetup.New()
	state.SelectedPlayers = []match.PlayerRef{{ID: "a", Name: "Anna"}}
	for i := 0; i < 3; i++ {
		if err := repo.Save(t.Context(), state); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "setup.json" {
		t.Fatalf("unexpected files in state dir: %v", entries)
	}
}

func TestSlot_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewMatchStateRepository(dir)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	if err := os.WriteFile(repo.Path(), []byte("{broken"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := repo.Load(t.Context()); err == nil {
		t.Fatalf("expected decode error for corrupt slot")
	}
}

func TestNewSlot_RequiresDir(t *testing.T) {
	if _, err := NewSetupRepository(""); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}

func TestSetupRepository_WritesDocumentLine(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewSetupRepository(dir)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}

	state := matchsetup.New()
	state.SelectedPlayers = []match.PlayerRef{{ID: "a", Name: "Anna"}, {ID: "b", Name: "Bram"}}
	// Smaller document first so the second save reuses a pooled buffer.
	if err := repo.Save(t.Context(), matchsetup.New()); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	if err := repo.Save(t.Context(), state); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := os.ReadFile(repo.Path())
	if err != nil {
		t.Fatalf("read slot: %v", err)
	}
	want, err := document.EncodeSetup(state)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(raw, append(want, '\n')) {
		t.Fatalf("unexpected slot contents:\nwant %s\ngot  %s", want, raw)
	}
}
