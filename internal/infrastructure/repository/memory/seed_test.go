package memory

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	content := "players:\n  - name: Daan\n    number: 7\n  - name: Sem\n    active: false\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}

	items, err := LoadSeedFile(path)
	if err != nil {
		t.Fatalf("load seed file: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 players, got %d", len(items))
	}
	if items[0].Number == nil || *items[0].Number != 7 {
		t.Fatalf("unexpected number for Daan: %v", items[0].Number)
	}
	if items[1].Active == nil || *items[1].Active {
		t.Fatalf("expected Sem to be inactive")
	}
}

func TestLoadSeedFile_RejectsBlankName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	if err := os.WriteFile(path, []byte("players:\n  - name: \"  \"\n"), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}

	if _, err := LoadSeedFile(path); err == nil {
		t.Fatalf("expected error for blank name")
	}
}

func TestPlayerRepository_ListOrderAndNumberLookup(t *testing.T) {
	repo := NewPlayerRepository(SeedPlayers())
	ctx := t.Context()

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 10 || items[0].Name != "Bram" {
		t.Fatalf("expected alphabetical roster starting with Bram, got %d items first %q", len(items), items[0].Name)
	}

	found, ok, err := repo.FindActiveByNumber(ctx, 1, "")
	if err != nil || !ok || found.ID != "demo-01" {
		t.Fatalf("expected demo-01 to wear 1, got %+v ok=%v err=%v", found, ok, err)
	}
	if _, ok, _ := repo.FindActiveByNumber(ctx, 1, "demo-01"); ok {
		t.Fatalf("excluded player should not match")
	}

	found.Active = false
	if err := repo.Update(ctx, found); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, ok, _ := repo.FindActiveByNumber(ctx, 1, ""); ok {
		t.Fatalf("inactive player should not hold the number")
	}
}
