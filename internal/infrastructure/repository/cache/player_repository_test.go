package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/wissel-coach/internal/domain/player"
	"github.com/riskibarqy/wissel-coach/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/wissel-coach/internal/platform/cache"
)

type countingRepository struct {
	player.Repository
	lists int
}

func (r *countingRepository) List(ctx context.Context) ([]player.Player, error) {
	r.lists++
	return r.Repository.List(ctx)
}

func TestPlayerRepository_ListIsCachedUntilWrite(t *testing.T) {
	ctx := t.Context()
	inner := &countingRepository{Repository: memory.NewPlayerRepository([]player.Player{
		{ID: "p1", Name: "Noah", Number: player.IntPtr(7), Active: true},
	})}
	repo := NewPlayerRepository(inner, basecache.NewStore(time.Minute))

	for i := 0; i < 3; i++ {
		if _, err := repo.List(ctx); err != nil {
			t.Fatalf("list: %v", err)
		}
	}
	if inner.lists != 1 {
		t.Fatalf("expected one backend list, got %d", inner.lists)
	}

	if err := repo.Create(ctx, player.Player{ID: "p2", Name: "Sem", Active: true}); err != nil {
		t.Fatalf("create: %v", err)
	}
	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list after create: %v", err)
	}
	if len(items) != 2 || inner.lists != 2 {
		t.Fatalf("expected fresh list after write, items=%d lists=%d", len(items), inner.lists)
	}
}

func TestPlayerRepository_NumberLookupInvalidatedOnUpdate(t *testing.T) {
	ctx := t.Context()
	repo := NewPlayerRepository(memory.NewPlayerRepository([]player.Player{
		{ID: "p1", Name: "Noah", Number: player.IntPtr(7), Active: true},
	}), basecache.NewStore(time.Minute))

	if _, exists, _ := repo.FindActiveByNumber(ctx, 7, ""); !exists {
		t.Fatalf("expected number 7 taken")
	}

	p, _, _ := repo.GetByID(ctx, "p1")
	p.Active = false
	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, exists, _ := repo.FindActiveByNumber(ctx, 7, ""); exists {
		t.Fatalf("expected number 7 freed after deactivation")
	}
}

func TestPlayerRepository_ReturnsCopies(t *testing.T) {
	ctx := t.Context()
	repo := NewPlayerRepository(memory.NewPlayerRepository([]player.Player{
		{ID: "p1", Name: "Noah", Number: player.IntPtr(7), Active: true},
	}), basecache.NewStore(time.Minute))

	first, _, _ := repo.GetByID(ctx, "p1")
	*first.Number = 99

	second, _, _ := repo.GetByID(ctx, "p1")
	if *second.Number != 7 {
		t.Fatalf("cached player mutated through returned copy: %d", *second.Number)
	}
}
