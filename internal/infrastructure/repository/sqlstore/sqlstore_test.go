package sqlstore

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/wissel-coach/db"
	"github.com/riskibarqy/wissel-coach/internal/domain/match"
	"github.com/riskibarqy/wissel-coach/internal/domain/participation"
	"github.com/riskibarqy/wissel-coach/internal/domain/player"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "wissel.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if err := db.Up("sqlite", dsn, db.DialectSQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func testPlayer(id, name string, number *int, active bool) player.Player {
	ts := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	return player.Player{ID: id, Name: name, Number: number, Active: active, CreatedAt: ts, UpdatedAt: ts}
}

func TestPlayerRepository_CRUD(t *testing.T) {
	ctx := t.Context()
	repo := NewPlayerRepository(newTestDB(t))

	seed := []player.Player{
		testPlayer("p1", "noah", player.IntPtr(7), true),
		testPlayer("p2", "Bram", nil, true),
		testPlayer("p3", "Anna", player.IntPtr(7), false),
	}
	for _, p := range seed {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("create %s: %v", p.ID, err)
		}
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var order []string
	for _, p := range items {
		order = append(order, p.ID)
	}
	if fmt.Sprint(order) != "[p2 p1 p3]" {
		t.Fatalf("unexpected order: %v", order)
	}

	got, exists, err := repo.GetByID(ctx, "p1")
	if err != nil || !exists {
		t.Fatalf("get p1: exists=%v err=%v", exists, err)
	}
	if got.Number == nil || *got.Number != 7 || !got.Active || !got.CreatedAt.Equal(seed[0].CreatedAt) {
		t.Fatalf("unexpected player: %+v", got)
	}
	if _, exists, _ := repo.GetByID(ctx, "missing"); exists {
		t.Fatalf("expected missing player")
	}

	holder, exists, err := repo.FindActiveByNumber(ctx, 7, "")
	if err != nil || !exists || holder.ID != "p1" {
		t.Fatalf("expected p1 to hold 7, got %+v exists=%v err=%v", holder, exists, err)
	}
	if _, exists, _ := repo.FindActiveByNumber(ctx, 7, "p1"); exists {
		t.Fatalf("excluded id should not match")
	}

	got.Active = false
	got.Name = "Noah"
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, exists, _ := repo.FindActiveByNumber(ctx, 7, ""); exists {
		t.Fatalf("deactivated player should free the number")
	}
	if err := repo.Update(ctx, testPlayer("ghost", "Ghost", nil, true)); err == nil {
		t.Fatalf("expected error updating a missing player")
	}

	if err := repo.Delete(ctx, "p2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, exists, _ := repo.GetByID(ctx, "p2"); exists {
		t.Fatalf("expected p2 deleted")
	}
}

func TestPlayerRepository_ActiveNumberIndex(t *testing.T) {
	ctx := t.Context()
	repo := NewPlayerRepository(newTestDB(t))

	if err := repo.Create(ctx, testPlayer("p1", "Noah", player.IntPtr(9), true)); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := repo.Create(ctx, testPlayer("p2", "Sem", player.IntPtr(9), true))
	if !errors.Is(err, player.ErrNumberTaken) {
		t.Fatalf("expected ErrNumberTaken, got %v", err)
	}
	if err := repo.Create(ctx, testPlayer("p3", "Levi", player.IntPtr(9), false)); err != nil {
		t.Fatalf("inactive duplicate should be allowed: %v", err)
	}
}

func TestParticipationRepository(t *testing.T) {
	ctx := t.Context()
	conn := newTestDB(t)
	players := NewPlayerRepository(conn)
	repo := NewParticipationRepository(conn)

	if err := players.Create(ctx, testPlayer("p1", "Noah", nil, true)); err != nil {
		t.Fatalf("create player: %v", err)
	}
	has, err := repo.HasParticipation(ctx, "p1")
	if err != nil || has {
		t.Fatalf("expected no participation, has=%v err=%v", has, err)
	}

	record := participation.Record{MatchID: "m1", PlayerID: "p1", CreatedAt: time.Now()}
	for i := 0; i < 2; i++ {
		if err := repo.Record(ctx, []participation.Record{record}); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	has, err = repo.HasParticipation(ctx, "p1")
	if err != nil || !has {
		t.Fatalf("expected participation, has=%v err=%v", has, err)
	}
	if err := repo.Record(ctx, nil); err != nil {
		t.Fatalf("empty record: %v", err)
	}
}

func TestSlotRepository_MatchState(t *testing.T) {
	ctx := t.Context()
	repo := NewMatchStateRepository(newTestDB(t))

	if _, exists, err := repo.Load(ctx); err != nil || exists {
		t.Fatalf("expected empty slot, exists=%v err=%v", exists, err)
	}

	state := match.State{
		ID:                 "m1",
		Keeper1:            "k1",
		Keeper2:            "k2",
		Group1:             []string{"k1", "k2"},
		Group2:             []string{},
		CurrentKeeper:      1,
		Half:               1,
		PlayingTimeSeconds: map[string]int{"k1": 5},
	}
	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("save: %v", err)
	}
	state.MatchTimeSeconds = 30
	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("save again: %v", err)
	}

	got, exists, err := repo.Load(ctx)
	if err != nil || !exists {
		t.Fatalf("load: exists=%v err=%v", exists, err)
	}
	if got.MatchTimeSeconds != 30 || got.PlayingTime("k1") != 5 {
		t.Fatalf("unexpected state: %+v", got)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, exists, _ := repo.Load(ctx); exists {
		t.Fatalf("expected empty slot after clear")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "postgres unique", err: fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), want: true},
		{name: "postgres other", err: &pq.Error{Code: "23503"}, want: false},
		{name: "sqlite message", err: errors.New("constraint failed: UNIQUE constraint failed: players.number (2067)"), want: true},
		{name: "unrelated", err: errors.New("no such table: players"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.want {
				t.Fatalf("isUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}
