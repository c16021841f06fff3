package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/wissel-coach/internal/domain/participation"
	"github.com/riskibarqy/wissel-coach/internal/domain/player"
	"github.com/riskibarqy/wissel-coach/internal/infrastructure/repository/memory"
	participationmock "github.com/riskibarqy/wissel-coach/internal/mocks/domain/participation"
	playermock "github.com/riskibarqy/wissel-coach/internal/mocks/domain/player"
	"github.com/riskibarqy/wissel-coach/internal/platform/id"
	"github.com/riskibarqy/wissel-coach/internal/platform/logging"
)

func newRosterService(t *testing.T, seed ...player.Player) (*RosterService, *memory.ParticipationRepository) {
	t.Helper()

	participations := memory.NewParticipationRepository()
	service := NewRosterService(
		memory.NewPlayerRepository(seed),
		participations,
		id.NewSequence("player"),
		logging.NewNop(),
	)
	fixed := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }
	return service, participations
}

func boolPtr(v bool) *bool       { return &v }
func stringPtr(v string) *string { return &v }

func TestRosterService_CreateValidatesAndDefaultsActive(t *testing.T) {
	service, _ := newRosterService(t)
	ctx := t.Context()

	created, err := service.Create(ctx, CreatePlayerInput{Name: "  Noah  ", Number: player.IntPtr(7)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "player-1" || created.Name != "Noah" || !created.Active {
		t.Fatalf("unexpected created player: %+v", created)
	}

	tests := []struct {
		name  string
		input CreatePlayerInput
	}{
		{name: "blank name", input: CreatePlayerInput{Name: "   "}},
		{name: "number out of range", input: CreatePlayerInput{Name: "Sem", Number: player.IntPtr(100)}},
		{name: "duplicate active number", input: CreatePlayerInput{Name: "Sem", Number: player.IntPtr(7)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.Create(ctx, tt.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	inactive, err := service.Create(ctx, CreatePlayerInput{Name: "Levi", Number: player.IntPtr(7), Active: boolPtr(false)})
	if err != nil {
		t.Fatalf("inactive player may reuse a number: %v", err)
	}
	if inactive.Active {
		t.Fatalf("expected inactive player")
	}
}

func TestRosterService_UpdateNumberUniqueness(t *testing.T) {
	service, _ := newRosterService(t,
		player.Player{ID: "p1", Name: "Noah", Number: player.IntPtr(7), Active: true},
		player.Player{ID: "p2", Name: "Sem", Number: player.IntPtr(8), Active: true},
		player.Player{ID: "p3", Name: "Levi", Number: player.IntPtr(7), Active: false},
	)
	ctx := t.Context()

	if _, err := service.Update(ctx, UpdatePlayerInput{ID: "p2", NumberSet: true, Number: player.IntPtr(7)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected duplicate number rejection, got %v", err)
	}
	if _, err := service.Update(ctx, UpdatePlayerInput{ID: "p1", NumberSet: true, Number: player.IntPtr(7), Name: stringPtr("Noah B")}); err != nil {
		t.Fatalf("keeping own number should pass: %v", err)
	}
	if _, err := service.Update(ctx, UpdatePlayerInput{ID: "p3", Active: boolPtr(true)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("reactivating onto a taken number should fail, got %v", err)
	}

	if _, err := service.Update(ctx, UpdatePlayerInput{ID: "p1", Active: boolPtr(false)}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	reactivated, err := service.Update(ctx, UpdatePlayerInput{ID: "p3", Active: boolPtr(true)})
	if err != nil {
		t.Fatalf("number should be free after deactivation: %v", err)
	}
	if !reactivated.Active {
		t.Fatalf("expected p3 active")
	}

	cleared, err := service.Update(ctx, UpdatePlayerInput{ID: "p2", NumberSet: true})
	if err != nil {
		t.Fatalf("clear number: %v", err)
	}
	if cleared.Number != nil {
		t.Fatalf("expected number cleared, got %d", *cleared.Number)
	}

	if _, err := service.Update(ctx, UpdatePlayerInput{ID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRosterService_DeleteChecksParticipation(t *testing.T) {
	service, participations := newRosterService(t,
		player.Player{ID: "p1", Name: "Noah", Active: true},
		player.Player{ID: "p2", Name: "Sem", Active: true},
	)
	ctx := t.Context()

	if err := participations.Record(ctx, []participation.Record{{MatchID: "m1", PlayerID: "p1"}}); err != nil {
		t.Fatalf("record: %v", err)
	}

	if err := service.Delete(ctx, "p1"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := service.Delete(ctx, "p2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := service.Delete(ctx, "p2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	items, err := service.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].ID != "p1" {
		t.Fatalf("unexpected roster: %+v", items)
	}
}

func TestRosterService_SeedIfEmpty(t *testing.T) {
	service, _ := newRosterService(t)
	ctx := t.Context()

	seed := []CreatePlayerInput{{Name: "Noah", Number: player.IntPtr(1)}, {Name: "Sem"}}
	added, err := service.SeedIfEmpty(ctx, seed)
	if err != nil || added != 2 {
		t.Fatalf("seed: added=%d err=%v", added, err)
	}
	added, err = service.SeedIfEmpty(ctx, seed)
	if err != nil || added != 0 {
		t.Fatalf("second seed should be skipped: added=%d err=%v", added, err)
	}
}

func TestRosterService_StoreReportsTakenNumberUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	playerRepo := playermock.NewRepository(t)
	participationRepo := participationmock.NewRepository(t)
	service := NewRosterService(playerRepo, participationRepo, id.NewSequence("player"), logging.NewNop())

	playerRepo.
		On("FindActiveByNumber", mock.Anything, 9, "player-1").
		Return(player.Player{}, false, nil).
		Once()
	playerRepo.
		On("Create", mock.Anything, mock.MatchedBy(func(p player.Player) bool { return p.Name == "Noah" })).
		Return(player.ErrNumberTaken).
		Once()

	_, err := service.Create(ctx, CreatePlayerInput{Name: "Noah", Number: player.IntPtr(9)})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRosterService_DeletePropagatesParticipationFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	playerRepo := playermock.NewRepository(t)
	participationRepo := participationmock.NewRepository(t)
	service := NewRosterService(playerRepo, participationRepo, id.NewSequence("player"), logging.NewNop())

	storeErr := errors.New("connection refused")
	playerRepo.
		On("GetByID", mock.Anything, "p1").
		Return(player.Player{ID: "p1", Name: "Noah", Active: true}, true, nil).
		Once()
	participationRepo.
		On("HasParticipation", mock.Anything, "p1").
		Return(false, storeErr).
		Once()

	if err := service.Delete(ctx, "p1"); !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}
