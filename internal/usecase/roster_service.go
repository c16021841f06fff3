package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/wissel-coach/internal/domain/participation"
	"github.com/riskibarqy/wissel-coach/internal/domain/player"
	"github.com/riskibarqy/wissel-coach/internal/platform/id"
	"github.com/riskibarqy/wissel-coach/internal/platform/logging"
)

type CreatePlayerInput struct {
	Name   string
	Number *int
	Active *bool
}

// UpdatePlayerInput is a partial update. Nil fields are left unchanged;
// NumberSet with a nil Number clears the jersey number.
type UpdatePlayerInput struct {
	ID        string
	Name      *string
	NumberSet bool
	Number    *int
	Active    *bool
}

type RosterService struct {
	playerRepo        player.Repository
	participationRepo participation.Repository
	idGen             id.Generator
	logger            *logging.Logger
	now               func() time.Time
}

func NewRosterService(
	playerRepo player.Repository,
	participationRepo participation.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		playerRepo:        playerRepo,
		participationRepo: participationRepo,
		idGen:             idGen,
		logger:            logger,
		now:               time.Now,
	}
}

func (s *RosterService) List(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.List")
	defer span.End()

	items, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return items, nil
}

func (s *RosterService) Get(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Get")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return item, nil
}

func (s *RosterService) Create(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Create")
	defer span.End()

	playerID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	now := s.now().UTC()
	item := player.Player{
		ID:        playerID,
		Name:      input.Name,
		Number:    input.Number,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Active != nil {
		item.Active = *input.Active
	}
	item.Normalize()
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.ensureNumberFree(ctx, item); err != nil {
		return player.Player{}, err
	}

	if err := s.playerRepo.Create(ctx, item); err != nil {
		return player.Player{}, mapRosterWriteError("create player", err)
	}

	s.logger.InfoContext(ctx, "player created",
		"player_id", item.ID,
		"active", item.Active,
	)
	return item, nil
}

func (s *RosterService) Update(ctx context.Context, input UpdatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Update")
	defer span.End()

	item, err := s.Get(ctx, input.ID)
	if err != nil {
		return player.Player{}, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.NumberSet {
		item.Number = input.Number
	}
	if input.Active != nil {
		item.Active = *input.Active
	}
	item.UpdatedAt = s.now().UTC()
	item.Normalize()
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.ensureNumberFree(ctx, item); err != nil {
		return player.Player{}, err
	}

	if err := s.playerRepo.Update(ctx, item); err != nil {
		return player.Player{}, mapRosterWriteError("update player", err)
	}

	s.logger.InfoContext(ctx, "player updated",
		"player_id", item.ID,
		"active", item.Active,
	)
	return item, nil
}

func (s *RosterService) Delete(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Delete")
	defer span.End()

	item, err := s.Get(ctx, playerID)
	if err != nil {
		return err
	}

	played, err := s.participationRepo.HasParticipation(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("check participation: %w", err)
	}
	if played {
		return fmt.Errorf("%w: player has match history and cannot be deleted", ErrConflict)
	}

	if err := s.playerRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	s.logger.InfoContext(ctx, "player deleted", "player_id", item.ID)
	return nil
}

// SeedIfEmpty creates the given players when the roster has none and
// reports how many were added.
func (s *RosterService) SeedIfEmpty(ctx context.Context, items []CreatePlayerInput) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SeedIfEmpty")
	defer span.End()

	existing, err := s.playerRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list players: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, item := range items {
		if _, err := s.Create(ctx, item); err != nil {
			return i, fmt.Errorf("seed player %q: %w", item.Name, err)
		}
	}

	s.logger.InfoContext(ctx, "roster seeded", "count", len(items))
	return len(items), nil
}

func (s *RosterService) ensureNumberFree(ctx context.Context, item player.Player) error {
	if !item.Active || item.Number == nil {
		return nil
	}

	holder, taken, err := s.playerRepo.FindActiveByNumber(ctx, *item.Number, item.ID)
	if err != nil {
		return fmt.Errorf("find player by number: %w", err)
	}
	if taken {
		return fmt.Errorf("%w: number %d is already used by %s", ErrInvalidInput, *item.Number, holder.Name)
	}
	return nil
}

func mapRosterWriteError(op string, err error) error {
	if errors.Is(err, player.ErrNumberTaken) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
