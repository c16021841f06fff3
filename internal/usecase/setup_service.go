package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/wissel-coach/internal/domain/match"
	"github.com/riskibarqy/wissel-coach/internal/domain/matchsetup"
	"github.com/riskibarqy/wissel-coach/internal/domain/player"
	"github.com/riskibarqy/wissel-coach/internal/platform/id"
	"github.com/riskibarqy/wissel-coach/internal/platform/logging"
)

// SetupService drives the match setup wizard stored in the setup slot.
type SetupService struct {
	setupRepo  matchsetup.Repository
	playerRepo player.Repository
	wizard     *matchsetup.Wizard
	matches    *MatchService
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time

	mu sync.Mutex
}

func NewSetupService(
	setupRepo matchsetup.Repository,
	playerRepo player.Repository,
	wizard *matchsetup.Wizard,
	matches *MatchService,
	idGen id.Generator,
	logger *logging.Logger,
) *SetupService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SetupService{
		setupRepo:  setupRepo,
		playerRepo: playerRepo,
		wizard:     wizard,
		matches:    matches,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *SetupService) Rules() matchsetup.Rules {
	return s.wizard.Rules()
}

func (s *SetupService) Get(ctx context.Context) (matchsetup.State, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SetupService.Get")
	defer span.End()

	state, exists, err := s.setupRepo.Load(ctx)
	if err != nil {
		return matchsetup.State{}, false, fmt.Errorf("%w: load setup: %v", ErrDependencyUnavailable, err)
	}
	return state, exists, nil
}

func (s *SetupService) Reset(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SetupService.Reset")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.setupRepo.Clear(ctx); err != nil {
		return fmt.Errorf("%w: clear setup: %v", ErrDependencyUnavailable, err)
	}
	return nil
}

// TogglePlayer adds an active roster player to the squad or removes them.
func (s *SetupService) TogglePlayer(ctx context.Context, playerID string) (matchsetup.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SetupService.TogglePlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return matchsetup.State{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return matchsetup.State{}, fmt.Errorf("get player: %w", err)
	}

	return s.mutate(ctx, func(st *matchsetup.State) error {
		if !exists {
			if st.IsSelected(playerID) {
				_, err := s.wizard.TogglePlayer(st, match.PlayerRef{ID: playerID})
				return err
			}
			return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
		}
		if !item.Active && !st.IsSelected(playerID) {
			return fmt.Errorf("%w: player %s is inactive", ErrInvalidInput, item.Name)
		}
		_, err := s.wizard.TogglePlayer(st, match.PlayerRef{ID: item.ID, Name: item.Name, Number: item.Number})
		return err
	})
}

func (s *SetupService) SetKeepers(ctx context.Context, keeper1, keeper2 string) (matchsetup.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SetupService.SetKeepers")
	defer span.End()

	return s.mutate(ctx, func(st *matchsetup.State) error {
		return s.wizard.SetKeepers(st, strings.TrimSpace(keeper1), strings.TrimSpace(keeper2))
	})
}

func (s *SetupService) RandomGroups(ctx context.Context) (matchsetup.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SetupService.RandomGroups")
	defer span.End()

	return s.mutate(ctx, s.wizard.RandomGroups)
}

func (s *SetupService) SeedGroups(ctx context.Context) (matchsetup.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SetupService.SeedGroups")
	defer span.End()

	return s.mutate(ctx, s.wizard.SeedGroups)
}

func (s *SetupService) MovePlayer(ctx context.Context, playerID string, group int) (matchsetup.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SetupService.MovePlayer")
	defer span.End()

	return s.mutate(ctx, func(st *matchsetup.State) error {
		return s.wizard.MovePlayer(st, strings.TrimSpace(playerID), match.GroupID(group))
	})
}

func (s *SetupService) AssignPosition(ctx context.Context, group int, position string) (matchsetup.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SetupService.AssignPosition")
	defer span.End()

	return s.mutate(ctx, func(st *matchsetup.State) error {
		return s.wizard.AssignPosition(st, match.GroupID(group), match.Position(strings.TrimSpace(position)))
	})
}

func (s *SetupService) UnassignPosition(ctx context.Context, position string) (matchsetup.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SetupService.UnassignPosition")
	defer span.End()

	return s.mutate(ctx, func(st *matchsetup.State) error {
		return s.wizard.UnassignPosition(st, match.Position(strings.TrimSpace(position)))
	})
}

func (s *SetupService) Next(ctx context.Context) (matchsetup.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SetupService.Next")
	defer span.End()

	return s.mutate(ctx, s.wizard.Next)
}

func (s *SetupService) Back(ctx context.Context) (matchsetup.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SetupService.Back")
	defer span.End()

	return s.mutate(ctx, s.wizard.Back)
}

// Start turns the finished wizard into the live match and clears the setup
// slot.
func (s *SetupService) Start(ctx context.Context) (MatchSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SetupService.Start")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadLocked(ctx)
	if err != nil {
		return MatchSnapshot{}, err
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return MatchSnapshot{}, fmt.Errorf("generate match id: %w", err)
	}
	state, err := s.wizard.Build(st, matchID, s.now().UTC())
	if err != nil {
		return MatchSnapshot{}, mapSetupError(err)
	}

	snapshot, err := s.matches.Start(ctx, state)
	if err != nil {
		return MatchSnapshot{}, err
	}
	if err := s.setupRepo.Clear(ctx); err != nil {
		s.logger.WarnContext(ctx, "clear setup after start failed", "error", err)
	}
	return snapshot, nil
}

func (s *SetupService) mutate(ctx context.Context, fn func(st *matchsetup.State) error) (matchsetup.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadLocked(ctx)
	if err != nil {
		return matchsetup.State{}, err
	}
	if err := fn(&st); err != nil {
		return matchsetup.State{}, mapSetupError(err)
	}

	st.UpdatedAt = s.now().UTC()
	if err := s.setupRepo.Save(ctx, st); err != nil {
		return matchsetup.State{}, fmt.Errorf("%w: save setup: %v", ErrDependencyUnavailable, err)
	}
	return st, nil
}

func (s *SetupService) loadLocked(ctx context.Context) (matchsetup.State, error) {
	st, exists, err := s.setupRepo.Load(ctx)
	if err != nil {
		return matchsetup.State{}, fmt.Errorf("%w: load setup: %v", ErrDependencyUnavailable, err)
	}
	if !exists {
		st = matchsetup.New()
	}
	return st, nil
}

func mapSetupError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrNotFound):
		return err
	case errors.Is(err, matchsetup.ErrNotSelected),
		errors.Is(err, matchsetup.ErrInvalidKeeper),
		errors.Is(err, matchsetup.ErrInvalidPosition),
		errors.Is(err, match.ErrInvalidSetup):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, matchsetup.ErrWrongStep),
		errors.Is(err, matchsetup.ErrIncomplete),
		errors.Is(err, matchsetup.ErrSelectionFull),
		errors.Is(err, matchsetup.ErrGroupFull),
		errors.Is(err, matchsetup.ErrKeeperImmovable),
		errors.Is(err, matchsetup.ErrPositionTaken),
		errors.Is(err, matchsetup.ErrPositionsFull):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return err
	}
}
