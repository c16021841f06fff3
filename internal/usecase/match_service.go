package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/wissel-coach/internal/domain/match"
	"github.com/riskibarqy/wissel-coach/internal/domain/participation"
	"github.com/riskibarqy/wissel-coach/internal/platform/logging"
)

const defaultTickInterval = time.Second

type MatchServiceConfig struct {
	TickInterval        time.Duration
	RecordParticipation bool
}

// MatchSnapshot is a consistent read of the live match.
type MatchSnapshot struct {
	State       match.State
	Selection   match.Selection
	Suggestions []match.Suggestion
}

// SelectionResult is the outcome of a player pick plus the match after it.
type SelectionResult struct {
	Outcome  match.SelectionOutcome
	Snapshot MatchSnapshot
}

type ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newTimeTicker(d time.Duration) ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// MatchService owns the single live match. Every mutation runs under one
// mutex; the running clock is driven by at most one ticker goroutine.
type MatchService struct {
	repo                match.Repository
	participationRepo   participation.Repository
	recordParticipation bool
	tickInterval        time.Duration
	logger              *logging.Logger

	mu       sync.Mutex
	state    match.State
	loaded   bool
	selector *match.Selector

	tickCancel context.CancelFunc
	tickDone   chan struct{}

	newTicker func(time.Duration) ticker
	afterTick func(match.State)
	now       func() time.Time
}

func NewMatchService(
	repo match.Repository,
	participationRepo participation.Repository,
	cfg MatchServiceConfig,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = defaultTickInterval
	}

	return &MatchService{
		repo:                repo,
		participationRepo:   participationRepo,
		recordParticipation: cfg.RecordParticipation,
		tickInterval:        cfg.TickInterval,
		logger:              logger,
		selector:            match.NewSelector(),
		newTicker:           newTimeTicker,
		now:                 time.Now,
	}
}

// Resume loads a persisted match and restarts the clock if it was running.
func (s *MatchService) Resume(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Resume")
	defer span.End()

	state, exists, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: load match: %v", ErrDependencyUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTickerLocked()
	s.selector.Cancel()
	s.state = state
	s.loaded = exists
	if exists && state.IsRunning {
		s.startTickerLocked()
		s.logger.InfoContext(ctx, "running match resumed",
			"match_id", state.ID,
			"match_time_seconds", state.MatchTimeSeconds,
		)
	}
	return nil
}

// Start replaces the live match with a freshly built one.
func (s *MatchService) Start(ctx context.Context, state match.State) (MatchSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Start")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(ctx, state); err != nil {
		return MatchSnapshot{}, fmt.Errorf("%w: save match: %v", ErrDependencyUnavailable, err)
	}
	s.stopTickerLocked()
	s.selector.Cancel()
	s.state = state.Clone()
	s.loaded = true

	if s.recordParticipation {
		s.recordSquad(ctx, state)
	}

	s.logger.InfoContext(ctx, "match started",
		"match_id", state.ID,
		"players", len(state.SelectedPlayers),
	)
	return s.snapshotLocked(), nil
}

func (s *MatchService) Get(ctx context.Context) (MatchSnapshot, bool, error) {
	_, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return MatchSnapshot{}, false, nil
	}
	return s.snapshotLocked(), true, nil
}

// Reset ends the live match and clears the match slot. When the slot cannot
// be cleared the match, including a running clock, stays as it was.
func (s *MatchService) Reset(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Reset")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("%w: clear match: %v", ErrDependencyUnavailable, err)
	}
	s.stopTickerLocked()
	s.selector.Cancel()
	s.state = match.State{}
	s.loaded = false

	s.logger.InfoContext(ctx, "match reset")
	return nil
}

// ToggleClock starts or pauses the match clock.
func (s *MatchService) ToggleClock(ctx context.Context) (MatchSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ToggleClock")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.applyLocked(ctx, func(st *match.State) error {
		st.SetRunning(!st.IsRunning)
		return nil
	})
	if err != nil {
		return MatchSnapshot{}, err
	}

	if s.state.IsRunning {
		s.startTickerLocked()
	} else {
		s.stopTickerLocked()
	}
	return snapshot, nil
}

// AdjustClock shifts the clock by whole minutes; only -1 and +1 are accepted.
func (s *MatchService) AdjustClock(ctx context.Context, minutes int) (MatchSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.AdjustClock")
	defer span.End()

	if minutes != -1 && minutes != 1 {
		return MatchSnapshot{}, fmt.Errorf("%w: minutes must be -1 or 1", ErrInvalidInput)
	}
	return s.mutate(ctx, func(st *match.State) error {
		st.AdjustTime(minutes * match.AdjustStep)
		return nil
	})
}

// Select feeds a player pick into the selection state machine.
func (s *MatchService) Select(ctx context.Context, playerID string) (SelectionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Select")
	defer span.End()

	return s.selectWith(ctx, func(st *match.State) (match.SelectionOutcome, error) {
		return s.selector.OnPlayerSelected(st, playerID)
	})
}

// BeginSwap arms swap mode for an on-field player.
func (s *MatchService) BeginSwap(ctx context.Context, playerID string) (SelectionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.BeginSwap")
	defer span.End()

	return s.selectWith(ctx, func(st *match.State) (match.SelectionOutcome, error) {
		return s.selector.BeginSwap(st, playerID)
	})
}

func (s *MatchService) CancelSelection(ctx context.Context) (MatchSnapshot, error) {
	_, span := startUsecaseSpan(ctx, "usecase.MatchService.CancelSelection")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return MatchSnapshot{}, ErrNoActiveMatch
	}
	s.selector.Cancel()
	return s.snapshotLocked(), nil
}

// Swap exchanges the position labels of two on-field players.
func (s *MatchService) Swap(ctx context.Context, playerA, playerB string) (MatchSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Swap")
	defer span.End()

	return s.mutate(ctx, func(st *match.State) error {
		s.selector.Cancel()
		return st.SwapPositions(playerA, playerB)
	})
}

// Substitute brings a bench player on for an on-field player.
func (s *MatchService) Substitute(ctx context.Context, outID, inID string) (MatchSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Substitute")
	defer span.End()

	return s.mutate(ctx, func(st *match.State) error {
		s.selector.Cancel()
		return st.Substitute(outID, inID)
	})
}

// ChangeKeeper performs the one half-time keeper change.
func (s *MatchService) ChangeKeeper(ctx context.Context) (MatchSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ChangeKeeper")
	defer span.End()

	return s.mutate(ctx, func(st *match.State) error {
		return st.ChangeKeeper()
	})
}

func (s *MatchService) Suggestions(ctx context.Context) ([]match.Suggestion, error) {
	_, span := startUsecaseSpan(ctx, "usecase.MatchService.Suggestions")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return nil, ErrNoActiveMatch
	}
	return s.state.Suggestions(), nil
}

// ExecuteSuggestion applies the current suggestion for one group.
func (s *MatchService) ExecuteSuggestion(ctx context.Context, group int) (MatchSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ExecuteSuggestion")
	defer span.End()

	g := match.GroupID(group)
	if !g.Valid() {
		return MatchSnapshot{}, fmt.Errorf("%w: unknown group %d", ErrInvalidInput, group)
	}
	return s.mutate(ctx, func(st *match.State) error {
		s.selector.Cancel()
		_, err := st.ExecuteSuggestion(g)
		return err
	})
}

// Close stops the clock goroutine and waits for it to exit.
func (s *MatchService) Close() {
	s.mu.Lock()
	done := s.tickDone
	s.stopTickerLocked()
	s.mu.Unlock()

	if done != nil {
		<-done
	}
}

func (s *MatchService) mutate(ctx context.Context, fn func(st *match.State) error) (MatchSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.applyLocked(ctx, fn)
}

// applyLocked runs fn on a copy and commits it only when fn and the save
// both succeed.
func (s *MatchService) applyLocked(ctx context.Context, fn func(st *match.State) error) (MatchSnapshot, error) {
	if !s.loaded {
		return MatchSnapshot{}, ErrNoActiveMatch
	}

	next := s.state.Clone()
	if err := fn(&next); err != nil {
		return MatchSnapshot{}, mapMatchError(err)
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return MatchSnapshot{}, fmt.Errorf("%w: save match: %v", ErrDependencyUnavailable, err)
	}
	s.state = next
	return s.snapshotLocked(), nil
}

func (s *MatchService) selectWith(ctx context.Context, pick func(st *match.State) (match.SelectionOutcome, error)) (SelectionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A rejected pick may reset the selector; a failed save must not.
	prev := s.selector.Current()
	var outcome match.SelectionOutcome
	snapshot, err := s.applyLocked(ctx, func(st *match.State) error {
		var pickErr error
		outcome, pickErr = pick(st)
		return pickErr
	})
	if err != nil {
		if errors.Is(err, ErrDependencyUnavailable) {
			s.selector.Restore(prev)
		}
		return SelectionResult{}, err
	}
	return SelectionResult{Outcome: outcome, Snapshot: snapshot}, nil
}

func (s *MatchService) snapshotLocked() MatchSnapshot {
	return MatchSnapshot{
		State:       s.state.Clone(),
		Selection:   s.selector.Current(),
		Suggestions: s.state.Suggestions(),
	}
}

func (s *MatchService) startTickerLocked() {
	if s.tickCancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.tickCancel = cancel
	s.tickDone = done

	t := s.newTicker(s.tickInterval)
	go s.runTicker(ctx, t, done)
}

// stopTickerLocked cancels the ticker without waiting; a tick that is
// already queued on the mutex sees the cancelled context and does nothing.
func (s *MatchService) stopTickerLocked() {
	if s.tickCancel == nil {
		return
	}
	s.tickCancel()
	s.tickCancel = nil
	s.tickDone = nil
}

func (s *MatchService) runTicker(ctx context.Context, t ticker, done chan struct{}) {
	defer close(done)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C():
			s.tick(ctx)
		}
	}
}

func (s *MatchService) tick(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx.Err() != nil || !s.loaded || !s.state.IsRunning {
		return
	}

	s.state.Tick()
	if err := s.repo.Save(ctx, s.state); err != nil {
		s.logger.WarnContext(ctx, "save match tick failed",
			"match_id", s.state.ID,
			"error", err,
		)
	}
	if s.afterTick != nil {
		s.afterTick(s.state.Clone())
	}
}

func (s *MatchService) recordSquad(ctx context.Context, state match.State) {
	createdAt := s.now().UTC()
	records := make([]participation.Record, 0, len(state.SelectedPlayers))
	for _, p := range state.SelectedPlayers {
		records = append(records, participation.Record{
			MatchID:   state.ID,
			PlayerID:  p.ID,
			CreatedAt: createdAt,
		})
	}

	if err := s.participationRepo.Record(ctx, records); err != nil {
		s.logger.WarnContext(ctx, "record match participation failed",
			"match_id", state.ID,
			"error", err,
		)
	}
}

func mapMatchError(err error) error {
	switch {
	case errors.Is(err, match.ErrCrossGroup),
		errors.Is(err, match.ErrNotOnField),
		errors.Is(err, match.ErrNotOnBench),
		errors.Is(err, match.ErrKeeperLocked),
		errors.Is(err, match.ErrKeeperChangeUsed),
		errors.Is(err, match.ErrUnknownPlayer):
		return fmt.Errorf("%w: %w", ErrIllegalOperation, err)
	case errors.Is(err, match.ErrNoSuggestion):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, match.ErrInvalidSetup):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
