package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/wissel-coach/internal/domain/match"
	"github.com/riskibarqy/wissel-coach/internal/domain/matchsetup"
)

// MatchStateRepository keeps the live match slot in process memory.
type MatchStateRepository struct {
	mu     sync.RWMutex
	state  match.State
	exists bool
}

func NewMatchStateRepository() *MatchStateRepository {
	return &MatchStateRepository{}
}

func (r *MatchStateRepository) Load(_ context.Context) (match.State, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.exists {
		return match.State{}, false, nil
	}
	return r.state.Clone(), true, nil
}

func (r *MatchStateRepository) Save(_ context.Context, state match.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = state.Clone()
	r.exists = true
	return nil
}

func (r *MatchStateRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = match.State{}
	r.exists = false
	return nil
}

// SetupRepository keeps the setup wizard slot in process memory.
type SetupRepository struct {
	mu     sync.RWMutex
	state  matchsetup.State
	exists bool
}

func NewSetupRepository() *SetupRepository {
	return &SetupRepository{}
}

func (r *SetupRepository) Load(_ context.Context) (matchsetup.State, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.exists {
		return matchsetup.State{}, false, nil
	}
	return cloneSetup(r.state), true, nil
}

func (r *SetupRepository) Save(_ context.Context, state matchsetup.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = cloneSetup(state)
	r.exists = true
	return nil
}

func (r *SetupRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = matchsetup.State{}
	r.exists = false
	return nil
}

func cloneSetup(s matchsetup.State) matchsetup.State {
	s.SelectedPlayers = append([]match.PlayerRef(nil), s.SelectedPlayers...)
	s.Group1 = append([]string(nil), s.Group1...)
	s.Group2 = append([]string(nil), s.Group2...)
	s.Group1Positions = append([]match.Position(nil), s.Group1Positions...)
	s.Group2Positions = append([]match.Position(nil), s.Group2Positions...)
	return s
}
