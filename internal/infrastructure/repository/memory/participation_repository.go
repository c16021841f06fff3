package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/wissel-coach/internal/domain/participation"
)

type ParticipationRepository struct {
	mu       sync.RWMutex
	byPlayer map[string]map[string]participation.Record
}

func NewParticipationRepository() *ParticipationRepository {
	return &ParticipationRepository{byPlayer: make(map[string]map[string]participation.Record)}
}

func (r *ParticipationRepository) HasParticipation(_ context.Context, playerID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byPlayer[playerID]) > 0, nil
}

func (r *ParticipationRepository) Record(_ context.Context, items []participation.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		matches, ok := r.byPlayer[item.PlayerID]
		if !ok {
			matches = make(map[string]participation.Record)
			r.byPlayer[item.PlayerID] = matches
		}
		matches[item.MatchID] = item
	}
	return nil
}
