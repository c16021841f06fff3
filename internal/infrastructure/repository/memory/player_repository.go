package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/wissel-coach/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	index := make(map[string]player.Player, len(players))
	for _, p := range players {
		index[p.ID] = clonePlayer(p)
	}

	return &PlayerRepository{players: index}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, clonePlayer(p))
	}
	sort.Slice(out, func(i, j int) bool { return player.Less(out[i], out[j]) })

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[id]
	if !ok {
		return player.Player{}, false, nil
	}
	return clonePlayer(p), true, nil
}

func (r *PlayerRepository) FindActiveByNumber(_ context.Context, number int, excludeID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, p := range r.players {
		if id == excludeID || !p.Active {
			continue
		}
		if p.HasNumber(number) {
			return clonePlayer(p), true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.players[item.ID]; exists {
		return fmt.Errorf("player %s already exists", item.ID)
	}
	r.players[item.ID] = clonePlayer(item)
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.players[item.ID]; !exists {
		return fmt.Errorf("player %s not found", item.ID)
	}
	r.players[item.ID] = clonePlayer(item)
	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.players, id)
	return nil
}

func clonePlayer(p player.Player) player.Player {
	if p.Number != nil {
		p.Number = player.IntPtr(*p.Number)
	}
	return p
}
