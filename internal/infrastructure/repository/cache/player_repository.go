package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/wissel-coach/internal/domain/player"
	basecache "github.com/riskibarqy/wissel-coach/internal/platform/cache"
)

const rosterKeyPrefix = "roster:"

// PlayerRepository serves roster reads from the cache and drops every roster
// key on writes.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, rosterKeyPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return clonePlayers(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return clonePlayers(items), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (player.Player, bool, error) {
	key := rosterKeyPrefix + "id:" + id
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedPlayer{value: clonePlayer(item), exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayer)
	return clonePlayer(cached.value), cached.exists, nil
}

func (r *PlayerRepository) FindActiveByNumber(ctx context.Context, number int, excludeID string) (player.Player, bool, error) {
	key := rosterKeyPrefix + "number:" + strconv.Itoa(number) + ":" + excludeID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.FindActiveByNumber(ctx, number, excludeID)
		if err != nil {
			return nil, err
		}
		return cachedPlayer{value: clonePlayer(item), exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayer)
	return clonePlayer(cached.value), cached.exists, nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	defer r.invalidate(ctx)
	return r.next.Create(ctx, item)
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	defer r.invalidate(ctx)
	return r.next.Update(ctx, item)
}

func (r *PlayerRepository) Delete(ctx context.Context, id string) error {
	defer r.invalidate(ctx)
	return r.next.Delete(ctx, id)
}

func (r *PlayerRepository) invalidate(ctx context.Context) {
	r.cache.DeletePrefix(ctx, rosterKeyPrefix)
}

type cachedPlayer struct {
	value  player.Player
	exists bool
}

func clonePlayers(items []player.Player) []player.Player {
	out := make([]player.Player, 0, len(items))
	for _, item := range items {
		out = append(out, clonePlayer(item))
	}
	return out
}

func clonePlayer(p player.Player) player.Player {
	if p.Number != nil {
		p.Number = player.IntPtr(*p.Number)
	}
	return p
}
