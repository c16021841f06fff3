package participation

import (
	"context"
	"time"
)

// Record marks that a player was part of a match squad.
type Record struct {
	MatchID   string
	PlayerID  string
	CreatedAt time.Time
}

// Repository stores match participation history per player.
type Repository interface {
	HasParticipation(ctx context.Context, playerID string) (bool, error)
	Record(ctx context.Context, items []Record) error
}
