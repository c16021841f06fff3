package player

import "context"

// Repository describes roster persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, id string) (Player, bool, error)
	// FindActiveByNumber returns an active player wearing number, ignoring excludeID.
	FindActiveByNumber(ctx context.Context, number int, excludeID string) (Player, bool, error)
	Create(ctx context.Context, item Player) error
	Update(ctx context.Context, item Player) error
	Delete(ctx context.Context, id string) error
}
