package matchsetup

import "context"

// Repository persists the single setup slot.
type Repository interface {
	Load(ctx context.Context) (State, bool, error)
	Save(ctx context.Context, state State) error
	Clear(ctx context.Context) error
}
