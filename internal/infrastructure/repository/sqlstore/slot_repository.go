package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/wissel-coach/internal/domain/match"
	"github.com/riskibarqy/wissel-coach/internal/domain/matchsetup"
	"github.com/riskibarqy/wissel-coach/internal/infrastructure/repository/document"
	qb "github.com/riskibarqy/wissel-coach/internal/platform/querybuilder"
)

// SlotRepository keeps one JSON document per slot in client_slots.
type SlotRepository[T any] struct {
	db     *sqlx.DB
	slot   string
	encode func(T) ([]byte, error)
	decode func([]byte) (T, error)
	now    func() time.Time
}

var (
	_ match.Repository      = (*SlotRepository[match.State])(nil)
	_ matchsetup.Repository = (*SlotRepository[matchsetup.State])(nil)
)

func NewMatchStateRepository(db *sqlx.DB) *SlotRepository[match.State] {
	return &SlotRepository[match.State]{
		db:     db,
		slot:   document.SlotMatch,
		encode: document.EncodeMatch,
		decode: document.DecodeMatch,
		now:    time.Now,
	}
}

func NewSetupRepository(db *sqlx.DB) *SlotRepository[matchsetup.State] {
	return &SlotRepository[matchsetup.State]{
		db:     db,
		slot:   document.SlotSetup,
		encode: document.EncodeSetup,
		decode: document.DecodeSetup,
		now:    time.Now,
	}
}

func (r *SlotRepository[T]) Load(ctx context.Context) (T, bool, error) {
	var zero T
	query, args, err := qb.Select("payload").From("client_slots").
		Where(qb.Eq("slot", r.slot)).
		ToSQL()
	if err != nil {
		return zero, false, fmt.Errorf("build load slot query: %w", err)
	}

	var payload string
	if err := r.db.GetContext(ctx, &payload, r.db.Rebind(query), args...); err != nil {
		if isNotFound(err) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("load slot %s: %w", r.slot, err)
	}

	value, err := r.decode([]byte(payload))
	if err != nil {
		return zero, false, fmt.Errorf("slot %s: %w", r.slot, err)
	}
	return value, true, nil
}

func (r *SlotRepository[T]) Save(ctx context.Context, value T) error {
	raw, err := r.encode(value)
	if err != nil {
		return fmt.Errorf("slot %s: %w", r.slot, err)
	}

	query, args, err := qb.InsertInto("client_slots").
		Columns("slot", "payload", "updated_at").
		Values(r.slot, string(raw), r.now().UTC()).
		Suffix("ON CONFLICT (slot) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build save slot query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("save slot %s: %w", r.slot, err)
	}
	return nil
}

func (r *SlotRepository[T]) Clear(ctx context.Context) error {
	query, args, err := qb.DeleteFrom("client_slots").
		Where(qb.Eq("slot", r.slot)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear slot query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("clear slot %s: %w", r.slot, err)
	}
	return nil
}
