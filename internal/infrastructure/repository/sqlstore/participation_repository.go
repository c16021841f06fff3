package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/wissel-coach/internal/domain/participation"
	qb "github.com/riskibarqy/wissel-coach/internal/platform/querybuilder"
)

type ParticipationRepository struct {
	db *sqlx.DB
}

func NewParticipationRepository(db *sqlx.DB) *ParticipationRepository {
	return &ParticipationRepository{db: db}
}

func (r *ParticipationRepository) HasParticipation(ctx context.Context, playerID string) (bool, error) {
	query, args, err := qb.Select("COUNT(1)").From("match_participants").
		Where(qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build count participation query: %w", err)
	}

	var count int64
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(query), args...); err != nil {
		return false, fmt.Errorf("count participation for %s: %w", playerID, err)
	}
	return count > 0, nil
}

func (r *ParticipationRepository) Record(ctx context.Context, items []participation.Record) error {
	if len(items) == 0 {
		return nil
	}

	builder := qb.InsertInto("match_participants").
		Columns("match_id", "player_id", "created_at").
		Suffix("ON CONFLICT (match_id, player_id) DO NOTHING")
	for _, item := range items {
		builder.Values(item.MatchID, item.PlayerID, item.CreatedAt.UTC())
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert participation query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("insert participation: %w", err)
	}
	return nil
}
