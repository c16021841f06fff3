package sqlstore

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/wissel-coach/internal/domain/player"
)

type playerTableModel struct {
	ID        string        `db:"id"`
	Name      string        `db:"name"`
	Number    sql.NullInt64 `db:"number"`
	IsActive  bool          `db:"is_active"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}

var playerSelectColumns = []string{
	"id",
	"name",
	"number",
	"is_active",
	"created_at",
	"updated_at",
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:        row.ID,
		Name:      row.Name,
		Number:    nullIntToPtr(row.Number),
		Active:    row.IsActive,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}
