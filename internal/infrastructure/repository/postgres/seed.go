package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/roster"
)

// BootstrapRoster fills an empty players table from players. A table that
// already holds rows is left alone.
func BootstrapRoster(ctx context.Context, db *sqlx.DB, players []roster.Player) (int, error) {
	if len(players) == 0 {
		return 0, nil
	}

	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players`); err != nil {
		return 0, fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range players {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (number, name, role)
VALUES (:number, :name, :role)
ON CONFLICT (name) DO NOTHING`, playerTableModel{Number: p.Number, Name: p.Name, Role: string(p.Role)})
		if err != nil {
			return 0, fmt.Errorf("bind seed player %s query: %w", p.Name, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return 0, fmt.Errorf("seed player %s: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed tx: %w", err)
	}
	return len(players), nil
}
