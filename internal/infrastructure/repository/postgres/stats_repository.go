package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/stats"
	qb "github.com/riskibarqy/fantasy-cricket/internal/platform/querybuilder"
)

// StatsRepository stores cumulative stats in player_sheet_stats. Row order
// within a sheet follows the serial id, i.e. first appearance.
type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Get(ctx context.Context, sheet stats.SheetKey, playerName string) (stats.CumulativeStat, error) {
	query, args, err := qb.Select(statColumns...).
		From(playerSheetTable).
		Where(qb.Eq("sheet", string(sheet)), qb.Eq("player_name", playerName)).
		Limit(1).
		ToSQL()
	if err != nil {
		return stats.CumulativeStat{}, fmt.Errorf("build select stat query: %w", err)
	}

	var row statTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return stats.CumulativeStat{}, stats.ErrNotFound
		}
		return stats.CumulativeStat{}, fmt.Errorf("select stat %s/%s: %w", sheet, playerName, err)
	}
	return row.toDomain(), nil
}

func (r *StatsRepository) List(ctx context.Context, sheet stats.SheetKey) ([]stats.CumulativeStat, error) {
	query, args, err := qb.Select(statColumns...).
		From(playerSheetTable).
		Where(qb.Eq("sheet", string(sheet))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select sheet query: %w", err)
	}

	var rows []statTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select sheet %s: %w", sheet, err)
	}

	out := make([]stats.CumulativeStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *StatsRepository) ApplyMatch(ctx context.Context, matchKey string, sheets []stats.SheetKey, deltas []stats.CumulativeStat) (map[stats.SheetKey][]stats.CumulativeStat, error) {
	if len(sheets) == 0 {
		return map[stats.SheetKey][]stats.CumulativeStat{}, nil
	}
	names, merged := mergeDeltas(deltas)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin apply match tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := claimMatch(ctx, tx, matchKey, sheets); err != nil {
		return nil, err
	}

	out := make(map[stats.SheetKey][]stats.CumulativeStat, len(sheets))
	for _, sheet := range sheets {
		if len(names) == 0 {
			out[sheet] = []stats.CumulativeStat{}
			continue
		}
		if err := upsertSheet(ctx, tx, sheet, names, merged); err != nil {
			return nil, err
		}
		updated, err := selectSheetRows(ctx, tx, sheet, names)
		if err != nil {
			return nil, err
		}
		out[sheet] = updated
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit apply match %s: %w", matchKey, err)
	}
	return out, nil
}

// claimMatch records (match, sheet) pairs. Any pair already present means the
// match was applied before and the whole transaction is abandoned.
func claimMatch(ctx context.Context, tx *sqlx.Tx, matchKey string, sheets []stats.SheetKey) error {
	b := qb.InsertInto(appliedMatchesTable).Columns("match_key", "sheet")
	for _, sheet := range sheets {
		b.Values(matchKey, string(sheet))
	}
	query, args, err := b.OnConflictDoNothing("match_key", "sheet").Returning("sheet").ToSQL()
	if err != nil {
		return fmt.Errorf("build claim match query: %w", err)
	}

	var claimed []string
	if err := tx.SelectContext(ctx, &claimed, query, args...); err != nil {
		return fmt.Errorf("claim match %s: %w", matchKey, err)
	}
	if len(claimed) != len(sheets) {
		return fmt.Errorf("%w: %s", stats.ErrMatchAlreadyApplied, matchKey)
	}
	return nil
}

func upsertSheet(ctx context.Context, tx *sqlx.Tx, sheet stats.SheetKey, names []string, deltas map[string]stats.CumulativeStat) error {
	query, args, err := upsertSheetQuery(sheet, names, deltas)
	if err != nil {
		return fmt.Errorf("build upsert sheet %s query: %w", sheet, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert sheet %s: %w", sheet, err)
	}
	return nil
}

// selectSheetRows reads back the named rows in the order of names.
func selectSheetRows(ctx context.Context, tx *sqlx.Tx, sheet stats.SheetKey, names []string) ([]stats.CumulativeStat, error) {
	query, args, err := qb.Select(statColumns...).
		From(playerSheetTable).
		Where(qb.Eq("sheet", string(sheet)), qb.Expr("player_name = ANY(?)", pq.Array(names))).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select updated rows query: %w", err)
	}

	var rows []statTableModel
	if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select updated rows %s: %w", sheet, err)
	}

	byName := make(map[string]stats.CumulativeStat, len(rows))
	for _, row := range rows {
		byName[row.PlayerName] = row.toDomain()
	}
	out := make([]stats.CumulativeStat, 0, len(names))
	for _, name := range names {
		if item, ok := byName[name]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

// mergeDeltas folds repeated player names together, since one upsert
// statement cannot touch the same row twice.
func mergeDeltas(deltas []stats.CumulativeStat) ([]string, map[string]stats.CumulativeStat) {
	names := make([]string, 0, len(deltas))
	merged := make(map[string]stats.CumulativeStat, len(deltas))
	for _, d := range deltas {
		prior, seen := merged[d.PlayerName]
		if !seen {
			names = append(names, d.PlayerName)
		}
		merged[d.PlayerName] = stats.Apply(prior, d)
	}
	return names, merged
}

func upsertSheetQuery(sheet stats.SheetKey, names []string, deltas map[string]stats.CumulativeStat) (string, []any, error) {
	rows := make([]statTableModel, 0, len(names))
	for _, name := range names {
		rows = append(rows, statModelFromDomain(sheet, deltas[name]))
	}

	b, err := qb.InsertModels(playerSheetTable, rows)
	if err != nil {
		return "", nil, err
	}
	return b.OnConflictAdd([]string{"sheet", "player_name"}, statCounterColumns...).
		OnConflictSet("updated_at", "NOW()").
		ToSQL()
}
