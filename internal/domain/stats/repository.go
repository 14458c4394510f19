package stats

import "context"

// Repository owns cumulative stats. ApplyMatch adds deltas to every listed
// sheet in one atomic step and rejects a match already applied to any of
// them with ErrMatchAlreadyApplied.
type Repository interface {
	Get(ctx context.Context, sheet SheetKey, playerName string) (CumulativeStat, error)
	List(ctx context.Context, sheet SheetKey) ([]CumulativeStat, error)
	ApplyMatch(ctx context.Context, matchKey string, sheets []SheetKey, deltas []CumulativeStat) (map[SheetKey][]CumulativeStat, error)
}
