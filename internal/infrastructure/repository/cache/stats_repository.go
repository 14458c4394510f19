package cache

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/stats"
	basecache "github.com/riskibarqy/fantasy-cricket/internal/platform/cache"
)

const statsListPrefix = "stats:list:"

// StatsRepository serves sheet reads from a TTL cache and drops the touched
// sheets whenever a match is applied.
type StatsRepository struct {
	next  stats.Repository
	cache *basecache.Store[[]stats.CumulativeStat]
}

func NewStatsRepository(next stats.Repository, cache *basecache.Store[[]stats.CumulativeStat]) *StatsRepository {
	return &StatsRepository{next: next, cache: cache}
}

func (r *StatsRepository) List(ctx context.Context, sheet stats.SheetKey) ([]stats.CumulativeStat, error) {
	items, err := r.cache.GetOrLoad(ctx, statsListPrefix+sheet.String(), func(ctx context.Context) ([]stats.CumulativeStat, error) {
		items, err := r.next.List(ctx, sheet)
		if err != nil {
			return nil, err
		}
		return append([]stats.CumulativeStat(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]stats.CumulativeStat(nil), items...), nil
}

func (r *StatsRepository) Get(ctx context.Context, sheet stats.SheetKey, playerName string) (stats.CumulativeStat, error) {
	items, err := r.List(ctx, sheet)
	if err != nil {
		return stats.CumulativeStat{}, err
	}
	for _, item := range items {
		if item.PlayerName == playerName {
			return item, nil
		}
	}
	return stats.CumulativeStat{}, fmt.Errorf("%w: %s on %s", stats.ErrNotFound, playerName, sheet)
}

func (r *StatsRepository) ApplyMatch(ctx context.Context, matchKey string, sheets []stats.SheetKey, deltas []stats.CumulativeStat) (map[stats.SheetKey][]stats.CumulativeStat, error) {
	updated, err := r.next.ApplyMatch(ctx, matchKey, sheets, deltas)
	for _, sheet := range sheets {
		r.cache.Delete(ctx, statsListPrefix+sheet.String())
	}
	return updated, err
}
