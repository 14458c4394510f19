package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/stats"
)

type sheetState struct {
	order   []string
	byName  map[string]stats.CumulativeStat
	applied map[string]struct{}
}

// StatsRepository keeps cumulative stats per sheet in process memory.
type StatsRepository struct {
	mu     sync.RWMutex
	sheets map[stats.SheetKey]*sheetState
}

func NewStatsRepository() *StatsRepository {
	return &StatsRepository{sheets: make(map[stats.SheetKey]*sheetState)}
}

func (r *StatsRepository) Get(_ context.Context, sheet stats.SheetKey, playerName string) (stats.CumulativeStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.sheets[sheet]
	if !ok {
		return stats.CumulativeStat{}, stats.ErrNotFound
	}
	item, ok := state.byName[playerName]
	if !ok {
		return stats.CumulativeStat{}, stats.ErrNotFound
	}
	return item, nil
}

func (r *StatsRepository) List(_ context.Context, sheet stats.SheetKey) ([]stats.CumulativeStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.sheets[sheet]
	if !ok {
		return []stats.CumulativeStat{}, nil
	}
	out := make([]stats.CumulativeStat, 0, len(state.order))
	for _, name := range state.order {
		out = append(out, state.byName[name])
	}
	return out, nil
}

func (r *StatsRepository) ApplyMatch(_ context.Context, matchKey string, sheets []stats.SheetKey, deltas []stats.CumulativeStat) (map[stats.SheetKey][]stats.CumulativeStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sheet := range sheets {
		if state, ok := r.sheets[sheet]; ok {
			if _, done := state.applied[matchKey]; done {
				return nil, fmt.Errorf("%w: %s on %s", stats.ErrMatchAlreadyApplied, matchKey, sheet)
			}
		}
	}

	out := make(map[stats.SheetKey][]stats.CumulativeStat, len(sheets))
	for _, sheet := range sheets {
		state := r.sheet(sheet)
		updated := make([]stats.CumulativeStat, 0, len(deltas))
		for _, delta := range deltas {
			prior, seen := state.byName[delta.PlayerName]
			if !seen {
				state.order = append(state.order, delta.PlayerName)
			}
			next := stats.Apply(prior, delta)
			state.byName[delta.PlayerName] = next
			updated = append(updated, next)
		}
		state.applied[matchKey] = struct{}{}
		out[sheet] = updated
	}
	return out, nil
}

func (r *StatsRepository) sheet(key stats.SheetKey) *sheetState {
	state, ok := r.sheets[key]
	if !ok {
		state = &sheetState{
			byName:  make(map[string]stats.CumulativeStat),
			applied: make(map[string]struct{}),
		}
		r.sheets[key] = state
	}
	return state
}
