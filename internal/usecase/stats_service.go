package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/roster"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/stats"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/cache"
)

const rosterCacheKey = "roster"

// StatsService is the read side of cumulative stats and the roster.
type StatsService struct {
	statsRepo   stats.Repository
	rosterRepo  roster.Repository
	rosterCache *cache.Store[roster.Roster]
	seasonWeeks int
}

func NewStatsService(statsRepo stats.Repository, rosterRepo roster.Repository, cacheTTL time.Duration, seasonWeeks int) *StatsService {
	return &StatsService{
		statsRepo:   statsRepo,
		rosterRepo:  rosterRepo,
		rosterCache: cache.NewStore[roster.Roster](cacheTTL),
		seasonWeeks: seasonWeeks,
	}
}

func (s *StatsService) SeasonWeeks() int {
	return s.seasonWeeks
}

// Roster returns the canonical roster. Concurrent cold loads share one
// repository call.
func (s *StatsService) Roster(ctx context.Context) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Roster")
	defer span.End()

	return s.rosterCache.GetOrLoad(ctx, rosterCacheKey, func(ctx context.Context) (roster.Roster, error) {
		players, err := s.rosterRepo.List(ctx)
		if err != nil {
			return roster.Roster{}, fmt.Errorf("%w: list roster: %w", ErrDependencyUnavailable, err)
		}
		out, err := roster.New(players)
		if err != nil {
			return roster.Roster{}, fmt.Errorf("build roster: %w", err)
		}
		return out, nil
	})
}

func (s *StatsService) InvalidateRoster(ctx context.Context) {
	s.rosterCache.Delete(ctx, rosterCacheKey)
}

func (s *StatsService) ListPlayers(ctx context.Context) ([]roster.Player, error) {
	r, err := s.Roster(ctx)
	if err != nil {
		return nil, err
	}
	return r.Players(), nil
}

func (s *StatsService) GetPlayerByNumber(ctx context.Context, number int) (roster.Player, error) {
	r, err := s.Roster(ctx)
	if err != nil {
		return roster.Player{}, err
	}
	name, err := r.NumberToName(number)
	if err != nil {
		return roster.Player{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	p, _ := r.Player(name)
	return p, nil
}

func (s *StatsService) ParseSheet(raw string) (stats.SheetKey, error) {
	sheet, err := stats.ParseSheetKey(raw, s.seasonWeeks)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return sheet, nil
}

// ListSheet returns one row per rostered player in roster order. Players with
// nothing recorded yet get a zero row, as on a fresh sheet.
func (s *StatsService) ListSheet(ctx context.Context, rawSheet string) (stats.SheetKey, []stats.CumulativeStat, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.ListSheet")
	defer span.End()

	sheet, err := s.ParseSheet(rawSheet)
	if err != nil {
		return "", nil, err
	}

	r, err := s.Roster(ctx)
	if err != nil {
		return "", nil, err
	}
	items, err := s.statsRepo.List(ctx, sheet)
	if err != nil {
		return "", nil, fmt.Errorf("list stats for %s: %w", sheet, err)
	}

	byName := make(map[string]stats.CumulativeStat, len(items))
	for _, item := range items {
		byName[item.PlayerName] = item
	}

	out := make([]stats.CumulativeStat, 0, r.Len())
	for _, name := range r.Names() {
		item, ok := byName[name]
		if !ok {
			item = stats.CumulativeStat{PlayerName: name}
		}
		out = append(out, item)
		delete(byName, name)
	}
	// Names dropped from the roster after stats were recorded.
	for _, item := range items {
		if _, ok := byName[item.PlayerName]; ok {
			out = append(out, item)
		}
	}
	return sheet, out, nil
}

func (s *StatsService) GetPlayerStat(ctx context.Context, rawSheet, playerName string) (stats.CumulativeStat, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetPlayerStat")
	defer span.End()

	sheet, err := s.ParseSheet(rawSheet)
	if err != nil {
		return stats.CumulativeStat{}, err
	}
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return stats.CumulativeStat{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	item, err := s.statsRepo.Get(ctx, sheet, playerName)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, stats.ErrNotFound) {
		return stats.CumulativeStat{}, fmt.Errorf("get stat for %s on %s: %w", playerName, sheet, err)
	}

	r, rosterErr := s.Roster(ctx)
	if rosterErr != nil {
		return stats.CumulativeStat{}, rosterErr
	}
	if !r.Contains(playerName) {
		return stats.CumulativeStat{}, fmt.Errorf("%w: player %q", ErrNotFound, playerName)
	}
	return stats.CumulativeStat{PlayerName: playerName}, nil
}
