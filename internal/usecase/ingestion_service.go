package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/decision"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/points"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/roster"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/scorecard"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/stats"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// TableSource fetches a match page and splits it into tables.
type TableSource interface {
	FetchTables(ctx context.Context, url string) (scorecard.RawTableSet, error)
}

type rosterLoader interface {
	Roster(ctx context.Context) (roster.Roster, error)
}

type IngestionConfig struct {
	DecisionTimeout time.Duration
	NameMaxAttempts int
	FetchWorkers    int
	SeasonWeeks     int
}

type IngestionService struct {
	source     TableSource
	rosters    rosterLoader
	statsRepo  stats.Repository
	calculator points.Calculator
	cfg        IngestionConfig
	logger     *logging.Logger
}

func NewIngestionService(
	source TableSource,
	rosters rosterLoader,
	statsRepo stats.Repository,
	calculator points.Calculator,
	cfg IngestionConfig,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FetchWorkers <= 0 {
		cfg.FetchWorkers = 1
	}
	return &IngestionService{
		source:     source,
		rosters:    rosters,
		statsRepo:  statsRepo,
		calculator: calculator,
		cfg:        cfg,
		logger:     logger.Named("ingestion"),
	}
}

// MatchInput describes one match page. Tables wins over SourceURL when both
// are set. ManualFielding stands in for the opponent batting table when the
// page does not carry one; it is rejected for complete pages.
type MatchInput struct {
	MatchKey       string
	Week           int
	SourceURL      string
	Tables         scorecard.RawTableSet
	ManualFielding []scorecard.FieldingEntry
	Decisions      decision.Provider
	DryRun         bool
}

type LayoutSummary struct {
	BattingIndex    int
	BowlingIndex    int
	OpponentIndex   int
	TeamListedFirst bool
	Manual          bool
}

type MatchReport struct {
	MatchKey string
	Week     int
	DryRun   bool
	Layout   LayoutSummary
	Partial  bool
	// ManualFielding reports fielding taken from MatchInput.ManualFielding.
	ManualFielding bool
	Batting        []scorecard.BattingEntry
	Bowling        []scorecard.BowlingEntry
	Fielding       []scorecard.FieldingEntry
	Dismissals     []scorecard.DismissalRecord
	Rejected       []scorecard.RowError
	Unclassified   []scorecard.DismissalRecord
	Corrections    map[string]string
	Outcome        points.MatchOutcome
	Lines          []points.PlayerLine
	Deltas         []stats.CumulativeStat
	Updated        map[stats.SheetKey][]stats.CumulativeStat
}

// ProcessMatch runs one match from tables to persisted cumulative stats.
func (s *IngestionService) ProcessMatch(ctx context.Context, input MatchInput) (report MatchReport, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.ProcessMatch",
		attribute.String("match.key", input.MatchKey),
		attribute.Int("match.week", input.Week),
		attribute.Bool("match.dry_run", input.DryRun),
	)
	defer func() {
		recordSpanError(span, err)
		span.End()
	}()

	input, err = s.normalizeInput(input)
	if err != nil {
		return MatchReport{}, err
	}

	tables := input.Tables
	if len(tables) == 0 {
		tables, err = s.fetch(ctx, input.SourceURL)
		if err != nil {
			return MatchReport{}, err
		}
	}

	r, err := s.rosters.Roster(ctx)
	if err != nil {
		return MatchReport{}, err
	}
	return s.process(ctx, input, tables, r)
}

type WeekInput struct {
	Week    int
	Matches []MatchInput
	// Decisions answers for matches that carry no provider of their own.
	Decisions decision.Provider
	DryRun    bool
}

type MatchFailure struct {
	MatchKey string
	Err      error
}

type WeekReport struct {
	Week     int
	Reports  []MatchReport
	Failures []MatchFailure
}

// ProcessWeek prefetches every page concurrently, then processes matches one
// at a time in input order. A failed match is reported and does not stop the
// rest of the week.
func (s *IngestionService) ProcessWeek(ctx context.Context, input WeekInput) (WeekReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.ProcessWeek",
		attribute.Int("match.week", input.Week),
		attribute.Int("week.matches", len(input.Matches)),
	)
	defer span.End()

	if input.Week < 1 || input.Week > s.cfg.SeasonWeeks {
		return WeekReport{}, fmt.Errorf("%w: week must be between 1 and %d", ErrInvalidInput, s.cfg.SeasonWeeks)
	}
	if len(input.Matches) == 0 {
		return WeekReport{}, fmt.Errorf("%w: at least one match is required", ErrInvalidInput)
	}

	matches := make([]MatchInput, 0, len(input.Matches))
	seen := make(map[string]struct{}, len(input.Matches))
	for _, m := range input.Matches {
		m.Week = input.Week
		m.DryRun = m.DryRun || input.DryRun
		if m.Decisions == nil {
			m.Decisions = input.Decisions
		}
		normalized, err := s.normalizeInput(m)
		if err != nil {
			return WeekReport{}, err
		}
		if _, dup := seen[normalized.MatchKey]; dup {
			return WeekReport{}, fmt.Errorf("%w: match %q listed twice", ErrInvalidInput, normalized.MatchKey)
		}
		seen[normalized.MatchKey] = struct{}{}
		matches = append(matches, normalized)
	}

	fetched, err := s.prefetch(ctx, matches)
	if err != nil {
		return WeekReport{}, err
	}

	r, err := s.rosters.Roster(ctx)
	if err != nil {
		return WeekReport{}, err
	}

	out := WeekReport{Week: input.Week}
	for i, m := range matches {
		if fetched[i].err != nil {
			out.Failures = append(out.Failures, MatchFailure{MatchKey: m.MatchKey, Err: fetched[i].err})
			continue
		}
		report, err := s.process(ctx, m, fetched[i].tables, r)
		if err != nil {
			s.logger.WarnContext(ctx, "match ingest failed", "match_key", m.MatchKey, "error", err)
			out.Failures = append(out.Failures, MatchFailure{MatchKey: m.MatchKey, Err: err})
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			continue
		}
		out.Reports = append(out.Reports, report)
	}

	s.logger.InfoContext(ctx, "week ingest finished",
		"week", input.Week,
		"processed", len(out.Reports),
		"failed", len(out.Failures),
	)
	return out, nil
}

type fetchResult struct {
	tables scorecard.RawTableSet
	err    error
}

func (s *IngestionService) prefetch(ctx context.Context, matches []MatchInput) ([]fetchResult, error) {
	results := make([]fetchResult, len(matches))

	pool, err := ants.NewPool(s.cfg.FetchWorkers)
	if err != nil {
		return nil, fmt.Errorf("create fetch pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, m := range matches {
		if len(m.Tables) > 0 {
			results[i] = fetchResult{tables: m.Tables}
			continue
		}

		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			tables, err := s.fetch(ctx, m.SourceURL)
			results[i] = fetchResult{tables: tables, err: err}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit fetch to pool: %w", err)
		}
	}
	workers.Wait()

	return results, nil
}

func (s *IngestionService) fetch(ctx context.Context, url string) (scorecard.RawTableSet, error) {
	if s.source == nil {
		return nil, fmt.Errorf("%w: no table source configured", ErrDependencyUnavailable)
	}
	tables, err := s.source.FetchTables(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %w", ErrDependencyUnavailable, url, err)
	}
	return tables, nil
}

func (s *IngestionService) normalizeInput(input MatchInput) (MatchInput, error) {
	input.SourceURL = strings.TrimSpace(input.SourceURL)
	input.MatchKey = strings.TrimSpace(input.MatchKey)
	if input.MatchKey == "" {
		input.MatchKey = input.SourceURL
	}
	if input.MatchKey == "" {
		return MatchInput{}, fmt.Errorf("%w: match key or source url is required", ErrInvalidInput)
	}
	if input.Week < 1 || input.Week > s.cfg.SeasonWeeks {
		return MatchInput{}, fmt.Errorf("%w: week must be between 1 and %d", ErrInvalidInput, s.cfg.SeasonWeeks)
	}
	if len(input.Tables) == 0 && input.SourceURL == "" {
		return MatchInput{}, fmt.Errorf("%w: tables or source url are required", ErrInvalidInput)
	}
	if input.Decisions == nil {
		return MatchInput{}, fmt.Errorf("%w: a decision provider is required", ErrInvalidInput)
	}
	return input, nil
}

func (s *IngestionService) process(ctx context.Context, input MatchInput, tables scorecard.RawTableSet, r roster.Roster) (MatchReport, error) {
	logger := s.logger.With("match_key", input.MatchKey, "week", input.Week)
	report := MatchReport{MatchKey: input.MatchKey, Week: input.Week, DryRun: input.DryRun}

	selector := scorecard.NewSelector(input.Decisions, s.cfg.DecisionTimeout)
	layout, err := selector.Select(ctx, input.MatchKey, tables)
	switch {
	case errors.Is(err, scorecard.ErrPartialLayout):
		report.Partial = true
		logger.WarnContext(ctx, "opponent batting table unavailable, fielding skipped", "tables", len(tables), "error", err)
	case err != nil:
		return MatchReport{}, fmt.Errorf("select tables: %w", err)
	}
	report.Layout = LayoutSummary{
		BattingIndex:    layout.BattingIndex,
		BowlingIndex:    layout.BowlingIndex,
		OpponentIndex:   layout.OpponentIndex,
		TeamListedFirst: layout.TeamListedFirst,
		Manual:          layout.Manual,
	}

	batting := scorecard.NormalizeBatting(layout.Batting)
	bowling := scorecard.NormalizeBowling(layout.Bowling)
	report.Rejected = append(report.Rejected, batting.Rejected...)
	report.Rejected = append(report.Rejected, bowling.Rejected...)
	for _, rowErr := range report.Rejected {
		logger.WarnContext(ctx, "scorecard row rejected",
			"table", rowErr.Table,
			"row", rowErr.Row,
			"column", rowErr.Column,
			"value", rowErr.Value,
			"error", rowErr.Err,
		)
	}

	var fielding scorecard.FieldingResult
	switch {
	case layout.HasOpponent() && len(input.ManualFielding) > 0:
		return MatchReport{}, fmt.Errorf("%w: manual fielding is only accepted when the opponent batting table is missing", ErrInvalidInput)
	case layout.HasOpponent():
		fielding = scorecard.ExtractFielding(layout.OpponentBatting)
	case len(input.ManualFielding) > 0:
		fielding.Entries = input.ManualFielding
		report.ManualFielding = true
		logger.InfoContext(ctx, "using manual fielding", "fielders", len(input.ManualFielding))
	}
	report.Dismissals = fielding.Dismissals
	report.Unclassified = fielding.Unclassified
	for _, d := range fielding.Unclassified {
		logger.WarnContext(ctx, "dismissal not credited to a fielder", "row", d.Row, "text", d.Text, "kind", d.Kind)
	}

	outcome, err := s.askOutcome(ctx, input)
	if err != nil {
		return MatchReport{}, err
	}

	resolver := NewNameResolver(r, input.Decisions, NameResolverOptions{
		MatchKey:    input.MatchKey,
		Timeout:     s.cfg.DecisionTimeout,
		MaxAttempts: s.cfg.NameMaxAttempts,
	})
	if outcome.ManOfTheMatch, err = resolver.ResolveManOfTheMatch(ctx); err != nil {
		return MatchReport{}, fmt.Errorf("man of the match: %w", err)
	}
	report.Outcome = outcome

	if report.Batting, err = resolveBatting(ctx, resolver, batting.Entries); err != nil {
		return MatchReport{}, err
	}
	if report.Bowling, err = resolveBowling(ctx, resolver, bowling.Entries); err != nil {
		return MatchReport{}, err
	}
	if report.Fielding, err = resolveFielding(ctx, resolver, fielding.Entries); err != nil {
		return MatchReport{}, err
	}
	report.Corrections = resolver.Corrections()

	report.Lines, err = s.calculator.Match(report.Batting, report.Bowling, report.Fielding, outcome)
	if err != nil {
		return MatchReport{}, fmt.Errorf("score match: %w", err)
	}

	report.Deltas = make([]stats.CumulativeStat, 0, len(report.Lines))
	for _, line := range report.Lines {
		report.Deltas = append(report.Deltas, stats.DeltaFromLine(line))
	}

	if input.DryRun {
		logger.InfoContext(ctx, "match scored, dry run", "players", len(report.Lines))
		return report, nil
	}

	sheets := []stats.SheetKey{stats.WeekSheet(input.Week), stats.SeasonTotal}
	report.Updated, err = s.statsRepo.ApplyMatch(ctx, input.MatchKey, sheets, report.Deltas)
	if err != nil {
		return MatchReport{}, fmt.Errorf("apply match %s: %w", input.MatchKey, err)
	}

	logger.InfoContext(ctx, "match applied",
		"players", len(report.Lines),
		"rejected_rows", len(report.Rejected),
		"unclassified", len(report.Unclassified),
		"partial", report.Partial,
		"manual_fielding", report.ManualFielding,
	)
	return report, nil
}

func (s *IngestionService) askOutcome(ctx context.Context, input MatchInput) (points.MatchOutcome, error) {
	answer, err := decision.Ask(ctx, input.Decisions, s.cfg.DecisionTimeout, decision.Request{
		Kind:     decision.KindTeamWon,
		MatchKey: input.MatchKey,
		Prompt:   "Did the team win?",
		Options:  []decision.Option{{Value: "yes", Label: "won"}, {Value: "no", Label: "lost, tied or no result"}},
		Attempt:  1,
	})
	if err != nil {
		return points.MatchOutcome{}, fmt.Errorf("match result: %w", err)
	}
	won, err := decision.ParseYesNo(answer.Value)
	if err != nil {
		return points.MatchOutcome{}, fmt.Errorf("%w: match result: %w", ErrInvalidInput, err)
	}
	return points.MatchOutcome{TeamWon: won}, nil
}

func resolveBatting(ctx context.Context, resolver *NameResolver, entries []scorecard.BattingEntry) ([]scorecard.BattingEntry, error) {
	out := make([]scorecard.BattingEntry, 0, len(entries))
	for _, e := range entries {
		name, err := resolver.Resolve(ctx, e.PlayerName)
		if err != nil {
			return nil, fmt.Errorf("batting row %d: %w", e.Row, err)
		}
		e.PlayerName = name
		out = append(out, e)
	}
	return out, nil
}

func resolveBowling(ctx context.Context, resolver *NameResolver, entries []scorecard.BowlingEntry) ([]scorecard.BowlingEntry, error) {
	out := make([]scorecard.BowlingEntry, 0, len(entries))
	for _, e := range entries {
		name, err := resolver.Resolve(ctx, e.PlayerName)
		if err != nil {
			return nil, fmt.Errorf("bowling row %d: %w", e.Row, err)
		}
		e.PlayerName = name
		out = append(out, e)
	}
	return out, nil
}

func resolveFielding(ctx context.Context, resolver *NameResolver, entries []scorecard.FieldingEntry) ([]scorecard.FieldingEntry, error) {
	out := make([]scorecard.FieldingEntry, 0, len(entries))
	for _, e := range entries {
		name, err := resolver.Resolve(ctx, e.FielderName)
		if err != nil {
			return nil, fmt.Errorf("fielder %q: %w", e.FielderName, err)
		}
		e.FielderName = name
		out = append(out, e)
	}
	return out, nil
}
