package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/riskibarqy/fantasy-cricket/external/playcricket"
	"github.com/riskibarqy/fantasy-cricket/internal/app"
	"github.com/riskibarqy/fantasy-cricket/internal/config"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/points"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/scorecard"
	"github.com/riskibarqy/fantasy-cricket/internal/interfaces/cli"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

type options struct {
	url      string
	file     string
	week     int
	matchKey string
	roster   string
	dryRun   bool
	fielding []scorecard.FieldingEntry
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if opts.roster != "" {
		cfg.RosterFile = opts.roster
	}

	logger := logging.NewConsole(cfg.LogLevel, os.Stderr).Named("ingest")
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, logger); err != nil {
		logger.Error("ingest failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("ingest", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.url, "url", "", "scorecard page url")
	fs.StringVar(&opts.file, "file", "", "saved scorecard html file")
	fs.IntVar(&opts.week, "week", 0, "week number the match belongs to")
	fs.StringVar(&opts.matchKey, "match", "", "match key used to reject replays (defaults to the url or file name)")
	fs.StringVar(&opts.roster, "roster", "", "roster csv, overrides ROSTER_FILE")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "score the match without updating any sheet")
	fs.Func("fielding", "manual fielding as name=catches,run_outs,stumpings when the page has no opponent batting table (repeatable)", func(value string) error {
		entry, err := parseManualFielding(value)
		if err != nil {
			return err
		}
		opts.fielding = append(opts.fielding, entry)
		return nil
	})
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	switch {
	case opts.url == "" && opts.file == "":
		return options{}, fmt.Errorf("one of -url or -file is required")
	case opts.url != "" && opts.file != "":
		return options{}, fmt.Errorf("-url and -file are mutually exclusive")
	case opts.week < 1:
		return options{}, fmt.Errorf("-week must be >= 1")
	}
	if opts.matchKey == "" {
		opts.matchKey = defaultMatchKey(opts)
	}
	return opts, nil
}

// parseManualFielding reads "Amy Lee=2,1,0". Missing trailing counts are zero.
func parseManualFielding(value string) (scorecard.FieldingEntry, error) {
	name, counts, ok := strings.Cut(value, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return scorecard.FieldingEntry{}, fmt.Errorf("fielding %q: expected name=catches,run_outs,stumpings", value)
	}

	parts := strings.Split(counts, ",")
	if len(parts) > 3 {
		return scorecard.FieldingEntry{}, fmt.Errorf("fielding %q: at most three counts", value)
	}
	var n [3]int
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return scorecard.FieldingEntry{}, fmt.Errorf("fielding %q: %q is not a non-negative count", value, part)
		}
		n[i] = v
	}
	return scorecard.FieldingEntry{FielderName: name, Catches: n[0], RunOuts: n[1], Stumpings: n[2]}, nil
}

func defaultMatchKey(opts options) string {
	if opts.url != "" {
		return strings.TrimSpace(opts.url)
	}
	return strings.TrimSuffix(filepath.Base(opts.file), filepath.Ext(opts.file))
}

func run(ctx context.Context, cfg config.Config, opts options, logger *logging.Logger) error {
	if msg := storageWarning(cfg, opts); msg != "" {
		logger.Warn(msg)
	}

	services, err := app.NewServices(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer services.Close()

	input := usecase.MatchInput{
		MatchKey:       opts.matchKey,
		Week:           opts.week,
		SourceURL:      opts.url,
		ManualFielding: opts.fielding,
		Decisions:      cli.NewPrompter(os.Stdin, os.Stderr),
		DryRun:         opts.dryRun,
	}
	if opts.file != "" {
		f, err := os.Open(opts.file)
		if err != nil {
			return fmt.Errorf("open scorecard file: %w", err)
		}
		input.Tables, err = playcricket.ParseTables(f)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("parse scorecard file: %w", err)
		}
	}

	report, err := services.Ingestion.ProcessMatch(ctx, input)
	if err != nil {
		return err
	}
	return printReport(os.Stdout, report)
}

// storageWarning explains that sheets built without a database vanish when
// the process exits.
func storageWarning(cfg config.Config, opts options) string {
	if cfg.UseDatabase() || opts.dryRun {
		return ""
	}
	return "DB_URL is not set: sheets are kept in memory and discarded when ingest exits, only the printed report remains"
}

func printReport(w io.Writer, report usecase.MatchReport) error {
	status := "applied"
	if report.DryRun {
		status = "dry run"
	}
	fmt.Fprintf(w, "match %s, week %d (%s)\n", report.MatchKey, report.Week, status)
	switch {
	case report.ManualFielding:
		fmt.Fprintln(w, "opponent batting table unavailable, fielding supplied manually")
	case report.Partial:
		fmt.Fprintln(w, "opponent batting table unavailable, no fielding credited")
	}
	for _, r := range report.Rejected {
		fmt.Fprintf(w, "rejected: %s\n", r.Error())
	}
	for _, d := range report.Unclassified {
		fmt.Fprintf(w, "unclassified dismissal on row %d: %q\n", d.Row, d.Text)
	}

	corrections := make([]string, 0, len(report.Corrections))
	for from, to := range report.Corrections {
		if from != to {
			corrections = append(corrections, fmt.Sprintf("%s -> %s", from, to))
		}
	}
	sort.Strings(corrections)
	for _, c := range corrections {
		fmt.Fprintf(w, "corrected: %s\n", c)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER\tBATTING\tBOWLING\tFIELDING\tBONUS\tTOTAL")
	for _, line := range report.Lines {
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\n",
			line.PlayerName,
			line.CategoryPoints(points.CategoryBatting),
			line.CategoryPoints(points.CategoryBowling),
			line.CategoryPoints(points.CategoryFielding),
			line.BonusPoints,
			line.Total(),
		)
	}
	return tw.Flush()
}
