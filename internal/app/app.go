package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cricket/external/playcricket"
	"github.com/riskibarqy/fantasy-cricket/internal/config"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/points"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/roster"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/stats"
	repocache "github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-cricket/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/fantasy-cricket/internal/platform/cache"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

// Services is the wired object graph shared by the API server and the
// ingest CLI.
type Services struct {
	Stats     *usecase.StatsService
	Ingestion *usecase.IngestionService

	db *sqlx.DB
}

func (s *Services) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// NewServices wires repositories and use cases. PostgreSQL is used when
// DB_URL is set, otherwise the roster file is loaded into memory.
func NewServices(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		out        = &Services{}
		rosterRepo roster.Repository
		statsRepo  stats.Repository
	)

	if cfg.UseDatabase() {
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		out.db = db

		if err := bootstrapRoster(ctx, db, cfg.RosterFile, logger); err != nil {
			_ = db.Close()
			return nil, err
		}
		rosterRepo = postgres.NewRosterRepository(db)
		statsRepo = repocache.NewStatsRepository(
			postgres.NewStatsRepository(db),
			basecache.NewStore[[]stats.CumulativeStat](cfg.CacheTTL),
		)
		logger.InfoContext(ctx, "using postgres repositories", "db", dbNameFromURL(cfg.DBURL))
	} else {
		players, err := memory.LoadRosterFile(cfg.RosterFile)
		if err != nil {
			return nil, fmt.Errorf("load roster: %w", err)
		}
		rosterRepo = memory.NewRosterRepository(players)
		statsRepo = memory.NewStatsRepository()
		logger.InfoContext(ctx, "using in-memory repositories", "roster_file", cfg.RosterFile, "players", len(players))
	}

	pc := cfg.PlayCricket
	source := playcricket.NewClient(playcricket.ClientConfig{
		Timeout:    pc.Timeout,
		MaxRetries: pc.MaxRetries,
		UserAgent:  pc.UserAgent,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          pc.CircuitEnabled,
			FailureThreshold: pc.CircuitFailureCount,
			OpenTimeout:      pc.CircuitOpenTimeout,
			HalfOpenMaxReq:   pc.CircuitHalfOpenMaxReq,
		},
	})

	out.Stats = usecase.NewStatsService(statsRepo, rosterRepo, cfg.CacheTTL, cfg.SeasonWeeks)
	out.Ingestion = usecase.NewIngestionService(
		source,
		out.Stats,
		statsRepo,
		points.NewCalculator(points.DefaultTariff()),
		usecase.IngestionConfig{
			DecisionTimeout: cfg.DecisionTimeout,
			NameMaxAttempts: cfg.NameMaxAttempts,
			FetchWorkers:    cfg.FetchWorkers,
			SeasonWeeks:     cfg.SeasonWeeks,
		},
		logger,
	)
	return out, nil
}

// NewHTTPServer returns the API server and a cleanup func for its resources.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	services, err := NewServices(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	handler := httpapi.NewHandler(services.Ingestion, services.Stats, logger)
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		IngestToken:        cfg.IngestToken,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		SwaggerEnabled:     cfg.SwaggerEnabled,
	}, logger)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return server, services.Close, nil
}

// bootstrapRoster seeds an empty players table from the roster file. A
// missing file is fine once the table has been seeded.
func bootstrapRoster(ctx context.Context, db *sqlx.DB, path string, logger *logging.Logger) error {
	players, err := memory.LoadRosterFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.WarnContext(ctx, "roster file not found, skipping bootstrap", "roster_file", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	inserted, err := postgres.BootstrapRoster(ctx, db, players)
	if err != nil {
		return fmt.Errorf("bootstrap roster: %w", err)
	}
	if inserted > 0 {
		logger.InfoContext(ctx, "roster bootstrapped", "players", inserted)
	}
	return nil
}
