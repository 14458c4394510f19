package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

// Config stores runtime configuration shared by the API and the ingest CLI.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	CORSAllowedOrigins      []string
	LogLevel                logging.Level
	DBURL                   string
	DBDisablePreparedBinary bool
	RosterFile              string
	CacheTTL                time.Duration
	IngestToken             string
	SwaggerEnabled          bool

	DecisionTimeout time.Duration
	NameMaxAttempts int
	FetchWorkers    int
	SeasonWeeks     int
	PlayCricket     PlayCricketConfig

	UptraceEnabled         bool
	UptraceDSN             string
	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration
}

type PlayCricketConfig struct {
	Timeout               time.Duration
	MaxRetries            int
	UserAgent             string
	CircuitEnabled        bool
	CircuitFailureCount   int
	CircuitOpenTimeout    time.Duration
	CircuitHalfOpenMaxReq int
}

// UseDatabase reports whether stats and roster live in PostgreSQL.
func (c Config) UseDatabase() bool {
	return strings.TrimSpace(c.DBURL) != ""
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "fantasy-cricket"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		DBURL:              strings.TrimSpace(os.Getenv("DB_URL")),
		RosterFile:         strings.TrimSpace(getEnv("ROSTER_FILE", "./data/roster.csv")),
		IngestToken:        strings.TrimSpace(os.Getenv("INGEST_TOKEN")),
		UptraceDSN:         strings.TrimSpace(os.Getenv("UPTRACE_DSN")),
		PyroscopeAuthToken: strings.TrimSpace(os.Getenv("PYROSCOPE_AUTH_TOKEN")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if cfg.ReadTimeout, err = getEnvAsDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	// Week ingests fetch several pages inside one request.
	if cfg.WriteTimeout, err = getEnvAsDuration("APP_WRITE_TIMEOUT", "60s"); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", "60s"); err != nil {
		return Config{}, err
	}
	if cfg.DecisionTimeout, err = getEnvAsDuration("DECISION_TIMEOUT", "5m"); err != nil {
		return Config{}, err
	}

	swaggerDefault := "false"
	if appEnv == EnvDev {
		swaggerDefault = "true"
	}
	if cfg.SwaggerEnabled, err = getEnvAsBool("APP_SWAGGER_ENABLED", swaggerDefault); err != nil {
		return Config{}, err
	}

	if cfg.DBDisablePreparedBinary, err = getEnvAsBool("DB_DISABLE_PREPARED_BINARY_RESULT", "true"); err != nil {
		return Config{}, err
	}

	if cfg.NameMaxAttempts, err = getEnvAsInt("NAME_MAX_ATTEMPTS", 0); err != nil {
		return Config{}, fmt.Errorf("parse NAME_MAX_ATTEMPTS: %w", err)
	}
	if cfg.NameMaxAttempts < 0 {
		return Config{}, fmt.Errorf("NAME_MAX_ATTEMPTS must be >= 0")
	}
	if cfg.FetchWorkers, err = getEnvAsInt("FETCH_WORKERS", 4); err != nil {
		return Config{}, fmt.Errorf("parse FETCH_WORKERS: %w", err)
	}
	if cfg.FetchWorkers <= 0 {
		return Config{}, fmt.Errorf("FETCH_WORKERS must be > 0")
	}
	if cfg.SeasonWeeks, err = getEnvAsInt("SEASON_WEEKS", 10); err != nil {
		return Config{}, fmt.Errorf("parse SEASON_WEEKS: %w", err)
	}
	if cfg.SeasonWeeks <= 0 {
		return Config{}, fmt.Errorf("SEASON_WEEKS must be > 0")
	}

	if cfg.PlayCricket, err = loadPlayCricket(); err != nil {
		return Config{}, err
	}

	if cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", "false"); err != nil {
		return Config{}, err
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", "false"); err != nil {
		return Config{}, err
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(os.Getenv("PYROSCOPE_SERVER_ADDRESS"))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadPlayCricket() (PlayCricketConfig, error) {
	out := PlayCricketConfig{
		UserAgent: getEnv("PLAYCRICKET_USER_AGENT", "fantasy-cricket/1.0"),
	}

	var err error
	if out.Timeout, err = getEnvAsDuration("PLAYCRICKET_TIMEOUT", "20s"); err != nil {
		return PlayCricketConfig{}, err
	}
	if out.MaxRetries, err = getEnvAsInt("PLAYCRICKET_MAX_RETRIES", 2); err != nil {
		return PlayCricketConfig{}, fmt.Errorf("parse PLAYCRICKET_MAX_RETRIES: %w", err)
	}
	if out.MaxRetries < 0 {
		return PlayCricketConfig{}, fmt.Errorf("PLAYCRICKET_MAX_RETRIES must be >= 0")
	}
	if out.CircuitEnabled, err = getEnvAsBool("PLAYCRICKET_CIRCUIT_ENABLED", "true"); err != nil {
		return PlayCricketConfig{}, err
	}
	if out.CircuitFailureCount, err = getEnvAsInt("PLAYCRICKET_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return PlayCricketConfig{}, fmt.Errorf("parse PLAYCRICKET_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if out.CircuitFailureCount < 1 {
		return PlayCricketConfig{}, fmt.Errorf("PLAYCRICKET_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if out.CircuitOpenTimeout, err = getEnvAsDuration("PLAYCRICKET_CIRCUIT_OPEN_TIMEOUT", "15s"); err != nil {
		return PlayCricketConfig{}, err
	}
	if out.CircuitHalfOpenMaxReq, err = getEnvAsInt("PLAYCRICKET_CIRCUIT_HALF_OPEN_MAX_REQ", 2); err != nil {
		return PlayCricketConfig{}, fmt.Errorf("parse PLAYCRICKET_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if out.CircuitHalfOpenMaxReq < 1 {
		return PlayCricketConfig{}, fmt.Errorf("PLAYCRICKET_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	return out, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}

func getEnvAsBool(key, fallback string) (bool, error) {
	out, err := strconv.ParseBool(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

// getEnvAsDuration parses key and rejects non-positive durations.
func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
