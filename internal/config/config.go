// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/matchscreener/matchscreener/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration

	DataPath   string
	AdminToken string

	InsightsTTL    time.Duration
	InsightWorkers int

	CORSAllowedOrigins []string

	SmarketsBaseURL               string
	SmarketsAPIKey                string
	SmarketsTimeout               time.Duration
	SmarketsMaxRetries            int
	SmarketsCircuitEnabled        bool
	SmarketsCircuitFailureCount   int
	SmarketsCircuitOpenTimeout    time.Duration
	SmarketsCircuitHalfOpenMaxReq int

	FootballDataBaseURL string
	FootballDataTimeout time.Duration

	RefreshOnStart bool

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled bool
	UptraceDSN     string

	LogLevel zapcore.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := getEnvAsDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}

	insightsTTLSecs, err := getEnvAsInt("ANALYTICS_TTL_SECS", 300)
	if err != nil {
		return Config{}, fmt.Errorf("parse ANALYTICS_TTL_SECS: %w", err)
	}
	if insightsTTLSecs <= 0 {
		return Config{}, fmt.Errorf("ANALYTICS_TTL_SECS must be > 0, got %d", insightsTTLSecs)
	}

	insightWorkers, err := getEnvAsInt("INSIGHT_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse INSIGHT_WORKERS: %w", err)
	}
	if insightWorkers <= 0 {
		return Config{}, fmt.Errorf("INSIGHT_WORKERS must be > 0, got %d", insightWorkers)
	}

	smarketsTimeout, err := getEnvAsDuration("SMARKETS_TIMEOUT", 20*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse SMARKETS_TIMEOUT: %w", err)
	}
	smarketsMaxRetries, err := getEnvAsInt("SMARKETS_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SMARKETS_MAX_RETRIES: %w", err)
	}
	smarketsCircuitEnabled, err := strconv.ParseBool(getEnv("SMARKETS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SMARKETS_CIRCUIT_ENABLED: %w", err)
	}
	smarketsCircuitFailureCount, err := getEnvAsInt("SMARKETS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SMARKETS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	smarketsCircuitOpenTimeout, err := getEnvAsDuration("SMARKETS_CIRCUIT_OPEN_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse SMARKETS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	smarketsCircuitHalfOpenMaxReq, err := getEnvAsInt("SMARKETS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SMARKETS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	footballDataTimeout, err := getEnvAsDuration("FOOTBALLDATA_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALLDATA_TIMEOUT: %w", err)
	}

	refreshOnStart, err := strconv.ParseBool(getEnv("REFRESH_ON_START", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse REFRESH_ON_START: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	return Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("SERVICE_NAME", "matchscreener"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,

		DataPath:   getEnv("DATA_PATH", "data/matches.csv"),
		AdminToken: strings.TrimSpace(getEnv("ADMIN_TOKEN", "")),

		InsightsTTL:    time.Duration(insightsTTLSecs) * time.Second,
		InsightWorkers: insightWorkers,

		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		SmarketsBaseURL:               getEnv("SMARKETS_BASE_URL", ""),
		SmarketsAPIKey:                strings.TrimSpace(getEnv("SMARKETS_API_KEY", "")),
		SmarketsTimeout:               smarketsTimeout,
		SmarketsMaxRetries:            smarketsMaxRetries,
		SmarketsCircuitEnabled:        smarketsCircuitEnabled,
		SmarketsCircuitFailureCount:   smarketsCircuitFailureCount,
		SmarketsCircuitOpenTimeout:    smarketsCircuitOpenTimeout,
		SmarketsCircuitHalfOpenMaxReq: smarketsCircuitHalfOpenMaxReq,

		FootballDataBaseURL: getEnv("FOOTBALLDATA_BASE_URL", ""),
		FootballDataTimeout: footballDataTimeout,

		RefreshOnStart: refreshOnStart,

		PprofEnabled: pprofEnabled,
		PprofAddr:    getEnv("PPROF_ADDR", "localhost:6060"),

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		LogLevel: logging.ParseLevel(getEnv("LOG_LEVEL", "info")),
	}, nil
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

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
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

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
