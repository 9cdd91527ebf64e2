package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string
	NodeID      int64

	OTLPEndpoint string

	// FiscalYear is used when a simulation does not name one.
	FiscalYear               int
	FiscalConfigPath         string
	ParametersCacheTTL       int
	// ParametersRefreshSeconds is the period of the store refresh job, 0 disables it.
	ParametersRefreshSeconds int

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	Redis         RedisConfig
	RateLimit     RateLimitConfig
	MetricsExport MetricsExportConfig
	Telemetry     TelemetryConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled bool
	// Rate is the sustained number of simulations per second per client.
	Rate  float64
	Burst int
}

type MetricsExportConfig struct {
	Enabled         bool
	Exporter        string
	Endpoint        string
	AuthToken       string
	IntervalSeconds int
}

// TelemetryConfig carries the raw logging and OpenTelemetry settings. Values are
// normalized by the observability package.
type TelemetryConfig struct {
	DeploymentEnv      string
	ServiceVersion     string
	LogLevel           string
	LogFormat          string
	OtelEnabled        bool
	OtelEndpoint       string
	OtelProtocol       string
	// OtelTracesProtocol overrides OtelProtocol for spans only.
	OtelTracesProtocol string
	SamplingRatio      float64
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:                  getenv("APP_SERVICE", "immolens"),
		AppVersion:               getenv("APP_VERSION", "0.1.0"),
		Environment:              getenv("ENVIRONMENT", "development"),
		HTTPAddr:                 getenv("HTTP_ADDR", ":8080"),
		NodeID:                   getenvInt64("NODE_ID", 1),
		OTLPEndpoint:             getenv("OTLP_ENDPOINT", "localhost:4317"),
		FiscalYear:               getenvInt("FISCAL_YEAR", 2025),
		FiscalConfigPath:         strings.TrimSpace(getenv("FISCAL_CONFIG_PATH", "")),
		ParametersCacheTTL:       getenvInt("PARAMETERS_CACHE_TTL_SECONDS", 300),
		ParametersRefreshSeconds: getenvInt("PARAMETERS_REFRESH_SECONDS", 600),
		DBType:                   strings.ToLower(getenv("DATABASE_TYPE", "postgres")),
		DBHost:                   getenv("DATABASE_HOST", "localhost"),
		DBPort:                   getenv("DATABASE_PORT", "5432"),
		DBName:                   getenv("DATABASE_NAME", "immolens"),
		DBUser:                   getenv("DATABASE_USER", "postgres"),
		DBPassword:               getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:                getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:            getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:            getenvInt("DATABASE_MAX_OPEN_CONN", 20),
		DBConnMaxLifetime:        getenvInt("DATABASE_CONN_MAX_LIFETIME", 1800),
		DBConnMaxIdleTime:        getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 300),
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(getenv("REDIS_ADDR", "")),
			Password: strings.TrimSpace(getenv("REDIS_PASSWORD", "")),
			DB:       getenvInt("REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			Enabled: getenvBool("RATE_LIMIT_ENABLED", false),
			Rate:    getenvFloat("RATE_LIMIT_SIMULATION_RATE", 5),
			Burst:   getenvInt("RATE_LIMIT_SIMULATION_BURST", 20),
		},
		MetricsExport: MetricsExportConfig{
			Enabled:         getenvBool("METRICS_EXPORT_ENABLED", false),
			Exporter:        strings.ToLower(getenv("METRICS_EXPORT_EXPORTER", "")),
			Endpoint:        strings.TrimSpace(getenv("METRICS_EXPORT_ENDPOINT", "")),
			AuthToken:       strings.TrimSpace(getenv("METRICS_EXPORT_AUTH_TOKEN", "")),
			IntervalSeconds: getenvInt("METRICS_EXPORT_INTERVAL_SECONDS", 60),
		},
	}
	cfg.Telemetry = TelemetryConfig{
		DeploymentEnv:      strings.TrimSpace(getenv("DEPLOYMENT_ENV", "")),
		ServiceVersion:     strings.TrimSpace(getenv("SERVICE_VERSION", "")),
		LogLevel:           getenv("LOG_LEVEL", "info"),
		LogFormat:          getenv("LOG_FORMAT", "json"),
		OtelEnabled:        getenvBool("OTEL_ENABLED", false),
		OtelEndpoint:       strings.TrimSpace(getenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTLPEndpoint)),
		OtelProtocol:       getenv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"),
		OtelTracesProtocol: getenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", ""),
		SamplingRatio:      getenvFloat("OTEL_SAMPLING_RATIO", 0.1),
	}

	return cfg
}

// DatabaseEnabled reports whether an override store is configured.
func (c Config) DatabaseEnabled() bool {
	switch c.DBType {
	case "", "none", "disabled":
		return false
	default:
		return true
	}
}

func (c Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvInt(key string, def int) int {
	return int(getenvInt64(key, int64(def)))
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}
