package observability

import (
	"math"
	"strings"

	"github.com/smallbiznis/immolens/internal/config"
	"go.uber.org/zap/zapcore"
)

const (
	defaultServiceName = "immolens"

	ProtocolGRPC = "grpc"
	ProtocolHTTP = "http"

	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config is the normalized telemetry setup shared by logging, tracing and metrics.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelSamplingRatio    float64
}

// LoadConfig normalizes the raw telemetry settings. Console logs are refused in
// production, and OTel export stays off without an endpoint.
func LoadConfig(cfg config.Config) Config {
	t := cfg.Telemetry

	environment := firstNonEmpty(t.DeploymentEnv, cfg.Environment)
	out := Config{
		ServiceName:          firstNonEmpty(cfg.AppName, defaultServiceName),
		Environment:          environment,
		Version:              firstNonEmpty(t.ServiceVersion, cfg.AppVersion),
		LogLevel:             normalizeLevel(t.LogLevel),
		LogFormat:            normalizeFormat(t.LogFormat, environment),
		OtelEnabled:          t.OtelEnabled,
		OtelExporterEndpoint: firstNonEmpty(t.OtelEndpoint, cfg.OTLPEndpoint),
		OtelExporterProtocol: normalizeProtocol(firstNonEmpty(t.OtelTracesProtocol, t.OtelProtocol)),
		OtelSamplingRatio:    math.Max(0, math.Min(1, t.SamplingRatio)),
	}
	if !out.OtelEnabled || out.OtelExporterEndpoint == "" {
		out.OtelEnabled = false
	}
	return out
}

// Debug enables development logging and stack traces on errors.
func (c Config) Debug() bool {
	return c.LogLevel == zapcore.DebugLevel.String() || isDevEnv(c.Environment)
}

func normalizeLevel(level string) string {
	parsed, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return zapcore.InfoLevel.String()
	}
	return parsed.String()
}

func normalizeFormat(format, environment string) string {
	if strings.EqualFold(strings.TrimSpace(format), FormatConsole) && !isProduction(environment) {
		return FormatConsole
	}
	return FormatJSON
}

func normalizeProtocol(protocol string) string {
	switch strings.ToLower(strings.TrimSpace(protocol)) {
	case "http", "http/protobuf", "http/json":
		return ProtocolHTTP
	default:
		return ProtocolGRPC
	}
}

func isDevEnv(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

func isProduction(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "prod", "production":
		return true
	default:
		return false
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
