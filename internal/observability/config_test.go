package observability

import (
	"testing"

	"github.com/smallbiznis/immolens/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigNormalizesTelemetry(t *testing.T) {
	cfg := LoadConfig(config.Config{
		AppName:      "immolens",
		Environment:  "production",
		OTLPEndpoint: "localhost:4317",
		Telemetry: config.TelemetryConfig{
			LogLevel:           "WARN",
			LogFormat:          "console",
			OtelEnabled:        true,
			OtelEndpoint:       "collector:4317",
			OtelProtocol:       "grpc",
			OtelTracesProtocol: "http/protobuf",
			SamplingRatio:      1.5,
		},
	})

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, FormatJSON, cfg.LogFormat, "console logs are not allowed in production")
	assert.True(t, cfg.OtelEnabled)
	assert.Equal(t, "collector:4317", cfg.OtelExporterEndpoint)
	assert.Equal(t, ProtocolHTTP, cfg.OtelExporterProtocol)
	assert.Equal(t, 1.0, cfg.OtelSamplingRatio)
	assert.False(t, cfg.Debug())
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig(config.Config{
		Environment: "local",
		AppVersion:  "0.1.0",
		Telemetry: config.TelemetryConfig{
			LogLevel:      "verbose",
			LogFormat:     "console",
			OtelEnabled:   true,
			SamplingRatio: -1,
		},
	})

	assert.Equal(t, defaultServiceName, cfg.ServiceName)
	assert.Equal(t, "0.1.0", cfg.Version)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, FormatConsole, cfg.LogFormat)
	assert.False(t, cfg.OtelEnabled, "no exporter endpoint")
	assert.Equal(t, ProtocolGRPC, cfg.OtelExporterProtocol)
	assert.Equal(t, 0.0, cfg.OtelSamplingRatio)
	assert.True(t, cfg.Debug())
}

func TestDeploymentEnvOverridesEnvironment(t *testing.T) {
	cfg := LoadConfig(config.Config{
		Environment: "development",
		Telemetry:   config.TelemetryConfig{DeploymentEnv: "production", ServiceVersion: "2.0.0"},
	})
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "2.0.0", cfg.Version)
	assert.False(t, cfg.Debug())
}

func TestComponentConfigs(t *testing.T) {
	cfg := Config{
		ServiceName:          "immolens",
		Environment:          "test",
		LogLevel:             "debug",
		OtelEnabled:          true,
		OtelExporterEndpoint: "collector:4318",
		OtelExporterProtocol: ProtocolHTTP,
		OtelSamplingRatio:    0.25,
	}

	assert.True(t, cfg.Logger().IncludeStackOnError)
	assert.Equal(t, 0.25, cfg.Tracing().SamplingRatio)
	assert.Equal(t, "collector:4318", cfg.Metrics().ExporterEndpoint)
	assert.Equal(t, cfg.Tracing().ExporterProtocol, cfg.Metrics().ExporterProtocol)
}
