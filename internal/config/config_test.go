package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "minishop-pos", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, "Toy Universe", cfg.POS.StoreName)
	assert.Equal(t, 6, cfg.POS.MaxLineItems)
	assert.Equal(t, 1, cfg.POS.ReorderThreshold)
	assert.Empty(t, cfg.Telemetry.OTLPEndpoint)
	assert.InDelta(t, 1.0, cfg.Telemetry.SampleRate, 1e-9)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("POS_STORE_NAME", "Corner Toys")
	t.Setenv("POS_MAX_LINE_ITEMS", "3")
	t.Setenv("POS_REORDER_THRESHOLD", "0")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("POS_METRICS_TEXTFILE", "/tmp/pos.prom")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	t.Setenv("OTEL_SAMPLE_RATE", "0.25")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Corner Toys", cfg.POS.StoreName)
	assert.Equal(t, 3, cfg.POS.MaxLineItems)
	assert.Equal(t, 0, cfg.POS.ReorderThreshold)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/pos.prom", cfg.Telemetry.MetricsTextfile)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.OTLPEndpoint)
	assert.InDelta(t, 0.25, cfg.Telemetry.SampleRate, 1e-9)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"zero capacity", "POS_MAX_LINE_ITEMS", "0"},
		{"not a number", "POS_MAX_LINE_ITEMS", "six"},
		{"negative threshold", "POS_REORDER_THRESHOLD", "-1"},
		{"unknown level", "LOG_LEVEL", "verbose"},
		{"sample rate", "OTEL_SAMPLE_RATE", "2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
