package zaplogger

import (
	"errors"
	"testing"

	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_FieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := New(zap.New(core), observability.F("component", "console"))

	l.Debug("hidden")
	l.With(observability.F("order_id", "A")).Warn("reorder_suggested", observability.F("product_id", "P5"))
	l.Error("use_case_done", observability.F("error", errors.New("boom")))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "reorder_suggested", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "console", first["component"])
	assert.Equal(t, "A", first["order_id"])
	assert.Equal(t, "P5", first["product_id"])

	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestNew_NilLogger(t *testing.T) {
	l := New(nil)
	assert.NotPanics(t, func() {
		l.Info("x")
		l.With().Warn("y")
		_ = l.Sync()
	})
}
