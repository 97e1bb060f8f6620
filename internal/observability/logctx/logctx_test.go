package logctx

import (
	"context"
	"testing"

	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	observability.Logger
	fields []observability.Field
}

func (l *recordingLogger) With(fields ...observability.Field) observability.Logger {
	return &recordingLogger{Logger: l.Logger, fields: append(append([]observability.Field(nil), l.fields...), fields...)}
}

func TestFromOr(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, From(ctx))
	assert.NotNil(t, FromOr(ctx, nil))

	base := &recordingLogger{Logger: observability.NopLogger()}
	assert.Same(t, base, FromOr(ctx, base))

	ctx = With(ctx, base)
	assert.Same(t, base, From(ctx))
	assert.Same(t, base, FromOr(ctx, observability.NopLogger()))
}

func TestEnrich(t *testing.T) {
	base := &recordingLogger{Logger: observability.NopLogger()}
	ctx, logger := Enrich(context.Background(), base, observability.F("order_id", "A"))

	rl, ok := logger.(*recordingLogger)
	assert.True(t, ok)
	assert.Equal(t, []observability.Field{observability.F("order_id", "A")}, rl.fields)
	assert.Same(t, logger, From(ctx))

	_, child := Enrich(ctx, nil, observability.F("line", 1))
	assert.Len(t, child.(*recordingLogger).fields, 2)
}
