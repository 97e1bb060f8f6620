package outbox

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerSet_Names(t *testing.T) {
	noop := func(context.Context, Event) error { return nil }
	s := HandlerSet{"order.finalized": noop, "inventory.stock_low": noop, "inventory.restocked": noop}

	assert.Equal(t, []string{"inventory.restocked", "inventory.stock_low", "order.finalized"}, s.Names())
	assert.Empty(t, HandlerSet{}.Names())
}
