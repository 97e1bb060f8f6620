// Package outbox defines the in-process event contracts shared by the
// inventory and order contexts.
package outbox

import (
	"context"
	"sort"
)

// Event is anything published on the bus. EventName is its routing key,
// e.g. "order.finalized".
type Event interface {
	EventName() string
}

type Handler func(ctx context.Context, e Event) error

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type Subscriber interface {
	Subscribe(eventName string, h Handler)
}

// HandlerSet maps event names to the handler that consumes them.
type HandlerSet map[string]Handler

// Names returns the event names in lexical order.
func (s HandlerSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
