package worker

import (
	appInventory "github.com/Zhima-Mochi/minishop-pos/internal/application/inventory"
	domoutbox "github.com/Zhima-Mochi/minishop-pos/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	workerpresentation "github.com/Zhima-Mochi/minishop-pos/internal/presentation/worker"
)

// Worker subscribes the inventory stock handlers to the bus.
type Worker struct {
	subscriber domoutbox.Subscriber
	handlers   *appInventory.Worker
	log        observability.Logger
}

func New(subscriber domoutbox.Subscriber, handlers *appInventory.Worker, logger observability.Logger) *Worker {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Worker{
		subscriber: subscriber,
		handlers:   handlers,
		log:        logger.With(observability.F("component", "inventory_worker")),
	}
}

// Start registers the handlers and returns the event names it subscribed to.
func (w *Worker) Start() []string {
	if w.subscriber == nil || w.handlers == nil {
		return nil
	}
	hs := w.handlers.Handlers()
	names := hs.Names()
	for _, name := range names {
		w.subscriber.Subscribe(name, workerpresentation.Handle(w.log, hs[name]))
	}
	w.log.Debug("worker_started", observability.F("events", names))
	return names
}
