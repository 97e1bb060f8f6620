package worker

import (
	appOrder "github.com/Zhima-Mochi/minishop-pos/internal/application/order"
	domoutbox "github.com/Zhima-Mochi/minishop-pos/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	workerpresentation "github.com/Zhima-Mochi/minishop-pos/internal/presentation/worker"
)

// Worker subscribes the sales handlers to the bus.
type Worker struct {
	subscriber domoutbox.Subscriber
	sales      *appOrder.SalesWorker
	log        observability.Logger
}

func New(subscriber domoutbox.Subscriber, sales *appOrder.SalesWorker, logger observability.Logger) *Worker {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Worker{
		subscriber: subscriber,
		sales:      sales,
		log:        logger.With(observability.F("component", "order_worker")),
	}
}

func (w *Worker) Start() []string {
	if w.subscriber == nil || w.sales == nil {
		return nil
	}
	hs := w.sales.Handlers()
	names := hs.Names()
	for _, name := range names {
		w.subscriber.Subscribe(name, workerpresentation.Handle(w.log, hs[name]))
	}
	w.log.Debug("worker_started", observability.F("events", names))
	return names
}
