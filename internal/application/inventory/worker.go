package inventory

import (
	"context"

	"github.com/Zhima-Mochi/minishop-pos/internal/application"
	dominv "github.com/Zhima-Mochi/minishop-pos/internal/domain/inventory"
	domoutbox "github.com/Zhima-Mochi/minishop-pos/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	"go.opentelemetry.io/otel/attribute"
)

const (
	workerService     = "inventory-worker"
	useCaseStockLow   = "inventory.worker.stock_low"
	useCaseRestocked  = "inventory.worker.restocked"
	useCaseStockMoved = "inventory.worker.stock_removed"
)

// Worker reacts to stock events. It never changes the catalog; it only
// records what happened for the operator and the metrics.
type Worker struct {
	tel    observability.Observability
	log    observability.Logger
	alerts observability.Counter // low_stock_alerts_total{product_id}
}

func NewWorker(tel observability.Observability) *Worker {
	baseLog := observability.NopLogger()
	metrics := observability.NopMetrics()
	if tel != nil {
		baseLog = tel.Logger()
		metrics = tel.Metrics()
	}
	return &Worker{
		tel:    tel,
		log:    baseLog.With(observability.F("service", workerService)),
		alerts: metrics.Counter(observability.MLowStockAlerts),
	}
}

// Handlers maps event names to the worker's handlers.
func (w *Worker) Handlers() domoutbox.HandlerSet {
	return domoutbox.HandlerSet{
		dominv.StockLowEvent{}.EventName():     w.HandleStockLow,
		dominv.RestockedEvent{}.EventName():    w.HandleRestocked,
		dominv.StockRemovedEvent{}.EventName(): w.HandleStockRemoved,
	}
}

func (w *Worker) HandleStockLow(ctx context.Context, e domoutbox.Event) (err error) {
	evt, ok := e.(dominv.StockLowEvent)
	if !ok {
		return nil
	}

	_, run := application.Begin(ctx, w.tel, w.log, useCaseStockLow, "StockLow",
		attribute.String("inventory.product_id", evt.ProductID),
		attribute.Int("inventory.remaining", evt.Remaining),
	)
	defer func() { run.End(err) }()

	w.alerts.Add(1, observability.L("product_id", evt.ProductID))
	run.Logger().Warn("reorder_suggested",
		observability.F("product_id", evt.ProductID),
		observability.F("remaining", evt.Remaining),
		observability.F("threshold", evt.Threshold),
	)
	return nil
}

func (w *Worker) HandleRestocked(ctx context.Context, e domoutbox.Event) (err error) {
	evt, ok := e.(dominv.RestockedEvent)
	if !ok {
		return nil
	}

	_, run := application.Begin(ctx, w.tel, w.log, useCaseRestocked, "Restocked",
		attribute.String("inventory.product_id", evt.ProductID),
	)
	defer func() { run.End(err) }()

	run.With(
		observability.F("product_id", evt.ProductID),
		observability.F("quantity", evt.Quantity),
		observability.F("stock_level", evt.StockLevel),
	)
	return nil
}

func (w *Worker) HandleStockRemoved(ctx context.Context, e domoutbox.Event) (err error) {
	evt, ok := e.(dominv.StockRemovedEvent)
	if !ok {
		return nil
	}

	_, run := application.Begin(ctx, w.tel, w.log, useCaseStockMoved, "StockRemoved",
		attribute.String("inventory.product_id", evt.ProductID),
		attribute.String("order.id", evt.OrderID),
	)
	defer func() { run.End(err) }()

	run.With(
		observability.F("order_id", evt.OrderID),
		observability.F("product_id", evt.ProductID),
		observability.F("quantity", evt.Quantity),
		observability.F("remaining", evt.Remaining),
	)
	return nil
}
