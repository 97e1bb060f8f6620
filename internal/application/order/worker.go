package order

import (
	"context"
	"strconv"

	"github.com/Zhima-Mochi/minishop-pos/internal/application"
	domain "github.com/Zhima-Mochi/minishop-pos/internal/domain/order"
	domoutbox "github.com/Zhima-Mochi/minishop-pos/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	"go.opentelemetry.io/otel/attribute"
)

const (
	workerService         = "order-worker"
	useCaseOrderFinalized = "order.worker.finalized"
)

// SalesWorker turns finalized orders into sales metrics.
type SalesWorker struct {
	tel observability.Observability
	log observability.Logger

	revenue   observability.BoundCounter   // sales_revenue_total
	finalized observability.Counter        // orders_finalized_total{delivery}
	lineItems observability.BoundHistogram // line_items_per_order
}

func NewSalesWorker(tel observability.Observability) *SalesWorker {
	baseLog := observability.NopLogger()
	metrics := observability.NopMetrics()
	if tel != nil {
		baseLog = tel.Logger()
		metrics = tel.Metrics()
	}
	return &SalesWorker{
		tel:       tel,
		log:       baseLog.With(observability.F("service", workerService)),
		revenue:   metrics.Counter(observability.MSalesRevenue).Bind(),
		finalized: metrics.Counter(observability.MOrdersFinalized),
		lineItems: metrics.Histogram(observability.MLineItemsPerSale).Bind(),
	}
}

func (w *SalesWorker) Handlers() domoutbox.HandlerSet {
	return domoutbox.HandlerSet{
		domain.OrderFinalizedEvent{}.EventName(): w.HandleOrderFinalized,
	}
}

func (w *SalesWorker) HandleOrderFinalized(ctx context.Context, e domoutbox.Event) (err error) {
	evt, ok := e.(domain.OrderFinalizedEvent)
	if !ok {
		return nil
	}

	_, run := application.Begin(ctx, w.tel, w.log, useCaseOrderFinalized, "OrderFinalized",
		attribute.String("order.id", evt.OrderID),
	)
	defer func() { run.End(err) }()

	total, _ := evt.GrandTotal.Float64()
	w.revenue.Add(total)
	w.finalized.Add(1, observability.L("delivery", strconv.FormatBool(evt.Delivered)))
	w.lineItems.Observe(float64(evt.LineItems))

	run.Logger().Info("sale_recorded",
		observability.F("order_id", evt.OrderID),
		observability.F("grand_total", evt.GrandTotal.StringFixed(2)),
		observability.F("line_items", evt.LineItems),
		observability.F("delivered", evt.Delivered),
		observability.F("insured", evt.Insured),
	)
	return nil
}
