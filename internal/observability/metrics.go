package observability

// MetricKey names an instrument registered by the metrics adapter.
type MetricKey string

// Instruments and their labels.
const (
	MUsecaseRequests  MetricKey = "usecase_requests_total"   // use_case, outcome
	MUsecaseDuration  MetricKey = "usecase_duration_seconds" // use_case
	MEventsHandled    MetricKey = "events_handled_total"     // event, outcome
	MLowStockAlerts   MetricKey = "low_stock_alerts_total"   // product_id
	MOrdersFinalized  MetricKey = "orders_finalized_total"   // delivery
	MSalesRevenue     MetricKey = "sales_revenue_total"
	MLineItemsPerSale MetricKey = "line_items_per_order"
)

// Metrics resolves instruments by key. Unknown keys yield no-op instruments.
type Metrics interface {
	Counter(name MetricKey) Counter
	Histogram(name MetricKey) Histogram
}

type Label struct{ Key, Value string }

func L(k, v string) Label { return Label{Key: k, Value: v} }

// Counter labels are passed per call; Bind fixes them once for hot paths.
type Counter interface {
	Add(delta float64, labels ...Label)
	Bind(labels ...Label) BoundCounter
}

type BoundCounter interface {
	Add(delta float64)
}

type Histogram interface {
	Observe(value float64, labels ...Label)
	Bind(labels ...Label) BoundHistogram
}

type BoundHistogram interface {
	Observe(value float64)
}
