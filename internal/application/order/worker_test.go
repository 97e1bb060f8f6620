package order

import (
	"context"
	"testing"

	domain "github.com/Zhima-Mochi/minishop-pos/internal/domain/order"
	infraobs "github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/observability/zaplogger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func finalizedOrder(t *testing.T, id string, delivery bool) *domain.Order {
	t.Helper()
	o, err := domain.New(id, customer, testNow)
	require.NoError(t, err)
	require.NoError(t, o.RecordPurchase("P1", 2, "Lego City Garbage Truck", decimal.RequireFromString("28.00")))
	if delivery {
		require.NoError(t, o.ApplyDelivery("Sydney", "Australia"))
		require.NoError(t, o.ApplyInsurance())
	}
	require.NoError(t, o.Finalize(testNow))
	return o
}

func TestSalesWorker_RecordsRevenue(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	reg := prometrics.New("")
	counters, histograms := reg.Instruments()
	w := NewSalesWorker(infraobs.New(nil, zaplogger.New(zap.New(core)), counters, histograms))

	h, ok := w.Handlers()["order.finalized"]
	require.True(t, ok)

	ctx := context.Background()
	require.NoError(t, h(ctx, domain.NewOrderFinalizedEvent(finalizedOrder(t, "A", true))))
	require.NoError(t, h(ctx, domain.NewOrderFinalizedEvent(finalizedOrder(t, "B", false))))
	require.NoError(t, h(ctx, domain.NewOrderStartedEvent(finalizedOrder(t, "C", false))))

	mfs, err := reg.Gatherer().Gather()
	require.NoError(t, err)
	got := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			switch mf.GetName() {
			case "sales_revenue_total":
				got["revenue"] = m.GetCounter().GetValue()
			case "orders_finalized_total":
				got["delivery="+m.GetLabel()[0].GetValue()] = m.GetCounter().GetValue()
			case "line_items_per_order":
				got["histogram_count"] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	assert.InDelta(t, 131.90, got["revenue"], 1e-9)
	assert.Equal(t, 1.0, got["delivery=true"])
	assert.Equal(t, 1.0, got["delivery=false"])
	assert.Equal(t, 2.0, got["histogram_count"])

	sales := logs.FilterMessage("sale_recorded").AllUntimed()
	require.Len(t, sales, 2)
	assert.Equal(t, "75.90", sales[0].ContextMap()["grand_total"])
	assert.Equal(t, true, sales[0].ContextMap()["insured"])
	assert.Equal(t, false, sales[1].ContextMap()["insured"])
}
