package prometrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter_RegistersOnce(t *testing.T) {
	r := New("")
	a := r.Counter("sales_total", "help", "delivery")
	b := r.Counter("sales_total", "help", "delivery")

	a.Add(1, observability.L("delivery", "true"))
	b.Bind(observability.L("delivery", "true")).Add(2)

	expected := `
# HELP sales_total help
# TYPE sales_total counter
sales_total{delivery="true"} 3
`
	require.NoError(t, testutil.GatherAndCompare(r.Gatherer(), strings.NewReader(expected), "sales_total"))
}

func TestCounter_DropsMismatchedLabels(t *testing.T) {
	r := New("")
	c := r.Counter("alerts_total", "help", "product_id")

	assert.NotPanics(t, func() {
		c.Add(1, observability.L("wrong", "x"))
		c.Bind().Add(1)
	})

	n, err := testutil.GatherAndCount(r.Gatherer(), "alerts_total")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestHistogram(t *testing.T) {
	r := New("pos")
	h := r.Histogram("latency_seconds", "help", []float64{0.1, 1}, "use_case")
	h.Observe(0.05, observability.L("use_case", "add_purchase"))
	h.Bind(observability.L("use_case", "add_purchase")).Observe(0.5)

	n, err := testutil.GatherAndCount(r.Gatherer(), "pos_latency_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestInstruments(t *testing.T) {
	r := New("")
	counters, histograms := r.Instruments()
	assert.Len(t, counters, 5)
	assert.Len(t, histograms, 2)

	counters[observability.MSalesRevenue].Add(75.90)
	counters[observability.MUsecaseRequests].Add(1,
		observability.L("use_case", "add_purchase"), observability.L("outcome", "success"))

	assert.InDelta(t, 75.90, testutil.ToFloat64(mustCounterVec(t, r, "sales_revenue_total")), 1e-9)

	// calling again hands back the same collectors
	again, _ := r.Instruments()
	again[observability.MSalesRevenue].Add(1)
	assert.InDelta(t, 76.90, testutil.ToFloat64(mustCounterVec(t, r, "sales_revenue_total")), 1e-9)
}

func TestHandlerAndTextfile(t *testing.T) {
	r := New("")
	r.Counter("orders_finalized_total", "help", "delivery").Add(1, observability.L("delivery", "false"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `orders_finalized_total{delivery="false"} 1`)

	path := filepath.Join(t.TempDir(), "pos.prom")
	require.NoError(t, r.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `orders_finalized_total{delivery="false"} 1`)
}

func mustCounterVec(t *testing.T, r *Registry, name string) prometheus.Collector {
	t.Helper()
	v, ok := r.counters.Load(name)
	require.True(t, ok, "counter %s not registered", name)
	return v.(*prometheus.CounterVec)
}
