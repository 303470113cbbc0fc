// Package metrics exposes Prometheus collectors for backtest runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rxtech-lab/argo-ta/internal/types"
)

// Metrics holds all Prometheus metrics of the backtest engine.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RowsTotal   prometheus.Counter
	OrdersTotal *prometheus.CounterVec // labels: status, reason
	RunsTotal   *prometheus.CounterVec // labels: result=ok|error
	RunDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on registerer.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		RowsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "argo_ta_rows_total",
			Help: "Total price rows simulated",
		}),
		OrdersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argo_ta_orders_total",
			Help: "Orders resolved by the engine (by status and rejection reason)",
		}, []string{"status", "reason"}),
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argo_ta_runs_total",
			Help: "Completed backtest runs (by result)",
		}, []string{"result"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "argo_ta_run_duration_seconds",
			Help:    "Wall time of a single backtest run",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}),
	}

	for _, collector := range []prometheus.Collector{m.RowsTotal, m.OrdersTotal, m.RunsTotal, m.RunDuration} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ObserveRow records one simulated row and the order resolved on it, if any.
func (m *Metrics) ObserveRow(orderContext types.OrderContext) {
	if m == nil {
		return
	}

	m.RowsTotal.Inc()

	if orderContext.Order.IsSome() {
		order := orderContext.Order.Unwrap()
		m.OrdersTotal.WithLabelValues(string(order.Status), order.Reason).Inc()
	}
}

// ObserveRun records the outcome and duration of a run.
func (m *Metrics) ObserveRun(duration time.Duration, err error) {
	if m == nil {
		return
	}

	result := "ok"
	if err != nil {
		result = "error"
	}

	m.RunsTotal.WithLabelValues(result).Inc()
	m.RunDuration.Observe(duration.Seconds())
}
