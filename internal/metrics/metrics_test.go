package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/stretchr/testify/suite"
)

type MetricsTestSuite struct {
	suite.Suite
	registry *prometheus.Registry
	metrics  *Metrics
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}

func (suite *MetricsTestSuite) SetupTest() {
	suite.registry = prometheus.NewRegistry()

	m, err := NewMetrics(suite.registry)
	suite.Require().NoError(err)

	suite.metrics = m
}

func (suite *MetricsTestSuite) TestObserveRow() {
	suite.metrics.ObserveRow(types.OrderContext{Order: optional.None[types.ResolvedOrder]()})
	suite.metrics.ObserveRow(types.OrderContext{Order: optional.Some(types.Buy(1).Fill())})
	suite.metrics.ObserveRow(types.OrderContext{Order: optional.Some(types.Buy(0.0001).Reject(types.OrderReasonBelowMinAmount))})
	suite.metrics.ObserveRow(types.OrderContext{Order: optional.Some(types.Buy(0.0001).Reject(types.OrderReasonBelowMinAmount))})

	suite.Equal(4.0, testutil.ToFloat64(suite.metrics.RowsTotal))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.OrdersTotal.WithLabelValues("FILLED", "")))
	suite.Equal(2.0, testutil.ToFloat64(suite.metrics.OrdersTotal.WithLabelValues("REJECTED", types.OrderReasonBelowMinAmount)))
}

func (suite *MetricsTestSuite) TestObserveRun() {
	suite.metrics.ObserveRun(10*time.Millisecond, nil)
	suite.metrics.ObserveRun(time.Second, errors.New("boom"))

	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.RunsTotal.WithLabelValues("ok")))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.RunsTotal.WithLabelValues("error")))
	suite.Equal(1, testutil.CollectAndCount(suite.metrics.RunDuration))
}

func (suite *MetricsTestSuite) TestDoubleRegistrationFails() {
	_, err := NewMetrics(suite.registry)
	suite.Error(err)
}

func (suite *MetricsTestSuite) TestNilMetricsIsNoop() {
	var m *Metrics

	suite.NotPanics(func() {
		m.ObserveRow(types.OrderContext{Order: optional.Some(types.Sell(1).Fill())})
		m.ObserveRun(time.Second, nil)
	})
}
