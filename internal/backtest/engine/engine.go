package engine

import (
	"context"

	"github.com/rxtech-lab/argo-ta/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-ta/internal/series"
	"github.com/rxtech-lab/argo-ta/internal/strategy"
)

// Lifecycle callback types for backtest phases
// All callbacks with error return can abort execution if they return an error

// OnBacktestStartCallback is called before the first row of a run is processed.
type OnBacktestStartCallback func(strategyName string, totalRows int) error

// OnBacktestEndCallback is called when a run completes (always called via defer).
type OnBacktestEndCallback func(strategyName string, err error)

// OnProcessDataCallback is called for each row processed.
type OnProcessDataCallback func(current int, total int) error

// LifecycleCallbacks holds all lifecycle callback functions for the backtest engine.
// All fields are pointers - nil means no callback will be invoked.
type LifecycleCallbacks struct {
	OnBacktestStart *OnBacktestStartCallback
	OnBacktestEnd   *OnBacktestEndCallback
	OnProcessData   *OnProcessDataCallback
}

type Engine interface {
	// Initialize the engine with the given YAML configuration.
	Initialize(config string) error
	// GetConfigSchema returns the schema of the engine configuration
	GetConfigSchema() (string, error)
	// LoadSeries reads every record from the data source and builds a series carrying the configured
	// indicator columns plus the ones the given strategies declare.
	LoadSeries(ctx context.Context, source datasource.DataSource, strategies ...strategy.Strategy) (*series.Series, error)
	// Run simulates the strategy over the configured range of the series.
	// A strategy failure or a cancelled context aborts the run and no result is returned.
	Run(ctx context.Context, s *series.Series, strategy strategy.Strategy, callbacks LifecycleCallbacks) (*Result, error)
	// RunMany runs independent backtests of every strategy concurrently over the same series.
	// Results are returned in the order of the strategies.
	RunMany(ctx context.Context, s *series.Series, strategies []strategy.Strategy, callbacks LifecycleCallbacks) ([]*Result, error)
}
