package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-ta/internal/backtest/engine"
	"github.com/rxtech-lab/argo-ta/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-ta/internal/backtest/engine/engine_v1/writer"
	"github.com/rxtech-lab/argo-ta/internal/indicator"
	"github.com/rxtech-lab/argo-ta/internal/logger"
	"github.com/rxtech-lab/argo-ta/internal/metrics"
	"github.com/rxtech-lab/argo-ta/internal/series"
	"github.com/rxtech-lab/argo-ta/internal/strategy"
	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

type BacktestEngineV1 struct {
	config            BacktestEngineV1Config
	log               *logger.Logger
	indicatorRegistry indicator.IndicatorRegistry
	metrics           *metrics.Metrics
	writer            writer.ResultWriter
	initialized       bool
}

func NewBacktestEngineV1() engine.Engine {
	return &BacktestEngineV1{
		config:            EmptyConfig(),
		log:               nil,
		indicatorRegistry: nil,
		metrics:           nil,
		writer:            nil,
		initialized:       false,
	}
}

// Initialize implements engine.Engine.
func (b *BacktestEngineV1) Initialize(config string) error {
	// parse the config
	parsed := EmptyConfig()
	if err := yaml.Unmarshal([]byte(config), &parsed); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to parse backtest config", err)
	}

	if err := parsed.Validate(); err != nil {
		return err
	}

	b.config = parsed

	// initialize the logger unless one was injected
	if b.log == nil {
		level, err := logger.ParseLevel(b.config.LogLevel)
		if err != nil {
			return errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to parse log level", err)
		}

		b.log, err = logger.NewLoggerWithLevel(level)
		if err != nil {
			return errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to create logger", err)
		}
	}

	if b.indicatorRegistry == nil {
		b.indicatorRegistry = indicator.NewIndicatorRegistry()
	}

	if b.config.ResultsFolder != "" && b.writer == nil {
		b.writer = writer.NewFileResultWriter(b.config.ResultsFolder, b.log)
	}

	b.initialized = true

	b.log.Debug("Backtest engine initialized",
		zap.Float64("initial_funds", b.config.InitialFunds),
		zap.Float64("initial_balance", b.config.InitialBalance),
		zap.Float64("min_amount", b.config.MinAmount),
		zap.Strings("indicators", b.config.Indicators),
	)

	return nil
}

// SetLogger replaces the engine logger. Call before Initialize to keep it.
func (b *BacktestEngineV1) SetLogger(log *logger.Logger) {
	b.log = log
}

// SetMetrics makes the engine report to m.
func (b *BacktestEngineV1) SetMetrics(m *metrics.Metrics) {
	b.metrics = m
}

// SetIndicatorRegistry replaces the registry used to compute indicator columns.
func (b *BacktestEngineV1) SetIndicatorRegistry(registry indicator.IndicatorRegistry) {
	b.indicatorRegistry = registry
}

// SetResultWriter replaces the writer results are persisted with.
func (b *BacktestEngineV1) SetResultWriter(w writer.ResultWriter) {
	b.writer = w
}

// Config returns the active configuration.
func (b *BacktestEngineV1) Config() BacktestEngineV1Config {
	return b.config
}

// RowsInRange returns how many rows of s a run covers with the active configuration.
func (b *BacktestEngineV1) RowsInRange(s *series.Series) int {
	start, end := selectRange(b.config, s)

	return end - start
}

// GetConfigSchema implements engine.Engine.
func (b *BacktestEngineV1) GetConfigSchema() (string, error) {
	config := b.config

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to generate schema", err)
	}

	return schema, nil
}

// LoadSeries implements engine.Engine.
// Every record is loaded regardless of the configured range so indicators are warm at the first simulated row.
func (b *BacktestEngineV1) LoadSeries(ctx context.Context, source datasource.DataSource, strategies ...strategy.Strategy) (*series.Series, error) {
	if err := b.preRunCheck(); err != nil {
		return nil, err
	}

	records, err := datasource.ReadRecords(ctx, source, noTime(), noTime())
	if err != nil {
		return nil, err
	}

	labels := seriesLabels(b.config, strategies)

	b.log.Debug("Building series",
		zap.Int("records", len(records)),
		zap.Strings("indicators", labels),
	)

	return series.New(ctx, records, labels, b.indicatorRegistry)
}

// Run implements engine.Engine.
func (b *BacktestEngineV1) Run(ctx context.Context, s *series.Series, strat strategy.Strategy, callbacks engine.LifecycleCallbacks) (result *engine.Result, err error) {
	if err := b.preRunCheck(); err != nil {
		return nil, err
	}

	if strat == nil {
		return nil, errors.New(errors.ErrCodeBacktestNoStrategies, "no strategy given")
	}

	if s == nil {
		return nil, errors.New(errors.ErrCodeBacktestNoSeries, "no series given")
	}

	name := strat.Name()
	started := time.Now()

	defer func() {
		b.metrics.ObserveRun(time.Since(started), err)

		if callbacks.OnBacktestEnd != nil {
			(*callbacks.OnBacktestEnd)(name, err)
		}
	}()

	for _, label := range strategy.RequiredIndicators(strat) {
		if !s.HasColumn(label) {
			return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "strategy %s reads indicator %q which the series does not carry", name, label)
		}
	}

	start, end := selectRange(b.config, s)
	total := end - start

	if total == 0 {
		return nil, errors.Newf(errors.ErrCodeBacktestEmptyRange, "no rows between the configured start and end time (series has %d rows)", s.Len())
	}

	if callbacks.OnBacktestStart != nil {
		if err := (*callbacks.OnBacktestStart)(name, total); err != nil {
			return nil, errors.Wrap(errors.ErrCodeCallbackFailed, "backtest start callback failed", err)
		}
	}

	runID := uuid.New().String()

	b.log.Info("Backtest started",
		zap.String("run_id", runID),
		zap.String("strategy", name),
		zap.Int("rows", total),
		zap.Time("start", s.Record(start).Time),
		zap.Time("end", s.Record(end-1).Time),
	)

	processed := 0
	onStep := func(row series.Row, orderContext types.OrderContext) error {
		processed++

		b.metrics.ObserveRow(orderContext)

		if orderContext.Order.IsSome() && !orderContext.Order.Unwrap().IsFilled() {
			order := orderContext.Order.Unwrap()
			b.log.Debug("Order rejected",
				zap.Int("row", row.Index),
				zap.Time("time", row.Time),
				zap.String("decision", string(order.Decision)),
				zap.Float64("amount", order.Amount),
				zap.String("reason", order.Reason),
				zap.Float64("funds", orderContext.Funds),
				zap.Float64("balance", orderContext.Balance),
			)
		}

		if callbacks.OnProcessData != nil {
			return (*callbacks.OnProcessData)(processed, total)
		}

		return nil
	}

	initial := NewBacktestState(b.config.InitialFunds, b.config.InitialBalance)

	final, contexts, err := Fold(ctx, s.Rows(start, end), strat, initial, b.config.MinAmount, onStep)
	if err != nil {
		b.log.Error("Backtest failed",
			zap.String("run_id", runID),
			zap.String("strategy", name),
			zap.Error(err),
		)

		return nil, err
	}

	result = engine.NewResult(runID, name, s.Closes()[start:end], contexts)

	if b.writer != nil {
		folder, err := b.writer.Write(result)
		if err != nil {
			return nil, err
		}

		result.ResultsFolder = folder
	}

	b.log.Info("Backtest finished",
		zap.String("run_id", runID),
		zap.String("strategy", name),
		zap.Float64("funds", final.Funds),
		zap.Float64("balance", final.Balance),
		zap.Float64("worth", result.Last().Worth),
		zap.Float64("total_funds_over_time", final.TotalFundsOverTime),
		zap.Duration("elapsed", time.Since(started)),
	)

	return result, nil
}

// RunMany implements engine.Engine.
// Each strategy must be a distinct instance since strategies keep private state.
// Callbacks may be invoked concurrently from different runs.
func (b *BacktestEngineV1) RunMany(ctx context.Context, s *series.Series, strategies []strategy.Strategy, callbacks engine.LifecycleCallbacks) ([]*engine.Result, error) {
	if len(strategies) == 0 {
		return nil, errors.New(errors.ErrCodeBacktestNoStrategies, "no strategies given")
	}

	results := make([]*engine.Result, len(strategies))
	group, groupCtx := errgroup.WithContext(ctx)

	for i, strat := range strategies {
		group.Go(func() error {
			result, err := b.Run(groupCtx, s, strat, callbacks)
			if err != nil {
				return err
			}

			results[i] = result

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (b *BacktestEngineV1) preRunCheck() error {
	if !b.initialized {
		return errors.New(errors.ErrCodeBacktestInitFailed, "engine is not initialized")
	}

	return nil
}
