package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/moznion/go-optional"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	engine "github.com/rxtech-lab/argo-ta/internal/backtest/engine"
	enginev1 "github.com/rxtech-lab/argo-ta/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-ta/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-ta/internal/backtest/engine/engine_v1/writer"
	"github.com/rxtech-lab/argo-ta/internal/logger"
	"github.com/rxtech-lab/argo-ta/internal/metrics"
	"github.com/rxtech-lab/argo-ta/internal/strategy"
	"github.com/rxtech-lab/argo-ta/internal/version"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// strategySpec is a strategy name with an optional path to its YAML config, written as name[=path].
type strategySpec struct {
	Name       string
	ConfigPath string
}

func parseStrategySpec(text string) (strategySpec, error) {
	name, path, _ := strings.Cut(text, "=")

	name = strings.TrimSpace(name)
	if name == "" {
		return strategySpec{}, fmt.Errorf("invalid strategy %q: expected name or name=config.yaml", text)
	}

	return strategySpec{Name: name, ConfigPath: strings.TrimSpace(path)}, nil
}

func loadStrategies(specs []string) ([]strategy.Strategy, error) {
	strategies := make([]strategy.Strategy, 0, len(specs))

	for _, text := range specs {
		spec, err := parseStrategySpec(text)
		if err != nil {
			return nil, err
		}

		var config []byte
		if spec.ConfigPath != "" {
			config, err = os.ReadFile(spec.ConfigPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config of strategy %s: %w", spec.Name, err)
			}
		}

		s, err := strategy.New(spec.Name, config)
		if err != nil {
			return nil, err
		}

		strategies = append(strategies, s)
	}

	return strategies, nil
}

// openSource opens the price file and, when an interval is given, resamples it in memory.
func openSource(path string, interval string, log *logger.Logger) (datasource.DataSource, error) {
	source, err := datasource.NewDataSource(":memory:", log)
	if err != nil {
		return nil, err
	}

	if err := source.Initialize(path); err != nil {
		source.Close()

		return nil, err
	}

	if interval == "" {
		return source, nil
	}

	defer source.Close()

	records, err := datasource.ReadRecords(context.Background(), source, optional.None[time.Time](), optional.None[time.Time]())
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return datasource.NewInMemoryDataSource(nil), nil
	}

	resampled, err := source.GetRange(records[0].Time, records[len(records)-1].Time, optional.Some(datasource.Interval(interval)))
	if err != nil {
		return nil, err
	}

	log.Info("Resampled price data",
		zap.String("interval", interval),
		zap.Int("records", len(records)),
		zap.Int("resampled", len(resampled)),
	)

	return datasource.NewInMemoryDataSource(resampled), nil
}

func serveMetrics(addr string, registry *prometheus.Registry, log *logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics server failed", zap.Error(err))
		}
	}()

	return server
}

// backtestAction is the core logic executed by the CLI command.
func backtestAction(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	level, err := logger.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	log, err := logger.NewLoggerWithLevel(level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	var config []byte
	if path := cmd.String("config"); path != "" {
		config, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read backtest config: %w", err)
		}
	}

	backtest, ok := enginev1.NewBacktestEngineV1().(*enginev1.BacktestEngineV1)
	if !ok {
		return fmt.Errorf("unexpected backtest engine type")
	}

	backtest.SetLogger(log)

	if err := backtest.Initialize(string(config)); err != nil {
		return err
	}

	if folder := cmd.String("results"); folder != "" {
		backtest.SetResultWriter(writer.NewFileResultWriter(folder, log))
	}

	if addr := cmd.String("metrics-addr"); addr != "" {
		registry := prometheus.NewRegistry()

		m, err := metrics.NewMetrics(registry)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}

		backtest.SetMetrics(m)

		server := serveMetrics(addr, registry, log)
		defer server.Shutdown(context.Background())
	}

	strategies, err := loadStrategies(cmd.StringSlice("strategy"))
	if err != nil {
		return err
	}

	source, err := openSource(cmd.String("data"), cmd.String("interval"), log)
	if err != nil {
		return err
	}
	defer source.Close()

	s, err := backtest.LoadSeries(ctx, source, strategies...)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(max(backtest.RowsInRange(s)*len(strategies), 1),
		progressbar.OptionSetDescription("Backtesting"),
		progressbar.OptionSetWriter(cmd.ErrWriter),
		progressbar.OptionShowCount(),
		progressbar.OptionSetVisibility(!cmd.Bool("quiet")),
	)

	onProcessData := engine.OnProcessDataCallback(func(_ int, _ int) error {
		return bar.Add(1)
	})

	results, err := backtest.RunMany(ctx, s, strategies, engine.LifecycleCallbacks{
		OnProcessData: &onProcessData,
	})
	if err != nil {
		return err
	}

	_ = bar.Finish()

	fmt.Fprintln(cmd.Writer)
	fmt.Fprintln(cmd.Writer, RenderSummary(results))

	return nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "backtest",
		Usage:   "Run strategies over historical price data",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Path to the price file (.parquet or .csv) with time, open, high, low and close columns",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the backtest engine config YAML",
			},
			&cli.StringSliceFlag{
				Name:     "strategy",
				Aliases:  []string{"s"},
				Usage:    fmt.Sprintf("Strategy to run as `name[=config.yaml]`, repeatable (available: %s)", strings.Join(strategy.Available(), ", ")),
				Required: true,
			},
			&cli.StringFlag{
				Name:    "results",
				Aliases: []string{"r"},
				Usage:   "Folder results are written to, overrides results_folder of the config",
			},
			&cli.StringFlag{
				Name:  "interval",
				Usage: "Resample the price data to this interval (e.g., 5m, 1h, 1d) before running",
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Serve Prometheus metrics on this address while running (e.g., :9090)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level of the CLI (debug, info, warn, error)",
				Value: "warn",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Hide the progress bar",
			},
		},
		Action: backtestAction,
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
