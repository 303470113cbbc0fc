package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rxtech-lab/argo-ta/internal/logger"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/marketdata"
	"github.com/rxtech-lab/argo-ta/pkg/marketdata/provider"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

// progressSteps is the resolution of the download progress bar.
const progressSteps = 1000

// normalizeDate accepts RFC3339 timestamps and plain dates, which are read as midnight UTC.
func normalizeDate(text string) string {
	if day, err := time.Parse(time.DateOnly, text); err == nil {
		return day.Format(time.RFC3339)
	}

	return text
}

// loadDownloadConfig reads the download config from the --config JSON file, or builds it from the flags.
func loadDownloadConfig(cmd *cli.Command) (marketdata.DownloadConfig, error) {
	providerName := cmd.String("provider")

	if path := cmd.String("config"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read download config: %w", err)
		}

		return marketdata.ParseDownloadConfig(providerName, string(data))
	}

	base := marketdata.BaseDownloadConfig{
		Ticker:    cmd.String("ticker"),
		StartDate: normalizeDate(cmd.String("start")),
		EndDate:   normalizeDate(cmd.String("end")),
		Interval:  cmd.String("interval"),
	}

	var config marketdata.DownloadConfig

	switch provider.ProviderType(providerName) {
	case provider.ProviderPolygon:
		config = &marketdata.PolygonDownloadConfig{BaseDownloadConfig: base, ApiKey: cmd.String("polygon-api-key")}
	case provider.ProviderBinance:
		config = &marketdata.BinanceDownloadConfig{BaseDownloadConfig: base}
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider %q (available: %s)",
			providerName, strings.Join(marketdata.GetSupportedProviders(), ", "))
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func downloadAction(ctx context.Context, cmd *cli.Command) error {
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

	config, err := loadDownloadConfig(cmd)
	if err != nil {
		return err
	}

	params, err := config.ToDownloadParams()
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(progressSteps,
		progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", params.Ticker)),
		progressbar.OptionSetWriter(cmd.ErrWriter),
		progressbar.OptionSetVisibility(!cmd.Bool("quiet")),
	)

	onProgress := func(current float64, total float64, _ string) {
		if total > 0 {
			_ = bar.Set(int(current / total * progressSteps))
		}
	}

	client, err := marketdata.NewClient(config.ToClientConfig(cmd.String("data")), onProgress, log)
	if err != nil {
		return err
	}

	path, err := client.Download(ctx, params)
	if err != nil {
		return err
	}

	_ = bar.Finish()

	fmt.Fprintln(cmd.Writer)
	fmt.Fprintln(cmd.Writer, path)

	return nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "download",
		Usage: "Download historical price bars into a Parquet file the backtest command reads",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "provider",
				Aliases:  []string{"p"},
				Usage:    fmt.Sprintf("Market data provider (available: %s)", strings.Join(marketdata.GetSupportedProviders(), ", ")),
				Required: true,
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to a JSON download config, replaces the ticker, start, end and interval flags",
			},
			&cli.StringFlag{
				Name:    "ticker",
				Aliases: []string{"t"},
				Usage:   "Symbol to download (e.g. SPY or BTCUSDT)",
			},
			&cli.StringFlag{
				Name:  "start",
				Usage: "Start of the range as RFC3339 or YYYY-MM-DD",
			},
			&cli.StringFlag{
				Name:  "end",
				Usage: "End of the range as RFC3339 or YYYY-MM-DD",
			},
			&cli.StringFlag{
				Name:  "interval",
				Usage: "Bar interval (e.g., 1m, 1h, 1d)",
				Value: string(marketdata.TimespanOneDay),
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Folder the Parquet file is written to",
				Value:   "data",
			},
			&cli.StringFlag{
				Name:    "polygon-api-key",
				Usage:   "Polygon.io API key",
				Sources: cli.EnvVars("POLYGON_API_KEY"),
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
		Action: downloadAction,
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
