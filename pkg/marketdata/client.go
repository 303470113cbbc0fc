package marketdata

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-ta/internal/logger"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-ta/pkg/marketdata/writer"
	"go.uber.org/zap"
)

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	ProviderType  provider.ProviderType `validate:"required,oneof=polygon binance"`
	DataPath      string                `validate:"required"`
	PolygonApiKey string                `validate:"required_if=ProviderType polygon"`
}

// DownloadParams holds the parameters for a market data download request.
type DownloadParams struct {
	Ticker     string          `validate:"required"`
	StartDate  time.Time       `validate:"required"`
	EndDate    time.Time       `validate:"required,gtfield=StartDate"`
	Multiplier int             `validate:"required,min=1"`
	Timespan   models.Timespan `validate:"required"`
}

// Client downloads bars from a provider and stores them as Parquet files below DataPath.
type Client struct {
	provider   provider.Provider
	config     ClientConfig
	validate   *validator.Validate
	onProgress provider.OnDownloadProgress
	logger     *logger.Logger
}

// NewClient creates a new market data client with the given configuration.
func NewClient(config ClientConfig, onProgress provider.OnDownloadProgress, log *logger.Logger) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	var providerConfig any
	if config.ProviderType == provider.ProviderPolygon {
		providerConfig = config.PolygonApiKey
	}

	marketProvider, err := provider.NewMarketDataProvider(config.ProviderType, providerConfig)
	if err != nil {
		return nil, err
	}

	return NewClientWithProvider(config, marketProvider, onProgress, log)
}

// NewClientWithProvider creates a client that downloads through marketProvider.
func NewClientWithProvider(config ClientConfig, marketProvider provider.Provider, onProgress provider.OnDownloadProgress, log *logger.Logger) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Client{
		provider:   marketProvider,
		config:     config,
		validate:   validate,
		onProgress: onProgress,
		logger:     log,
	}, nil
}

// OutputPath returns the Parquet file a download with params is written to:
// TICKER_START_END_MULTIPLIER_TIMESPAN.parquet below DataPath.
func (c *Client) OutputPath(params DownloadParams) string {
	return filepath.Join(c.config.DataPath, fmt.Sprintf("%s_%s_%s_%d_%s.parquet",
		params.Ticker,
		params.StartDate.Format("2006-01-02"),
		params.EndDate.Format("2006-01-02"),
		params.Multiplier,
		params.Timespan))
}

// Download downloads the bars described by params and returns the path of the written file.
// The context can be used to cancel the download operation.
func (c *Client) Download(ctx context.Context, params DownloadParams) (string, error) {
	if err := c.validate.Struct(params); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidParameter, "invalid download parameters", err)
	}

	marketWriter := writer.NewDuckDBWriter(c.OutputPath(params))

	defer func() {
		if err := marketWriter.Close(); err != nil {
			c.logger.Warn("Failed to close writer", zap.Error(err))
		}
	}()

	c.provider.ConfigWriter(marketWriter)

	c.logger.Info("Downloading market data",
		zap.String("provider", string(c.config.ProviderType)),
		zap.String("ticker", params.Ticker),
		zap.Time("start", params.StartDate),
		zap.Time("end", params.EndDate),
		zap.Int("multiplier", params.Multiplier),
		zap.String("timespan", string(params.Timespan)),
	)

	path, err := c.provider.Download(
		ctx,
		params.Ticker,
		params.StartDate,
		params.EndDate,
		params.Multiplier,
		params.Timespan,
		c.onProgress,
	)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}

	c.logger.Info("Market data written", zap.String("path", path))

	return path, nil
}
