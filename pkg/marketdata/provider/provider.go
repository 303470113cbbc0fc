package provider

import (
	"context"
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/marketdata/writer"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderPolygon ProviderType = "polygon"
	ProviderBinance ProviderType = "binance"
)

// OnDownloadProgress reports download progress as current out of total.
type OnDownloadProgress = func(current float64, total float64, message string)

type Provider interface {
	// ConfigWriter configures the writer the downloaded bars are written to.
	ConfigWriter(writer writer.MarketDataWriter)
	// Download downloads the bars of ticker between startDate and endDate and returns the path written by the writer.
	// The context can be used to cancel the download operation.
	// example:
	// Download(ctx, "AAPL", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC), 1, models.Minute, onProgress)
	Download(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, multiplier int, timespan models.Timespan, onProgress OnDownloadProgress) (path string, err error)
}

// NewMarketDataProvider creates a new market data provider based on the provider type.
// Polygon expects its API key as config.
func NewMarketDataProvider(providerType ProviderType, config any) (Provider, error) {
	switch providerType {
	case ProviderBinance:
		return NewBinanceClient()
	case ProviderPolygon:
		apiKey, ok := config.(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidConfiguration, "polygon provider requires API key string config")
		}

		return NewPolygonClient(apiKey)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", providerType)
	}
}

func reportProgress(onProgress OnDownloadProgress, current float64, total float64, message string) {
	if onProgress != nil {
		onProgress(current, total, message)
	}
}
