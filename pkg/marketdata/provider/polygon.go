package provider

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/marketdata/writer"
)

// polygonPageLimit is the largest page Polygon serves for aggregates.
const polygonPageLimit = 50000

// PolygonAPIClient is the part of the Polygon REST client used for downloads.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator
}

// PolygonAggsIterator iterates over aggregate bars, fetching pages as needed.
type PolygonAggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

type polygonClientWrapper struct {
	client *polygon.Client
}

func (w *polygonClientWrapper) ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator {
	return w.client.ListAggs(ctx, params, options...)
}

type PolygonClient struct {
	apiClient PolygonAPIClient
	writer    writer.MarketDataWriter
}

func NewPolygonClient(apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "apiKey is required")
	}

	return NewPolygonClientWithAPI(&polygonClientWrapper{client: polygon.New(apiKey)}), nil
}

// NewPolygonClientWithAPI creates a client on top of the given API client.
func NewPolygonClientWithAPI(apiClient PolygonAPIClient) *PolygonClient {
	return &PolygonClient{
		apiClient: apiClient,
		writer:    nil,
	}
}

func (c *PolygonClient) ConfigWriter(w writer.MarketDataWriter) {
	c.writer = w
}

// Download downloads the aggregate bars of ticker between startDate and endDate from Polygon.
func (c *PolygonClient) Download(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, multiplier int, timespan models.Timespan, onProgress OnDownloadProgress) (path string, err error) {
	if c.writer == nil {
		return "", errors.New(errors.ErrCodeInvalidConfiguration, "no writer configured for PolygonClient. Call ConfigWriter first")
	}

	if err := c.writer.Initialize(); err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to initialize writer", err)
	}

	total := endDate.Sub(startDate).Seconds()

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     ticker,
		Multiplier: multiplier,
		Timespan:   timespan,
		From:       models.Millis(startDate),
		To:         models.Millis(endDate),
	}.WithLimit(polygonPageLimit)

	iter := c.apiClient.ListAggs(ctx, params)

	for iter.Next() {
		agg := iter.Item()
		barTime := time.Time(agg.Timestamp).UTC()

		err := c.writer.Write(types.PriceRecord{
			Time:  barTime,
			Open:  agg.Open,
			High:  agg.High,
			Low:   agg.Low,
			Close: agg.Close,
		})
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to write data", err)
		}

		reportProgress(onProgress, barTime.Sub(startDate).Seconds(), total, fmt.Sprintf("Downloading %s", ticker))
	}

	if err := iter.Err(); err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "error iterating polygon aggregates", err)
	}

	outputPath, err := c.writer.Finalize()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to finalize writer", err)
	}

	return outputPath, nil
}
