package provider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/marketdata/writer"
)

// binancePageSize is the number of klines Binance returns per request by default.
const binancePageSize = 500

// BinanceAPIClient is the part of the Binance REST client used for downloads.
type BinanceAPIClient interface {
	NewKlinesService() BinanceKlinesService
}

// BinanceKlinesService builds and executes a klines request.
type BinanceKlinesService interface {
	Symbol(symbol string) BinanceKlinesService
	Interval(interval string) BinanceKlinesService
	StartTime(startTime int64) BinanceKlinesService
	EndTime(endTime int64) BinanceKlinesService
	Do(ctx context.Context) ([]*binance.Kline, error)
}

type binanceClientWrapper struct {
	client *binance.Client
}

func (w *binanceClientWrapper) NewKlinesService() BinanceKlinesService {
	return &binanceKlinesServiceWrapper{service: w.client.NewKlinesService()}
}

type binanceKlinesServiceWrapper struct {
	service *binance.KlinesService
}

func (w *binanceKlinesServiceWrapper) Symbol(symbol string) BinanceKlinesService {
	w.service.Symbol(symbol)

	return w
}

func (w *binanceKlinesServiceWrapper) Interval(interval string) BinanceKlinesService {
	w.service.Interval(interval)

	return w
}

func (w *binanceKlinesServiceWrapper) StartTime(startTime int64) BinanceKlinesService {
	w.service.StartTime(startTime)

	return w
}

func (w *binanceKlinesServiceWrapper) EndTime(endTime int64) BinanceKlinesService {
	w.service.EndTime(endTime)

	return w
}

func (w *binanceKlinesServiceWrapper) Do(ctx context.Context) ([]*binance.Kline, error) {
	return w.service.Do(ctx)
}

type BinanceClient struct {
	apiClient BinanceAPIClient
	writer    writer.MarketDataWriter
}

// NewBinanceClient creates a client for the public Binance market data API. No credentials are needed.
func NewBinanceClient() (Provider, error) {
	return NewBinanceClientWithAPI(&binanceClientWrapper{client: binance.NewClient("", "")}), nil
}

// NewBinanceClientWithAPI creates a client on top of the given API client.
func NewBinanceClientWithAPI(apiClient BinanceAPIClient) *BinanceClient {
	return &BinanceClient{
		apiClient: apiClient,
		writer:    nil,
	}
}

func (c *BinanceClient) ConfigWriter(w writer.MarketDataWriter) {
	c.writer = w
}

// Download downloads the klines of ticker between startDate and endDate from Binance, one page at a time.
func (c *BinanceClient) Download(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, multiplier int, timespan models.Timespan, onProgress OnDownloadProgress) (path string, err error) {
	interval, err := convertTimespanToBinanceInterval(timespan, multiplier)
	if err != nil {
		return "", err
	}

	if c.writer == nil {
		return "", errors.New(errors.ErrCodeInvalidConfiguration, "writer is not configured")
	}

	if err := c.writer.Initialize(); err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to initialize writer", err)
	}

	// Binance API uses milliseconds for timestamps
	startTimeMillis := startDate.UnixMilli()
	endTimeMillis := endDate.UnixMilli()
	currentStartTime := startTimeMillis

	for {
		klines, err := c.apiClient.NewKlinesService().
			Symbol(ticker).
			Interval(interval).
			StartTime(currentStartTime).
			EndTime(endTimeMillis).
			Do(ctx)
		if err != nil {
			return "", c.abort(errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to fetch klines from Binance", err))
		}

		reportProgress(onProgress, float64(currentStartTime-startTimeMillis), float64(endTimeMillis-startTimeMillis),
			fmt.Sprintf("Downloading %s klines from Binance", ticker))

		if err := processKlines(c.writer, klines); err != nil {
			return "", c.abort(err)
		}

		// a short page is the last one
		if len(klines) < binancePageSize {
			break
		}

		// the close time of the last kline + 1ms starts the next page without duplicates
		currentStartTime = klines[len(klines)-1].CloseTime + 1
		if currentStartTime >= endTimeMillis {
			break
		}
	}

	outputPath, err := c.writer.Finalize()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to finalize writer", err)
	}

	return outputPath, nil
}

// abort finalizes the writer after a failed page, keeping the bars written so far.
func (c *BinanceClient) abort(cause error) error {
	if _, finalizeErr := c.writer.Finalize(); finalizeErr != nil {
		return fmt.Errorf("%w; also failed to finalize writer: %v", cause, finalizeErr)
	}

	return cause
}

// processKlines converts Binance klines to price records and writes them.
func processKlines(w writer.MarketDataWriter, klines []*binance.Kline) error {
	for _, k := range klines {
		record, err := klineToRecord(k)
		if err != nil {
			return err
		}

		if err := w.Write(record); err != nil {
			return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to write market data", err)
		}
	}

	return nil
}

func klineToRecord(k *binance.Kline) (types.PriceRecord, error) {
	prices := [4]float64{}

	for i, text := range [4]string{k.Open, k.High, k.Low, k.Close} {
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return types.PriceRecord{}, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "invalid price %q in kline at %d", text, k.OpenTime)
		}

		prices[i] = value
	}

	return types.PriceRecord{
		// the open time stamps the bar
		Time:  time.UnixMilli(k.OpenTime).UTC(),
		Open:  prices[0],
		High:  prices[1],
		Low:   prices[2],
		Close: prices[3],
	}, nil
}

// convertTimespanToBinanceInterval converts the polygon timespan and multiplier to a Binance interval string.
// Binance intervals: 1s, 1m, 3m, 5m, 15m, 30m, 1h, 2h, 4h, 6h, 8h, 12h, 1d, 3d, 1w, 1M
// Ref: https://binance-docs.github.io/apidocs/spot/en/#kline-candlestick-data
func convertTimespanToBinanceInterval(timespan models.Timespan, multiplier int) (string, error) {
	switch timespan {
	case models.Second:
		if multiplier == 1 {
			return "1s", nil
		}

		return "", errors.Newf(errors.ErrCodeInvalidTimespan, "unsupported second multiplier for Binance: %d", multiplier)
	case models.Minute:
		return fmt.Sprintf("%dm", multiplier), nil
	case models.Hour:
		return fmt.Sprintf("%dh", multiplier), nil
	case models.Day:
		return fmt.Sprintf("%dd", multiplier), nil
	case models.Week:
		if multiplier == 1 {
			return "1w", nil
		}

		return "", errors.Newf(errors.ErrCodeInvalidTimespan, "unsupported weekly multiplier for Binance: %d", multiplier)
	case models.Month:
		if multiplier == 1 {
			return "1M", nil
		}

		return "", errors.Newf(errors.ErrCodeInvalidTimespan, "unsupported monthly multiplier for Binance: %d", multiplier)
	default:
		return "", errors.Newf(errors.ErrCodeInvalidTimespan, "unsupported timespan for Binance: %s", timespan)
	}
}
