package marketdata

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/marketdata/provider"
)

// BaseDownloadConfig is the part of a download request every provider shares.
// Dates are RFC3339 and interval is one of the supported timespans.
type BaseDownloadConfig struct {
	Ticker    string `json:"ticker" jsonschema:"title=Ticker,description=Symbol to download such as SPY or BTCUSDT,required" validate:"required"`
	StartDate string `json:"startDate" jsonschema:"title=Start Date,description=First bar of the range (RFC3339),format=date-time,required" validate:"required"`
	EndDate   string `json:"endDate" jsonschema:"title=End Date,description=Last bar of the range (RFC3339),format=date-time,required" validate:"required"`
	Interval  string `json:"interval" jsonschema:"title=Interval,description=Bar interval,required,enum=1s,enum=1m,enum=3m,enum=5m,enum=15m,enum=30m,enum=1h,enum=2h,enum=4h,enum=6h,enum=8h,enum=12h,enum=1d,enum=3d,enum=1w,enum=1M" validate:"required"`
}

// PolygonDownloadConfig adds the API key Polygon requires.
type PolygonDownloadConfig struct {
	BaseDownloadConfig

	ApiKey string `json:"apiKey" jsonschema:"title=API Key,description=Polygon.io API key,required" validate:"required"`
}

// BinanceDownloadConfig needs nothing beyond the shared fields, public klines are unauthenticated.
type BinanceDownloadConfig struct {
	BaseDownloadConfig
}

func (c *BaseDownloadConfig) dateRange() (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, c.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "startDate must be RFC3339", err)
	}

	end, err := time.Parse(time.RFC3339, c.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "endDate must be RFC3339", err)
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, errors.Newf(errors.ErrCodeInvalidConfiguration, "endDate %s must be after startDate %s", c.EndDate, c.StartDate)
	}

	return start, end, nil
}

// Validate checks required fields, the date range and the interval.
func (c *BaseDownloadConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if _, _, err := c.dateRange(); err != nil {
		return err
	}

	if _, err := ParseTimespan(c.Interval); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid Interval %q", c.Interval)
	}

	return nil
}

func (c *PolygonDownloadConfig) Validate() error {
	if err := validator.New().StructPartial(c, "ApiKey"); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	return c.BaseDownloadConfig.Validate()
}

// ToDownloadParams resolves dates and interval into client parameters.
func (c *BaseDownloadConfig) ToDownloadParams() (DownloadParams, error) {
	start, end, err := c.dateRange()
	if err != nil {
		return DownloadParams{}, err
	}

	timespan, err := ParseTimespan(c.Interval)
	if err != nil {
		return DownloadParams{}, err
	}

	return DownloadParams{
		Ticker:     c.Ticker,
		StartDate:  start,
		EndDate:    end,
		Multiplier: timespan.Multiplier(),
		Timespan:   timespan.Timespan(),
	}, nil
}

func (c *PolygonDownloadConfig) ToClientConfig(dataPath string) ClientConfig {
	return ClientConfig{ProviderType: provider.ProviderPolygon, DataPath: dataPath, PolygonApiKey: c.ApiKey}
}

func (c *BinanceDownloadConfig) ToClientConfig(dataPath string) ClientConfig {
	return ClientConfig{ProviderType: provider.ProviderBinance, DataPath: dataPath}
}

// parseConfig decodes jsonConfig into a T and validates it.
func parseConfig[T any, P interface {
	*T
	DownloadConfig
}](jsonConfig string) (*T, error) {
	config := new(T)
	if err := json.Unmarshal([]byte(jsonConfig), config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse JSON config", err)
	}

	if err := P(config).Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func ParsePolygonConfig(jsonConfig string) (*PolygonDownloadConfig, error) {
	return parseConfig[PolygonDownloadConfig](jsonConfig)
}

func ParseBinanceConfig(jsonConfig string) (*BinanceDownloadConfig, error) {
	return parseConfig[BinanceDownloadConfig](jsonConfig)
}
