package marketdata

import (
	"sort"

	"github.com/rxtech-lab/argo-ta/internal/strategy"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/marketdata/provider"
)

// ProviderInfo contains metadata about a market data provider.
type ProviderInfo struct {
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Description  string `json:"description"`
	RequiresAuth bool   `json:"requiresAuth"`
}

// DownloadConfig is a parsed download configuration of one provider.
type DownloadConfig interface {
	Validate() error
	ToDownloadParams() (DownloadParams, error)
	ToClientConfig(dataPath string) ClientConfig
}

// providerRegistry holds metadata about all supported providers.
var providerRegistry = map[provider.ProviderType]ProviderInfo{
	provider.ProviderPolygon: {
		Name:         string(provider.ProviderPolygon),
		DisplayName:  "Polygon.io",
		Description:  "US stock market data provider with historical OHLC bars",
		RequiresAuth: true,
	},
	provider.ProviderBinance: {
		Name:         string(provider.ProviderBinance),
		DisplayName:  "Binance",
		Description:  "Cryptocurrency exchange with klines for crypto trading pairs",
		RequiresAuth: false,
	},
}

// GetSupportedProviders returns the names of all supported providers in alphabetical order.
func GetSupportedProviders() []string {
	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, string(providerType))
	}

	sort.Strings(providers)

	return providers
}

// GetProviderInfo returns metadata for a specific provider.
func GetProviderInfo(providerName string) (ProviderInfo, error) {
	info, exists := providerRegistry[provider.ProviderType(providerName)]
	if !exists {
		return ProviderInfo{}, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider: %s", providerName)
	}

	return info, nil
}

// GetDownloadConfigSchema returns the JSON schema for a provider's download configuration.
func GetDownloadConfigSchema(providerName string) (string, error) {
	switch provider.ProviderType(providerName) {
	case provider.ProviderPolygon:
		//nolint:exhaustruct // Empty struct is intentional for schema generation
		return strategy.ToJSONSchema(PolygonDownloadConfig{})
	case provider.ProviderBinance:
		//nolint:exhaustruct // Empty struct is intentional for schema generation
		return strategy.ToJSONSchema(BinanceDownloadConfig{})
	default:
		return "", errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider: %s", providerName)
	}
}

// ParseDownloadConfig parses and validates a JSON configuration string for the given provider.
func ParseDownloadConfig(providerName string, jsonConfig string) (DownloadConfig, error) {
	var (
		config DownloadConfig
		err    error
	)

	switch provider.ProviderType(providerName) {
	case provider.ProviderPolygon:
		config, err = ParsePolygonConfig(jsonConfig)
	case provider.ProviderBinance:
		config, err = ParseBinanceConfig(jsonConfig)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider: %s", providerName)
	}

	if err != nil {
		return nil, err
	}

	return config, nil
}
