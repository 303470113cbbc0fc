package strategy

import (
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"gopkg.in/yaml.v3"
)

type builder struct {
	schema func() (string, error)
	build  func(config []byte) (Strategy, error)
}

var builders = map[string]builder{
	"MinimumOrder": {
		schema: func() (string, error) { return ToJSONSchema(MinimumOrderConfig{}) },
		build: func(config []byte) (Strategy, error) {
			cfg, err := decodeConfig[MinimumOrderConfig](config)
			if err != nil {
				return nil, err
			}

			return NewMinimumOrderStrategy(cfg), nil
		},
	},
	"SMACrossover": {
		schema: func() (string, error) { return ToJSONSchema(SMACrossoverConfig{}) },
		build: func(config []byte) (Strategy, error) {
			cfg, err := decodeConfig[SMACrossoverConfig](config)
			if err != nil {
				return nil, err
			}

			return NewSMACrossoverStrategy(cfg), nil
		},
	},
	"DollarCostAveraging": {
		schema: func() (string, error) { return ToJSONSchema(DollarCostAveragingConfig{}) },
		build: func(config []byte) (Strategy, error) {
			cfg, err := decodeConfig[DollarCostAveragingConfig](config)
			if err != nil {
				return nil, err
			}

			return NewDollarCostAveragingStrategy(cfg), nil
		},
	},
}

// Available returns the names of the bundled strategies in alphabetical order.
func Available() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// New creates the bundled strategy called name from its YAML config.
func New(name string, config []byte) (Strategy, error) {
	b, ok := builders[name]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnsupportedStrategy, "unknown strategy %q, available: %v", name, Available())
	}

	return b.build(config)
}

// ConfigSchema returns the JSON schema of the config of the bundled strategy called name.
func ConfigSchema(name string) (string, error) {
	b, ok := builders[name]
	if !ok {
		return "", errors.Newf(errors.ErrCodeUnsupportedStrategy, "unknown strategy %q, available: %v", name, Available())
	}

	return b.schema()
}

func decodeConfig[T any](config []byte) (T, error) {
	var cfg T

	if err := yaml.Unmarshal(config, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse strategy config", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid strategy config", err)
	}

	return cfg, nil
}
