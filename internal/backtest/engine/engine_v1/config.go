package engine

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
)

// DefaultMinAmount is the smallest order amount the engine fills when none is configured.
const DefaultMinAmount = 0.001

type BacktestEngineV1Config struct {
	InitialFunds   float64                    `yaml:"initial_funds" json:"initial_funds" jsonschema:"title=Initial Funds,description=Liquid capital available at the first simulated row,minimum=0" validate:"gte=0"`
	InitialBalance float64                    `yaml:"initial_balance" json:"initial_balance" jsonschema:"title=Initial Balance,description=Quantity of the asset held at the first simulated row,minimum=0" validate:"gte=0"`
	MinAmount      float64                    `yaml:"min_amount" json:"min_amount" jsonschema:"title=Minimum Amount,description=Orders for fewer units are rejected,minimum=0,default=0.001" validate:"gte=0"`
	Indicators     []string                   `yaml:"indicators" json:"indicators" jsonschema:"title=Indicators,description=Indicator columns to compute such as sma_20 or ema_10"`
	StartTime      optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional first timestamp of the simulated range"`
	EndTime        optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional last timestamp of the simulated range"`
	ResultsFolder  string                     `yaml:"results_folder" json:"results_folder" jsonschema:"title=Results Folder,description=Folder results are written to. Nothing is written when empty"`
	LogLevel       string                     `yaml:"log_level" json:"log_level" jsonschema:"title=Log Level,enum=debug,enum=info,enum=warn,enum=error,default=info" validate:"omitempty,oneof=debug info warn error"`
}

// UnmarshalYAML implements custom unmarshaling for BacktestEngineV1Config
func (c *BacktestEngineV1Config) UnmarshalYAML(unmarshal func(any) error) error {
	type Config struct {
		InitialFunds   float64    `yaml:"initial_funds"`
		InitialBalance float64    `yaml:"initial_balance"`
		MinAmount      *float64   `yaml:"min_amount"`
		Indicators     []string   `yaml:"indicators"`
		StartTime      *time.Time `yaml:"start_time"`
		EndTime        *time.Time `yaml:"end_time"`
		ResultsFolder  string     `yaml:"results_folder"`
		LogLevel       string     `yaml:"log_level"`
	}

	var config Config
	if err := unmarshal(&config); err != nil {
		return err
	}

	*c = EmptyConfig()
	c.InitialFunds = config.InitialFunds
	c.InitialBalance = config.InitialBalance
	c.Indicators = config.Indicators
	c.ResultsFolder = config.ResultsFolder

	if config.LogLevel != "" {
		c.LogLevel = config.LogLevel
	}

	if config.MinAmount != nil {
		c.MinAmount = *config.MinAmount
	}

	if config.StartTime != nil {
		c.StartTime = optional.Some(*config.StartTime)
	}

	if config.EndTime != nil {
		c.EndTime = optional.Some(*config.EndTime)
	}

	return nil
}

// Validate checks the value ranges and that the time range is not inverted.
func (c BacktestEngineV1Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestConfigError, "invalid backtest config", err)
	}

	if c.StartTime.IsSome() && c.EndTime.IsSome() && c.EndTime.Unwrap().Before(c.StartTime.Unwrap()) {
		return errors.Newf(errors.ErrCodeBacktestConfigError, "end_time %s is before start_time %s",
			c.EndTime.Unwrap().Format(time.RFC3339), c.StartTime.Unwrap().Format(time.RFC3339))
	}

	return nil
}

// GenerateSchema generates a JSON schema for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == reflect.TypeOf(optional.Option[time.Time]{}) {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}

			return nil
		},
	}

	// Generate schema from BacktestEngineV1Config struct
	schema := reflector.Reflect(c)

	// Set schema metadata
	schema.Title = "backtest-engine-v1-config"
	schema.Description = "Configuration schema for BacktestEngineV1"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// EmptyConfig returns a BacktestEngineV1Config with default values
func EmptyConfig() BacktestEngineV1Config {
	return BacktestEngineV1Config{
		InitialFunds:   0,
		InitialBalance: 0,
		MinAmount:      DefaultMinAmount,
		Indicators:     nil,
		StartTime:      optional.None[time.Time](),
		EndTime:        optional.None[time.Time](),
		ResultsFolder:  "",
		LogLevel:       "info",
	}
}
