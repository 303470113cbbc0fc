package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	engine "github.com/rxtech-lab/argo-ta/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-ta/internal/strategy"
	"gopkg.in/yaml.v2"
)

const (
	configDir  = "./config"
	schemaName = "backtest-engine-v1-config.json"
	sampleName = "backtest-engine-v1-config.yaml"
)

// sampleConfig mirrors BacktestEngineV1Config with plain optional times so it marshals cleanly.
type sampleConfig struct {
	InitialFunds   float64    `yaml:"initial_funds"`
	InitialBalance float64    `yaml:"initial_balance"`
	MinAmount      float64    `yaml:"min_amount"`
	Indicators     []string   `yaml:"indicators"`
	StartTime      *time.Time `yaml:"start_time,omitempty"`
	EndTime        *time.Time `yaml:"end_time,omitempty"`
	ResultsFolder  string     `yaml:"results_folder"`
	LogLevel       string     `yaml:"log_level"`
}

func toSampleConfig(config engine.BacktestEngineV1Config) sampleConfig {
	sample := sampleConfig{
		InitialFunds:   config.InitialFunds,
		InitialBalance: config.InitialBalance,
		MinAmount:      config.MinAmount,
		Indicators:     config.Indicators,
		ResultsFolder:  config.ResultsFolder,
		LogLevel:       config.LogLevel,
	}

	if sample.Indicators == nil {
		sample.Indicators = []string{}
	}

	if config.StartTime.IsSome() {
		start := config.StartTime.Unwrap()
		sample.StartTime = &start
	}

	if config.EndTime.IsSome() {
		end := config.EndTime.Unwrap()
		sample.EndTime = &end
	}

	return sample
}

func validatePaths(schemaPath, sampleConfigPath string) error {
	var problems []string

	if schemaPath == "" {
		problems = append(problems, "schema path cannot be empty")
	}

	if sampleConfigPath == "" {
		problems = append(problems, "sample config path cannot be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid paths: %s", strings.Join(problems, ", "))
	}

	return nil
}

func validateSchemaName(name string) error {
	if name == "" {
		return fmt.Errorf("schema name cannot be empty")
	}

	if filepath.Ext(name) != ".json" {
		return fmt.Errorf("schema name %q must have .json extension", name)
	}

	return nil
}

func getSchemaReference(name string) string {
	return "# yaml-language-server: $schema=" + name + "\n"
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// generateSchemaFile writes the JSON schema of the engine config to schemaPath.
func generateSchemaFile(config engine.BacktestEngineV1Config, schemaPath string) error {
	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	return writeFile(schemaPath, []byte(schemaJSON))
}

// generateSampleConfig writes config as YAML to samplePath unless the file already exists.
func generateSampleConfig(config engine.BacktestEngineV1Config, samplePath string, schemaName string) error {
	if _, err := os.Stat(samplePath); err == nil {
		return nil
	}

	yamlBytes, err := yaml.Marshal(toSampleConfig(config))
	if err != nil {
		return fmt.Errorf("failed to marshal sample config to yaml: %w", err)
	}

	// add the schema reference to the beginning of the file
	yamlBytes = append([]byte(getSchemaReference(schemaName)), yamlBytes...)

	return writeFile(samplePath, yamlBytes)
}

// generateStrategySchemas writes the config schema of every built-in strategy to dir.
func generateStrategySchemas(dir string) ([]string, error) {
	paths := make([]string, 0, len(strategy.Available()))

	for _, name := range strategy.Available() {
		schema, err := strategy.ConfigSchema(name)
		if err != nil {
			return nil, fmt.Errorf("failed to generate schema of %s: %w", name, err)
		}

		path := filepath.Join(dir, "strategy-"+strings.ToLower(name)+".json")
		if err := writeFile(path, []byte(schema)); err != nil {
			return nil, err
		}

		paths = append(paths, path)
	}

	return paths, nil
}

func main() {
	// Create a config instance
	config := engine.EmptyConfig()

	schemaPath := filepath.Join(configDir, schemaName)
	sampleConfigPath := filepath.Join(configDir, sampleName)

	if err := validatePaths(schemaPath, sampleConfigPath); err != nil {
		log.Fatal(err)
	}

	if err := validateSchemaName(schemaName); err != nil {
		log.Fatal(err)
	}

	if err := generateSchemaFile(config, schemaPath); err != nil {
		log.Fatalf("Failed to generate schema: %v", err)
	}

	if err := generateSampleConfig(config, sampleConfigPath, schemaName); err != nil {
		log.Fatalf("Failed to generate sample config: %v", err)
	}

	strategySchemas, err := generateStrategySchemas(configDir)
	if err != nil {
		log.Fatalf("Failed to generate strategy schemas: %v", err)
	}

	log.Printf("Schema successfully generated at %s", schemaPath)
	log.Printf("Strategy schemas generated: %s", strings.Join(strategySchemas, ", "))
}
