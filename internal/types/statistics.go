package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type OrderCounts struct {
	// Rows on which the strategy proposed an order.
	Proposed int `yaml:"proposed" json:"proposed"`
	// Orders applied to funds and balance.
	Filled int `yaml:"filled" json:"filled"`
	// Orders rejected for any reason.
	Rejected int `yaml:"rejected" json:"rejected"`
	// Rejections because the amount was below the configured minimum.
	BelowMinAmount int `yaml:"below_min_amount" json:"below_min_amount"`
	// Buys rejected because the notional exceeded available funds.
	InsufficientFunds int `yaml:"insufficient_funds" json:"insufficient_funds"`
	// Sells rejected because the amount exceeded the held balance.
	InsufficientBalance int `yaml:"insufficient_balance" json:"insufficient_balance"`
}

type BacktestStats struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// EngineVersion is the version of the engine that produced the run.
	EngineVersion string `yaml:"engine_version" json:"engine_version"`
	// Strategy is the name of the strategy that produced the run.
	Strategy string `yaml:"strategy" json:"strategy"`
	// First and last timestamps of the simulated range.
	StartTime time.Time `yaml:"start_time" json:"start_time"`
	EndTime   time.Time `yaml:"end_time" json:"end_time"`
	// Number of simulated rows.
	Rows int `yaml:"rows" json:"rows"`
	// Orders summarises the order outcomes.
	Orders OrderCounts `yaml:"orders" json:"orders"`
	// Final accounting snapshot.
	FinalFunds         float64 `yaml:"final_funds" json:"final_funds"`
	FinalBalance       float64 `yaml:"final_balance" json:"final_balance"`
	FinalWorth         float64 `yaml:"final_worth" json:"final_worth"`
	TotalFundsOverTime float64 `yaml:"total_funds_over_time" json:"total_funds_over_time"`
	FinalBuyAndHold    float64 `yaml:"final_buy_and_hold" json:"final_buy_and_hold"`
	// Return is FinalWorth / TotalFundsOverTime - 1. Zero when no capital was ever supplied.
	Return float64 `yaml:"return" json:"return"`
	// BuyAndHoldReturn is FinalBuyAndHold / TotalFundsOverTime - 1.
	BuyAndHoldReturn float64 `yaml:"buy_and_hold_return" json:"buy_and_hold_return"`
	// MaxDrawdown is the largest peak-to-trough fall of worth, as a fraction of the peak.
	MaxDrawdown float64 `yaml:"max_drawdown" json:"max_drawdown"`
	// ResultsFilePath is the path to the per-row results parquet file, if one was written.
	ResultsFilePath string `yaml:"results_file_path,omitempty" json:"results_file_path,omitempty"`
}

func WriteBacktestStats(path string, stats []BacktestStats) error {
	data, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal backtest stats to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backtest stats to file: %w", err)
	}

	return nil
}

// ReadBacktestStats reads the stats written by WriteBacktestStats.
func ReadBacktestStats(path string) ([]BacktestStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backtest stats file: %w", err)
	}

	var stats []BacktestStats
	if err := yaml.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal backtest stats: %w", err)
	}

	return stats, nil
}
