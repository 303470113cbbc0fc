// Package writer persists backtest results to disk.
//
// Every run gets its own folder <results>/<strategy>_<run id> holding results.parquet,
// one row per simulated record, and stats.yaml with the run summary.
package writer

import (
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/rxtech-lab/argo-ta/internal/backtest/engine"
	"github.com/rxtech-lab/argo-ta/internal/logger"
	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"go.uber.org/zap"
)

const (
	ResultsFileName = "results.parquet"
	StatsFileName   = "stats.yaml"
)

// ResultRecord is the Parquet schema of one result row.
// Decision, Amount, Status and Reason are null on rows without an order.
type ResultRecord struct {
	Time               int64    `parquet:"time,timestamp(millisecond)"` // Unix ms
	Close              float64  `parquet:"close"`
	Decision           *string  `parquet:"decision,optional"`
	Amount             *float64 `parquet:"amount,optional"`
	Status             *string  `parquet:"status,optional"`
	Reason             *string  `parquet:"reason,optional"`
	Funds              float64  `parquet:"funds"`
	Balance            float64  `parquet:"balance"`
	Worth              float64  `parquet:"worth"`
	BuyHold            float64  `parquet:"buy_hold"`
	TotalFundsOverTime float64  `parquet:"total_funds_over_time"`
}

// ResultWriter persists a result and returns the folder it was written to.
type ResultWriter interface {
	Write(result *engine.Result) (string, error)
}

// FileResultWriter writes results below a root folder.
type FileResultWriter struct {
	folder string
	log    *logger.Logger
}

// NewFileResultWriter creates a writer rooted at folder.
func NewFileResultWriter(folder string, log *logger.Logger) *FileResultWriter {
	return &FileResultWriter{folder: folder, log: log}
}

// Write implements ResultWriter.
func (w *FileResultWriter) Write(result *engine.Result) (string, error) {
	runFolder := filepath.Join(w.folder, result.Strategy+"_"+result.ID)

	if err := os.MkdirAll(runFolder, 0755); err != nil {
		return "", errors.Wrapf(errors.ErrCodeResultWriteFailed, err, "failed to create %s", runFolder)
	}

	resultsPath := filepath.Join(runFolder, ResultsFileName)
	if err := parquet.WriteFile(resultsPath, ToRecords(result)); err != nil {
		return "", errors.Wrapf(errors.ErrCodeResultWriteFailed, err, "failed to write %s", resultsPath)
	}

	stats := result.Stats()
	stats.ResultsFilePath = resultsPath

	statsPath := filepath.Join(runFolder, StatsFileName)
	if err := types.WriteBacktestStats(statsPath, []types.BacktestStats{stats}); err != nil {
		return "", errors.Wrapf(errors.ErrCodeResultWriteFailed, err, "failed to write %s", statsPath)
	}

	w.log.Debug("Backtest results written",
		zap.String("strategy", result.Strategy),
		zap.String("folder", runFolder),
		zap.Int("rows", result.Len()),
	)

	return runFolder, nil
}

// ToRecords converts the rows of a result to their Parquet schema.
func ToRecords(result *engine.Result) []ResultRecord {
	records := make([]ResultRecord, len(result.Rows))

	for i, row := range result.Rows {
		record := ResultRecord{
			Time:               row.Time.UnixMilli(),
			Close:              row.Close,
			Funds:              row.Funds,
			Balance:            row.Balance,
			Worth:              row.Worth,
			BuyHold:            row.BuyHold,
			TotalFundsOverTime: row.TotalFundsOverTime,
		}

		if row.Order.IsSome() {
			order := row.Order.Unwrap()
			decision := string(order.Decision)
			status := string(order.Status)
			reason := order.Reason
			amount := order.Amount

			record.Decision = &decision
			record.Amount = &amount
			record.Status = &status
			record.Reason = &reason
		}

		records[i] = record
	}

	return records
}

// ReadResults reads a results.parquet file written by FileResultWriter.
func ReadResults(path string) ([]ResultRecord, error) {
	records, err := parquet.ReadFile[ResultRecord](path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataNotFound, err, "failed to read %s", path)
	}

	return records, nil
}
