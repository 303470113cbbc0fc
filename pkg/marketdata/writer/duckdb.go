package writer

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-ta/internal/types"
)

// DuckDBWriter collects bars in an in-memory DuckDB table and exports them as a Parquet file
// with time, open, high, low and close columns, the layout the backtest data source reads.
type DuckDBWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	outputPath string
}

// NewDuckDBWriter creates a new DuckDBWriter that exports to outputPath.
func NewDuckDBWriter(outputPath string) MarketDataWriter {
	return &DuckDBWriter{
		outputPath: outputPath,
	}
}

// Initialize opens the database, creates the market_data table, begins a transaction
// and prepares the insert statement. It is a no-op on an initialized writer.
func (w *DuckDBWriter) Initialize() (err error) {
	if w.db != nil {
		return nil
	}

	w.db, err = sql.Open("duckdb", ":memory:")
	if err != nil {
		return fmt.Errorf("failed to open DuckDB connection: %w", err)
	}

	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS market_data (
			time TIMESTAMP,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE
		)
	`)
	if err != nil {
		w.closeDB()

		return fmt.Errorf("failed to create table: %w", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.closeDB()

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	insert, _, err := squirrel.Insert("market_data").
		Columns("time", "open", "high", "low", "close").
		Values(nil, nil, nil, nil, nil).
		ToSql()
	if err != nil {
		w.tx.Rollback()
		w.closeDB()

		return fmt.Errorf("failed to build insert statement: %w", err)
	}

	w.stmt, err = w.tx.Prepare(insert)
	if err != nil {
		w.tx.Rollback()
		w.tx = nil
		w.closeDB()

		return fmt.Errorf("failed to prepare statement: %w", err)
	}

	return nil
}

// Write inserts a single bar within the open transaction.
func (w *DuckDBWriter) Write(record types.PriceRecord) error {
	if w.stmt == nil {
		return fmt.Errorf("writer not initialized or statement is nil")
	}

	_, err := w.stmt.Exec(
		record.Time.UTC(),
		record.Open,
		record.High,
		record.Low,
		record.Close,
	)
	if err != nil {
		return fmt.Errorf("failed to insert data: %w", err)
	}

	return nil
}

// Finalize commits the transaction and exports the bars to Parquet, ordered by time with one bar per timestamp.
func (w *DuckDBWriter) Finalize() (outputPath string, err error) {
	if w.tx == nil {
		return "", fmt.Errorf("writer not initialized or transaction is nil")
	}

	w.stmt.Close()
	w.stmt = nil

	if err = w.tx.Commit(); err != nil {
		w.tx = nil

		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	w.tx = nil

	if err := os.MkdirAll(filepath.Dir(w.outputPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	query, _, err := squirrel.Select("time", "open", "high", "low", "close").
		Options("DISTINCT ON (time)").
		From("market_data").
		OrderBy("time").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build export query: %w", err)
	}

	// Squirrel doesn't support COPY
	quoted := strings.ReplaceAll(w.outputPath, "'", "''")
	if _, err := w.db.Exec(fmt.Sprintf(`COPY (%s) TO '%s' (FORMAT PARQUET)`, query, quoted)); err != nil {
		return "", fmt.Errorf("failed to export to Parquet: %w", err)
	}

	return w.outputPath, nil
}

// Close releases the statement, rolls back an unfinished transaction and closes the database.
func (w *DuckDBWriter) Close() error {
	var closeErrors []error

	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Errorf("failed to close statement: %w", err))
		}

		w.stmt = nil
	}

	if w.tx != nil {
		if err := w.tx.Rollback(); err != nil {
			closeErrors = append(closeErrors, fmt.Errorf("failed to rollback transaction: %w", err))
		}

		w.tx = nil
	}

	if err := w.closeDB(); err != nil {
		closeErrors = append(closeErrors, err)
	}

	return errors.Join(closeErrors...)
}

// GetOutputPath returns the Parquet file the writer exports to.
func (w *DuckDBWriter) GetOutputPath() string {
	return w.outputPath
}

func (w *DuckDBWriter) closeDB() error {
	if w.db == nil {
		return nil
	}

	err := w.db.Close()
	w.db = nil

	if err != nil {
		return fmt.Errorf("failed to close db connection: %w", err)
	}

	return nil
}
