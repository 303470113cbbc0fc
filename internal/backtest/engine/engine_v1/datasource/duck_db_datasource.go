package datasource

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-ta/internal/logger"
	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"go.uber.org/zap"
)

const (
	rawView   = "raw_price_data"
	priceView = "price_data"
)

var priceColumns = []string{"time", "open", "high", "low", "close"}

type DuckDBDataSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDataSource creates a new DuckDB data source instance with the specified database path.
// An empty path or ":memory:" keeps the database in memory.
// This is distinct from Initialize() which attaches a price file to the database.
func NewDataSource(path string, logger *logger.Logger) (*DuckDBDataSource, error) {
	if path == ":memory:" {
		path = ""
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	_, err = db.Exec(`SET threads=4;`)
	if err != nil {
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to configure duckdb", err)
	}

	return &DuckDBDataSource{
		db:     db,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize exposes the price file at path as the price_data view.
// Parquet and CSV files are supported. The time column may hold integer seconds or timestamps.
func (d *DuckDBDataSource) Initialize(path string) error {
	d.logger.Debug("Initializing DuckDB data source", zap.String("path", path))

	var reader string

	quoted := strings.ReplaceAll(path, "'", "''")

	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		reader = fmt.Sprintf("read_parquet('%s')", quoted)
	case ".csv":
		reader = fmt.Sprintf("read_csv_auto('%s', header=true)", quoted)
	default:
		return errors.Newf(errors.ErrCodeInvalidParameter, "unsupported price file %q: expected .parquet or .csv", path)
	}

	// Squirrel doesn't support CREATE VIEW
	_, err := d.db.Exec(fmt.Sprintf(`
		DROP VIEW IF EXISTS %s;
		DROP VIEW IF EXISTS %s;
		CREATE VIEW %s AS SELECT * FROM %s;
	`, priceView, rawView, rawView, reader))
	if err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to read %s", path)
	}

	timeType, err := d.columnType(rawView, "time")
	if err != nil {
		return err
	}

	timeExpr := "CAST(time AS TIMESTAMP)"
	if !strings.Contains(timeType, "TIMESTAMP") && !strings.Contains(timeType, "DATE") {
		// integer seconds since the epoch
		timeExpr = "epoch_ms(CAST(time * 1000 AS BIGINT))"
	}

	_, err = d.db.Exec(fmt.Sprintf(`
		CREATE VIEW %s AS
		SELECT %s AS time,
			CAST(open AS DOUBLE) AS open,
			CAST(high AS DOUBLE) AS high,
			CAST(low AS DOUBLE) AS low,
			CAST(close AS DOUBLE) AS close
		FROM %s;
	`, priceView, timeExpr, rawView))
	if err != nil {
		return errors.Wrapf(errors.ErrCodeColumnNotFound, err, "%s must provide time, open, high, low and close columns", path)
	}

	return nil
}

func (d *DuckDBDataSource) columnType(table string, column string) (string, error) {
	rows, err := d.db.Query(fmt.Sprintf("DESCRIBE %s", table))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeQueryFailed, "failed to inspect columns", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, dataType, null, key, defaultValue, extra sql.NullString
		if err := rows.Scan(&name, &dataType, &null, &key, &defaultValue, &extra); err != nil {
			return "", errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan column", err)
		}

		if strings.EqualFold(name.String, column) {
			return strings.ToUpper(dataType.String), nil
		}
	}

	if err := rows.Err(); err != nil {
		return "", errors.Wrap(errors.ErrCodeQueryFailed, "error iterating columns", err)
	}

	return "", errors.Newf(errors.ErrCodeColumnNotFound, "column %q not found", column)
}

func (d *DuckDBDataSource) selectRange(start optional.Option[time.Time], end optional.Option[time.Time]) squirrel.SelectBuilder {
	query := d.sq.Select(priceColumns...).From(priceView)

	if start.IsSome() {
		query = query.Where(squirrel.GtOrEq{"time": start.Unwrap().UTC()})
	}

	if end.IsSome() {
		query = query.Where(squirrel.LtOrEq{"time": end.Unwrap().UTC()})
	}

	return query
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	query, args, err := d.selectRange(start, end).RemoveColumns().Column("COUNT(*)").ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	var count int
	if err := d.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count price records", err)
	}

	return count, nil
}

// ReadAll implements DataSource.
func (d *DuckDBDataSource) ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.PriceRecord, error) bool) {
	return func(yield func(types.PriceRecord, error) bool) {
		d.logger.Debug("Reading all price records from DuckDB")

		query, args, err := d.selectRange(start, end).OrderBy("time ASC").ToSql()
		if err != nil {
			yield(types.PriceRecord{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err))

			return
		}

		rows, err := d.db.Query(query, args...)
		if err != nil {
			yield(types.PriceRecord{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query price records", err))

			return
		}
		defer rows.Close()

		for rows.Next() {
			record, err := scanRecord(rows)
			if err != nil {
				yield(types.PriceRecord{}, err)

				return
			}

			if !yield(record, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(types.PriceRecord{}, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating rows", err))
		}
	}
}

// GetRange implements DataSource.
func (d *DuckDBDataSource) GetRange(start time.Time, end time.Time, interval optional.Option[Interval]) ([]types.PriceRecord, error) {
	query, args, err := d.buildGetRangeQuery(start, end, interval)
	if err != nil {
		return nil, err
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query price records", err)
	}
	defer rows.Close()

	result := make([]types.PriceRecord, 0, 1000)

	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}

		result = append(result, record)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating rows", err)
	}

	return result, nil
}

// buildGetRangeQuery constructs the SQL query for GetRange method.
func (d *DuckDBDataSource) buildGetRangeQuery(start time.Time, end time.Time, interval optional.Option[Interval]) (string, []any, error) {
	bounds := d.selectRange(optional.Some(start), optional.Some(end))

	if interval.IsNone() {
		query, args, err := bounds.OrderBy("time ASC").ToSql()
		if err != nil {
			return "", nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
		}

		return query, args, nil
	}

	minutes, err := getIntervalMinutes(interval.Unwrap())
	if err != nil {
		return "", nil, err
	}

	bucket := fmt.Sprintf("time_bucket(INTERVAL '%d minutes', time)", minutes)

	inner := bounds.RemoveColumns().Columns(
		bucket+" AS bucket_time",
		"time AS ts",
		"open",
		"high",
		"low",
		"close",
	)

	query, args, err := d.sq.
		Select(
			"bucket_time AS time",
			"arg_min(open, ts) AS open",
			"MAX(high) AS high",
			"MIN(low) AS low",
			"arg_max(close, ts) AS close",
		).
		FromSelect(inner, "buckets").
		GroupBy("bucket_time").
		OrderBy("bucket_time ASC").
		ToSql()
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	return query, args, nil
}

func scanRecord(rows *sql.Rows) (types.PriceRecord, error) {
	var (
		timestamp              time.Time
		open, high, low, close float64
	)

	if err := rows.Scan(&timestamp, &open, &high, &low, &close); err != nil {
		return types.PriceRecord{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan row", err)
	}

	return types.PriceRecord{
		Time:  timestamp.UTC(),
		Open:  open,
		High:  high,
		Low:   low,
		Close: close,
	}, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	if d.db != nil {
		return d.db.Close()
	}

	return nil
}
