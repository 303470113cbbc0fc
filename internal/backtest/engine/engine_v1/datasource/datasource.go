package datasource

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
)

type Interval string

const (
	Interval1m  Interval = "1m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval1h  Interval = "1h"
	Interval4h  Interval = "4h"
	Interval6h  Interval = "6h"
	Interval8h  Interval = "8h"
	Interval12h Interval = "12h"
	Interval1d  Interval = "1d"
	Interval1w  Interval = "1w"
)

// DataSource supplies price records in ascending time order.
type DataSource interface {
	// ReadAll reads all the records within the optional bounds (both inclusive) and yields them to the caller
	ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.PriceRecord, error) bool)
	// GetRange returns the records in [start, end], resampled to interval when one is given
	GetRange(start time.Time, end time.Time, interval optional.Option[Interval]) ([]types.PriceRecord, error)
	// Count returns the number of records within the optional bounds
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// Close closes the data source and releases any resources
	Close() error
}

// ReadRecords drains ReadAll into a slice, stopping early when ctx is cancelled.
func ReadRecords(ctx context.Context, source DataSource, start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.PriceRecord, error) {
	var records []types.PriceRecord

	for record, err := range source.ReadAll(start, end) {
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read price records", err)
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, nil
}
