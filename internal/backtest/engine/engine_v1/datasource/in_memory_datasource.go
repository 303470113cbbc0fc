package datasource

import (
	"sort"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-ta/internal/types"
)

// InMemoryDataSource serves price records held in memory.
// It is used by tests and by callers that already own their records.
type InMemoryDataSource struct {
	records []types.PriceRecord
}

// NewInMemoryDataSource creates a data source over a sorted copy of records.
func NewInMemoryDataSource(records []types.PriceRecord) *InMemoryDataSource {
	sorted := make([]types.PriceRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	return &InMemoryDataSource{records: sorted}
}

// bounds returns the index range of records within the optional bounds.
func (ds *InMemoryDataSource) bounds(start optional.Option[time.Time], end optional.Option[time.Time]) (int, int) {
	from, to := 0, len(ds.records)

	if start.IsSome() {
		from = sort.Search(len(ds.records), func(i int) bool {
			return !ds.records[i].Time.Before(start.Unwrap())
		})
	}

	if end.IsSome() {
		to = sort.Search(len(ds.records), func(i int) bool {
			return ds.records[i].Time.After(end.Unwrap())
		})
	}

	return from, max(from, to)
}

// ReadAll implements DataSource.
func (ds *InMemoryDataSource) ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.PriceRecord, error) bool) {
	return func(yield func(types.PriceRecord, error) bool) {
		from, to := ds.bounds(start, end)

		for _, record := range ds.records[from:to] {
			if !yield(record, nil) {
				return
			}
		}
	}
}

// Count implements DataSource.
func (ds *InMemoryDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	from, to := ds.bounds(start, end)

	return to - from, nil
}

// GetRange implements DataSource.
func (ds *InMemoryDataSource) GetRange(start time.Time, end time.Time, interval optional.Option[Interval]) ([]types.PriceRecord, error) {
	from, to := ds.bounds(optional.Some(start), optional.Some(end))
	window := ds.records[from:to]

	if interval.IsNone() {
		result := make([]types.PriceRecord, len(window))
		copy(result, window)

		return result, nil
	}

	minutes, err := getIntervalMinutes(interval.Unwrap())
	if err != nil {
		return nil, err
	}

	var result []types.PriceRecord

	for _, record := range window {
		bucket := bucketStart(record.Time, minutes)

		if n := len(result); n > 0 && result[n-1].Time.Equal(bucket) {
			last := &result[n-1]
			last.High = max(last.High, record.High)
			last.Low = min(last.Low, record.Low)
			last.Close = record.Close

			continue
		}

		result = append(result, types.PriceRecord{
			Time:  bucket,
			Open:  record.Open,
			High:  record.High,
			Low:   record.Low,
			Close: record.Close,
		})
	}

	return result, nil
}

// Close implements DataSource.
func (ds *InMemoryDataSource) Close() error {
	return nil
}
