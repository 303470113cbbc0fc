// Package series holds the time-indexed price table that backtests run over.
package series

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rxtech-lab/argo-ta/internal/indicator"
	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Series is an ordered table of price records plus indicator columns keyed by label.
// Columns are computed once in New and never change afterwards, so a Series can be
// shared by any number of concurrent backtests.
type Series struct {
	prices  *indicator.Prices
	labels  []string
	columns map[string][]float64
}

// New validates the records and computes every requested indicator column.
// Columns are computed concurrently; the first failing label cancels the rest and is returned.
// A nil registry uses indicator.NewIndicatorRegistry().
func New(ctx context.Context, records []types.PriceRecord, labels []string, registry indicator.IndicatorRegistry) (*Series, error) {
	if err := validateOrder(records); err != nil {
		return nil, err
	}

	if registry == nil {
		registry = indicator.NewIndicatorRegistry()
	}

	s := &Series{
		prices:  indicator.PricesFromRecords(records),
		labels:  uniqueLabels(labels),
		columns: make(map[string][]float64, len(labels)),
	}

	computed := make([]indicator.Column, len(s.labels))
	group, groupCtx := errgroup.WithContext(ctx)

	for i, label := range s.labels {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			column, err := registry.Compute(label, s.prices)
			if err != nil {
				return err
			}

			computed[i] = column

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	for _, column := range computed {
		s.columns[column.Label] = column.Values
	}

	return s, nil
}

func validateOrder(records []types.PriceRecord) error {
	for i := 1; i < len(records); i++ {
		if !records[i].Time.After(records[i-1].Time) {
			return errors.Newf(errors.ErrCodeUnsortedSeries,
				"records must be sorted by strictly increasing time: row %d (%s) follows %s",
				i, records[i].Time.Format(time.RFC3339), records[i-1].Time.Format(time.RFC3339))
		}
	}

	return nil
}

func uniqueLabels(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))

	for _, label := range labels {
		if _, ok := seen[label]; ok {
			continue
		}

		seen[label] = struct{}{}
		out = append(out, label)
	}

	return out
}

// Len returns the number of rows.
func (s *Series) Len() int {
	return s.prices.Len()
}

// Times implements indicator.Input.
func (s *Series) Times() []time.Time {
	return s.prices.Times()
}

// Opens implements indicator.Input.
func (s *Series) Opens() []float64 {
	return s.prices.Opens()
}

// Highs implements indicator.Input.
func (s *Series) Highs() []float64 {
	return s.prices.Highs()
}

// Lows implements indicator.Input.
func (s *Series) Lows() []float64 {
	return s.prices.Lows()
}

// Closes implements indicator.Input.
func (s *Series) Closes() []float64 {
	return s.prices.Closes()
}

// Labels returns the indicator labels in request order.
func (s *Series) Labels() []string {
	labels := make([]string, len(s.labels))
	copy(labels, s.labels)

	return labels
}

// Column returns a copy of the indicator column with the given label.
func (s *Series) Column(label string) ([]float64, bool) {
	values, ok := s.columns[label]
	if !ok {
		return nil, false
	}

	out := make([]float64, len(values))
	copy(out, values)

	return out, true
}

// HasColumn reports whether the series carries the indicator column label.
func (s *Series) HasColumn(label string) bool {
	_, ok := s.columns[label]

	return ok
}

// Record returns the raw price record at row i.
func (s *Series) Record(i int) types.PriceRecord {
	return types.PriceRecord{
		Time:  s.prices.Time[i],
		Open:  s.prices.Open[i],
		High:  s.prices.High[i],
		Low:   s.prices.Low[i],
		Close: s.prices.Close[i],
	}
}

// Row returns row i together with access to its indicator values.
func (s *Series) Row(i int) Row {
	return Row{
		Index:       i,
		PriceRecord: s.Record(i),
		series:      s,
	}
}

// IndexOf returns the first row whose time is at or after t.
// It returns Len() when every row is before t.
func (s *Series) IndexOf(t time.Time) int {
	times := s.prices.Time

	return sort.Search(len(times), func(i int) bool {
		return !times[i].Before(t)
	})
}

// IndexAfter returns the first row whose time is strictly after t.
func (s *Series) IndexAfter(t time.Time) int {
	times := s.prices.Time

	return sort.Search(len(times), func(i int) bool {
		return times[i].After(t)
	})
}

// Rows yields the rows in [start, end) in time order.
func (s *Series) Rows(start, end int) func(yield func(Row) bool) {
	return func(yield func(Row) bool) {
		for i := max(start, 0); i < min(end, s.Len()); i++ {
			if !yield(s.Row(i)) {
				return
			}
		}
	}
}

// Row is a single record of a Series. Strategies receive rows from the engine.
type Row struct {
	Index int
	types.PriceRecord
	series *Series
}

// Indicator returns the value of the indicator column label at this row.
// ok is false when the series has no such column; the value itself may be NaN during warm-up.
func (r Row) Indicator(label string) (value float64, ok bool) {
	if r.series == nil {
		return math.NaN(), false
	}

	values, ok := r.series.columns[label]
	if !ok {
		return math.NaN(), false
	}

	return values[r.Index], true
}

// Value returns the indicator value at this row, or NaN when it is missing or undefined.
func (r Row) Value(label string) float64 {
	value, _ := r.Indicator(label)

	return value
}

// Previous returns the row before this one, if any.
func (r Row) Previous() (Row, bool) {
	if r.series == nil || r.Index == 0 {
		return Row{}, false
	}

	return r.series.Row(r.Index - 1), true
}
