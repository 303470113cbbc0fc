package indicator

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
)

// Input is the read-only view of a price series that indicators consume.
// Every slice has Len() elements and is sorted by time ascending.
type Input interface {
	Len() int
	Times() []time.Time
	Opens() []float64
	Highs() []float64
	Lows() []float64
	Closes() []float64
}

// Param is the parameter part of an indicator label.
// Period is set when the raw parameter is all digits, Token holds the raw text otherwise.
type Param struct {
	Raw    string
	Period optional.Option[int]
	Token  string
}

// PeriodParam builds an integer window parameter.
func PeriodParam(period int) Param {
	return Param{
		Raw:    itoa(period),
		Period: optional.Some(period),
		Token:  "",
	}
}

// TokenParam builds a string parameter such as a time offset alias.
func TokenParam(token string) Param {
	return Param{
		Raw:    token,
		Period: optional.None[int](),
		Token:  token,
	}
}

// IntPeriod returns the integer window or a configuration error if the parameter
// is not a positive integer.
func (p Param) IntPeriod(kind types.IndicatorKind) (int, error) {
	if p.Period.IsNone() {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "%s: only an integer number of periods is supported, got %q", kind, p.Raw)
	}

	period := p.Period.Unwrap()
	if period <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "%s: period must be a positive integer, got %d", kind, period)
	}

	return period, nil
}

// Func computes a derived series aligned index-for-index with the input.
// Rows without enough history hold NaN.
type Func func(in Input, p Param) ([]float64, error)

// Indicator is a named, pure indicator computation.
type Indicator interface {
	// Name returns the kind used as the label short name.
	Name() types.IndicatorKind
	// Compute derives the indicator column for the whole input.
	Compute(in Input, p Param) ([]float64, error)
}

type funcIndicator struct {
	kind types.IndicatorKind
	fn   Func
}

// New wraps a Func as an Indicator of the given kind.
func New(kind types.IndicatorKind, fn Func) Indicator {
	return &funcIndicator{
		kind: kind,
		fn:   fn,
	}
}

func (f *funcIndicator) Name() types.IndicatorKind {
	return f.kind
}

func (f *funcIndicator) Compute(in Input, p Param) ([]float64, error) {
	return f.fn(in, p)
}

// Prices is a column-oriented Input backed by plain slices.
type Prices struct {
	Time  []time.Time
	Open  []float64
	High  []float64
	Low   []float64
	Close []float64
}

// PricesFromRecords splits records into columns.
func PricesFromRecords(records []types.PriceRecord) *Prices {
	p := &Prices{
		Time:  make([]time.Time, len(records)),
		Open:  make([]float64, len(records)),
		High:  make([]float64, len(records)),
		Low:   make([]float64, len(records)),
		Close: make([]float64, len(records)),
	}

	for i, r := range records {
		p.Time[i] = r.Time
		p.Open[i] = r.Open
		p.High[i] = r.High
		p.Low[i] = r.Low
		p.Close[i] = r.Close
	}

	return p
}

// Len implements Input.
func (p *Prices) Len() int {
	return len(p.Close)
}

// Times implements Input.
func (p *Prices) Times() []time.Time {
	return p.Time
}

// Opens implements Input.
func (p *Prices) Opens() []float64 {
	return p.Open
}

// Highs implements Input.
func (p *Prices) Highs() []float64 {
	return p.High
}

// Lows implements Input.
func (p *Prices) Lows() []float64 {
	return p.Low
}

// Closes implements Input.
func (p *Prices) Closes() []float64 {
	return p.Close
}
