package types

// IndicatorKind is the short name of an indicator as used in column labels such as "sma_60".
type IndicatorKind string

const (
	IndicatorKindSMA    IndicatorKind = "sma"
	IndicatorKindEMA    IndicatorKind = "ema"
	IndicatorKindHiLo   IndicatorKind = "hilo"
	IndicatorKindStochK IndicatorKind = "stochk"
	IndicatorKindATR    IndicatorKind = "atr"
	IndicatorKindTrend  IndicatorKind = "trend"
)

// AllIndicatorKinds lists every supported kind in registration order.
var AllIndicatorKinds = []IndicatorKind{
	IndicatorKindSMA,
	IndicatorKindEMA,
	IndicatorKindHiLo,
	IndicatorKindStochK,
	IndicatorKindATR,
	IndicatorKindTrend,
}
