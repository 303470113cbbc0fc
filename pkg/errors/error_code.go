package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter      ErrorCode = 100
	ErrCodeInvalidConfiguration  ErrorCode = 101
	ErrCodeInvalidOrder          ErrorCode = 105
	ErrCodeInvalidType           ErrorCode = 107
	ErrCodeInvalidPeriod         ErrorCode = 108
	ErrCodeMissingParameter      ErrorCode = 109
	ErrCodeInvalidIndicatorLabel ErrorCode = 120
	ErrCodeInvalidWindow         ErrorCode = 121

	// Data errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeNoDataFound           ErrorCode = 204
	ErrCodeUnsortedSeries        ErrorCode = 206
	ErrCodeColumnNotFound        ErrorCode = 207

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302

	// Strategy errors (400-499)
	ErrCodeStrategyNotLoaded    ErrorCode = 400
	ErrCodeStrategyRuntimeError ErrorCode = 402
	ErrCodeUnsupportedStrategy  ErrorCode = 403

	// Backtest errors (600-699)
	ErrCodeBacktestInitFailed   ErrorCode = 601
	ErrCodeBacktestConfigError  ErrorCode = 602
	ErrCodeBacktestNoStrategies ErrorCode = 604
	ErrCodeBacktestNoSeries     ErrorCode = 605
	ErrCodeBacktestEmptyRange   ErrorCode = 609
	ErrCodeBacktestCancelled    ErrorCode = 610

	// Result errors (700-799)
	ErrCodeResultWriteFailed ErrorCode = 700

	// Callback errors (800-899)
	ErrCodeCallbackFailed ErrorCode = 800

	// Market data errors (900-999)
	ErrCodeMarketDataFetchFailed ErrorCode = 900
	ErrCodeMarketDataWriteFailed ErrorCode = 901
	ErrCodeMarketDataParseFailed ErrorCode = 902
	ErrCodeInvalidTimespan       ErrorCode = 903
	ErrCodeInvalidProvider       ErrorCode = 904
)
