package writer

import (
	"github.com/rxtech-lab/argo-ta/internal/types"
)

// MarketDataWriter defines the interface for writing downloaded price bars to a destination.
type MarketDataWriter interface {
	// Initialize sets up the writer, potentially creating tables or files.
	Initialize() error
	// Write persists a single price bar.
	Write(record types.PriceRecord) error
	// Finalize completes the writing process (e.g., commits transactions, exports files).
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}
