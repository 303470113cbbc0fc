package engine

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-ta/internal/series"
	"github.com/rxtech-lab/argo-ta/internal/strategy"
)

// selectRange returns the row range [start, end) of s covered by the configured start and end times.
// Both bounds are inclusive timestamps.
func selectRange(config BacktestEngineV1Config, s *series.Series) (int, int) {
	start, end := 0, s.Len()

	if config.StartTime.IsSome() {
		start = s.IndexOf(config.StartTime.Unwrap())
	}

	if config.EndTime.IsSome() {
		end = s.IndexAfter(config.EndTime.Unwrap())
	}

	return start, max(start, end)
}

// seriesLabels merges the configured indicator labels with the ones the strategies read.
func seriesLabels(config BacktestEngineV1Config, strategies []strategy.Strategy) []string {
	seen := make(map[string]struct{})
	labels := make([]string, 0, len(config.Indicators))

	add := func(label string) {
		if _, ok := seen[label]; ok {
			return
		}

		seen[label] = struct{}{}
		labels = append(labels, label)
	}

	for _, label := range config.Indicators {
		add(label)
	}

	for _, s := range strategies {
		for _, label := range strategy.RequiredIndicators(s) {
			add(label)
		}
	}

	return labels
}

func noTime() optional.Option[time.Time] {
	return optional.None[time.Time]()
}
