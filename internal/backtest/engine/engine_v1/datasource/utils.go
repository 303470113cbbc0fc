package datasource

import (
	"time"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
)

func getIntervalMinutes(interval Interval) (int, error) {
	var intervalMinutes int

	switch interval {
	case Interval1m:
		intervalMinutes = 1
	case Interval5m:
		intervalMinutes = 5
	case Interval15m:
		intervalMinutes = 15
	case Interval30m:
		intervalMinutes = 30
	case Interval1h:
		intervalMinutes = 60
	case Interval4h:
		intervalMinutes = 240
	case Interval6h:
		intervalMinutes = 360
	case Interval8h:
		intervalMinutes = 480
	case Interval12h:
		intervalMinutes = 720
	case Interval1d:
		intervalMinutes = 1440
	case Interval1w:
		intervalMinutes = 10080
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported interval: %s", interval)
	}

	return intervalMinutes, nil
}

// bucketStart truncates t to the start of its interval bucket.
// Buckets line up with the ones DuckDB time_bucket produces for the supported intervals.
func bucketStart(t time.Time, minutes int) time.Time {
	return t.UTC().Truncate(time.Duration(minutes) * time.Minute)
}
