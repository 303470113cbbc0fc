package indicator

import (
	"regexp"
	"strconv"
	"time"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
)

var offsetAliasPattern = regexp.MustCompile(`^(\d*)([A-Za-z]+)$`)

var offsetAliasUnits = map[string]time.Duration{
	"ms":  time.Millisecond,
	"L":   time.Millisecond,
	"s":   time.Second,
	"S":   time.Second,
	"min": time.Minute,
	"T":   time.Minute,
	"h":   time.Hour,
	"H":   time.Hour,
	"d":   24 * time.Hour,
	"D":   24 * time.Hour,
	"W":   7 * 24 * time.Hour,
}

// ParseOffsetAlias converts a time offset alias such as "1min", "30s", "4h" or "D" into a duration.
func ParseOffsetAlias(alias string) (time.Duration, error) {
	match := offsetAliasPattern.FindStringSubmatch(alias)
	if match == nil {
		return 0, errors.Newf(errors.ErrCodeInvalidWindow, "invalid time window %q", alias)
	}

	unit, ok := offsetAliasUnits[match[2]]
	if !ok {
		return 0, errors.Newf(errors.ErrCodeInvalidWindow, "unknown time unit %q in window %q", match[2], alias)
	}

	multiple := 1
	if match[1] != "" {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			return 0, errors.Wrapf(errors.ErrCodeInvalidWindow, err, "invalid time window %q", alias)
		}

		multiple = n
	}

	if multiple <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidWindow, "time window %q must be positive", alias)
	}

	return time.Duration(multiple) * unit, nil
}
