package indicator

import (
	"strconv"
	"strings"

	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
)

// Label is a parsed "<shortname>_<param>" column label.
type Label struct {
	Text  string
	Kind  types.IndicatorKind
	Param Param
}

// ParseLabel splits a label such as "sma_60" or "sma_1min" into its kind and parameter.
// An all-digit parameter becomes an integer period, anything else is kept as a token.
func ParseLabel(label string) (Label, error) {
	shortname, raw, found := strings.Cut(label, "_")
	if !found || shortname == "" || raw == "" {
		return Label{}, errors.Newf(errors.ErrCodeInvalidIndicatorLabel, "indicator label %q must look like <name>_<param>", label)
	}

	param := TokenParam(raw)
	if isDigits(raw) {
		period, err := strconv.Atoi(raw)
		if err != nil {
			return Label{}, errors.Wrapf(errors.ErrCodeInvalidIndicatorLabel, err, "indicator label %q has an out of range period", label)
		}

		param = PeriodParam(period)
	}

	return Label{
		Text:  label,
		Kind:  types.IndicatorKind(shortname),
		Param: param,
	}, nil
}

// String returns the original label text.
func (l Label) String() string {
	return l.Text
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return s != ""
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
