package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type StochKTestSuite struct {
	suite.Suite
}

func TestStochKSuite(t *testing.T) {
	suite.Run(t, new(StochKTestSuite))
}

func (suite *StochKTestSuite) TestMidRange() {
	prices := pricesFromHLC(
		[]float64{2, 4, 6},
		[]float64{0, 2, 4},
		[]float64{1, 3, 5},
	)

	values, err := StochK(prices, PeriodParam(2))
	suite.Require().NoError(err)

	suite.True(math.IsNaN(values[0]))
	suite.InDelta(0.5, values[1], 1e-12)
	suite.InDelta(0.5, values[2], 1e-12)
}

func (suite *StochKTestSuite) TestFlatWindowIsUndefined() {
	values, err := StochK(pricesFromCloses(1, 1, 1), PeriodParam(2))
	suite.Require().NoError(err)

	for _, v := range values {
		suite.True(math.IsNaN(v))
	}
}

func (suite *StochKTestSuite) TestRejectsToken() {
	_, err := StochK(pricesFromCloses(1, 2), TokenParam("5s"))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}
