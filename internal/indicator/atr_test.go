package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ATRTestSuite struct {
	suite.Suite
}

func TestATRSuite(t *testing.T) {
	suite.Run(t, new(ATRTestSuite))
}

func (suite *ATRTestSuite) TestTrueRange() {
	tr := trueRange(
		[]float64{10, 12, 11},
		[]float64{8, 9, 9},
		[]float64{9, 11, 10},
	)

	suite.Equal([]float64{2, 3, 2}, tr)
}

func (suite *ATRTestSuite) TestGapUsesPreviousClose() {
	tr := trueRange(
		[]float64{10, 20},
		[]float64{9, 19},
		[]float64{9.5, 19.5},
	)

	suite.InDelta(10.5, tr[1], 1e-12)
}

func (suite *ATRTestSuite) TestRequiresFullWindow() {
	prices := pricesFromHLC(
		[]float64{10, 12, 11},
		[]float64{8, 9, 9},
		[]float64{9, 11, 10},
	)

	values, err := ATR(prices, PeriodParam(2))
	suite.Require().NoError(err)

	suite.True(math.IsNaN(values[0]))
	suite.InDelta(11.0/4.0, values[1], 1e-12)
	suite.InDelta(29.0/13.0, values[2], 1e-12)
}

func (suite *ATRTestSuite) TestStricterThanEMA() {
	prices := pricesFromCloses(1, 2, 3, 4)

	atr, err := ATR(prices, PeriodParam(3))
	suite.Require().NoError(err)

	ema, err := EMA(prices, PeriodParam(3))
	suite.Require().NoError(err)

	suite.True(math.IsNaN(atr[1]))
	suite.False(math.IsNaN(ema[1]))
	suite.False(math.IsNaN(atr[2]))
}

func (suite *ATRTestSuite) TestRejectsToken() {
	_, err := ATR(pricesFromCloses(1, 2), TokenParam("1h"))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}
