package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type TrendTestSuite struct {
	suite.Suite
}

func TestTrendSuite(t *testing.T) {
	suite.Run(t, new(TrendTestSuite))
}

func (suite *TrendTestSuite) TestRecoversConstantRateOfChange() {
	rateOfChange := 1.02
	closes := make([]float64, 1000)

	for i := range closes {
		closes[i] = float64(i) * rateOfChange
	}

	values, err := Trend(pricesFromCloses(closes...), PeriodParam(14))
	suite.Require().NoError(err)
	suite.Require().Len(values, len(closes))

	for i := 0; i < 13; i++ {
		suite.True(math.IsNaN(values[i]))
	}

	for i := 13; i < len(values); i++ {
		suite.InDelta(rateOfChange, values[i], 1e-9, "row %d", i)
	}
}

func (suite *TrendTestSuite) TestFlatSeriesHasZeroSlope() {
	values, err := Trend(pricesFromCloses(5, 5, 5, 5), PeriodParam(3))
	suite.Require().NoError(err)

	suite.InDelta(0.0, values[2], 1e-12)
	suite.InDelta(0.0, values[3], 1e-12)
}

func (suite *TrendTestSuite) TestDownTrend() {
	values, err := Trend(pricesFromCloses(10, 8, 6, 4), PeriodParam(2))
	suite.Require().NoError(err)

	suite.InDelta(-2.0, values[1], 1e-12)
	suite.InDelta(-2.0, values[3], 1e-12)
}

func (suite *TrendTestSuite) TestRejectsSingleRowWindow() {
	_, err := Trend(pricesFromCloses(1, 2, 3), PeriodParam(1))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))

	_, err = Trend(pricesFromCloses(1, 2, 3), TokenParam("1D"))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}
