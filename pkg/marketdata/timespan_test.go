package marketdata

import (
	"testing"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type TimespanTestSuite struct {
	suite.Suite
}

func TestTimespanSuite(t *testing.T) {
	suite.Run(t, new(TimespanTestSuite))
}

func (suite *TimespanTestSuite) TestUnits() {
	tests := []struct {
		timespan   Timespan
		multiplier int
		unit       models.Timespan
	}{
		{TimespanOneSecond, 1, models.Second},
		{TimespanOneMinute, 1, models.Minute},
		{TimespanThreeMinutes, 3, models.Minute},
		{TimespanFiveMinutes, 5, models.Minute},
		{TimespanFifteenMinutes, 15, models.Minute},
		{TimespanThirtyMinutes, 30, models.Minute},
		{TimespanOneHour, 1, models.Hour},
		{TimespanTwoHours, 2, models.Hour},
		{TimespanFourHours, 4, models.Hour},
		{TimespanSixHours, 6, models.Hour},
		{TimespanEightHours, 8, models.Hour},
		{TimespanTwelveHours, 12, models.Hour},
		{TimespanOneDay, 1, models.Day},
		{TimespanThreeDays, 3, models.Day},
		{TimespanOneWeek, 1, models.Week},
		{TimespanOneMonth, 1, models.Month},
	}

	suite.Len(tests, len(timespanUnits))

	for _, tt := range tests {
		suite.Run(string(tt.timespan), func() {
			suite.Equal(tt.multiplier, tt.timespan.Multiplier())
			suite.Equal(tt.unit, tt.timespan.Timespan())
		})
	}
}

func (suite *TimespanTestSuite) TestUnknownTimespan() {
	suite.Equal(1, Timespan("7m").Multiplier())
	suite.Equal(models.Day, Timespan("7m").Timespan())
}

func (suite *TimespanTestSuite) TestParseTimespan() {
	timespan, err := ParseTimespan("4h")
	suite.NoError(err)
	suite.Equal(TimespanFourHours, timespan)

	_, err = ParseTimespan("4H")
	suite.Error(err)
	suite.Equal(errors.ErrCodeInvalidTimespan, errors.GetCode(err))
}
