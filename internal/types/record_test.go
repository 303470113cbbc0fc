package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type RecordTestSuite struct {
	suite.Suite
}

func TestRecordSuite(t *testing.T) {
	suite.Run(t, new(RecordTestSuite))
}

func (suite *RecordTestSuite) TestNewPriceRecordFromSeconds() {
	record := NewPriceRecord(60, 1, 3, 0.5, 2)

	suite.Equal(time.Date(1970, 1, 1, 0, 1, 0, 0, time.UTC), record.Time)
	suite.Equal(1.0, record.Open)
	suite.Equal(3.0, record.High)
	suite.Equal(0.5, record.Low)
	suite.Equal(2.0, record.Close)
}

func (suite *RecordTestSuite) TestTimestampsAreUTC() {
	record := NewPriceRecord(1700000000, 0, 0, 0, 0)
	suite.Equal(time.UTC, record.Time.Location())
}
