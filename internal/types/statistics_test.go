package types

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type StatisticsTestSuite struct {
	suite.Suite
	tempDir string
}

func TestStatisticsSuite(t *testing.T) {
	suite.Run(t, new(StatisticsTestSuite))
}

func (suite *StatisticsTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
}

func (suite *StatisticsTestSuite) TestWriteBacktestStats() {
	stats := []BacktestStats{
		{
			ID:        "run-1",
			Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Strategy:  "MinimumOrder",
			Rows:      100,
			Orders: OrderCounts{
				Proposed:          100,
				Filled:            60,
				Rejected:          40,
				InsufficientFunds: 40,
			},
			FinalFunds:         10,
			FinalBalance:       2,
			FinalWorth:         1210,
			TotalFundsOverTime: 1000,
			FinalBuyAndHold:    1100,
			Return:             0.21,
			BuyAndHoldReturn:   0.1,
			MaxDrawdown:        0.05,
		},
	}

	filePath := filepath.Join(suite.tempDir, "stats.yaml")
	err := WriteBacktestStats(filePath, stats)
	suite.NoError(err)

	data, err := os.ReadFile(filePath)
	suite.NoError(err)

	var read []BacktestStats
	suite.NoError(yaml.Unmarshal(data, &read))
	suite.Len(read, 1)
	suite.Equal("run-1", read[0].ID)
	suite.Equal(60, read[0].Orders.Filled)
	suite.Equal(40, read[0].Orders.InsufficientFunds)
	suite.Equal(1210.0, read[0].FinalWorth)
	suite.Empty(read[0].ResultsFilePath)
}

func (suite *StatisticsTestSuite) TestWriteBacktestStatsInvalidPath() {
	err := WriteBacktestStats(filepath.Join(suite.tempDir, "missing", "dir", "stats.yaml"), nil)
	suite.Error(err)
}

func (suite *StatisticsTestSuite) TestReadBacktestStats() {
	filePath := filepath.Join(suite.tempDir, "stats.yaml")
	suite.Require().NoError(WriteBacktestStats(filePath, []BacktestStats{
		{ID: "run-2", Strategy: "SMACrossover", Rows: 3, Return: -0.5, ResultsFilePath: "results.parquet"},
	}))

	stats, err := ReadBacktestStats(filePath)
	suite.Require().NoError(err)
	suite.Len(stats, 1)
	suite.Equal("SMACrossover", stats[0].Strategy)
	suite.Equal(-0.5, stats[0].Return)
	suite.Equal("results.parquet", stats[0].ResultsFilePath)

	_, err = ReadBacktestStats(filepath.Join(suite.tempDir, "missing.yaml"))
	suite.Error(err)

	suite.Require().NoError(os.WriteFile(filePath, []byte("id: [unclosed"), 0644))
	_, err = ReadBacktestStats(filePath)
	suite.Error(err)
}
