package writer

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-ta/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-ta/internal/logger"
	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/stretchr/testify/suite"
)

type DuckDBWriterTestSuite struct {
	suite.Suite
	tempDir string
}

func TestDuckDBWriterSuite(t *testing.T) {
	suite.Run(t, new(DuckDBWriterTestSuite))
}

func (suite *DuckDBWriterTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
}

func (suite *DuckDBWriterTestSuite) record(minute int, close float64) types.PriceRecord {
	return types.PriceRecord{
		Time:  time.Date(2023, 6, 15, 9, 30+minute, 0, 0, time.UTC),
		Open:  close - 1,
		High:  close + 2,
		Low:   close - 2,
		Close: close,
	}
}

func (suite *DuckDBWriterTestSuite) TestNewDuckDBWriter() {
	outputPath := filepath.Join(suite.tempDir, "test.parquet")
	writer := NewDuckDBWriter(outputPath)

	duckWriter, ok := writer.(*DuckDBWriter)
	suite.Require().True(ok)
	suite.Equal(outputPath, duckWriter.GetOutputPath())
	suite.Nil(duckWriter.db)
	suite.Nil(duckWriter.tx)
	suite.Nil(duckWriter.stmt)
}

func (suite *DuckDBWriterTestSuite) TestInitialize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "test_init.parquet"))
	defer writer.Close()

	suite.Require().NoError(writer.Initialize())

	duckWriter := writer.(*DuckDBWriter)
	suite.NotNil(duckWriter.db)
	suite.NotNil(duckWriter.tx)
	suite.NotNil(duckWriter.stmt)

	// a second call keeps the open transaction
	tx := duckWriter.tx
	suite.NoError(writer.Initialize())
	suite.Same(tx, duckWriter.tx)
}

func (suite *DuckDBWriterTestSuite) TestWriteWithoutInitialize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "test_no_init.parquet"))

	err := writer.Write(suite.record(0, 100))
	suite.Error(err)
	suite.Contains(err.Error(), "not initialized")
}

func (suite *DuckDBWriterTestSuite) TestFinalizeWithoutInitialize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "test_finalize_no_init.parquet"))

	_, err := writer.Finalize()
	suite.Error(err)
	suite.Contains(err.Error(), "not initialized")
}

func (suite *DuckDBWriterTestSuite) TestFinalizeExportsSortedUniqueBars() {
	outputPath := filepath.Join(suite.tempDir, "nested", "bars.parquet")
	writer := NewDuckDBWriter(outputPath)
	defer writer.Close()

	suite.Require().NoError(writer.Initialize())

	// out of order with one duplicated timestamp
	for _, record := range []types.PriceRecord{suite.record(2, 102), suite.record(0, 100), suite.record(1, 101), suite.record(2, 102)} {
		suite.Require().NoError(writer.Write(record))
	}

	path, err := writer.Finalize()
	suite.Require().NoError(err)
	suite.Equal(outputPath, path)
	suite.FileExists(outputPath)

	// writes after finalize are rejected
	suite.Error(writer.Write(suite.record(3, 103)))

	source, err := datasource.NewDataSource(":memory:", logger.NewNopLogger())
	suite.Require().NoError(err)
	defer source.Close()

	suite.Require().NoError(source.Initialize(outputPath))

	records, err := datasource.ReadRecords(context.Background(), source, optional.None[time.Time](), optional.None[time.Time]())
	suite.Require().NoError(err)
	suite.Require().Len(records, 3)

	for i, record := range records {
		suite.Equal(suite.record(i, float64(100+i)), record)
	}
}

func (suite *DuckDBWriterTestSuite) TestCloseWithoutInitialize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "test_close_no_init.parquet"))

	suite.NoError(writer.Close())
}

func (suite *DuckDBWriterTestSuite) TestCloseAfterInitialize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "test_close_init.parquet"))

	suite.Require().NoError(writer.Initialize())
	suite.Require().NoError(writer.Write(suite.record(0, 100)))
	suite.NoError(writer.Close())

	duckWriter := writer.(*DuckDBWriter)
	suite.Nil(duckWriter.db)
	suite.Nil(duckWriter.tx)
	suite.Nil(duckWriter.stmt)

	// Second close should not error
	suite.NoError(writer.Close())
	suite.NoFileExists(writer.GetOutputPath())
}
