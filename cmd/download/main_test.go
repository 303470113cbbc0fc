package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type DownloadCmdTestSuite struct {
	suite.Suite
	tempDir string
}

func TestDownloadCmdSuite(t *testing.T) {
	suite.Run(t, new(DownloadCmdTestSuite))
}

func (suite *DownloadCmdTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
	suite.T().Setenv("POLYGON_API_KEY", "")
}

func (suite *DownloadCmdTestSuite) run(args ...string) error {
	cmd := newCommand()

	var out, errOut bytes.Buffer

	cmd.Writer = &out
	cmd.ErrWriter = &errOut

	return cmd.Run(context.Background(), append([]string{"download", "--quiet", "--data", suite.tempDir}, args...))
}

func (suite *DownloadCmdTestSuite) TestNormalizeDate() {
	suite.Equal("2024-01-02T00:00:00Z", normalizeDate("2024-01-02"))
	suite.Equal("2024-01-02T09:30:00-05:00", normalizeDate("2024-01-02T09:30:00-05:00"))
	suite.Equal("yesterday", normalizeDate("yesterday"))
}

func (suite *DownloadCmdTestSuite) TestInvalidRequests() {
	tests := []struct {
		name string
		args []string
		code errors.ErrorCode
	}{
		{
			name: "unsupported provider",
			args: []string{"--provider", "yahoo", "--ticker", "SPY", "--start", "2024-01-01", "--end", "2024-02-01"},
			code: errors.ErrCodeInvalidProvider,
		},
		{
			name: "missing ticker",
			args: []string{"--provider", "binance", "--start", "2024-01-01", "--end", "2024-02-01"},
			code: errors.ErrCodeInvalidConfiguration,
		},
		{
			name: "polygon without api key",
			args: []string{"--provider", "polygon", "--ticker", "SPY", "--start", "2024-01-01", "--end", "2024-02-01"},
			code: errors.ErrCodeInvalidConfiguration,
		},
		{
			name: "unsupported interval",
			args: []string{"--provider", "binance", "--ticker", "BTCUSDT", "--start", "2024-01-01", "--end", "2024-02-01", "--interval", "2m"},
			code: errors.ErrCodeInvalidConfiguration,
		},
		{
			name: "end before start",
			args: []string{"--provider", "binance", "--ticker", "BTCUSDT", "--start", "2024-02-01", "--end", "2024-01-01"},
			code: errors.ErrCodeInvalidConfiguration,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := suite.run(tt.args...)
			suite.Error(err)
			suite.Equal(tt.code, errors.GetCode(err))
		})
	}

	entries, err := os.ReadDir(suite.tempDir)
	suite.NoError(err)
	suite.Empty(entries)
}

func (suite *DownloadCmdTestSuite) TestConfigFile() {
	path := filepath.Join(suite.tempDir, "download.json")
	suite.Require().NoError(os.WriteFile(path, []byte(`{"ticker":"SPY","startDate":"2024-01-01T00:00:00Z"}`), 0644))

	err := suite.run("--provider", "binance", "--config", path)
	suite.Error(err)
	suite.Equal(errors.ErrCodeInvalidConfiguration, errors.GetCode(err))

	err = suite.run("--provider", "binance", "--config", filepath.Join(suite.tempDir, "missing.json"))
	suite.Error(err)
	suite.Contains(err.Error(), "failed to read download config")
}

func (suite *DownloadCmdTestSuite) TestProviderIsRequired() {
	suite.Error(suite.run("--ticker", "SPY"))
}
