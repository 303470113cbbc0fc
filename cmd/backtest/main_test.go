package main

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/moznion/go-optional"
	engine "github.com/rxtech-lab/argo-ta/internal/backtest/engine"
	"github.com/rxtech-lab/argo-ta/internal/backtest/engine/engine_v1/writer"
	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type BacktestCmdTestSuite struct {
	suite.Suite
	tempDir  string
	dataPath string
}

func TestBacktestCmdSuite(t *testing.T) {
	suite.Run(t, new(BacktestCmdTestSuite))
}

func (suite *BacktestCmdTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
	suite.dataPath = filepath.Join(suite.tempDir, "prices.csv")

	var csv strings.Builder

	csv.WriteString("time,open,high,low,close\n")

	// 240 one minute bars oscillating around 100
	for i := 0; i < 240; i++ {
		price := 100 + 10*math.Sin(float64(i)/12)
		fmt.Fprintf(&csv, "%d,%.4f,%.4f,%.4f,%.4f\n", 1704067200+i*60, price, price+1, price-1, price)
	}

	suite.Require().NoError(os.WriteFile(suite.dataPath, []byte(csv.String()), 0644))
}

func (suite *BacktestCmdTestSuite) writeFile(name, content string) string {
	path := filepath.Join(suite.tempDir, name)
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0644))

	return path
}

func (suite *BacktestCmdTestSuite) run(args ...string) (string, error) {
	cmd := newCommand()

	var out, errOut bytes.Buffer

	cmd.Writer = &out
	cmd.ErrWriter = &errOut

	err := cmd.Run(context.Background(), append([]string{"backtest"}, args...))

	return out.String(), err
}

func (suite *BacktestCmdTestSuite) TestParseStrategySpec() {
	tests := []struct {
		input    string
		expected strategySpec
		wantErr  bool
	}{
		{input: "MinimumOrder", expected: strategySpec{Name: "MinimumOrder"}},
		{input: "SMACrossover=sma.yaml", expected: strategySpec{Name: "SMACrossover", ConfigPath: "sma.yaml"}},
		{input: " DollarCostAveraging = dca.yaml ", expected: strategySpec{Name: "DollarCostAveraging", ConfigPath: "dca.yaml"}},
		{input: "=config.yaml", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		suite.Run(tt.input, func() {
			spec, err := parseStrategySpec(tt.input)
			if tt.wantErr {
				suite.Error(err)

				return
			}

			suite.NoError(err)
			suite.Equal(tt.expected, spec)
		})
	}
}

func (suite *BacktestCmdTestSuite) TestLoadStrategies() {
	configPath := suite.writeFile("sma.yaml", "fast: sma_5\nslow: sma_20\n")

	strategies, err := loadStrategies([]string{"SMACrossover=" + configPath, "MinimumOrder"})
	suite.Require().NoError(err)
	suite.Len(strategies, 2)
	suite.Equal("SMACrossover", strategies[0].Name())
	suite.Equal("MinimumOrder", strategies[1].Name())

	_, err = loadStrategies([]string{"Unknown"})
	suite.Error(err)
	suite.Equal(errors.ErrCodeUnsupportedStrategy, errors.GetCode(err))

	_, err = loadStrategies([]string{"SMACrossover=" + filepath.Join(suite.tempDir, "missing.yaml")})
	suite.Error(err)
}

func (suite *BacktestCmdTestSuite) TestRunWritesResults() {
	configPath := suite.writeFile("backtest.yaml", "initial_funds: 10000\n")
	smaPath := suite.writeFile("sma.yaml", "fast: sma_5\nslow: sma_20\nfraction: 0.5\n")
	dcaPath := suite.writeFile("dca.yaml", "contribution: 10\n")
	resultsFolder := filepath.Join(suite.tempDir, "results")

	out, err := suite.run(
		"--data", suite.dataPath,
		"--config", configPath,
		"--strategy", "SMACrossover="+smaPath,
		"--strategy", "DollarCostAveraging="+dcaPath,
		"--results", resultsFolder,
		"--quiet",
	)
	suite.Require().NoError(err)

	suite.Contains(out, "SMACrossover")
	suite.Contains(out, "DollarCostAveraging")
	suite.Contains(out, "Max Drawdown")

	runs, err := filepath.Glob(filepath.Join(resultsFolder, "*", writer.ResultsFileName))
	suite.Require().NoError(err)
	suite.Len(runs, 2)

	for _, path := range runs {
		records, err := writer.ReadResults(path)
		suite.Require().NoError(err)
		suite.Len(records, 240)
	}
}

func (suite *BacktestCmdTestSuite) TestRunResampled() {
	resultsFolder := filepath.Join(suite.tempDir, "results")

	_, err := suite.run(
		"--data", suite.dataPath,
		"--strategy", "MinimumOrder",
		"--interval", "1h",
		"--results", resultsFolder,
		"--quiet",
	)
	suite.Require().NoError(err)

	runs, err := filepath.Glob(filepath.Join(resultsFolder, "*", writer.ResultsFileName))
	suite.Require().NoError(err)
	suite.Require().Len(runs, 1)

	records, err := writer.ReadResults(runs[0])
	suite.Require().NoError(err)
	suite.Len(records, 4)
}

func (suite *BacktestCmdTestSuite) TestRunFailures() {
	_, err := suite.run("--data", suite.dataPath, "--strategy", "SMACrossover", "--quiet")
	suite.Error(err)
	suite.Equal(errors.ErrCodeInvalidConfiguration, errors.GetCode(err))

	_, err = suite.run("--data", filepath.Join(suite.tempDir, "prices.txt"), "--strategy", "MinimumOrder", "--quiet")
	suite.Error(err)

	_, err = suite.run("--data", suite.dataPath, "--strategy", "MinimumOrder", "--log-level", "loud", "--quiet")
	suite.Error(err)
}

func (suite *BacktestCmdTestSuite) TestRenderSummary() {
	contexts := []types.OrderContext{
		{Order: optional.Some(types.Buy(1).Fill()), Funds: 90, Balance: 1, Worth: 100, TotalFundsOverTime: 100},
		{Order: optional.None[types.ResolvedOrder](), Funds: 90, Balance: 1, Worth: 110, TotalFundsOverTime: 100},
	}

	result := engine.NewResult("run-1", "MinimumOrder", []float64{10, 20}, contexts)
	result.ResultsFolder = "results/MinimumOrder_run-1"

	summary := RenderSummary([]*engine.Result{result})

	suite.Contains(summary, "MinimumOrder")
	suite.Contains(summary, "110.00")
	suite.Contains(summary, "10.00%")
	suite.Contains(summary, "100.00%")
	suite.Contains(summary, "results/MinimumOrder_run-1")
}

func (suite *BacktestCmdTestSuite) TestFormatPercent() {
	suite.Equal("12.50%", formatPercent(0.125))
	suite.Equal("n/a", formatPercent(math.NaN()))
}
