package main

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	engine "github.com/rxtech-lab/argo-ta/internal/backtest/engine"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	gainStyle   = cellStyle.Foreground(lipgloss.Color("42"))
	lossStyle   = cellStyle.Foreground(lipgloss.Color("196"))
)

var summaryHeaders = []string{
	"Strategy", "Rows", "Filled", "Rejected", "Worth", "Total Funds", "Return", "Buy & Hold", "Max Drawdown", "Results",
}

// returnColumns are the columns colored by sign.
var returnColumns = map[int]bool{6: true, 7: true}

// RenderSummary renders one table row per result.
func RenderSummary(results []*engine.Result) string {
	rows := make([][]string, 0, len(results))
	signs := make([][]float64, 0, len(results))

	for _, result := range results {
		stats := result.Stats()

		folder := result.ResultsFolder
		if folder == "" {
			folder = "-"
		}

		rows = append(rows, []string{
			result.Strategy,
			fmt.Sprintf("%d", stats.Rows),
			fmt.Sprintf("%d", stats.Orders.Filled),
			fmt.Sprintf("%d", stats.Orders.Rejected),
			fmt.Sprintf("%.2f", stats.FinalWorth),
			fmt.Sprintf("%.2f", stats.TotalFundsOverTime),
			formatPercent(stats.Return),
			formatPercent(stats.BuyAndHoldReturn),
			formatPercent(stats.MaxDrawdown),
			folder,
		})
		signs = append(signs, []float64{6: stats.Return, 7: stats.BuyAndHoldReturn})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(summaryHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			if returnColumns[col] && row >= 0 && row < len(signs) {
				switch value := signs[row][col]; {
				case value > 0:
					return gainStyle
				case value < 0:
					return lossStyle
				}
			}

			return cellStyle
		})

	return t.Render()
}

func formatPercent(value float64) string {
	if math.IsNaN(value) {
		return "n/a"
	}

	return fmt.Sprintf("%.2f%%", value*100)
}
