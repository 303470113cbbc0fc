package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-ta/internal/backtest/engine/engine_v1/writer"
	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/rxtech-lab/argo-ta/internal/version"
)

// Run is one backtest run written by the result writer.
type Run struct {
	Folder string
	Stats  types.BacktestStats
}

// ResultsPath returns the parquet file holding the per-row results of the run.
func (r Run) ResultsPath() string {
	if r.Stats.ResultsFilePath != "" {
		return r.Stats.ResultsFilePath
	}

	return filepath.Join(r.Folder, writer.ResultsFileName)
}

// Compatible reports whether the run was written by an engine whose results this build can read.
// Runs without a recorded engine version are accepted.
func (r Run) Compatible() error {
	if r.Stats.EngineVersion == "" {
		return nil
	}

	return version.CheckVersionCompatibility(version.GetVersion(), r.Stats.EngineVersion)
}

// FindRuns lists the run folders below folder, ordered by folder name.
// Folders without a stats file are skipped.
func FindRuns(folder string) ([]Run, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read results folder: %w", err)
	}

	runs := make([]Run, 0, len(entries))

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		runFolder := filepath.Join(folder, entry.Name())

		stats, err := types.ReadBacktestStats(filepath.Join(runFolder, writer.StatsFileName))
		if err != nil || len(stats) == 0 {
			continue
		}

		runs = append(runs, Run{Folder: runFolder, Stats: stats[0]})
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Folder < runs[j].Folder
	})

	return runs, nil
}

// runItem implements list.Item interface for the run list.
type runItem struct {
	run Run
}

func (i runItem) Title() string { return i.run.Stats.Strategy + " " + i.run.Stats.ID }
func (i runItem) Description() string {
	if err := i.run.Compatible(); err != nil {
		return "incompatible: " + err.Error()
	}

	return fmt.Sprintf("%d rows | return %s | buy & hold %s | max drawdown %.2f%%",
		i.run.Stats.Rows,
		FormatReturn(i.run.Stats.Return),
		FormatReturn(i.run.Stats.BuyAndHoldReturn),
		i.run.Stats.MaxDrawdown*100)
}
func (i runItem) FilterValue() string { return i.run.Stats.Strategy }

// NewRunList creates a new list for run selection.
func NewRunList(runs []Run) list.Model {
	items := make([]list.Item, 0, len(runs))
	for _, run := range runs {
		items = append(items, runItem{run: run})
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select Backtest Run"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// NewResultTable creates a new table for displaying per-row results.
func NewResultTable() table.Model {
	columns := []table.Column{
		{Title: "Time", Width: 20},
		{Title: "Close", Width: 12},
		{Title: "Order", Width: 18},
		{Title: "Status", Width: 24},
		{Title: "Funds", Width: 14},
		{Title: "Balance", Width: 12},
		{Title: "Worth", Width: 14},
		{Title: "Buy & Hold", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// UpdateResultRows fills the table with one row per result record.
func UpdateResultRows(t table.Model, records []writer.ResultRecord) table.Model {
	rows := make([]table.Row, 0, len(records))

	for _, record := range records {
		rows = append(rows, table.Row{
			time.UnixMilli(record.Time).UTC().Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%.4f", record.Close),
			formatOrder(record),
			formatStatus(record),
			fmt.Sprintf("%.2f", record.Funds),
			fmt.Sprintf("%.4f", record.Balance),
			fmt.Sprintf("%.2f", record.Worth),
			fmt.Sprintf("%.2f", record.BuyHold),
		})
	}

	t.SetRows(rows)

	return t
}

func formatOrder(record writer.ResultRecord) string {
	if record.Decision == nil || record.Amount == nil {
		return "-"
	}

	return fmt.Sprintf("%s %.4f", *record.Decision, *record.Amount)
}

func formatStatus(record writer.ResultRecord) string {
	if record.Status == nil {
		return "-"
	}

	if record.Reason != nil && *record.Reason != "" {
		return *record.Status + " (" + *record.Reason + ")"
	}

	return *record.Status
}
