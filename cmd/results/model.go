package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/argo-ta/internal/backtest/engine/engine_v1/writer"
)

// Application states.
const (
	StateRunSelect = iota
	StateResultDisplay
)

// Model is the main Bubble Tea model for browsing backtest results.
type Model struct {
	state       int
	folder      string
	runList     list.Model
	resultTable table.Model
	runs        []Run
	current     Run
	rows        int
	err         error
	width       int
	height      int
}

// NewModel creates a new Model that browses the runs below folder.
func NewModel(folder string) Model {
	return Model{
		state:       StateRunSelect,
		folder:      folder,
		runList:     NewRunList(nil),
		resultTable: NewResultTable(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return loadRuns(m.folder)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			return m.handleEsc()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.runList.SetSize(msg.Width, msg.Height-4)
		m.resultTable.SetWidth(msg.Width)
		m.resultTable.SetHeight(msg.Height - 8)
		return m, nil

	case RunsLoadedMsg:
		m.runs = msg.Runs
		m.runList = NewRunList(msg.Runs)
		m.runList.SetSize(m.width, m.height-4)
		m.err = nil
		return m, nil

	case ResultsLoadedMsg:
		m.current = msg.Run
		m.rows = len(msg.Records)
		m.resultTable = UpdateResultRows(m.resultTable, msg.Records)
		m.resultTable.GotoTop()
		m.state = StateResultDisplay
		m.err = nil
		return m, nil

	case LoadErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Delegate to state-specific update
	switch m.state {
	case StateRunSelect:
		return m.updateRunSelect(msg)
	case StateResultDisplay:
		return m.updateResultDisplay(msg)
	}

	return m, nil
}

func (m Model) handleEsc() (tea.Model, tea.Cmd) {
	if m.state == StateResultDisplay {
		m.state = StateRunSelect
		m.err = nil
		m.rows = 0
		m.resultTable.SetRows(nil)
	}

	return m, nil
}

func (m Model) updateRunSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := m.runList.SelectedItem().(runItem); ok {
				return m, loadResults(item.run)
			}
		case "r":
			return m, loadRuns(m.folder)
		}
	}

	var cmd tea.Cmd
	m.runList, cmd = m.runList.Update(msg)
	return m, cmd
}

func (m Model) updateResultDisplay(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.resultTable, cmd = m.resultTable.Update(msg)
	return m, cmd
}

// loadRuns returns a command that scans folder for runs.
func loadRuns(folder string) tea.Cmd {
	return func() tea.Msg {
		runs, err := FindRuns(folder)
		if err != nil {
			return LoadErrorMsg{Err: err}
		}

		return RunsLoadedMsg{Runs: runs}
	}
}

// loadResults returns a command that reads the per-row results of run.
func loadResults(run Run) tea.Cmd {
	return func() tea.Msg {
		if err := run.Compatible(); err != nil {
			return LoadErrorMsg{Err: err}
		}

		records, err := writer.ReadResults(run.ResultsPath())
		if err != nil {
			return LoadErrorMsg{Err: err}
		}

		return ResultsLoadedMsg{Run: run, Records: records}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateRunSelect:
		s.WriteString(TitleStyle.Render("Argo TA - Backtest Results"))
		s.WriteString("\n\n")

		if m.err != nil {
			s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			s.WriteString("\n\n")
		}

		if len(m.runs) == 0 {
			s.WriteString(fmt.Sprintf("No runs found in %s\n", m.folder))
		} else {
			s.WriteString(m.runList.View())
		}

		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Press Enter to open, r to reload, q to quit"))

	case StateResultDisplay:
		stats := m.current.Stats
		s.WriteString(TitleStyle.Render(fmt.Sprintf("%s (%s)", stats.Strategy, stats.ID)))
		s.WriteString("\n")
		s.WriteString(fmt.Sprintf("Rows: %d | Worth: %.2f | Total funds: %.2f | Return: %s | Buy & hold: %s\n\n",
			m.rows, stats.FinalWorth, stats.TotalFundsOverTime, FormatReturn(stats.Return), FormatReturn(stats.BuyAndHoldReturn)))

		if m.err != nil {
			s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			s.WriteString("\n\n")
		}

		s.WriteString(m.resultTable.View())
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("q: quit | Esc: back"))
	}

	return s.String()
}
