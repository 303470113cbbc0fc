package main

import "github.com/rxtech-lab/argo-ta/internal/backtest/engine/engine_v1/writer"

// RunsLoadedMsg carries the runs found in the results folder.
type RunsLoadedMsg struct {
	Runs []Run
}

// ResultsLoadedMsg carries the per-row results of the selected run.
type ResultsLoadedMsg struct {
	Run     Run
	Records []writer.ResultRecord
}

// LoadErrorMsg indicates that runs or results could not be read.
type LoadErrorMsg struct {
	Err error
}
