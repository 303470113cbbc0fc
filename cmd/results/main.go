package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

func resultsAction(_ context.Context, cmd *cli.Command) error {
	program := tea.NewProgram(NewModel(cmd.String("results")), tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("results browser failed: %w", err)
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "results",
		Usage: "Browse backtest results written to a results folder",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "results",
				Aliases: []string{"r"},
				Usage:   "Path to the results folder",
				Value:   "results",
			},
		},
		Action: resultsAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
