package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"autosphere-api/internal/tui"
	"autosphere-api/internal/view"
)

// runTUI starts the interactive browser
func runTUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cars, cleanup, err := newCarLookup(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	session := view.NewSession(cfg.View.DiscardStale, logger)
	m := tui.New(ctx, cars, session, tui.WithLogger(logger))

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
