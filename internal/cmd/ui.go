package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jobmeet/jobmeet/internal/config"
	"github.com/jobmeet/jobmeet/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive interface",
	Long: `Open the full-screen interactive interface.

This is also what running jobmeet with no arguments does.`,
	RunE: runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	deps, err := newClientDeps()
	if err != nil {
		return err
	}

	notifier := tui.NewNotifier()

	// The interactive store notifies through the toast channel instead of
	// stdout, so rebuild it with the right sink
	store := deps.interactiveStore(notifier)

	configPath := flagConfig
	if configPath == "" {
		if p, err := config.Path(); err == nil {
			configPath = p
		}
	}

	return tui.Run(tui.Deps{
		Auth:       deps.auth,
		Store:      store,
		GoogleFlow: deps.google,
		Config:     deps.cfg,
		ConfigPath: configPath,
		Notifier:   notifier,
		Logger:     deps.logger,
	})
}
