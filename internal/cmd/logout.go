package cmd

import (
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Long: `End the current backend session.

The local session state is cleared even when the backend call fails.`,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	deps, err := newClientDeps()
	if err != nil {
		return err
	}

	result := deps.store.Logout(cmd.Context())
	return result.Err
}
