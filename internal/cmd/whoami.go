package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently authenticated user",
	Long: `Fetch and display the account record for the current session.

Exits with an auth error when no session is active.`,
	RunE: runWhoami,
}

var whoamiJSON bool

func init() {
	whoamiCmd.Flags().BoolVar(&whoamiJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	deps, err := newClientDeps()
	if err != nil {
		return err
	}

	user, err := deps.auth.CurrentUser(cmd.Context())
	if err != nil {
		return err
	}

	if whoamiJSON {
		data, err := json.MarshalIndent(user, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal user: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%s <%s>\n", user.FullName, user.Email)
	fmt.Printf("Role: %s\n", user.Role)
	if user.Phone != "" {
		fmt.Printf("Phone: %s\n", user.Phone)
	}
	return nil
}
