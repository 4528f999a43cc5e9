package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobmeet/jobmeet/internal/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to JobMeet",
	Long: `Log in to JobMeet with your email and password, or through Google.

The session cookie lives only for the duration of the process; this command
exists to verify credentials and for scripting against a shared process.

Examples:
  jobmeet login --email user@example.com --password mypass
  jobmeet login --google`,
	RunE: runLogin,
}

var (
	loginEmail    string
	loginPassword string
	loginGoogle   bool
)

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	loginCmd.Flags().BoolVar(&loginGoogle, "google", false, "sign in with Google instead")

	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	deps, err := newClientDeps()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if loginGoogle {
		token, err := deps.google.Token(ctx)
		if err != nil {
			return err
		}
		result := deps.store.GoogleLogin(ctx, token, auth.RoleCandidate)
		return result.Err
	}

	if loginEmail == "" {
		return fmt.Errorf("--email is required")
	}
	if loginPassword == "" {
		return fmt.Errorf("--password is required")
	}

	result := deps.store.Login(ctx, loginEmail, loginPassword)
	return result.Err
}
