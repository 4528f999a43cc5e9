package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobmeet/jobmeet/internal/errors"
)

var resetCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Request or confirm a password reset",
	Long: `Request a password-reset email, or confirm a reset using the uid and
token from the emailed link.

Examples:
  jobmeet reset-password request --email user@example.com
  jobmeet reset-password confirm --uid MQ --token abc-def --password newpass`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var resetRequestCmd = &cobra.Command{
	Use:   "request",
	Short: "Email a password-reset link",
	RunE:  runResetRequest,
}

var resetConfirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Set a new password using an emailed link",
	RunE:  runResetConfirm,
}

var (
	resetEmail     string
	resetUID       string
	resetToken     string
	resetPassword  string
	resetPassword2 string
)

func init() {
	resetRequestCmd.Flags().StringVar(&resetEmail, "email", "", "account email")

	resetConfirmCmd.Flags().StringVar(&resetUID, "uid", "", "uid from the reset link")
	resetConfirmCmd.Flags().StringVar(&resetToken, "token", "", "token from the reset link")
	resetConfirmCmd.Flags().StringVar(&resetPassword, "password", "", "new password")
	resetConfirmCmd.Flags().StringVar(&resetPassword2, "confirm-password", "", "new password again (defaults to --password)")

	resetCmd.AddCommand(resetRequestCmd)
	resetCmd.AddCommand(resetConfirmCmd)
	rootCmd.AddCommand(resetCmd)
}

func runResetRequest(cmd *cobra.Command, args []string) error {
	if resetEmail == "" {
		return fmt.Errorf("--email is required")
	}

	deps, err := newClientDeps()
	if err != nil {
		return err
	}

	if err := deps.auth.RequestPasswordReset(cmd.Context(), resetEmail); err != nil {
		return err
	}

	fmt.Printf("If an account exists for %s, a reset link is on its way.\n", resetEmail)
	return nil
}

func runResetConfirm(cmd *cobra.Command, args []string) error {
	if resetUID == "" || resetToken == "" {
		return fmt.Errorf("--uid and --token are required")
	}
	if resetPassword == "" {
		return fmt.Errorf("--password is required")
	}

	// The confirmation password defaults to the new password; an explicit
	// mismatch never reaches the backend
	if resetPassword2 == "" {
		resetPassword2 = resetPassword
	}
	if resetPassword != resetPassword2 {
		return errors.NewPasswordMismatchError()
	}

	deps, err := newClientDeps()
	if err != nil {
		return err
	}

	if err := deps.auth.ConfirmPasswordReset(cmd.Context(), resetUID, resetToken, resetPassword, resetPassword2); err != nil {
		return err
	}

	fmt.Println("Password reset successfully. You can now log in.")
	return nil
}
