package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobmeet/jobmeet/internal/auth"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a JobMeet account",
	Long: `Create a JobMeet account.

Role is one of HOST or CANDIDATE. Hosts schedule and run interviews;
candidates attend them.

Examples:
  jobmeet signup --email user@example.com --password mypass --name "Alex Doe"
  jobmeet signup --email host@example.com --password mypass --name "Jo Host" --role HOST`,
	RunE: runSignup,
}

var (
	signupEmail    string
	signupPassword string
	signupName     string
	signupPhone    string
	signupRole     string
)

func init() {
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "account email")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "account password")
	signupCmd.Flags().StringVar(&signupName, "name", "", "full name")
	signupCmd.Flags().StringVar(&signupPhone, "phone", "", "phone number (optional)")
	signupCmd.Flags().StringVar(&signupRole, "role", string(auth.RoleCandidate), "account role: HOST or CANDIDATE")

	rootCmd.AddCommand(signupCmd)
}

func runSignup(cmd *cobra.Command, args []string) error {
	if signupEmail == "" {
		return fmt.Errorf("--email is required")
	}
	if signupPassword == "" {
		return fmt.Errorf("--password is required")
	}
	if signupName == "" {
		return fmt.Errorf("--name is required")
	}

	role := auth.Role(signupRole)
	if !role.Valid() {
		return fmt.Errorf("invalid role %q: must be HOST or CANDIDATE", signupRole)
	}

	deps, err := newClientDeps()
	if err != nil {
		return err
	}

	result := deps.store.Signup(cmd.Context(), auth.SignupRequest{
		Email:     signupEmail,
		Password:  signupPassword,
		Password2: signupPassword,
		FullName:  signupName,
		Phone:     signupPhone,
		Role:      role,
	})
	return result.Err
}
