package exitcode

import (
	"os"

	"github.com/jobmeet/jobmeet/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication failure (bad credentials, no session)
	AuthError = 3

	// ValidationError indicates the backend rejected submitted fields
	ValidationError = 4

	// NetworkError indicates the backend was unreachable
	NetworkError = 5

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps an error to its exit code using the error taxonomy
func DetermineExitCode(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.IsAuth(err):
		return AuthError
	case errors.IsValidation(err):
		return ValidationError
	case errors.IsTransport(err):
		return NetworkError
	default:
		return GeneralError
	}
}
