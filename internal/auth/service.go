package auth

import (
	"context"
	stderrors "errors"

	"github.com/jobmeet/jobmeet/internal/api"
	"github.com/jobmeet/jobmeet/internal/errors"
)

// Backend endpoint paths
const (
	pathSignup       = "/api/auth/signup/"
	pathLogin        = "/api/auth/login/"
	pathLogout       = "/api/auth/logout/"
	pathCurrentUser  = "/api/auth/user/"
	pathResetRequest = "/api/auth/password-reset/"
	pathResetConfirm = "/api/auth/password-reset/confirm/"
	pathGoogleLogin  = "/api/auth/google/"
)

// Service maps client auth intents onto backend endpoints.
//
// Stateless: one request/response round trip per operation, no local caching.
// Every failure that crosses this boundary is normalized — either a coded
// error carrying the backend's first field-level message, or a coded
// transport error. Operations are not idempotent at this layer; the caller
// guards against duplicate submissions.
type Service struct {
	client *api.Client
}

// NewService creates a Service over the given HTTP client
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// userEnvelope is the {message, user} shape login/signup respond with
type userEnvelope struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}

// rejection is the backend's field-level error body. Message priority
// when normalizing: error, then email[0], then password[0].
type rejection struct {
	Error    string   `json:"error"`
	Email    []string `json:"email"`
	Password []string `json:"password"`
}

func (r rejection) firstMessage() string {
	switch {
	case r.Error != "":
		return r.Error
	case len(r.Email) > 0:
		return r.Email[0]
	case len(r.Password) > 0:
		return r.Password[0]
	default:
		return ""
	}
}

// normalize converts an adapter error into a coded error using the backend's
// field-priority message, falling back to the per-operation generic message.
// Transport errors pass through already coded.
func normalize(err error, code errors.ErrorCode, fallback string) error {
	var apiErr *api.Error
	if stderrors.As(err, &apiErr) {
		var rej rejection
		apiErr.Decode(&rej)

		msg := rej.firstMessage()
		if msg == "" {
			msg = fallback
		}
		return coded(code, msg, err)
	}

	if errors.IsTransport(err) {
		return err
	}

	return coded(code, fallback, err)
}

// coded builds the outgoing error for a rejection. Login and signup use the
// suggestion-bearing constructors so the CLI can print recovery hints.
func coded(code errors.ErrorCode, msg string, cause error) error {
	var e *errors.JobmeetError
	switch code {
	case errors.ErrCodeAuthLoginFailed:
		e = errors.NewLoginFailedError(msg)
	case errors.ErrCodeValidationSignup:
		e = errors.NewSignupRejectedError(msg)
	default:
		e = errors.New(code, msg)
	}
	e.Cause = cause
	return e
}

// Signup creates an account. The backend establishes a session on success,
// so the returned user is already logged in.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	var resp userEnvelope
	if err := s.client.Post(ctx, pathSignup, req, &resp); err != nil {
		return nil, normalize(err, errors.ErrCodeValidationSignup, "Signup failed")
	}
	return resp.User, nil
}

// Login authenticates with email and password
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var resp userEnvelope
	if err := s.client.Post(ctx, pathLogin, body, &resp); err != nil {
		return nil, normalize(err, errors.ErrCodeAuthLoginFailed, "Login failed")
	}
	return resp.User, nil
}

// Logout ends the backend session. The caller treats logout as best-effort:
// local state clears whether or not this call succeeds.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.client.Post(ctx, pathLogout, nil, nil); err != nil {
		return normalize(err, errors.ErrCodeAuthLogoutFailed, "Logout failed")
	}
	return nil
}

// CurrentUser fetches the account behind the current session cookie.
// Callers interpret any failure as "no active session", not as an error
// to surface.
func (s *Service) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.Get(ctx, pathCurrentUser, &user); err != nil {
		return nil, normalize(err, errors.ErrCodeAuthNoSession, "Not authenticated")
	}
	return &user, nil
}

// RequestPasswordReset asks the backend to email a reset link
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	if err := s.client.Post(ctx, pathResetRequest, body, nil); err != nil {
		return normalize(err, errors.ErrCodeAuthResetFailed, "Failed to send reset email")
	}
	return nil
}

// ConfirmPasswordReset sets a new password using the emailed uid and token.
// The caller is responsible for checking newPassword == newPassword2 before
// calling; the service does not re-validate.
func (s *Service) ConfirmPasswordReset(ctx context.Context, uid, token, newPassword, newPassword2 string) error {
	body := map[string]string{
		"uid":           uid,
		"token":         token,
		"new_password":  newPassword,
		"new_password2": newPassword2,
	}
	if err := s.client.Post(ctx, pathResetConfirm, body, nil); err != nil {
		return normalize(err, errors.ErrCodeValidationResetConfirm, "Failed to reset password")
	}
	return nil
}

// GoogleLogin exchanges a Google access token plus a desired role for a
// backend session
func (s *Service) GoogleLogin(ctx context.Context, accessToken string, role Role) (*GoogleResult, error) {
	if role == "" {
		role = RoleCandidate
	}

	body := map[string]string{
		"access_token": accessToken,
		"role":         string(role),
	}

	var resp struct {
		userEnvelope
		IsNewUser bool `json:"is_new_user"`
	}
	if err := s.client.Post(ctx, pathGoogleLogin, body, &resp); err != nil {
		return nil, normalize(err, errors.ErrCodeAuthGoogleFailed, "Google login failed")
	}

	return &GoogleResult{User: resp.User, IsNewUser: resp.IsNewUser}, nil
}
