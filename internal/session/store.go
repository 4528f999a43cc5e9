package session

import (
	"context"
	"sync"

	"github.com/jobmeet/jobmeet/internal/auth"
	"github.com/jobmeet/jobmeet/internal/errors"
	"github.com/jobmeet/jobmeet/internal/log"
)

// Notifier receives human-readable outcome messages for display.
// The TUI shows them as toasts; the plain CLI prints them.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier discards all notifications
type NopNotifier struct{}

// Success implements Notifier
func (NopNotifier) Success(string) {}

// Error implements Notifier
func (NopNotifier) Error(string) {}

// Result is the structured outcome of a store operation. Failures come back
// as values, never as panics into the UI; callers branch on Success to
// decide whether to navigate.
type Result struct {
	Success bool
	User    *auth.User
	Err     error
}

// ErrorMessage returns the human-readable failure message, or "" on success
func (r Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	if jmErr, ok := r.Err.(*errors.JobmeetError); ok {
		return jmErr.Message
	}
	return r.Err.Error()
}

// Store owns the client's belief about the current authenticated user.
//
// It is the single source of truth consulted by route guards and screens.
// Authenticated() is always derived from the user field; nothing may set
// the two independently. Construct one Store at app start and inject it;
// there is no package-level instance.
//
// Mutation happens on the UI event loop. The mutex exists so reads from
// tea.Cmd goroutines stay race-free; it is not a coordination mechanism.
type Store struct {
	mu       sync.RWMutex
	svc      *auth.Service
	notifier Notifier
	logger   *log.Logger

	user    *auth.User
	loading bool

	initOnce sync.Once
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithNotifier sets the notification sink
func WithNotifier(n Notifier) StoreOption {
	return func(s *Store) {
		s.notifier = n
	}
}

// WithLogger sets the store's logger
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a Store in its initial state: no user, loading until
// Init settles.
func NewStore(svc *auth.Service, opts ...StoreOption) *Store {
	s := &Store{
		svc:      svc,
		notifier: NopNotifier{},
		logger:   log.DefaultLogger(),
		loading:  true,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Init issues the initial session fetch. Regardless of outcome, loading
// flips to false exactly once when the call settles and never becomes true
// again. A failed fetch means "not authenticated" — it is expected, common,
// and never surfaced as an error.
func (s *Store) Init(ctx context.Context) {
	s.initOnce.Do(func() {
		user, err := s.svc.CurrentUser(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()

		if err != nil {
			s.logger.DebugContext(ctx, "no active session", "reason", err.Error())
			s.user = nil
		} else {
			s.user = user
		}
		s.loading = false
	})
}

// User returns the current user, or nil when unauthenticated
func (s *Store) User() *auth.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Loading reports whether the initial session fetch is still in flight
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Authenticated reports whether a user is present. Always computed from
// the user field, never stored.
func (s *Store) Authenticated() bool {
	return s.User() != nil
}

// Login authenticates and, on success, atomically replaces the stored user.
// On failure the stored user is left unchanged.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	user, err := s.svc.Login(ctx, email, password)
	if err != nil {
		res := Result{Err: err}
		s.notifier.Error(res.ErrorMessage())
		return res
	}

	s.setUser(user)
	s.notifier.Success("Login successful!")
	return Result{Success: true, User: user}
}

// Signup creates an account and, on success, stores the new user — the
// backend logs a fresh signup straight in.
func (s *Store) Signup(ctx context.Context, req auth.SignupRequest) Result {
	user, err := s.svc.Signup(ctx, req)
	if err != nil {
		res := Result{Err: err}
		s.notifier.Error(res.ErrorMessage())
		return res
	}

	s.setUser(user)
	s.notifier.Success("Account created successfully!")
	return Result{Success: true, User: user}
}

// Logout ends the session. Best-effort: the local user clears whether or
// not the backend call succeeds. Navigation after logout is the caller's
// responsibility, not the store's.
func (s *Store) Logout(ctx context.Context) Result {
	err := s.svc.Logout(ctx)

	s.setUser(nil)

	if err != nil {
		s.notifier.Error("Logout failed")
		return Result{Err: err}
	}

	s.notifier.Success("Logged out successfully")
	return Result{Success: true}
}

// GoogleLogin exchanges a Google access token for a session. IsNewUser only
// picks the success message.
func (s *Store) GoogleLogin(ctx context.Context, accessToken string, role auth.Role) Result {
	result, err := s.svc.GoogleLogin(ctx, accessToken, role)
	if err != nil {
		res := Result{Err: err}
		s.notifier.Error(res.ErrorMessage())
		return res
	}

	s.setUser(result.User)
	if result.IsNewUser {
		s.notifier.Success("Account created successfully!")
	} else {
		s.notifier.Success("Login successful!")
	}
	return Result{Success: true, User: result.User}
}

func (s *Store) setUser(user *auth.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}
