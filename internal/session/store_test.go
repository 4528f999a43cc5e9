package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobmeet/jobmeet/internal/api"
	"github.com/jobmeet/jobmeet/internal/auth"
)

// recordingNotifier captures notifications for assertions
type recordingNotifier struct {
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.failures = append(n.failures, msg) }

// fakeBackend is a stateful stub of the auth endpoints: login/signup set a
// session cookie, the user endpoint requires it.
type fakeBackend struct {
	user        map[string]any
	rejectLogin bool
	failLogout  bool
	calls       map[string]int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		user: map[string]any{
			"id":         1,
			"email":      "host@example.com",
			"full_name":  "Alex Host",
			"role":       "HOST",
			"created_at": "2025-06-01T10:00:00Z",
		},
		calls: map[string]int{},
	}
}

func (f *fakeBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.calls[r.URL.Path]++
		switch r.URL.Path {
		case "/api/auth/login/":
			if f.rejectLogin {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":"Invalid credentials"}`))
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "s-1", Path: "/"})
			json.NewEncoder(w).Encode(map[string]any{"message": "Login successful", "user": f.user})

		case "/api/auth/signup/":
			var req map[string]any
			json.NewDecoder(r.Body).Decode(&req)
			f.user["email"] = req["email"]
			http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "s-1", Path: "/"})
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{"message": "User created successfully", "user": f.user})

		case "/api/auth/user/":
			cookie, err := r.Cookie("sessionid")
			if err != nil || cookie.Value != "s-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(f.user)

		case "/api/auth/logout/":
			if f.failLogout {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{"message": "Logout successful"})

		case "/api/auth/google/":
			http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "s-1", Path: "/"})
			json.NewEncoder(w).Encode(map[string]any{
				"message": "Login successful", "user": f.user, "is_new_user": true,
			})

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestStore(t *testing.T, backend *fakeBackend, opts ...StoreOption) *Store {
	t.Helper()

	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	client, err := api.New(server.URL)
	require.NoError(t, err)

	return NewStore(auth.NewService(client), opts...)
}

func TestInitialState(t *testing.T) {
	store := newTestStore(t, newFakeBackend())

	assert.True(t, store.Loading())
	assert.Nil(t, store.User())
	assert.False(t, store.Authenticated())
}

func TestInitWithSession(t *testing.T) {
	backend := newFakeBackend()
	store := newTestStore(t, backend)
	ctx := context.Background()

	// Establish a session cookie first, as a restored process would have
	store.Login(ctx, "host@example.com", "pw")

	store.Init(ctx)

	assert.False(t, store.Loading())
	require.NotNil(t, store.User())
	assert.True(t, store.Authenticated())
}

func TestInitWithoutSession(t *testing.T) {
	notifier := &recordingNotifier{}
	store := newTestStore(t, newFakeBackend(), WithNotifier(notifier))

	store.Init(context.Background())

	assert.False(t, store.Loading())
	assert.Nil(t, store.User())
	assert.False(t, store.Authenticated())
	// A failed initial fetch is expected; it must never surface
	assert.Empty(t, notifier.failures)
}

func TestInitSettlesOnce(t *testing.T) {
	backend := newFakeBackend()
	store := newTestStore(t, backend)
	ctx := context.Background()

	store.Init(ctx)
	store.Init(ctx)
	store.Init(ctx)

	assert.False(t, store.Loading())
	assert.Equal(t, 1, backend.calls["/api/auth/user/"])
}

func TestAuthenticatedDerivedFromUser(t *testing.T) {
	backend := newFakeBackend()
	store := newTestStore(t, backend)
	ctx := context.Background()

	check := func() {
		t.Helper()
		assert.Equal(t, store.User() != nil, store.Authenticated())
	}

	check()
	store.Init(ctx)
	check()
	store.Login(ctx, "host@example.com", "pw")
	check()
	store.Logout(ctx)
	check()
	store.GoogleLogin(ctx, "tok", auth.RoleCandidate)
	check()
}

func TestLoginSuccess(t *testing.T) {
	notifier := &recordingNotifier{}
	store := newTestStore(t, newFakeBackend(), WithNotifier(notifier))

	result := store.Login(context.Background(), "host@example.com", "pw")

	assert.True(t, result.Success)
	require.NotNil(t, store.User())
	assert.Equal(t, "host@example.com", store.User().Email)
	assert.Equal(t, []string{"Login successful!"}, notifier.successes)
}

func TestLoginFailureLeavesUserUnchanged(t *testing.T) {
	backend := newFakeBackend()
	backend.rejectLogin = true
	notifier := &recordingNotifier{}
	store := newTestStore(t, backend, WithNotifier(notifier))

	result := store.Login(context.Background(), "user@example.com", "wrongpass")

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.ErrorMessage())
	assert.Equal(t, "Invalid credentials", result.ErrorMessage())
	assert.Nil(t, store.User())
	assert.Equal(t, []string{"Invalid credentials"}, notifier.failures)
}

func TestSignupThenCurrentUser(t *testing.T) {
	backend := newFakeBackend()
	store := newTestStore(t, backend)
	ctx := context.Background()

	result := store.Signup(ctx, auth.SignupRequest{
		Email:     "new@example.com",
		Password:  "pw12345678",
		Password2: "pw12345678",
		FullName:  "New User",
		Role:      auth.RoleCandidate,
	})
	require.True(t, result.Success)

	// The session the signup established must resolve to the same account
	store.Init(ctx)
	require.NotNil(t, store.User())
	assert.Equal(t, "new@example.com", store.User().Email)
}

func TestLogoutClearsUser(t *testing.T) {
	store := newTestStore(t, newFakeBackend())
	ctx := context.Background()

	store.Login(ctx, "host@example.com", "pw")
	require.NotNil(t, store.User())

	result := store.Logout(ctx)

	assert.True(t, result.Success)
	assert.Nil(t, store.User())
	assert.False(t, store.Authenticated())
}

func TestLogoutBestEffort(t *testing.T) {
	backend := newFakeBackend()
	backend.failLogout = true
	notifier := &recordingNotifier{}
	store := newTestStore(t, backend, WithNotifier(notifier))
	ctx := context.Background()

	store.Login(ctx, "host@example.com", "pw")
	require.NotNil(t, store.User())

	result := store.Logout(ctx)

	// The backend call failed but local state still clears
	assert.False(t, result.Success)
	assert.Nil(t, store.User())
	assert.Equal(t, []string{"Logout failed"}, notifier.failures)
}

func TestGoogleLoginNewUserMessage(t *testing.T) {
	notifier := &recordingNotifier{}
	store := newTestStore(t, newFakeBackend(), WithNotifier(notifier))

	result := store.GoogleLogin(context.Background(), "ya29.token", auth.RoleCandidate)

	assert.True(t, result.Success)
	assert.True(t, store.Authenticated())
	assert.Equal(t, []string{"Account created successfully!"}, notifier.successes)
}
