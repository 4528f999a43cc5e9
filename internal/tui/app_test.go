package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobmeet/jobmeet/internal/api"
	"github.com/jobmeet/jobmeet/internal/auth"
	"github.com/jobmeet/jobmeet/internal/config"
	"github.com/jobmeet/jobmeet/internal/overlay"
	"github.com/jobmeet/jobmeet/internal/session"
)

// authBackend is a stub of the auth endpoints that counts requests per path
type authBackend struct {
	hasSession bool
	calls      map[string]int
}

func newAuthBackend() *authBackend {
	return &authBackend{calls: map[string]int{}}
}

func (b *authBackend) handler() http.HandlerFunc {
	user := map[string]any{
		"id": 7, "email": "cand@example.com", "full_name": "Casey Doe",
		"role": "CANDIDATE", "created_at": "2025-06-01T10:00:00Z",
	}

	return func(w http.ResponseWriter, r *http.Request) {
		b.calls[r.URL.Path]++
		switch r.URL.Path {
		case "/api/auth/user/":
			if !b.hasSession {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(user)

		case "/api/auth/login/":
			b.hasSession = true
			json.NewEncoder(w).Encode(map[string]any{"message": "Login successful", "user": user})

		case "/api/auth/logout/":
			b.hasSession = false
			json.NewEncoder(w).Encode(map[string]any{"message": "Logout successful"})

		case "/api/auth/password-reset/confirm/":
			json.NewEncoder(w).Encode(map[string]any{"message": "Password reset successful"})

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestDeps(t *testing.T, backend *authBackend) Deps {
	t.Helper()

	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	client, err := api.New(server.URL)
	require.NoError(t, err)

	svc := auth.NewService(client)
	notifier := NewNotifier()

	return Deps{
		Auth:     svc,
		Store:    session.NewStore(svc, session.WithNotifier(notifier)),
		Config:   config.Default(),
		Notifier: notifier,
		Busy:     overlay.New(),
	}
}

// drain applies a command's message (and any batched ones) back into the app
func drain(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			drain(t, a, c)
		}
		return
	}
	if msg == nil {
		return
	}
	_, next := a.Update(msg)
	drain(t, a, next)
}

func TestSessionCheckSettlesPendingRoute(t *testing.T) {
	backend := newAuthBackend()
	backend.hasSession = true
	deps := newTestDeps(t, backend)

	a := NewApp(deps)

	// Before the initial fetch settles every known route parks as pending
	cmd := a.navigate(RouteDashboard, nil)
	assert.Nil(t, cmd)
	assert.Equal(t, RouteDashboard, a.route)
	assert.Nil(t, a.scr)

	deps.Store.Init(context.Background())
	_, _ = a.Update(sessionCheckedMsg{})

	assert.Equal(t, RouteDashboard, a.route)
	require.NotNil(t, a.scr)
	assert.IsType(t, &dashboardScreen{}, a.scr)
}

func TestProtectedRouteBouncesToLogin(t *testing.T) {
	deps := newTestDeps(t, newAuthBackend())
	deps.Store.Init(context.Background())

	a := NewApp(deps)
	a.navigate(RouteDashboard, nil)

	assert.Equal(t, RouteLogin, a.route)
	assert.IsType(t, &loginScreen{}, a.scr)
	assert.Equal(t, RouteDashboard, a.pendingFrom)
}

func TestPendingRedirectConsumedOnce(t *testing.T) {
	backend := newAuthBackend()
	deps := newTestDeps(t, backend)
	deps.Store.Init(context.Background())

	a := NewApp(deps)
	a.navigate(RouteDashboard, nil)
	require.Equal(t, RouteDashboard, a.pendingFrom)

	result := deps.Store.Login(context.Background(), "cand@example.com", "pw")
	require.True(t, result.Success)

	_, _ = a.Update(loginSettledMsg{result: result})
	assert.Equal(t, RouteDashboard, a.route)
	assert.Empty(t, a.pendingFrom)

	// A second login lands on the default target, not the stale one
	a.navigate(RouteLogin, nil)
	assert.Equal(t, RouteDashboard, a.route, "public-only route bounces when authenticated")

	_, _ = a.Update(loginSettledMsg{result: result})
	assert.Equal(t, RouteDashboard, a.route)
}

func TestLoginFailureStaysOnLoginScreen(t *testing.T) {
	deps := newTestDeps(t, newAuthBackend())
	deps.Store.Init(context.Background())

	a := NewApp(deps)
	a.navigate(RouteLogin, nil)

	_, _ = a.Update(loginSettledMsg{result: session.Result{Success: false}})

	assert.Equal(t, RouteLogin, a.route)
	assert.IsType(t, &loginScreen{}, a.scr)
}

func TestLogoutNavigatesHome(t *testing.T) {
	backend := newAuthBackend()
	deps := newTestDeps(t, backend)
	deps.Store.Login(context.Background(), "cand@example.com", "pw")
	deps.Store.Init(context.Background())

	a := NewApp(deps)
	a.navigate(RouteDashboard, nil)
	require.IsType(t, &dashboardScreen{}, a.scr)

	drain(t, a, logoutCmd(deps))

	assert.Equal(t, RouteHome, a.route)
	assert.IsType(t, &homeScreen{}, a.scr)
	assert.False(t, deps.Store.Authenticated())
}

func TestThemeToggleRestyles(t *testing.T) {
	deps := newTestDeps(t, newAuthBackend())
	a := NewApp(deps)
	require.Equal(t, ThemeDark, a.theme)

	_, _ = a.Update(themeToggledMsg{theme: ThemeLight})

	assert.Equal(t, ThemeLight, a.theme)
}

func TestResetConfirmMismatchSkipsBackend(t *testing.T) {
	backend := newAuthBackend()
	deps := newTestDeps(t, backend)

	s := newResetConfirmScreen(deps, "uid-1", "tok-1")
	s.password = "newpass123"
	s.password2 = "different"

	msg := s.submit()()

	settled, ok := msg.(resetConfirmedMsg)
	require.True(t, ok)
	require.Error(t, settled.err)
	assert.Zero(t, backend.calls["/api/auth/password-reset/confirm/"])
}

func TestResetConfirmMatchingPasswordsHitBackend(t *testing.T) {
	backend := newAuthBackend()
	deps := newTestDeps(t, backend)

	s := newResetConfirmScreen(deps, "uid-1", "tok-1")
	s.password = "newpass123"
	s.password2 = "newpass123"

	msg := s.submit()()

	settled, ok := msg.(resetConfirmedMsg)
	require.True(t, ok)
	assert.NoError(t, settled.err)
	assert.Equal(t, 1, backend.calls["/api/auth/password-reset/confirm/"])
}

func TestResetLinkParams(t *testing.T) {
	tests := []struct {
		name      string
		link      string
		wantUID   string
		wantToken string
		wantOK    bool
	}{
		{
			name: "full url", link: "http://localhost:8000/reset-password/MQ/abc-def",
			wantUID: "MQ", wantToken: "abc-def", wantOK: true,
		},
		{
			name: "bare path", link: "/reset-password/MQ/abc-def",
			wantUID: "MQ", wantToken: "abc-def", wantOK: true,
		},
		{
			name: "trailing slash", link: "https://app.example.com/reset-password/MQ/abc-def/",
			wantUID: "MQ", wantToken: "abc-def", wantOK: true,
		},
		{
			name: "surrounding whitespace", link: "  /reset-password/MQ/abc-def\n",
			wantUID: "MQ", wantToken: "abc-def", wantOK: true,
		},
		{name: "missing token", link: "/reset-password/MQ", wantOK: false},
		{name: "wrong path", link: "/login", wantOK: false},
		{name: "empty", link: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, ok := resetLinkParams(tt.link)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantUID, params["uid"])
				assert.Equal(t, tt.wantToken, params["token"])
			}
		})
	}
}

func TestResetLinkOpensConfirmScreen(t *testing.T) {
	deps := newTestDeps(t, newAuthBackend())
	deps.Store.Init(context.Background())

	a := NewApp(deps)
	a.navigate(RouteReset, nil)
	require.IsType(t, &resetScreen{}, a.scr)

	// The reset email is on its way; the screen swaps in the link prompt
	_, _ = a.Update(resetRequestedMsg{})
	scr := a.scr.(*resetScreen)
	require.True(t, scr.sent)

	scr.link = "http://localhost:8000/reset-password/MQ/abc-def"
	_, _ = a.Update(scr.openLink()())

	require.IsType(t, &resetConfirmScreen{}, a.scr)
	confirm := a.scr.(*resetConfirmScreen)
	assert.Equal(t, "MQ", confirm.uid)
	assert.Equal(t, "abc-def", confirm.token)
}

func TestResetConfirmRouteParams(t *testing.T) {
	deps := newTestDeps(t, newAuthBackend())
	deps.Store.Init(context.Background())

	a := NewApp(deps)
	a.navigate(RouteResetConfirm, map[string]string{"uid": "MQ", "token": "abc-def"})

	require.IsType(t, &resetConfirmScreen{}, a.scr)
	scr := a.scr.(*resetConfirmScreen)
	assert.Equal(t, "MQ", scr.uid)
	assert.Equal(t, "abc-def", scr.token)
}
