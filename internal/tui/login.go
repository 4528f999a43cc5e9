package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jobmeet/jobmeet/internal/auth"
	"github.com/jobmeet/jobmeet/internal/session"
)

// loginSettledMsg is delivered when a login attempt (password or Google)
// finishes. The app consumes the pending redirect target on success.
type loginSettledMsg struct {
	result session.Result
}

// loginScreen renders the credential form. The submit path disables the
// form until the in-flight call settles, so a single user action issues at
// most one request.
type loginScreen struct {
	deps Deps
	form *huh.Form

	email    string
	password string

	submitting bool
}

func newLoginScreen(deps Deps) *loginScreen {
	s := &loginScreen{deps: deps}
	s.form = s.newForm()
	return s
}

func (s *loginScreen) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Placeholder("name@example.com").
				Value(&s.email).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return errRequired
					}
					return nil
				}),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&s.password).
				Validate(func(v string) error {
					if v == "" {
						return errRequired
					}
					return nil
				}),
		).Title("Welcome back"),
	)
}

func (s *loginScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *loginScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, navTo(RouteHome)
		case "ctrl+g":
			if !s.submitting {
				s.submitting = true
				return s, s.googleLogin()
			}
			return s, nil
		case "ctrl+s":
			return s, navTo(RouteSignup)
		case "ctrl+r":
			return s, navTo(RouteReset)
		}

	case loginSettledMsg:
		// Failure path only: the app handles success by navigating away
		if !msg.result.Success {
			s.submitting = false
			s.password = ""
			s.form = s.newForm()
			return s, s.form.Init()
		}
		return s, nil
	}

	if s.submitting {
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.submitting = true
		return s, tea.Batch(cmd, s.submit())
	}

	return s, cmd
}

// submit runs the login round trip off the event loop
func (s *loginScreen) submit() tea.Cmd {
	deps := s.deps
	email, password := s.email, s.password

	return func() tea.Msg {
		deps.Busy.Start()
		defer deps.Busy.Stop()

		result := deps.Store.Login(context.Background(), email, password)
		return loginSettledMsg{result: result}
	}
}

// googleLogin obtains a Google access token via the loopback flow, then
// exchanges it for a backend session
func (s *loginScreen) googleLogin() tea.Cmd {
	deps := s.deps

	return func() tea.Msg {
		token, err := deps.GoogleFlow.Token(context.Background())
		if err != nil {
			result := session.Result{Err: err}
			deps.Notifier.Error(result.ErrorMessage())
			return loginSettledMsg{result: result}
		}

		result := deps.Store.GoogleLogin(context.Background(), token, auth.RoleCandidate)
		return loginSettledMsg{result: result}
	}
}

func (s *loginScreen) View(styles Styles, width int) string {
	if s.submitting {
		return styles.Border.Render(styles.Muted.Render("Signing in..."))
	}

	help := styles.Help.Render(
		styles.Key.Render("ctrl+g") + " sign in with Google  " +
			styles.Key.Render("ctrl+s") + " sign up  " +
			styles.Key.Render("ctrl+r") + " forgot password  " +
			styles.Key.Render("esc") + " back",
	)

	return lipgloss.JoinVertical(lipgloss.Left, s.form.View(), help)
}
