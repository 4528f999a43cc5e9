package tui

import (
	"context"
	stderrors "errors"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jobmeet/jobmeet/internal/errors"
	"github.com/jobmeet/jobmeet/internal/session"
)

// resetRequestedMsg is delivered when the reset-email request settles
type resetRequestedMsg struct {
	err error
}

// resetScreen asks for an email address and requests a reset link. Once the
// email is on its way it prompts for the emailed link, which carries the uid
// and token the confirm screen needs.
type resetScreen struct {
	deps Deps
	form *huh.Form

	email      string
	link       string
	submitting bool
	sent       bool
}

func newResetScreen(deps Deps) *resetScreen {
	s := &resetScreen{deps: deps}
	s.form = s.newForm()
	return s
}

func (s *resetScreen) newForm() *huh.Form {
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
		).Title("Reset your password"),
	)
}

// newLinkForm prompts for the link from the reset email
func (s *resetScreen) newLinkForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("link").
				Title("Reset link").
				Placeholder("https://.../reset-password/<uid>/<token>").
				Value(&s.link).
				Validate(func(v string) error {
					if _, ok := resetLinkParams(v); !ok {
						return stderrors.New("paste the full link from the reset email")
					}
					return nil
				}),
		).Title("Check your inbox"),
	)
}

// resetLinkParams extracts the uid and token from a pasted reset link.
// Accepts a full URL or a bare /reset-password/<uid>/<token> path.
func resetLinkParams(link string) (map[string]string, bool) {
	path := strings.TrimSpace(link)
	if u, err := url.Parse(path); err == nil && u.Path != "" {
		path = u.Path
	}
	path = strings.TrimSuffix(path, "/")

	if Normalize(path) != RouteResetConfirm {
		return nil, false
	}

	parts := strings.Split(strings.TrimPrefix(path, string(RouteReset)+"/"), "/")
	return map[string]string{"uid": parts[0], "token": parts[1]}, true
}

func (s *resetScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *resetScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if s.sent {
				return s, navTo(RouteLogin)
			}
			return s, navTo(RouteHome)
		case "ctrl+l":
			return s, navTo(RouteLogin)
		}

	case resetRequestedMsg:
		s.submitting = false
		if msg.err != nil {
			s.deps.Notifier.Error(session.Result{Err: msg.err}.ErrorMessage())
			s.form = s.newForm()
			return s, s.form.Init()
		}
		// Swap in the link prompt so the emailed uid/token can be entered
		// without leaving the terminal
		s.sent = true
		s.form = s.newLinkForm()
		return s, s.form.Init()
	}

	if s.submitting {
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		if s.sent {
			return s, tea.Batch(cmd, s.openLink())
		}
		s.submitting = true
		return s, tea.Batch(cmd, s.submit())
	}

	return s, cmd
}

// openLink navigates to the confirm screen with the uid and token from the
// pasted link
func (s *resetScreen) openLink() tea.Cmd {
	params, ok := resetLinkParams(s.link)
	if !ok {
		return nil
	}
	return navToWithParams(RouteResetConfirm, params)
}

func (s *resetScreen) submit() tea.Cmd {
	deps := s.deps
	email := s.email

	return func() tea.Msg {
		deps.Busy.Start()
		defer deps.Busy.Stop()

		err := deps.Auth.RequestPasswordReset(context.Background(), email)
		return resetRequestedMsg{err: err}
	}
}

func (s *resetScreen) View(styles Styles, width int) string {
	if s.submitting {
		return styles.Border.Render(styles.Muted.Render("Sending reset email..."))
	}

	if s.sent {
		hint := styles.Value.Render("If an account exists for " + s.email + ", a reset link is on its way.")
		help := styles.Help.Render(styles.Key.Render("esc") + " back to login")
		return lipgloss.JoinVertical(lipgloss.Left, hint, s.form.View(), help)
	}

	help := styles.Help.Render(
		styles.Key.Render("ctrl+l") + " back to login  " +
			styles.Key.Render("esc") + " back",
	)

	return lipgloss.JoinVertical(lipgloss.Left, s.form.View(), help)
}

// resetConfirmedMsg is delivered when a confirm attempt settles
type resetConfirmedMsg struct {
	err error
}

// resetConfirmScreen sets a new password using the uid and token from the
// emailed link
type resetConfirmScreen struct {
	deps Deps
	form *huh.Form

	uid   string
	token string

	password  string
	password2 string

	submitting bool
	done       bool
}

func newResetConfirmScreen(deps Deps, uid, token string) *resetConfirmScreen {
	s := &resetConfirmScreen{deps: deps, uid: uid, token: token}
	s.form = s.newForm()
	return s
}

func (s *resetConfirmScreen) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("password").
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Value(&s.password).
				Validate(func(v string) error {
					if v == "" {
						return errRequired
					}
					return nil
				}),
			huh.NewInput().
				Key("password2").
				Title("Confirm new password").
				EchoMode(huh.EchoModePassword).
				Value(&s.password2).
				Validate(func(v string) error {
					if v == "" {
						return errRequired
					}
					return nil
				}),
		).Title("Choose a new password"),
	)
}

func (s *resetConfirmScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *resetConfirmScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, navTo(RouteLogin)
		}

	case resetConfirmedMsg:
		s.submitting = false
		if msg.err != nil {
			s.deps.Notifier.Error(session.Result{Err: msg.err}.ErrorMessage())
			s.password = ""
			s.password2 = ""
			s.form = s.newForm()
			return s, s.form.Init()
		}
		s.done = true
		s.deps.Notifier.Success("Password reset successfully. Please log in.")
		return s, navTo(RouteLogin)
	}

	if s.submitting || s.done {
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

// submit checks the two passwords match before anything leaves the process;
// a mismatch settles immediately without touching the backend.
func (s *resetConfirmScreen) submit() tea.Cmd {
	deps := s.deps
	uid, token := s.uid, s.token
	password, password2 := s.password, s.password2

	return func() tea.Msg {
		if password != password2 {
			return resetConfirmedMsg{err: errors.NewPasswordMismatchError()}
		}

		deps.Busy.Start()
		defer deps.Busy.Stop()

		err := deps.Auth.ConfirmPasswordReset(context.Background(), uid, token, password, password2)
		return resetConfirmedMsg{err: err}
	}
}

func (s *resetConfirmScreen) View(styles Styles, width int) string {
	if s.submitting {
		return styles.Border.Render(styles.Muted.Render("Resetting password..."))
	}

	help := styles.Help.Render(styles.Key.Render("esc") + " back to login")
	return lipgloss.JoinVertical(lipgloss.Left, s.form.View(), help)
}
