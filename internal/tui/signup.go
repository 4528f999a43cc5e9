package tui

import (
	"context"
	stderrors "errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jobmeet/jobmeet/internal/auth"
	"github.com/jobmeet/jobmeet/internal/session"
)

var errRequired = stderrors.New("this field is required")

// signupSettledMsg is delivered when an account-creation attempt finishes
type signupSettledMsg struct {
	result session.Result
}

// signupScreen renders the registration form
type signupScreen struct {
	deps Deps
	form *huh.Form

	fullName  string
	email     string
	phone     string
	role      string
	password  string
	password2 string

	submitting bool
}

func newSignupScreen(deps Deps) *signupScreen {
	s := &signupScreen{deps: deps, role: string(auth.RoleCandidate)}
	s.form = s.newForm()
	return s
}

func (s *signupScreen) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("full_name").
				Title("Full name").
				Value(&s.fullName).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return errRequired
					}
					return nil
				}),
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
				Key("phone").
				Title("Phone (optional)").
				Value(&s.phone),
			huh.NewSelect[string]().
				Key("role").
				Title("I am a").
				Options(
					huh.NewOption("Candidate looking for interviews", string(auth.RoleCandidate)),
					huh.NewOption("Host running interviews", string(auth.RoleHost)),
				).
				Value(&s.role),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&s.password).
				Validate(func(v string) error {
					if len(v) < 8 {
						return stderrors.New("password must be at least 8 characters")
					}
					return nil
				}),
			huh.NewInput().
				Key("password2").
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&s.password2).
				Validate(func(v string) error {
					if v != s.password {
						return stderrors.New("passwords don't match")
					}
					return nil
				}),
		).Title("Create your account"),
	)
}

func (s *signupScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *signupScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, navTo(RouteHome)
		case "ctrl+l":
			return s, navTo(RouteLogin)
		}

	case signupSettledMsg:
		if msg.result.Success {
			return s, navTo(RouteDashboard)
		}
		s.submitting = false
		s.password = ""
		s.password2 = ""
		s.form = s.newForm()
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
		s.submitting = true
		return s, tea.Batch(cmd, s.submit())
	}

	return s, cmd
}

func (s *signupScreen) submit() tea.Cmd {
	deps := s.deps
	req := auth.SignupRequest{
		Email:     s.email,
		Password:  s.password,
		Password2: s.password2,
		FullName:  s.fullName,
		Role:      auth.Role(s.role),
		Phone:     s.phone,
	}

	return func() tea.Msg {
		deps.Busy.Start()
		defer deps.Busy.Stop()

		result := deps.Store.Signup(context.Background(), req)
		return signupSettledMsg{result: result}
	}
}

func (s *signupScreen) View(styles Styles, width int) string {
	if s.submitting {
		return styles.Border.Render(styles.Muted.Render("Creating your account..."))
	}

	help := styles.Help.Render(
		styles.Key.Render("ctrl+l") + " already have an account  " +
			styles.Key.Render("esc") + " back",
	)

	return lipgloss.JoinVertical(lipgloss.Left, s.form.View(), help)
}
