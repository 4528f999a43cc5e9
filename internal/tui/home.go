package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// homeScreen is the landing view, open to everyone
type homeScreen struct {
	deps Deps
}

func newHomeScreen(deps Deps) *homeScreen {
	return &homeScreen{deps: deps}
}

func (s *homeScreen) Init() tea.Cmd {
	return nil
}

func (s *homeScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "l":
			return s, navTo(RouteLogin)
		case "s":
			return s, navTo(RouteSignup)
		case "r":
			return s, navTo(RouteReset)
		case "d":
			return s, navTo(RouteDashboard)
		case "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *homeScreen) View(styles Styles, width int) string {
	title := styles.Title.Render("JobMeet")
	subtitle := styles.Subtitle.Render("Interview scheduling for hosts and candidates")

	var status string
	if user := s.deps.Store.User(); user != nil {
		status = styles.Success.Render("Signed in as " + user.Email)
	} else {
		status = styles.Muted.Render("Not signed in")
	}

	help := styles.Help.Render(
		styles.Key.Render("l") + " login  " +
			styles.Key.Render("s") + " sign up  " +
			styles.Key.Render("r") + " reset password  " +
			styles.Key.Render("d") + " dashboard  " +
			styles.Key.Render("q") + " quit",
	)

	return styles.Border.Render(
		lipgloss.JoinVertical(lipgloss.Left, title, subtitle, status, help),
	)
}

// navTo builds a navigation command
func navTo(to Route) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{to: to}
	}
}

// navToWithParams builds a navigation command carrying route parameters
func navToWithParams(to Route, params map[string]string) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{to: to, params: params}
	}
}
