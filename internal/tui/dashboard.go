package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// dashboardScreen is the signed-in landing view
type dashboardScreen struct {
	deps Deps
}

func newDashboardScreen(deps Deps) *dashboardScreen {
	return &dashboardScreen{deps: deps}
}

func (s *dashboardScreen) Init() tea.Cmd {
	return nil
}

func (s *dashboardScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "s":
			return s, navTo(RouteSettings)
		case "h":
			return s, navTo(RouteHome)
		case "ctrl+q":
			return s, logoutCmd(s.deps)
		case "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *dashboardScreen) View(styles Styles, width int) string {
	user := s.deps.Store.User()
	if user == nil {
		// Guard granted the route, then the session vanished; the next
		// navigation will bounce to login
		return styles.Muted.Render("Session expired")
	}

	title := styles.Title.Render("Welcome back, " + user.FullName)

	lines := []string{
		title,
		styles.Label.Render("Email ") + styles.Value.Render(user.Email),
		styles.Label.Render("Role  ") + styles.Value.Render(string(user.Role)),
	}
	if user.Phone != "" {
		lines = append(lines, styles.Label.Render("Phone ")+styles.Value.Render(user.Phone))
	}

	lines = append(lines, styles.Help.Render(
		styles.Key.Render("s")+" settings  "+
			styles.Key.Render("h")+" home  "+
			styles.Key.Render("ctrl+q")+" log out  "+
			styles.Key.Render("q")+" quit",
	))

	return styles.Border.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// logoutCmd ends the backend session off the event loop. The store clears
// local state even when the backend call fails; navigation home happens in
// the app's logoutDoneMsg handler.
func logoutCmd(deps Deps) tea.Cmd {
	return func() tea.Msg {
		deps.Busy.Start()
		defer deps.Busy.Stop()

		result := deps.Store.Logout(context.Background())
		return logoutDoneMsg{result: result}
	}
}
