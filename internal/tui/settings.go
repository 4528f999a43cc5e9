package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jobmeet/jobmeet/internal/config"
)

// themeToggledMsg tells the app to re-style itself
type themeToggledMsg struct {
	theme ThemeName
}

// settingsScreen shows the profile and client preferences
type settingsScreen struct {
	deps  Deps
	theme ThemeName
}

func newSettingsScreen(deps Deps, theme ThemeName) *settingsScreen {
	return &settingsScreen{deps: deps, theme: theme}
}

func (s *settingsScreen) Init() tea.Cmd {
	return nil
}

func (s *settingsScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "t":
			s.theme = s.theme.Toggle()
			return s, s.persistTheme()
		case "d", "esc":
			return s, navTo(RouteDashboard)
		case "ctrl+q":
			return s, logoutCmd(s.deps)
		}
	}
	return s, nil
}

// persistTheme writes the new theme to the config file and restyles the
// app. A write failure surfaces as a toast; the in-memory toggle sticks
// either way.
func (s *settingsScreen) persistTheme() tea.Cmd {
	deps := s.deps
	theme := s.theme

	return func() tea.Msg {
		cfg := deps.Config
		cfg.Theme = string(theme)

		var err error
		if deps.ConfigPath != "" {
			err = config.SaveFile(cfg, deps.ConfigPath)
		} else {
			err = config.Save(cfg)
		}
		if err != nil {
			deps.Logger.Warn("failed to persist theme", "error", err)
			deps.Notifier.Error("Could not save theme preference")
		}

		return themeToggledMsg{theme: theme}
	}
}

func (s *settingsScreen) View(styles Styles, width int) string {
	user := s.deps.Store.User()
	if user == nil {
		return styles.Muted.Render("Session expired")
	}

	lines := []string{
		styles.Title.Render("Settings"),
		styles.Label.Render("Name  ") + styles.Value.Render(user.FullName),
		styles.Label.Render("Email ") + styles.Value.Render(user.Email),
		styles.Label.Render("Role  ") + styles.Value.Render(string(user.Role)),
		styles.Label.Render("Theme ") + styles.Value.Render(string(s.theme)),
		styles.Help.Render(
			styles.Key.Render("t") + " toggle theme  " +
				styles.Key.Render("d") + " dashboard  " +
				styles.Key.Render("ctrl+q") + " log out",
		),
	}

	return styles.Border.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
