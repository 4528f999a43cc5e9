package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jobmeet/jobmeet/internal/auth"
	"github.com/jobmeet/jobmeet/internal/config"
	"github.com/jobmeet/jobmeet/internal/google"
	"github.com/jobmeet/jobmeet/internal/log"
	"github.com/jobmeet/jobmeet/internal/overlay"
	"github.com/jobmeet/jobmeet/internal/session"
)

const toastLifetime = 4 * time.Second

// screen is one routed view. Update returns the replacement screen so
// screens stay value-semantic like bubbletea models.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View(styles Styles, width int) string
}

// Deps carries everything the TUI needs, injected at construction.
// The session store is the single source of truth for auth state; the app
// never caches user or loading flags of its own.
type Deps struct {
	Auth       *auth.Service
	Store      *session.Store
	GoogleFlow *google.Flow
	Config     config.Config
	ConfigPath string
	Notifier   *Notifier
	Busy       *overlay.Overlay
	Logger     *log.Logger
}

// Notifier implements session.Notifier by feeding store outcomes into the
// bubbletea message loop as toasts. Construct it first, hand it to the
// session store, then to the app.
type Notifier struct {
	ch chan toast
}

// NewNotifier creates a Notifier
func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan toast, 8)}
}

// Success implements session.Notifier
func (n *Notifier) Success(msg string) { n.ch <- toast{text: msg} }

// Error implements session.Notifier
func (n *Notifier) Error(msg string) { n.ch <- toast{text: msg, isErr: true} }

// App is the top-level bubbletea model: it owns routing, toasts, the busy
// overlay state, and delegates everything else to the active screen.
type App struct {
	deps Deps

	route       Route
	pendingFrom Route
	scr         screen

	theme  ThemeName
	styles Styles
	spin   spinner.Model

	toasts    []toast
	toastCh   chan toast
	overlayCh chan bool

	overlayVisible bool
	width          int
	height         int
	quitting       bool
}

// Messages

type sessionCheckedMsg struct{}

type navigateMsg struct {
	to     Route
	params map[string]string
}

type toast struct {
	text  string
	isErr bool
}

type toastMsg struct{ t toast }

type toastExpiredMsg struct{}

type overlayMsg struct{ visible bool }

type logoutDoneMsg struct{ result session.Result }

// NewApp creates the TUI application model
func NewApp(deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = log.DefaultLogger()
	}
	if deps.Notifier == nil {
		deps.Notifier = NewNotifier()
	}

	overlayCh := make(chan bool, 4)
	if deps.Busy == nil {
		deps.Busy = overlay.New(
			overlay.WithChangeFunc(func(visible bool) { overlayCh <- visible }),
		)
	}

	theme := ParseTheme(deps.Config.Theme)

	return &App{
		deps:      deps,
		route:     RouteHome,
		theme:     theme,
		styles:    StylesFor(theme),
		spin:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		toastCh:   deps.Notifier.ch,
		overlayCh: overlayCh,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.checkSession(),
		a.waitForToast(),
		a.waitForOverlay(),
		a.spin.Tick,
	)
}

// checkSession runs the initial session fetch off the event loop
func (a *App) checkSession() tea.Cmd {
	store := a.deps.Store
	return func() tea.Msg {
		store.Init(context.Background())
		return sessionCheckedMsg{}
	}
}

func (a *App) waitForToast() tea.Cmd {
	ch := a.toastCh
	return func() tea.Msg {
		return toastMsg{t: <-ch}
	}
}

func (a *App) waitForOverlay() tea.Cmd {
	ch := a.overlayCh
	return func() tea.Msg {
		return overlayMsg{visible: <-ch}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.quitting = true
			return a, tea.Quit
		}

	case sessionCheckedMsg:
		// The guard that parked us in pending re-evaluates now
		return a, a.navigate(a.route, nil)

	case navigateMsg:
		return a, a.navigate(msg.to, msg.params)

	case toastMsg:
		a.toasts = append(a.toasts, msg.t)
		return a, tea.Batch(
			a.waitForToast(),
			tea.Tick(toastLifetime, func(time.Time) tea.Msg { return toastExpiredMsg{} }),
		)

	case toastExpiredMsg:
		if len(a.toasts) > 0 {
			a.toasts = a.toasts[1:]
		}
		return a, nil

	case overlayMsg:
		a.overlayVisible = msg.visible
		return a, a.waitForOverlay()

	case themeToggledMsg:
		a.theme = msg.theme
		a.styles = StylesFor(a.theme)
		return a, nil

	case loginSettledMsg:
		if msg.result.Success {
			target := a.pendingFrom
			a.pendingFrom = ""
			if target == "" {
				target = RouteDashboard
			}
			// The pending redirect target is consumed exactly once
			return a, a.navigate(target, nil)
		}

	case logoutDoneMsg:
		// Post-logout navigation is issued here, by the caller of the
		// store, never by the store itself
		return a, a.navigate(RouteHome, nil)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}

	if a.scr != nil {
		var cmd tea.Cmd
		a.scr, cmd = a.scr.Update(msg)
		return a, cmd
	}

	return a, nil
}

// navigate resolves the route guards and installs the granted screen
func (a *App) navigate(to Route, params map[string]string) tea.Cmd {
	for {
		d := Resolve(to, a.deps.Store.Loading(), a.deps.Store.Authenticated())

		switch d.Kind {
		case DecisionPending:
			a.route = to
			a.scr = nil
			return nil

		case DecisionGrant:
			a.route = to
			a.scr = a.buildScreen(to, params)
			return a.scr.Init()

		case DecisionRedirect:
			if d.From != "" {
				a.pendingFrom = d.From
			}
			to = d.To
			params = nil
		}
	}
}

// buildScreen constructs the screen for a granted route
func (a *App) buildScreen(route Route, params map[string]string) screen {
	switch route {
	case RouteLogin:
		return newLoginScreen(a.deps)
	case RouteSignup:
		return newSignupScreen(a.deps)
	case RouteReset:
		return newResetScreen(a.deps)
	case RouteResetConfirm:
		return newResetConfirmScreen(a.deps, params["uid"], params["token"])
	case RouteDashboard:
		return newDashboardScreen(a.deps)
	case RouteSettings:
		return newSettingsScreen(a.deps, a.theme)
	default:
		return newHomeScreen(a.deps)
	}
}

// View implements tea.Model
func (a *App) View() string {
	if a.quitting {
		return "Bye!\n"
	}

	var body string
	switch {
	case a.overlayVisible:
		body = a.styles.Overlay.Render(a.spin.View() + " Loading...")
	case a.scr == nil:
		// Initial session check still in flight
		body = a.styles.Muted.Render(a.spin.View() + " Checking session...")
	default:
		body = a.scr.View(a.styles, a.width)
	}

	if len(a.toasts) > 0 {
		body += "\n" + a.renderToasts()
	}

	return body
}

func (a *App) renderToasts() string {
	lines := make([]string, 0, len(a.toasts))
	for _, t := range a.toasts {
		style := a.styles.Toast.Foreground(lipgloss.Color("46"))
		prefix := "✓ "
		if t.isErr {
			style = a.styles.Toast.Foreground(lipgloss.Color("196"))
			prefix = "✗ "
		}
		lines = append(lines, style.Render(prefix+t.text))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Run starts the TUI program
func Run(deps Deps) error {
	p := tea.NewProgram(NewApp(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
