package tui

import "strings"

// Route identifies a screen in the client
type Route string

// Client-visible routes
const (
	RouteHome         Route = "/"
	RouteLogin        Route = "/login"
	RouteSignup       Route = "/signup"
	RouteReset        Route = "/reset-password"
	RouteResetConfirm Route = "/reset-password/:uid/:token"
	RouteDashboard    Route = "/dashboard"
	RouteSettings     Route = "/settings"
)

// Access classifies who may visit a route
type Access int

const (
	// AccessOpen routes render for everyone
	AccessOpen Access = iota
	// AccessPublicOnly routes redirect authenticated users to the dashboard
	AccessPublicOnly
	// AccessProtected routes redirect unauthenticated users to login
	AccessProtected
)

// routeTable maps every route to its access class
var routeTable = map[Route]Access{
	RouteHome:         AccessOpen,
	RouteLogin:        AccessPublicOnly,
	RouteSignup:       AccessPublicOnly,
	RouteReset:        AccessPublicOnly,
	RouteResetConfirm: AccessPublicOnly,
	RouteDashboard:    AccessProtected,
	RouteSettings:     AccessProtected,
}

// AccessOf returns the access class for a route. Unknown routes are treated
// as the wildcard and classified as open; Resolve redirects them home.
func AccessOf(route Route) (Access, bool) {
	access, ok := routeTable[route]
	return access, ok
}

// Normalize maps a parameterized path onto its route. A concrete
// /reset-password/<uid>/<token> path matches RouteResetConfirm.
func Normalize(path string) Route {
	if strings.HasPrefix(path, string(RouteReset)+"/") {
		rest := strings.TrimPrefix(path, string(RouteReset)+"/")
		if parts := strings.Split(rest, "/"); len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			return RouteResetConfirm
		}
	}
	return Route(path)
}

// DecisionKind is the outcome of a guard evaluation
type DecisionKind int

const (
	// DecisionPending renders a wait indicator: the initial session fetch
	// has not settled
	DecisionPending DecisionKind = iota
	// DecisionGrant renders the requested route
	DecisionGrant
	// DecisionRedirect navigates elsewhere instead
	DecisionRedirect
)

// Decision is the result of resolving a navigation request against session
// state. For a protected route denied to an unauthenticated user, From
// carries the attempted route so a successful login can restore it.
type Decision struct {
	Kind DecisionKind
	To   Route
	From Route
}

// Resolve evaluates the route guards. It is a pure function of the route
// and the session store's {loading, authenticated} pair: no network calls,
// no side effects, re-evaluated on every navigation. While loading, nothing
// is granted or denied, so protected content never flashes before the
// initial session check completes.
func Resolve(route Route, loading, authenticated bool) Decision {
	access, known := AccessOf(route)
	if !known {
		// Wildcard: anything off the table goes home
		return Decision{Kind: DecisionRedirect, To: RouteHome}
	}

	if access == AccessOpen {
		if loading {
			return Decision{Kind: DecisionPending}
		}
		return Decision{Kind: DecisionGrant, To: route}
	}

	if loading {
		return Decision{Kind: DecisionPending}
	}

	switch access {
	case AccessProtected:
		if !authenticated {
			return Decision{Kind: DecisionRedirect, To: RouteLogin, From: route}
		}
		return Decision{Kind: DecisionGrant, To: route}

	case AccessPublicOnly:
		if authenticated {
			return Decision{Kind: DecisionRedirect, To: RouteDashboard}
		}
		return Decision{Kind: DecisionGrant, To: route}

	default:
		return Decision{Kind: DecisionRedirect, To: RouteHome}
	}
}
