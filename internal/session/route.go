package session

// Route is one of the paths served by the front-end.
type Route string

const (
	RouteRoot      Route = "/"
	RouteLogin     Route = "/login"
	RouteDashboard Route = "/dashboard"
)

// Action tells the HTTP layer what to do with a request.
type Action int

const (
	ActionRender Action = iota
	ActionRedirect
	ActionNotFound
)

// Decision is the outcome of the routing policy for one request.
type Decision struct {
	Action Action
	// Target is the redirect location when Action is ActionRedirect.
	Target Route
}

func render() Decision { return Decision{Action: ActionRender} }

func redirect(to Route) Decision { return Decision{Action: ActionRedirect, Target: to} }

// Resolve applies the routing policy for route in state s.
func Resolve(route Route, s State) Decision {
	switch route {
	case RouteRoot:
		return redirect(RouteLogin)
	case RouteLogin:
		if s == Authenticated {
			return redirect(RouteDashboard)
		}
		return render()
	case RouteDashboard:
		if s == Authenticated {
			return render()
		}
		return redirect(RouteLogin)
	default:
		return Decision{Action: ActionNotFound}
	}
}

// Known reports whether path is one of the front-end routes.
func Known(path string) bool {
	switch Route(path) {
	case RouteRoot, RouteLogin, RouteDashboard:
		return true
	}
	return false
}
