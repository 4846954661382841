package router

// AuthState is the only thing the guard needs from the session store.
type AuthState interface {
	IsLoggedIn() bool
}

// Decision is the outcome of a guard check. Redirect names the route to go to instead; empty means allowed.
type Decision struct {
	Redirect string
}

// Allowed reports whether navigation may proceed.
func (d Decision) Allowed() bool { return d.Redirect == "" }

// Guard keeps logged-out users on the auth views and logged-in users off them.
type Guard struct {
	auth AuthState
}

func NewGuard(auth AuthState) *Guard {
	return &Guard{auth: auth}
}

// Check decides whether r may be entered in the current auth state.
func (g *Guard) Check(r Route) Decision {
	loggedIn := g.auth.IsLoggedIn()
	switch {
	case r.RequiresAuth && !loggedIn:
		return Decision{Redirect: Login}
	case (r.Name == Login || r.Name == Register) && loggedIn:
		return Decision{Redirect: Home}
	default:
		return Decision{}
	}
}

// Navigate resolves path, applies [Guard.Check] and returns the route that ends up displayed.
func (g *Guard) Navigate(path string) (Route, Decision) {
	r := Resolve(path)
	d := g.Check(r)
	if d.Allowed() {
		return r, d
	}
	target, err := ByName(d.Redirect)
	if err != nil {
		return r, d
	}
	return target, d
}
