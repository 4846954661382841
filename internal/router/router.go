// package router maps application paths to named views and gates the protected ones
package router

import (
	"fmt"
	"strings"

	"github.com/desertthunder/friendbook/internal/shared"
)

// Route names.
const (
	Login     = "login"
	Register  = "register"
	Home      = "home"
	NewEntry  = "new-entry"
	EditEntry = "edit-entry"
)

// Route is a named view reachable at Pattern. Segments starting with ':' capture a parameter.
type Route struct {
	Name         string
	Pattern      string
	RequiresAuth bool
	Params       map[string]string
}

var routes = []Route{
	{Name: Login, Pattern: "/login"},
	{Name: Register, Pattern: "/register"},
	{Name: Home, Pattern: "/", RequiresAuth: true},
	{Name: NewEntry, Pattern: "/new", RequiresAuth: true},
	{Name: EditEntry, Pattern: "/edit/:id", RequiresAuth: true},
}

// Routes returns the route table in match order.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// ByName looks up a route by name.
func ByName(name string) (Route, error) {
	for _, r := range routes {
		if r.Name == name {
			return r, nil
		}
	}
	return Route{}, fmt.Errorf("%w: %q", shared.ErrRouteNotFound, name)
}

// Resolve matches path against the table. Unmatched paths fall back to home.
func Resolve(path string) Route {
	segs := split(path)
	for _, r := range routes {
		if params, ok := match(split(r.Pattern), segs); ok {
			r.Params = params
			return r
		}
	}
	home, _ := ByName(Home)
	return home
}

func match(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	var params map[string]string
	for i, p := range pattern {
		if name, ok := strings.CutPrefix(p, ":"); ok {
			if params == nil {
				params = make(map[string]string)
			}
			params[name] = segs[i]
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}

func split(path string) []string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}
