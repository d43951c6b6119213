// Package routes declares HTTP routes as data and registers them on a ServeMux
// using method-qualified patterns.
package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler.
// An empty Method registers the pattern for every method.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group organizes routes under a common prefix. Children inherit the
// accumulated prefix of their parents.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", group)
	}
}

// Patterns returns the ServeMux patterns the group would register, in registration order.
func (g Group) Patterns() []string {
	var out []string
	g.walk("", func(pattern string, _ http.HandlerFunc) {
		out = append(out, pattern)
	})
	return out
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	group.walk(parentPrefix, func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, h)
	})
}

func (g Group) walk(parentPrefix string, visit func(pattern string, h http.HandlerFunc)) {
	fullPrefix := parentPrefix + g.Prefix
	for _, route := range g.Routes {
		visit(route.pattern(fullPrefix), route.Handler)
	}
	for _, child := range g.Children {
		child.walk(fullPrefix, visit)
	}
}

func (r Route) pattern(prefix string) string {
	if r.Method == "" {
		return prefix + r.Pattern
	}
	return r.Method + " " + prefix + r.Pattern
}
