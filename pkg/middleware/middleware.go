// Package middleware provides the ordered middleware stack and the request
// logging, panic recovery, and CORS middleware used by HTTP modules.
package middleware

import (
	"net/http"
	"slices"
)

// Func wraps a handler with additional behavior.
type Func = func(http.Handler) http.Handler

// System manages an ordered stack of HTTP middleware. The first Func added
// is the outermost wrapper.
type System interface {
	Use(fns ...Func)
	Len() int
	Apply(handler http.Handler) http.Handler
}

type stack struct {
	fns []Func
}

// New creates an empty middleware System.
func New() System {
	return &stack{}
}

// Use appends fns to the stack. Nil entries are skipped.
func (s *stack) Use(fns ...Func) {
	for _, fn := range fns {
		if fn != nil {
			s.fns = append(s.fns, fn)
		}
	}
}

func (s *stack) Len() int {
	return len(s.fns)
}

func (s *stack) Apply(handler http.Handler) http.Handler {
	for _, fn := range slices.Backward(s.fns) {
		handler = fn(handler)
	}
	return handler
}
