// Package middleware provides the HTTP middleware stack and the standard
// cross-cutting handlers (CORS, request logging).
package middleware

import "net/http"

// System is an ordered middleware stack. The first Use'd middleware is the
// outermost wrapper.
type System interface {
	Use(mw func(http.Handler) http.Handler)
	Apply(handler http.Handler) http.Handler
}

type stack struct {
	layers []func(http.Handler) http.Handler
}

func New() System {
	return &stack{
		layers: []func(http.Handler) http.Handler{},
	}
}

func (s *stack) Use(fn func(http.Handler) http.Handler) {
	s.layers = append(s.layers, fn)
}

func (s *stack) Apply(handler http.Handler) http.Handler {
	for i := len(s.layers) - 1; i >= 0; i-- {
		handler = s.layers[i](handler)
	}
	return handler
}
