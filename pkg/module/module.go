// Package module mounts self-contained HTTP surfaces (the API, documentation
// pages) under top-level path prefixes, each with its own middleware stack.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/brandforge/giftguide/pkg/middleware"
)

// Module serves an inner router under a path prefix. Requests are rewritten
// so the inner router sees prefix-relative paths.
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System
}

// New wraps router under a single-level prefix such as "/api". An empty,
// unrooted, or multi-level prefix panics; prefixes are wired at startup, so
// a bad one is a programming error.
func New(prefix string, router http.Handler) *Module {
	if err := checkPrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
	}
}

// Handler returns the inner router wrapped in the module's middleware.
func (m *Module) Handler() http.Handler {
	return m.middleware.Apply(m.router)
}

func (m *Module) Prefix() string {
	return m.prefix
}

// Serve strips the prefix from the request path and dispatches inward.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	inner := rewriteRequest(req, stripPrefix(req.URL.Path, m.prefix))
	m.Handler().ServeHTTP(w, inner)
}

// Use appends middleware to the module's stack.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

func rewriteRequest(req *http.Request, path string) *http.Request {
	clone := new(http.Request)
	*clone = *req
	clone.URL = new(url.URL)
	*clone.URL = *req.URL
	clone.URL.Path = path
	clone.URL.RawPath = ""
	return clone
}

func stripPrefix(fullPath, prefix string) string {
	path := fullPath[len(prefix):]
	if path == "" {
		return "/"
	}
	return path
}

func checkPrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix cannot be empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	}
	if strings.Count(prefix, "/") != 1 {
		return fmt.Errorf("module prefix must be single-level sub-path: %s", prefix)
	}
	return nil
}
