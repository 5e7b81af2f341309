// Package routes declares HTTP endpoints as data so handlers can describe
// their surface and the API module can register it in one place.
package routes

import "net/http"

// Group nests routes under a shared prefix. Children inherit the full prefix
// of their parent.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register installs every route in the given groups onto mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", group)
	}
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	prefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+prefix+route.Pattern, route.Handler)
	}
	for _, child := range group.Children {
		registerGroup(mux, prefix, child)
	}
}
