package routes

import "net/http"

// Route pairs a method and ServeMux pattern with its handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}
