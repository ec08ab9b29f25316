// Package routes declares HTTP routes as data so domain handlers can publish
// their endpoints and callers can mount them under any prefix.
package routes

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/promptvault/pkg/openapi"
)

// Route binds an HTTP method and pattern to a handler. OpenAPI, when set,
// documents the route in the API reference.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Path joins prefix and the route pattern into a ServeMux pattern.
func (r Route) Path(prefix string) string {
	return r.Method + " " + prefix + r.Pattern
}

// DocPath converts the route's ServeMux pattern under prefix to an OpenAPI
// path template, dropping the "..." of wildcard segments.
func (r Route) DocPath(prefix string) string {
	return strings.ReplaceAll(prefix+r.Pattern, "...}", "}")
}
