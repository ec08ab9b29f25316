package routes

import (
	"net/http"

	"github.com/JaimeStill/promptvault/pkg/openapi"
)

// Group organizes routes and nested groups under a common prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds every route in groups to mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		register(mux, "", group)
	}
}

// Patterns lists the ServeMux patterns groups would register, in order.
func Patterns(groups ...Group) []string {
	var out []string
	for _, group := range groups {
		walk("", group, func(pattern string, _ http.HandlerFunc) {
			out = append(out, pattern)
		})
	}
	return out
}

// Describe adds every documented route in groups to spec. Undocumented
// routes are skipped.
func Describe(spec *openapi.Spec, groups ...Group) error {
	for _, group := range groups {
		if err := describe(spec, "", group); err != nil {
			return err
		}
	}
	return nil
}

func describe(spec *openapi.Spec, parent string, group Group) error {
	prefix := parent + group.Prefix
	for _, route := range group.Routes {
		if route.OpenAPI == nil {
			continue
		}
		if err := spec.AddOperation(route.Method, route.DocPath(prefix), route.OpenAPI); err != nil {
			return err
		}
	}
	for _, child := range group.Children {
		if err := describe(spec, prefix, child); err != nil {
			return err
		}
	}
	return nil
}

func register(mux *http.ServeMux, parent string, group Group) {
	walk(parent, group, func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, h)
	})
}

func walk(parent string, group Group, visit func(string, http.HandlerFunc)) {
	prefix := parent + group.Prefix
	for _, route := range group.Routes {
		visit(route.Path(prefix), route.Handler)
	}
	for _, child := range group.Children {
		walk(prefix, child, visit)
	}
}
