// Package web renders server-side pages from html/template sets and serves
// static assets.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/JaimeStill/promptvault/pkg/flash"
)

// ViewDef names a page template and its default title.
type ViewDef struct {
	Name     string
	Template string
	Title    string
}

// ViewData is passed to every page template.
// BasePath enables portable URL generation via {{ .BasePath }}.
type ViewData struct {
	Title    string
	BasePath string
	Flashes  []flash.Message
	Data     any
}

// TemplateSet holds one parsed template per view, each a clone of the shared
// layouts. Templates are parsed once at startup so syntax errors fail fast.
type TemplateSet struct {
	views    map[string]*template.Template
	defs     map[string]ViewDef
	basePath string
}

// NewTemplateSet parses the layouts matching layoutGlob in fsys, registering
// funcs first, then clones them for each view and parses its template.
func NewTemplateSet(fsys fs.FS, layoutGlob string, funcs template.FuncMap, basePath string, views ...ViewDef) (*TemplateSet, error) {
	layouts, err := template.New("").Funcs(funcs).ParseFS(fsys, layoutGlob)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	ts := &TemplateSet{
		views:    make(map[string]*template.Template, len(views)),
		defs:     make(map[string]ViewDef, len(views)),
		basePath: basePath,
	}

	for _, v := range views {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", v.Name, err)
		}
		if _, err := t.ParseFS(fsys, v.Template); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", v.Template, err)
		}
		ts.views[v.Name] = t
		ts.defs[v.Name] = v
	}

	return ts, nil
}

// BasePath returns the URL prefix the set was created with.
func (ts *TemplateSet) BasePath() string {
	return ts.basePath
}

// Render executes layout for the named view into a buffer and writes it with
// status. Nothing is written when execution fails.
func (ts *TemplateSet) Render(w http.ResponseWriter, status int, layout, view string, data ViewData) error {
	t, ok := ts.views[view]
	if !ok {
		return fmt.Errorf("template not found: %s", view)
	}

	if data.Title == "" {
		data.Title = ts.defs[view].Title
	}
	data.BasePath = ts.basePath

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layout, data); err != nil {
		return fmt.Errorf("render %s: %w", view, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// ErrorHandler renders view with status, falling back to plain text.
func (ts *TemplateSet) ErrorHandler(layout, view string, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ts.Render(w, status, layout, view, ViewData{}); err != nil {
			http.Error(w, http.StatusText(status), status)
		}
	}
}
