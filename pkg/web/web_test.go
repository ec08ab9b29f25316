package web_test

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/JaimeStill/promptvault/pkg/flash"
	"github.com/JaimeStill/promptvault/pkg/web"
)

var testFS = fstest.MapFS{
	"templates/layouts/app.html": {Data: []byte(
		`{{ define "app" }}<title>{{ .Title }}</title>{{ range .Flashes }}<p class="{{ .Kind }}">{{ .Text }}</p>{{ end }}{{ template "content" . }}{{ end }}`,
	)},
	"templates/pages/home.html": {Data: []byte(
		`{{ define "content" }}<h1>{{ shout .Data }}</h1><a href="{{ .BasePath }}/x">x</a>{{ end }}`,
	)},
	"templates/pages/broken.html": {Data: []byte(
		`{{ define "content" }}{{ .Data.Missing }}{{ end }}`,
	)},
	"static/app.js":        {Data: []byte("console.log('ok')")},
	"static/manifest.json": {Data: []byte(`{"name":"promptvault"}`)},
}

var funcs = template.FuncMap{"shout": strings.ToUpper}

func newSet(t *testing.T) *web.TemplateSet {
	t.Helper()

	ts, err := web.NewTemplateSet(
		testFS, "templates/layouts/*.html", funcs, "",
		web.ViewDef{Name: "home", Template: "templates/pages/home.html", Title: "Home"},
		web.ViewDef{Name: "broken", Template: "templates/pages/broken.html", Title: "Broken"},
	)
	if err != nil {
		t.Fatalf("NewTemplateSet() error = %v", err)
	}
	return ts
}

func TestRender(t *testing.T) {
	ts := newSet(t)

	rec := httptest.NewRecorder()
	err := ts.Render(rec, http.StatusOK, "app", "home", web.ViewData{
		Flashes: []flash.Message{{Kind: flash.Success, Text: "saved"}},
		Data:    "hello",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	body := rec.Body.String()
	for _, want := range []string{"<title>Home</title>", "<h1>HELLO</h1>", `<p class="success">saved</p>`, `href="/x"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body %q missing %q", body, want)
		}
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("content-type: got %q", ct)
	}
}

func TestRenderFailureWritesNothing(t *testing.T) {
	ts := newSet(t)

	rec := httptest.NewRecorder()
	if err := ts.Render(rec, http.StatusOK, "app", "broken", web.ViewData{Data: 42}); err == nil {
		t.Fatal("Render() expected error for invalid field access")
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body should be empty, got %q", rec.Body.String())
	}
}

func TestRenderUnknownView(t *testing.T) {
	ts := newSet(t)
	if err := ts.Render(httptest.NewRecorder(), http.StatusOK, "app", "missing", web.ViewData{}); err == nil {
		t.Error("Render() expected error for unknown view")
	}
}

func TestNewTemplateSetParseError(t *testing.T) {
	bad := fstest.MapFS{
		"layouts/app.html": {Data: []byte(`{{ define "app" }}{{ end }}`)},
		"pages/bad.html":   {Data: []byte(`{{ define "content" }}{{ if }}{{ end }}`)},
	}

	_, err := web.NewTemplateSet(bad, "layouts/*.html", nil, "", web.ViewDef{Name: "bad", Template: "pages/bad.html"})
	if err == nil {
		t.Fatal("NewTemplateSet() expected parse error")
	}
}

func TestErrorHandler(t *testing.T) {
	ts := newSet(t)

	rec := httptest.NewRecorder()
	ts.ErrorHandler("app", "broken", http.StatusNotFound)(rec, httptest.NewRequest("GET", "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestRouterFallback(t *testing.T) {
	r := web.NewRouter()
	r.HandleFunc("GET /known", func(w http.ResponseWriter, r *http.Request) {})
	r.SetFallback(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		path string
		want int
	}{
		{"/known", http.StatusOK},
		{"/unknown", http.StatusTeapot},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRouterNoFallback(t *testing.T) {
	r := web.NewRouter()
	r.Handle("GET /known", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/unknown", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("no fallback: got %d, want 404", rec.Code)
	}
}

func TestDistServer(t *testing.T) {
	handler := web.DistServer(testFS, "static", "/static")

	tests := []struct {
		name string
		path string
		want int
	}{
		{"file", "/static/app.js", http.StatusOK},
		{"missing", "/static/nope.js", http.StatusNotFound},
		{"directory listing", "/static/", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestDirServer(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "common.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	handler := web.DirServer(dir, "/css")

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/css/common.css", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "body{}" {
		t.Errorf("got %d %q, want 200 body{}", rec.Code, rec.Body.String())
	}

	missing := web.DirServer(filepath.Join(dir, "absent"), "/css")
	rec = httptest.NewRecorder()
	missing(rec, httptest.NewRequest("GET", "/css/common.css", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing dir: got %d, want 404", rec.Code)
	}
}

func TestPublicFileRoutes(t *testing.T) {
	list := web.PublicFileRoutes(testFS, "static", "manifest.json")
	if len(list) != 1 || list[0].Pattern != "/manifest.json" {
		t.Fatalf("PublicFileRoutes() = %+v", list)
	}

	rec := httptest.NewRecorder()
	list[0].Handler(rec, httptest.NewRequest("GET", "/manifest.json", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "promptvault") {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}
}
