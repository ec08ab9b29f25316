// Package app serves the server-rendered prompt manager pages.
package app

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/russross/blackfriday"

	"github.com/JaimeStill/promptvault/internal/categories"
	"github.com/JaimeStill/promptvault/internal/prompts"
	"github.com/JaimeStill/promptvault/pkg/flash"
	"github.com/JaimeStill/promptvault/pkg/routes"
	"github.com/JaimeStill/promptvault/pkg/web"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const layout = "app"

var views = []web.ViewDef{
	{Name: "index", Template: "templates/index.html", Title: "프롬프트 목록"},
	{Name: "new", Template: "templates/new.html", Title: "새 프롬프트"},
	{Name: "view", Template: "templates/view.html"},
	{Name: "edit", Template: "templates/edit.html", Title: "프롬프트 수정"},
	{Name: "categories", Template: "templates/categories.html", Title: "카테고리"},
	{Name: "not-found", Template: "templates/not-found.html", Title: "찾을 수 없음"},
}

// Config configures the web app.
type Config struct {
	// StyleDir is served at /css/.
	StyleDir      string
	SessionKey    []byte
	SecureCookies bool
	// APIPath is where page scripts find the JSON API.
	APIPath      string
	MaxBodyBytes int64
}

// App renders pages backed by the prompt and category systems.
type App struct {
	prompts    prompts.System
	categories categories.System
	flash      *flash.Store
	views      *web.TemplateSet
	cfg        Config
	logger     *slog.Logger
}

// New parses the page templates and creates an App.
func New(
	prompts prompts.System,
	categories categories.System,
	cfg Config,
	logger *slog.Logger,
) (*App, error) {
	logger = logger.With("module", "web")

	ts, err := web.NewTemplateSet(templateFS, "templates/layouts/*.html", funcs(cfg.APIPath), "", views...)
	if err != nil {
		return nil, err
	}

	return &App{
		prompts:    prompts,
		categories: categories,
		flash:      flash.New(cfg.SessionKey, cfg.SecureCookies, logger),
		views:      ts,
		cfg:        cfg,
		logger:     logger,
	}, nil
}

// Routes returns the page, form and asset routes.
func (a *App) Routes() routes.Group {
	assets := []routes.Route{
		{Method: "GET", Pattern: "/static/{file...}", Handler: web.DistServer(staticFS, "static", "/static/")},
		{Method: "GET", Pattern: "/css/{file...}", Handler: web.DirServer(a.cfg.StyleDir, "/css/")},
	}

	return routes.Group{
		Routes: append(append([]routes.Route{
			{Method: "GET", Pattern: "/{$}", Handler: a.index},
			{Method: "GET", Pattern: "/prompt/new", Handler: a.newPrompt},
			{Method: "POST", Pattern: "/prompt/new", Handler: a.createPrompt},
			{Method: "GET", Pattern: "/prompt/{id}", Handler: a.viewPrompt},
			{Method: "GET", Pattern: "/prompt/{id}/edit", Handler: a.editPrompt},
			{Method: "POST", Pattern: "/prompt/{id}/edit", Handler: a.updatePrompt},
			{Method: "POST", Pattern: "/prompt/{id}/delete", Handler: a.deletePrompt},
			{Method: "GET", Pattern: "/categories", Handler: a.listCategories},
			{Method: "POST", Pattern: "/category/new", Handler: a.createCategory},
			{Method: "POST", Pattern: "/category/{id}/delete", Handler: a.deleteCategory},
		}, assets...), web.PublicFileRoutes(staticFS, "static", "manifest.json")...),
	}
}

// Handler returns the app's routes behind a router that renders the
// not-found page for unmatched paths.
func (a *App) Handler() http.Handler {
	r := web.NewRouter()
	for _, route := range a.Routes().Routes {
		r.HandleFunc(route.Path(""), route.Handler)
	}
	r.SetFallback(a.views.ErrorHandler(layout, "not-found", http.StatusNotFound))
	return r
}

func funcs(apiPath string) template.FuncMap {
	return template.FuncMap{
		"apiPath": func() string { return apiPath },
		"markdown": func(s string) template.HTML {
			return template.HTML(markdown(s))
		},
		"datetime": func(t time.Time) string {
			return t.Local().Format("2006-01-02 15:04")
		},
		"truncate": truncate,
		"color": func(c *string) string {
			if c == nil {
				return categories.DefaultColor
			}
			return *c
		},
	}
}

const (
	htmlFlags = blackfriday.HTML_SKIP_HTML |
		blackfriday.HTML_SKIP_STYLE |
		blackfriday.HTML_SAFELINK |
		blackfriday.HTML_HREF_TARGET_BLANK |
		blackfriday.HTML_NOFOLLOW_LINKS

	mdExtensions = blackfriday.EXTENSION_NO_INTRA_EMPHASIS |
		blackfriday.EXTENSION_FENCED_CODE |
		blackfriday.EXTENSION_AUTOLINK |
		blackfriday.EXTENSION_STRIKETHROUGH |
		blackfriday.EXTENSION_HARD_LINE_BREAK
)

// markdown renders description text with raw HTML and unsafe links removed.
func markdown(s string) string {
	renderer := blackfriday.HtmlRenderer(htmlFlags, "", "")
	return string(blackfriday.Markdown([]byte(s), renderer, mdExtensions))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
