package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/promptvault/internal/api"
	"github.com/JaimeStill/promptvault/internal/config"
	"github.com/JaimeStill/promptvault/internal/infrastructure"
	"github.com/JaimeStill/promptvault/pkg/middleware"
	"github.com/JaimeStill/promptvault/pkg/module"
	"github.com/JaimeStill/promptvault/web/app"
	"github.com/JaimeStill/promptvault/web/scalar"
)

// Modules holds the mounted API and reference modules, the web app, and the
// domain they share.
type Modules struct {
	API    *module.Module
	Scalar *module.Module
	Web    http.Handler
	Domain *api.Domain
}

// NewModules creates the domain systems and the handlers serving them.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	runtime := api.NewRuntime(cfg, infra)
	domain := api.NewDomain(runtime)

	webApp, err := app.New(
		domain.Prompts,
		domain.Categories,
		app.Config{
			StyleDir:      cfg.Web.StyleDir,
			SessionKey:    []byte(cfg.Web.SessionKey),
			SecureCookies: cfg.Web.SecureCookies,
			APIPath:       cfg.API.BasePath,
			MaxBodyBytes:  cfg.API.MaxBodySizeBytes(),
		},
		infra.Logger,
	)
	if err != nil {
		return nil, err
	}

	apiModule, err := api.NewModule(cfg, runtime, domain)
	if err != nil {
		return nil, err
	}

	scalarModule := scalar.NewModule("/scalar", cfg.API.OpenAPI.Title, cfg.API.BasePath+api.SpecPath)
	scalarModule.Use(middleware.Logger(infra.Logger.With("module", "scalar")))

	web := middleware.New()
	web.Use(middleware.Logger(infra.Logger.With("module", "web")))

	return &Modules{
		API:    apiModule,
		Scalar: scalarModule,
		Web:    web.Apply(webApp.Handler()),
		Domain: domain,
	}, nil
}

// Mount attaches the API and reference modules and serves the web app for
// every other path.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Scalar)
	router.Handle("/", m.Web)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()
	router.Use(middleware.RequestID())
	router.Use(infra.Metrics.Middleware())

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	router.Handle("GET /metrics", infra.Metrics.Handler())

	return router
}
