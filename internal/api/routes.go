package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/promptvault/internal/archives"
	"github.com/JaimeStill/promptvault/internal/categories"
	"github.com/JaimeStill/promptvault/internal/clipboard"
	"github.com/JaimeStill/promptvault/internal/config"
	"github.com/JaimeStill/promptvault/internal/prompts"
	"github.com/JaimeStill/promptvault/pkg/openapi"
	"github.com/JaimeStill/promptvault/pkg/routes"
)

// SpecPath is where the API module serves its OpenAPI document, relative to
// the module prefix.
const SpecPath = "/openapi.json"

func registerRoutes(mux *http.ServeMux, domain *Domain, cfg *config.Config) error {
	maxBody := cfg.API.MaxBodySizeBytes()

	groups := []routes.Group{
		domain.Prompts.Handler(maxBody).Routes(),
		domain.Categories.Handler(maxBody).Routes(),
		domain.Clipboard.Handler().Routes(),
		domain.Archives.Handler(cfg.Storage.MaxListSize).Routes(),
	}
	routes.Register(mux, groups...)

	spec, err := buildSpec(cfg, groups)
	if err != nil {
		return err
	}
	mux.HandleFunc("GET "+SpecPath, openapi.ServeSpec(spec))
	return nil
}

func buildSpec(cfg *config.Config, groups []routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(prompts.Schemas())
	spec.Components.AddSchemas(categories.Schemas())
	spec.Components.AddSchemas(clipboard.Schemas())
	spec.Components.AddSchemas(archives.Schemas())

	if err := routes.Describe(spec, groups...); err != nil {
		return nil, fmt.Errorf("describe api: %w", err)
	}

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi: %w", err)
	}
	return data, nil
}
