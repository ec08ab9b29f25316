package api

import (
	"github.com/JaimeStill/promptvault/internal/archives"
	"github.com/JaimeStill/promptvault/internal/categories"
	"github.com/JaimeStill/promptvault/internal/clipboard"
	"github.com/JaimeStill/promptvault/internal/prompts"
)

// Domain holds all domain systems shared by the API and the web app.
type Domain struct {
	Prompts    prompts.System
	Categories categories.System
	Clipboard  clipboard.System
	Archives   archives.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()
	dialect := runtime.Database.Dialect()

	promptsSystem := prompts.New(db, dialect, runtime.Logger, runtime.Pagination)
	categoriesSystem := categories.New(db, dialect, runtime.Logger)

	return &Domain{
		Prompts:    promptsSystem,
		Categories: categoriesSystem,
		Clipboard: clipboard.New(
			promptsSystem,
			clipboard.Host,
			runtime.ClipboardHeadless,
			runtime.Metrics,
			runtime.Logger,
		),
		Archives: archives.New(
			promptsSystem,
			categoriesSystem,
			runtime.Storage,
			runtime.Logger,
		),
	}
}
