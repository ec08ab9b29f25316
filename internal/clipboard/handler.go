package clipboard

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/promptvault/internal/prompts"
	"github.com/JaimeStill/promptvault/pkg/handlers"
	"github.com/JaimeStill/promptvault/pkg/routes"
)

// Handler exposes copy over HTTP.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler for sys.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "clipboard"),
	}
}

// Routes returns the route group definition for copy endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/copy",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}", Handler: h.Copy, OpenAPI: copyDoc},
		},
	}
}

// Copy always answers 200 with a Result so the page script handles a single
// response shape. An unparseable id reads as a missing prompt.
func (h *Handler) Copy(w http.ResponseWriter, r *http.Request) {
	id, err := prompts.ParseID(r.PathValue("id"))
	if err != nil {
		h.logger.Warn("copy rejected", "id", r.PathValue("id"), "error", err)
		handlers.RespondJSON(w, http.StatusOK, Result{Message: MsgNotFound})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.sys.Copy(r.Context(), id))
}
