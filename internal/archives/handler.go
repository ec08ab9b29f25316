package archives

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/JaimeStill/promptvault/pkg/handlers"
	"github.com/JaimeStill/promptvault/pkg/routes"
	"github.com/JaimeStill/promptvault/pkg/storage"
)

// Handler exposes export and archive endpoints.
type Handler struct {
	sys         System
	logger      *slog.Logger
	maxListSize int32
}

// NewHandler creates a Handler. maxListSize is the default archive page size.
func NewHandler(sys System, logger *slog.Logger, maxListSize int32) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger.With("handler", "archives"),
		maxListSize: maxListSize,
	}
}

// Routes returns the route group definition for export and archive endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/export", Handler: h.Export, OpenAPI: docs.Export},
			{Method: "GET", Pattern: "/archives", Handler: h.List, OpenAPI: docs.List},
			{Method: "POST", Pattern: "/archives", Handler: h.Save, OpenAPI: docs.Save},
			{Method: "HEAD", Pattern: "/archives/{key...}", Handler: h.Exists, OpenAPI: docs.Exists},
			{Method: "GET", Pattern: "/archives/{key...}", Handler: h.Download, OpenAPI: docs.Download},
			{Method: "DELETE", Pattern: "/archives/{key...}", Handler: h.Delete, OpenAPI: docs.Delete},
		},
	}
}

// Export returns a snapshot of the whole library as an attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	s, err := h.sys.Snapshot(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "promptvault-"+s.ExportedAt.Format("20060102")+".json"),
	)
	handlers.RespondJSON(w, http.StatusOK, s)
}

// Save stores a new snapshot.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	a, err := h.sys.Save(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, a)
}

// List returns one page of stored archives.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	maxResults, err := storage.ParseMaxResults(r.URL.Query().Get("max_results"), h.maxListSize)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	listing, err := h.sys.List(r.Context(), r.URL.Query().Get("marker"), maxResults)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, listing)
}

// Exists answers 200 when the archive is stored and 404 otherwise.
func (h *Handler) Exists(w http.ResponseWriter, r *http.Request) {
	ok, err := h.sys.Exists(r.Context(), r.PathValue("key"))
	switch {
	case err != nil:
		w.WriteHeader(MapHTTPStatus(err))
	case ok:
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// Download streams a stored archive.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	blob, err := h.sys.Open(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer blob.Body.Close()

	w.Header().Set("Content-Type", blob.ContentType)
	if blob.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(blob.ContentLength, 10))
	}
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", path.Base(key)),
	)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, blob.Body); err != nil {
		h.logger.Warn("archive download interrupted", "key", key, "error", err)
	}
}

// Delete removes a stored archive.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Delete(r.Context(), r.PathValue("key")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
