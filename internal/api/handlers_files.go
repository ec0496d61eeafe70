package api

import (
	"context"
	"net/http"

	"github.com/vitrine-media/vitrine/internal/api/respond"
	"github.com/vitrine-media/vitrine/internal/flatfiles"
	"github.com/vitrine-media/vitrine/internal/model"
)

// FileArchive is the flat-file collaborator surface for passthrough
// browsing and search.
type FileArchive interface {
	Browse(ctx context.Context, path string) (flatfiles.Listing, error)
	Search(ctx context.Context, keyword string) ([]flatfiles.Entry, error)
}

// FilesHandler exposes the flat-file archive's path browsing and search.
type FilesHandler struct {
	archive FileArchive
}

// NewFilesHandler creates the handler. archive may be nil when the
// flat-files source is not configured.
func NewFilesHandler(archive FileArchive) *FilesHandler {
	return &FilesHandler{archive: archive}
}

// Browse GET /api/files/browse?path=
func (h *FilesHandler) Browse(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "flat files source not configured")
		return
	}
	listing, err := h.archive.Browse(r.Context(), r.URL.Query().Get("path"))
	if err != nil {
		if model.IsNotFoundError(err) {
			respond.WriteNotFound(w, err.Error())
			return
		}
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, listing)
}

// Search GET /api/files/search?keyword=
func (h *FilesHandler) Search(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "flat files source not configured")
		return
	}
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		respond.WriteBadRequest(w, "keyword is required")
		return
	}
	entries, err := h.archive.Search(r.Context(), keyword)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	if entries == nil {
		entries = []flatfiles.Entry{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"results": entries,
		"count":   len(entries),
	})
}
