// Package api exposes the listing service over HTTP: one listing
// endpoint per source kind, source/container discovery, flat-file
// passthrough, server-side scroll sessions and health.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/vitrine-media/vitrine/internal/api/respond"
	"github.com/vitrine-media/vitrine/internal/listing"
	"github.com/vitrine-media/vitrine/internal/model"
)

// Lister is the fetch surface the listing handlers consume.
// *listing.Service satisfies it.
type Lister interface {
	Enabled(kind model.SourceKind) bool
	List(ctx context.Context, q model.ListingQuery) (model.ListingResponse, error)
}

// ListingHandler serves the per-source listing endpoints.
type ListingHandler struct {
	svc             Lister
	defaultPageSize int
}

// NewListingHandler creates the handler. defaultPageSize applies when
// the request carries no pageSize.
func NewListingHandler(svc Lister, defaultPageSize int) *ListingHandler {
	if defaultPageSize <= 0 {
		defaultPageSize = model.DefaultPageSize
	}
	return &ListingHandler{svc: svc, defaultPageSize: defaultPageSize}
}

// MediaServer GET /api/listing/media-server
func (h *ListingHandler) MediaServer(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := h.paging(r)
	if err != nil {
		respond.WriteListingError(w, page, err.Error())
		return
	}
	q := model.ListingQuery{
		Source: model.SourceDescriptor{
			Kind:        model.SourceMediaServer,
			InstanceKey: r.URL.Query().Get("instanceKey"),
		},
		Page:          page,
		PageSize:      pageSize,
		ContainerID:   r.URL.Query().Get("containerId"),
		SortField:     r.URL.Query().Get("sortField"),
		SortDirection: normalizeSortDirection(r.URL.Query().Get("sortDirection")),
	}
	h.serve(w, r, q)
}

// ArchiveIndex GET /api/listing/archive-index
func (h *ListingHandler) ArchiveIndex(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := h.paging(r)
	if err != nil {
		respond.WriteListingError(w, page, err.Error())
		return
	}
	q := model.ListingQuery{
		Source:   model.SourceDescriptor{Kind: model.SourceArchiveIndex},
		Page:     page,
		PageSize: pageSize,
	}
	h.serve(w, r, q)
}

// FlatFiles GET /api/listing/flat-files
func (h *ListingHandler) FlatFiles(w http.ResponseWriter, r *http.Request) {
	q := model.ListingQuery{
		Source: model.SourceDescriptor{
			Kind: model.SourceFlatFiles,
			Path: r.URL.Query().Get("path"),
		},
		Page:     model.DefaultPage,
		PageSize: h.defaultPageSize,
	}
	h.serve(w, r, q)
}

func (h *ListingHandler) serve(w http.ResponseWriter, r *http.Request, q model.ListingQuery) {
	resp, err := h.svc.List(r.Context(), q)
	if err != nil {
		respond.WriteListingError(w, q.Page, listing.ErrorMessage(err))
		return
	}
	respond.WriteListing(w, resp)
}

// paging parses page and pageSize with their documented defaults.
func (h *ListingHandler) paging(r *http.Request) (int, int, error) {
	page := model.DefaultPage
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return model.DefaultPage, 0, model.NewValidationError("page", "page must be an integer >= 1")
		}
		page = n
	}
	pageSize := h.defaultPageSize
	if v := r.URL.Query().Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return page, 0, model.NewValidationError("pageSize", "pageSize must be an integer > 0")
		}
		pageSize = n
	}
	return page, pageSize, nil
}

// normalizeSortDirection accepts the short asc/desc forms alongside the
// media-server wire values.
func normalizeSortDirection(dir string) string {
	switch dir {
	case "asc":
		return model.SortAscending
	case "desc":
		return model.SortDescending
	default:
		return dir
	}
}
