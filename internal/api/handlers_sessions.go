package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vitrine-media/vitrine/internal/api/respond"
	"github.com/vitrine-media/vitrine/internal/listing"
	"github.com/vitrine-media/vitrine/internal/model"
)

// SessionsHandler exposes server-side scroll sessions: stateful
// accumulated listings advanced page by page.
type SessionsHandler struct {
	registry *listing.Registry
}

// NewSessionsHandler creates the handler over a session registry.
func NewSessionsHandler(registry *listing.Registry) *SessionsHandler {
	return &SessionsHandler{registry: registry}
}

type createSessionRequest struct {
	Source        model.SourceDescriptor `json:"source"`
	ContainerID   string                 `json:"containerId,omitempty"`
	SortField     string                 `json:"sortField,omitempty"`
	SortDirection string                 `json:"sortDirection,omitempty"`
}

// Create POST /api/sessions
func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Source.Kind == "" {
		respond.WriteBadRequest(w, "source.kind is required")
		return
	}

	id, s := h.registry.Create()
	s.SetSource(req.Source)
	if req.ContainerID != "" {
		s.SetContainer(req.ContainerID)
	}
	if req.SortField != "" || req.SortDirection != "" {
		s.SetSort(req.SortField, normalizeSortDirection(req.SortDirection))
	}

	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"sessionId": id,
		"state":     s.Snapshot(),
	})
}

// Get GET /api/sessions/{sessionId}
func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.registry.Get(mux.Vars(r)["sessionId"])
	if !ok {
		respond.WriteNotFound(w, "session not found")
		return
	}
	respond.WriteJSON(w, http.StatusOK, s.Snapshot())
}

// SetSource PUT /api/sessions/{sessionId}/source
func (h *SessionsHandler) SetSource(w http.ResponseWriter, r *http.Request) {
	s, ok := h.registry.Get(mux.Vars(r)["sessionId"])
	if !ok {
		respond.WriteNotFound(w, "session not found")
		return
	}
	var d model.SourceDescriptor
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil || d.Kind == "" {
		respond.WriteBadRequest(w, "Invalid source descriptor")
		return
	}
	s.SetSource(d)
	respond.WriteJSON(w, http.StatusOK, s.Snapshot())
}

// SetContainer PUT /api/sessions/{sessionId}/container
func (h *SessionsHandler) SetContainer(w http.ResponseWriter, r *http.Request) {
	s, ok := h.registry.Get(mux.Vars(r)["sessionId"])
	if !ok {
		respond.WriteNotFound(w, "session not found")
		return
	}
	var req struct {
		ContainerID string `json:"containerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	s.SetContainer(req.ContainerID)
	respond.WriteJSON(w, http.StatusOK, s.Snapshot())
}

// SetSort PUT /api/sessions/{sessionId}/sort
func (h *SessionsHandler) SetSort(w http.ResponseWriter, r *http.Request) {
	s, ok := h.registry.Get(mux.Vars(r)["sessionId"])
	if !ok {
		respond.WriteNotFound(w, "session not found")
		return
	}
	var req struct {
		SortField     string `json:"sortField"`
		SortDirection string `json:"sortDirection"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	s.SetSort(req.SortField, normalizeSortDirection(req.SortDirection))
	respond.WriteJSON(w, http.StatusOK, s.Snapshot())
}

// Next POST /api/sessions/{sessionId}/next
func (h *SessionsHandler) Next(w http.ResponseWriter, r *http.Request) {
	s, ok := h.registry.Get(mux.Vars(r)["sessionId"])
	if !ok {
		respond.WriteNotFound(w, "session not found")
		return
	}
	s.LoadNext(r.Context())
	respond.WriteJSON(w, http.StatusOK, s.Snapshot())
}

// Signal POST /api/sessions/{sessionId}/signal
// Drives the incremental load trigger from a reported sentinel position.
func (h *SessionsHandler) Signal(w http.ResponseWriter, r *http.Request) {
	s, ok := h.registry.Get(mux.Vars(r)["sessionId"])
	if !ok {
		respond.WriteNotFound(w, "session not found")
		return
	}
	var req struct {
		NearEnd bool `json:"nearEnd"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	triggered := listing.NewTrigger(s).Notify(r.Context(), req.NearEnd)
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"triggered": triggered,
		"state":     s.Snapshot(),
	})
}

// Delete DELETE /api/sessions/{sessionId}
func (h *SessionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.registry.Delete(mux.Vars(r)["sessionId"])
	w.WriteHeader(http.StatusNoContent)
}
