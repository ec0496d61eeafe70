package api

import (
	"context"
	"net/http"

	"github.com/vitrine-media/vitrine/internal/api/respond"
	"github.com/vitrine-media/vitrine/internal/mediaserver"
	"github.com/vitrine-media/vitrine/internal/model"
)

// InstanceDirectory is the media-server discovery surface.
type InstanceDirectory interface {
	Instances() []mediaserver.Instance
	ListContainers(ctx context.Context, instanceKey string) ([]mediaserver.Container, error)
}

// SourcesHandler serves source and container discovery.
type SourcesHandler struct {
	lister Lister
	media  InstanceDirectory
}

// NewSourcesHandler creates the handler. media may be nil when the
// media-server source is not configured.
func NewSourcesHandler(lister Lister, media InstanceDirectory) *SourcesHandler {
	return &SourcesHandler{lister: lister, media: media}
}

// ListSources GET /api/sources
func (h *SourcesHandler) ListSources(w http.ResponseWriter, r *http.Request) {
	instances := []mediaserver.Instance{}
	if h.media != nil {
		instances = h.media.Instances()
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"sources": map[string]bool{
			string(model.SourceArchiveIndex): h.lister.Enabled(model.SourceArchiveIndex),
			string(model.SourceMediaServer):  h.lister.Enabled(model.SourceMediaServer),
			string(model.SourceFlatFiles):    h.lister.Enabled(model.SourceFlatFiles),
		},
		"instances": instances,
	})
}

// ListContainers GET /api/sources/media-server/containers
func (h *SourcesHandler) ListContainers(w http.ResponseWriter, r *http.Request) {
	if h.media == nil || !h.lister.Enabled(model.SourceMediaServer) {
		respond.WriteError(w, http.StatusServiceUnavailable, "media server source not configured")
		return
	}
	containers, err := h.media.ListContainers(r.Context(), r.URL.Query().Get("instanceKey"))
	if err != nil {
		if model.IsNotFoundError(err) {
			respond.WriteNotFound(w, err.Error())
			return
		}
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"containers": containers,
		"count":      len(containers),
	})
}
