package api

import (
	"github.com/gorilla/mux"

	"github.com/vitrine-media/vitrine/internal/api/recovery"
	"github.com/vitrine-media/vitrine/internal/listing"
)

// Deps carries the collaborators the router wires to handlers. Media
// and Files may be nil when the corresponding source is not configured.
type Deps struct {
	Lister          Lister
	Registry        *listing.Registry
	Media           InstanceDirectory
	Files           FileArchive
	DefaultPageSize int
}

// NewRouter wires all HTTP routes to handlers.
func NewRouter(d Deps) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	// Listing endpoints, one per source kind
	lh := NewListingHandler(d.Lister, d.DefaultPageSize)
	root.HandleFunc("/api/listing/media-server", lh.MediaServer).Methods("GET")
	root.HandleFunc("/api/listing/archive-index", lh.ArchiveIndex).Methods("GET")
	root.HandleFunc("/api/listing/flat-files", lh.FlatFiles).Methods("GET")

	// Source discovery
	sh := NewSourcesHandler(d.Lister, d.Media)
	root.HandleFunc("/api/sources", sh.ListSources).Methods("GET")
	root.HandleFunc("/api/sources/media-server/containers", sh.ListContainers).Methods("GET")

	// Flat-file archive passthrough
	fh := NewFilesHandler(d.Files)
	root.HandleFunc("/api/files/browse", fh.Browse).Methods("GET")
	root.HandleFunc("/api/files/search", fh.Search).Methods("GET")

	// Scroll sessions
	ssh := NewSessionsHandler(d.Registry)
	root.HandleFunc("/api/sessions", ssh.Create).Methods("POST")
	root.HandleFunc("/api/sessions/{sessionId}", ssh.Get).Methods("GET")
	root.HandleFunc("/api/sessions/{sessionId}", ssh.Delete).Methods("DELETE")
	root.HandleFunc("/api/sessions/{sessionId}/source", ssh.SetSource).Methods("PUT")
	root.HandleFunc("/api/sessions/{sessionId}/container", ssh.SetContainer).Methods("PUT")
	root.HandleFunc("/api/sessions/{sessionId}/sort", ssh.SetSort).Methods("PUT")
	root.HandleFunc("/api/sessions/{sessionId}/next", ssh.Next).Methods("POST")
	root.HandleFunc("/api/sessions/{sessionId}/signal", ssh.Signal).Methods("POST")

	// Health
	hh := NewHealthHandler()
	root.HandleFunc("/api/health", hh.CheckHealth).Methods("GET")

	return root
}
