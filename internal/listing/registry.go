package listing

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Registry tracks live sessions by ID. Sessions idle beyond maxAge are
// swept so abandoned scroll state does not accumulate.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*registryEntry
	fetcher  Fetcher
	pageSize int
	maxAge   time.Duration
	log      zerolog.Logger
}

type registryEntry struct {
	session *Session
	touched time.Time
}

// NewRegistry creates a registry whose sessions fetch through fetcher.
func NewRegistry(fetcher Fetcher, pageSize int, maxAge time.Duration, log zerolog.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*registryEntry),
		fetcher:  fetcher,
		pageSize: pageSize,
		maxAge:   maxAge,
		log:      log,
	}
}

// Create registers a new session and returns its ID.
func (r *Registry) Create() (string, *Session) {
	id := uuid.New().String()
	s := NewSession(r.fetcher, r.pageSize, r.log)
	r.mu.Lock()
	r.sessions[id] = &registryEntry{session: s, touched: time.Now()}
	r.mu.Unlock()
	return id, s
}

// Get returns the session for id and refreshes its idle timer.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.touched = time.Now()
	return e.session, true
}

// Delete removes the session for id.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle longer than maxAge and returns the count.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.sessions {
		if now.Sub(e.touched) > r.maxAge {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper periodically sweeps idle sessions until ctx is done.
func (r *Registry) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(time.Now()); n > 0 {
				r.log.Debug().Int("removed", n).Msg("swept idle listing sessions")
			}
		}
	}
}
