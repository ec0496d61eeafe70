package listing

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vitrine-media/vitrine/internal/model"
)

// Fetcher is the fetch surface a session drives. *Service satisfies it.
type Fetcher interface {
	Enabled(kind model.SourceKind) bool
	List(ctx context.Context, q model.ListingQuery) (model.ListingResponse, error)
}

// Session is the single authority over what page of what query is
// currently shown. It accumulates pages into one ordered item list,
// tracks has-more state, and discards results from superseded requests
// via a generation token: every completion checks that its token still
// matches before touching visible state.
//
// At most one request is outstanding at a time. Changing any query axis
// (source, container, sort) resets the session and cancels in-flight
// work cooperatively.
type Session struct {
	mu      sync.Mutex
	fetcher Fetcher
	log     zerolog.Logger

	pageSize      int
	source        model.SourceDescriptor
	containerID   string
	sortField     string
	sortDirection string

	accumulated    []model.Item
	currentPage    int
	totalPages     int
	total          int
	hasMore        bool
	loadingInitial bool
	loadingMore    bool
	lastError      string

	generation uint64
	cancel     context.CancelFunc
}

// Snapshot is a copy of the session's visible state.
type Snapshot struct {
	Source         model.SourceDescriptor `json:"source"`
	ContainerID    string                 `json:"containerId,omitempty"`
	SortField      string                 `json:"sortField,omitempty"`
	SortDirection  string                 `json:"sortDirection,omitempty"`
	Items          []model.Item           `json:"items"`
	CurrentPage    int                    `json:"currentPage"`
	TotalPages     int                    `json:"totalPages"`
	Total          int                    `json:"total"`
	HasMore        bool                   `json:"hasMore"`
	LoadingInitial bool                   `json:"loadingInitial"`
	LoadingMore    bool                   `json:"loadingMore"`
	LastError      string                 `json:"lastError,omitempty"`
}

// NewSession creates a session fetching pageSize items at a time.
func NewSession(fetcher Fetcher, pageSize int, log zerolog.Logger) *Session {
	if pageSize <= 0 {
		pageSize = model.DefaultPageSize
	}
	return &Session{fetcher: fetcher, pageSize: pageSize, hasMore: true, log: log}
}

// SetSource switches the session to a new source descriptor. Full reset:
// the prior accumulated sequence was built under a different query
// identity and is invalid.
func (s *Session) SetSource(d model.SourceDescriptor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = d
	s.containerID = ""
	s.reset()
}

// SetContainer scopes the listing to a container. Full reset.
func (s *Session) SetContainer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.containerID = id
	s.reset()
}

// SetSort changes the sort axes. Full reset.
func (s *Session) SetSort(field, direction string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortField = field
	s.sortDirection = direction
	s.reset()
}

// reset clears visible state and supersedes any in-flight request.
// Callers must hold s.mu.
func (s *Session) reset() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	s.accumulated = nil
	s.currentPage = 0
	s.totalPages = 0
	s.total = 0
	s.hasMore = true
	s.loadingInitial = false
	s.loadingMore = false
	s.lastError = ""
}

// LoadNext advances to the next page for the current query axes. It is a
// no-op while a load is in flight or when no more data exists. A disabled
// source resolves immediately to an empty outcome with hasMore=false and
// never sets a loading flag. The fetch runs on the caller's goroutine;
// stale completions (superseded by an axis change) are discarded.
func (s *Session) LoadNext(ctx context.Context) {
	s.mu.Lock()
	if s.loadingInitial || s.loadingMore || !s.hasMore {
		s.mu.Unlock()
		return
	}
	if !s.fetcher.Enabled(s.source.Kind) {
		s.hasMore = false
		s.mu.Unlock()
		return
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation
	fctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	page := s.currentPage + 1
	initial := page == 1
	if initial {
		s.loadingInitial = true
	} else {
		s.loadingMore = true
	}
	s.lastError = ""

	q := model.ListingQuery{
		Source:        s.source,
		Page:          page,
		PageSize:      s.pageSize,
		ContainerID:   s.containerID,
		SortField:     s.sortField,
		SortDirection: s.sortDirection,
	}
	s.mu.Unlock()

	resp, err := s.fetcher.List(fctx, q)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		// Superseded while in flight; the superseding reset already
		// cleared the loading flags. Drop the result silently.
		return
	}
	s.cancel = nil
	s.loadingInitial = false
	s.loadingMore = false

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.lastError = ErrorMessage(err)
		if initial {
			s.accumulated = nil
		}
		s.log.Warn().Err(err).
			Str("source", string(s.source.Kind)).
			Int("page", page).
			Msg("listing fetch failed")
		return
	}

	if initial {
		s.accumulated = append([]model.Item(nil), resp.Items...)
	} else {
		s.accumulated = append(s.accumulated, resp.Items...)
	}
	s.currentPage = resp.CurrentPage
	s.totalPages = resp.TotalPages
	s.total = resp.Total
	if s.source.Kind == model.SourceFlatFiles {
		// Flat-file browsing is not paginated; one fetch is complete.
		s.hasMore = false
	} else {
		s.hasMore = resp.CurrentPage < resp.TotalPages
	}
}

// Snapshot returns a copy of the visible session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]model.Item, len(s.accumulated))
	copy(items, s.accumulated)
	return Snapshot{
		Source:         s.source,
		ContainerID:    s.containerID,
		SortField:      s.sortField,
		SortDirection:  s.sortDirection,
		Items:          items,
		CurrentPage:    s.currentPage,
		TotalPages:     s.totalPages,
		Total:          s.total,
		HasMore:        s.hasMore,
		LoadingInitial: s.loadingInitial,
		LoadingMore:    s.loadingMore,
		LastError:      s.lastError,
	}
}

// ErrorMessage converts fetch failures to the user-facing strings
// surfaced by sessions and listing endpoints. Cancellation never
// reaches here.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrSourceDisabled):
		return "source not configured"
	case model.IsNotFoundError(err):
		return err.Error()
	case model.IsValidationError(err):
		return err.Error()
	default:
		return "upstream request failed"
	}
}
