// Package model holds the shared listing types: source descriptors,
// queries, the normalized item shape and the paginated response.
package model

// SourceKind identifies which backend a listing targets.
type SourceKind string

const (
	SourceArchiveIndex SourceKind = "archive-index"
	SourceMediaServer  SourceKind = "media-server"
	SourceFlatFiles    SourceKind = "flat-files"
)

// SourceDescriptor is the tagged identity of a listing target. InstanceKey
// applies to media-server sources, Path to flat-files sources.
type SourceDescriptor struct {
	Kind        SourceKind `json:"kind"`
	InstanceKey string     `json:"instanceKey,omitempty"`
	Path        string     `json:"path,omitempty"`
}

// MediaType distinguishes the two normalized content types.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// Item is the normalized media item shape, regardless of originating
// source. ID is unique within a single response only; consumers must
// namespace by source when navigating.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Poster    string    `json:"poster"`
	Year      string    `json:"year"`
	Rating    float64   `json:"rating"`
	MediaType MediaType `json:"mediaType"`
}

// Defaults for paging and sorting. The sort defaults follow the
// media-server wire values; a query using them (or leaving them empty)
// is the only shape that may be cached.
const (
	DefaultPage          = 1
	DefaultPageSize      = 20
	DefaultSortField     = "SortName"
	DefaultSortDirection = "Ascending"

	SortAscending  = "Ascending"
	SortDescending = "Descending"
)

// ListingQuery is one page request against a source.
type ListingQuery struct {
	Source        SourceDescriptor
	Page          int
	PageSize      int
	ContainerID   string
	SortField     string
	SortDirection string
}

// CacheEligible reports whether the query uses the default sort order.
// Cache entries do not carry sort identity, so anything else must be a
// live fetch.
func (q ListingQuery) CacheEligible() bool {
	fieldDefault := q.SortField == "" || q.SortField == DefaultSortField
	dirDefault := q.SortDirection == "" || q.SortDirection == DefaultSortDirection
	return fieldDefault && dirDefault
}

// ListingResponse is one fetched page. Invariants: len(Items) <= the
// requested page size, and CurrentPage <= TotalPages when Total > 0.
type ListingResponse struct {
	Items       []Item `json:"items"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
	Total       int    `json:"total"`
}

// TotalPagesFor computes the page count for a reported total.
func TotalPagesFor(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
