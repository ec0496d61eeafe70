// Package sources routes a listing query to the backend it targets and
// normalizes every backend's payload into the common item shape. It is
// the single dispatch point keyed by the source descriptor; it never
// retries and never mutates shared state.
package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vitrine-media/vitrine/internal/archiveindex"
	"github.com/vitrine-media/vitrine/internal/flatfiles"
	"github.com/vitrine-media/vitrine/internal/mediaserver"
	"github.com/vitrine-media/vitrine/internal/model"
)

// MediaServerClient is the media-server collaborator surface the router
// consumes.
type MediaServerClient interface {
	ListItems(ctx context.Context, instanceKey string, p mediaserver.ListParams) (mediaserver.ItemsPage, error)
	ImageURL(instanceKey, itemID, kind string) string
}

// FlatFilesClient is the flat-file archive collaborator surface.
type FlatFilesClient interface {
	Browse(ctx context.Context, path string) (flatfiles.Listing, error)
}

// ArchiveIndexClient is the index collaborator surface.
type ArchiveIndexClient interface {
	Fetch(ctx context.Context, page, pageSize int) (archiveindex.IndexPage, error)
}

// Flags gate whether the router will ever issue a request per source.
type Flags struct {
	MediaServer  bool
	ArchiveIndex bool
	FlatFiles    bool
}

// Router resolves a source descriptor into the correct backend call.
type Router struct {
	media MediaServerClient
	files FlatFilesClient
	index ArchiveIndexClient
	flags Flags
	log   zerolog.Logger
}

// NewRouter creates a router over the given collaborators.
func NewRouter(media MediaServerClient, files FlatFilesClient, index ArchiveIndexClient, flags Flags, log zerolog.Logger) *Router {
	return &Router{media: media, files: files, index: index, flags: flags, log: log}
}

// Enabled reports whether kind is configured and switched on.
func (r *Router) Enabled(kind model.SourceKind) bool {
	switch kind {
	case model.SourceMediaServer:
		return r.flags.MediaServer && r.media != nil
	case model.SourceArchiveIndex:
		return r.flags.ArchiveIndex && r.index != nil
	case model.SourceFlatFiles:
		return r.flags.FlatFiles && r.files != nil
	default:
		return false
	}
}

// List executes one page fetch for q and normalizes the result.
func (r *Router) List(ctx context.Context, q model.ListingQuery) (model.ListingResponse, error) {
	if !r.Enabled(q.Source.Kind) {
		return model.ListingResponse{}, model.ErrSourceDisabled
	}
	if q.Page < 1 {
		return model.ListingResponse{}, model.NewValidationError("page", "page must be >= 1")
	}
	if q.PageSize < 1 {
		return model.ListingResponse{}, model.NewValidationError("pageSize", "pageSize must be > 0")
	}

	switch q.Source.Kind {
	case model.SourceMediaServer:
		return r.listMediaServer(ctx, q)
	case model.SourceArchiveIndex:
		return r.listArchiveIndex(ctx, q)
	case model.SourceFlatFiles:
		return r.listFlatFiles(ctx, q)
	default:
		return model.ListingResponse{}, model.NewValidationError("source", fmt.Sprintf("unknown source kind %q", q.Source.Kind))
	}
}

func (r *Router) listMediaServer(ctx context.Context, q model.ListingQuery) (model.ListingResponse, error) {
	sortField := q.SortField
	if sortField == "" {
		sortField = model.DefaultSortField
	}
	sortDirection := q.SortDirection
	if sortDirection == "" {
		sortDirection = model.DefaultSortDirection
	}

	page, err := r.media.ListItems(ctx, q.Source.InstanceKey, mediaserver.ListParams{
		ContainerID:   q.ContainerID,
		IncludeTypes:  []string{"Movie", "Series"},
		Recursive:     true,
		SortField:     sortField,
		SortDirection: sortDirection,
		Offset:        (q.Page - 1) * q.PageSize,
		Limit:         q.PageSize,
	})
	if err != nil {
		return model.ListingResponse{}, err
	}

	items := make([]model.Item, 0, len(page.Items))
	for _, raw := range page.Items {
		items = append(items, normalizeMediaServerItem(raw, r.media.ImageURL(q.Source.InstanceKey, raw.ID, "Primary")))
	}
	return model.ListingResponse{
		Items:       items,
		CurrentPage: q.Page,
		TotalPages:  model.TotalPagesFor(page.TotalCount, q.PageSize),
		Total:       page.TotalCount,
	}, nil
}

func (r *Router) listArchiveIndex(ctx context.Context, q model.ListingQuery) (model.ListingResponse, error) {
	page, err := r.index.Fetch(ctx, q.Page, q.PageSize)
	if err != nil {
		return model.ListingResponse{}, err
	}

	items := make([]model.Item, 0, len(page.List))
	for _, e := range page.List {
		items = append(items, normalizeIndexEntry(e))
	}
	return model.ListingResponse{
		Items:       items,
		CurrentPage: q.Page,
		TotalPages:  model.TotalPagesFor(page.Total, q.PageSize),
		Total:       page.Total,
	}, nil
}

// listFlatFiles is not paginated: one fetch returns the whole path.
func (r *Router) listFlatFiles(ctx context.Context, q model.ListingQuery) (model.ListingResponse, error) {
	listing, err := r.files.Browse(ctx, q.Source.Path)
	if err != nil {
		return model.ListingResponse{}, err
	}

	items := make([]model.Item, 0, len(listing.Files))
	for _, f := range listing.Files {
		items = append(items, normalizeFile(f))
	}
	totalPages := 0
	if len(items) > 0 {
		totalPages = 1
	}
	return model.ListingResponse{
		Items:       items,
		CurrentPage: 1,
		TotalPages:  totalPages,
		Total:       len(items),
	}, nil
}

// normalizeMediaServerItem maps a raw server item to the common shape.
// A missing rating normalizes to zero and a missing year to an empty
// value; neither fails the response.
func normalizeMediaServerItem(raw mediaserver.RawItem, posterURL string) model.Item {
	year := ""
	if raw.ProductionYear > 0 {
		year = fmt.Sprintf("%d", raw.ProductionYear)
	}
	mediaType := model.MediaTypeMovie
	if raw.Type == "Series" {
		mediaType = model.MediaTypeTV
	}
	return model.Item{
		ID:        raw.ID,
		Title:     raw.Name,
		Poster:    posterURL,
		Year:      year,
		Rating:    raw.CommunityRating,
		MediaType: mediaType,
	}
}

func normalizeIndexEntry(e archiveindex.Entry) model.Item {
	mediaType := model.MediaTypeMovie
	if e.MediaType == string(model.MediaTypeTV) {
		mediaType = model.MediaTypeTV
	}
	return model.Item{
		ID:        e.ID,
		Title:     e.Title,
		Poster:    e.Poster,
		Year:      e.Year,
		Rating:    e.Rating,
		MediaType: mediaType,
	}
}

// normalizeFile maps an archive file to an item. Files carry no poster,
// year or rating; the title is the file name without its extension.
func normalizeFile(f flatfiles.File) model.Item {
	title := f.Name
	if idx := strings.LastIndex(title, "."); idx > 0 {
		title = title[:idx]
	}
	return model.Item{
		ID:        f.Path,
		Title:     title,
		MediaType: model.MediaTypeMovie,
	}
}

// CacheKey derives the composite cache key for q. Sort identity is
// deliberately absent: only default-sort queries may touch the cache.
func CacheKey(q model.ListingQuery) string {
	return fmt.Sprintf("%s|%s|%s|%d|%d", q.Source.Kind, q.Source.InstanceKey, q.ContainerID, q.Page, q.PageSize)
}
