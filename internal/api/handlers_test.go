package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vitrine-media/vitrine/internal/flatfiles"
	"github.com/vitrine-media/vitrine/internal/listing"
	"github.com/vitrine-media/vitrine/internal/mediaserver"
	"github.com/vitrine-media/vitrine/internal/model"
)

// stubLister serves canned listing pages and records queries.
type stubLister struct {
	disabled map[model.SourceKind]bool
	queries  []model.ListingQuery
	resp     model.ListingResponse
	err      error
}

func (s *stubLister) Enabled(kind model.SourceKind) bool { return !s.disabled[kind] }

func (s *stubLister) List(ctx context.Context, q model.ListingQuery) (model.ListingResponse, error) {
	s.queries = append(s.queries, q)
	if s.err != nil {
		return model.ListingResponse{}, s.err
	}
	return s.resp, nil
}

type stubMedia struct {
	instances  []mediaserver.Instance
	containers []mediaserver.Container
	err        error
}

func (s *stubMedia) Instances() []mediaserver.Instance { return s.instances }

func (s *stubMedia) ListContainers(ctx context.Context, instanceKey string) ([]mediaserver.Container, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.containers, nil
}

type stubArchive struct {
	listing flatfiles.Listing
	entries []flatfiles.Entry
	err     error
}

func (s *stubArchive) Browse(ctx context.Context, path string) (flatfiles.Listing, error) {
	if s.err != nil {
		return flatfiles.Listing{}, s.err
	}
	return s.listing, nil
}

func (s *stubArchive) Search(ctx context.Context, keyword string) ([]flatfiles.Entry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

func samplePage() model.ListingResponse {
	return model.ListingResponse{
		Items:       []model.Item{{ID: "m1", Title: "Movie One", MediaType: model.MediaTypeMovie}},
		CurrentPage: 1,
		TotalPages:  3,
		Total:       45,
	}
}

func newTestServer(lister *stubLister, media *stubMedia, files *stubArchive) *httptest.Server {
	registry := listing.NewRegistry(lister, 20, time.Minute, zerolog.Nop())
	var m InstanceDirectory
	if media != nil {
		m = media
	}
	var f FileArchive
	if files != nil {
		f = files
	}
	return httptest.NewServer(NewRouter(Deps{
		Lister:          lister,
		Registry:        registry,
		Media:           m,
		Files:           f,
		DefaultPageSize: 20,
	}))
}

func doJSON(method, url, body string) (*http.Response, error) {
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return http.DefaultClient.Do(req)
}
