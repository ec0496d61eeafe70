package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/vitrine-media/vitrine/internal/api/respond"
	"github.com/vitrine-media/vitrine/internal/model"
)

func getListing(t *testing.T, url string) (int, respond.ListingResponse) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	var body respond.ListingResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return resp.StatusCode, body
}

func TestListing_MediaServer_Success(t *testing.T) {
	lister := &stubLister{resp: samplePage()}
	srv := newTestServer(lister, nil, nil)
	defer srv.Close()

	status, body := getListing(t, srv.URL+"/api/listing/media-server?instanceKey=home&containerId=lib1&page=2&pageSize=10&sortField=ProductionYear&sortDirection=desc")

	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !body.Success || body.Error != "" {
		t.Fatalf("expected success shape, got %+v", body)
	}
	if len(body.List) != 1 || body.Total != 45 || body.TotalPages != 3 {
		t.Fatalf("unexpected payload: %+v", body)
	}

	if len(lister.queries) != 1 {
		t.Fatalf("expected 1 query, got %d", len(lister.queries))
	}
	q := lister.queries[0]
	if q.Source.Kind != model.SourceMediaServer || q.Source.InstanceKey != "home" {
		t.Fatalf("source not threaded: %+v", q.Source)
	}
	if q.Page != 2 || q.PageSize != 10 || q.ContainerID != "lib1" {
		t.Fatalf("paging not threaded: %+v", q)
	}
	if q.SortField != "ProductionYear" || q.SortDirection != model.SortDescending {
		t.Fatalf("sort not normalized: %+v", q)
	}
}

func TestListing_Defaults(t *testing.T) {
	lister := &stubLister{resp: samplePage()}
	srv := newTestServer(lister, nil, nil)
	defer srv.Close()

	status, _ := getListing(t, srv.URL+"/api/listing/archive-index")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	q := lister.queries[0]
	if q.Page != model.DefaultPage || q.PageSize != 20 {
		t.Fatalf("defaults not applied: %+v", q)
	}
	if q.Source.Kind != model.SourceArchiveIndex {
		t.Fatalf("wrong source kind: %s", q.Source.Kind)
	}
}

func TestListing_InvalidPaging(t *testing.T) {
	lister := &stubLister{resp: samplePage()}
	srv := newTestServer(lister, nil, nil)
	defer srv.Close()

	for _, qs := range []string{"page=0", "page=x", "pageSize=0", "pageSize=x"} {
		status, body := getListing(t, srv.URL+"/api/listing/media-server?"+qs)
		if status != http.StatusOK {
			t.Fatalf("%s: status = %d, failure shape still uses 200", qs, status)
		}
		if body.Success || body.Error == "" {
			t.Fatalf("%s: expected failure shape, got %+v", qs, body)
		}
		if body.List == nil || len(body.List) != 0 || body.TotalPages != 0 || body.Total != 0 {
			t.Fatalf("%s: failure shape malformed: %+v", qs, body)
		}
	}
	if len(lister.queries) != 0 {
		t.Fatalf("invalid paging must not reach the service")
	}
}

func TestListing_UpstreamFailureShape(t *testing.T) {
	lister := &stubLister{err: model.NewUpstreamError("home", "boom", nil)}
	srv := newTestServer(lister, nil, nil)
	defer srv.Close()

	status, body := getListing(t, srv.URL+"/api/listing/media-server?page=3")
	if status != http.StatusOK {
		t.Fatalf("status = %d, failure shape still uses 200", status)
	}
	if body.Success {
		t.Fatalf("expected failure shape")
	}
	if body.Error != "upstream request failed" {
		t.Fatalf("raw upstream detail leaked: %q", body.Error)
	}
	if body.CurrentPage != 3 {
		t.Fatalf("currentPage must echo the request, got %d", body.CurrentPage)
	}
}

func TestListing_DisabledSource(t *testing.T) {
	lister := &stubLister{
		resp: samplePage(),
		err:  model.ErrSourceDisabled,
	}
	srv := newTestServer(lister, nil, nil)
	defer srv.Close()

	_, body := getListing(t, srv.URL+"/api/listing/flat-files?path=/media")
	if body.Success || body.Error != "source not configured" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestListing_FlatFilesThreadsPath(t *testing.T) {
	lister := &stubLister{resp: samplePage()}
	srv := newTestServer(lister, nil, nil)
	defer srv.Close()

	status, _ := getListing(t, srv.URL+"/api/listing/flat-files?path=/media/movies")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	q := lister.queries[0]
	if q.Source.Kind != model.SourceFlatFiles || q.Source.Path != "/media/movies" {
		t.Fatalf("path not threaded: %+v", q.Source)
	}
}

func TestListing_EmptyListNeverNull(t *testing.T) {
	lister := &stubLister{resp: model.ListingResponse{CurrentPage: 1, TotalPages: 0, Total: 0}}
	srv := newTestServer(lister, nil, nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/listing/archive-index")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw["list"]) != "[]" {
		t.Fatalf("list must serialize as [], got %s", raw["list"])
	}
}
