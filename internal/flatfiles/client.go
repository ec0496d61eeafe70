// Package flatfiles is the client for the flat-file media archive: a
// path-browsing and keyword-search service over plain files.
package flatfiles

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/vitrine-media/vitrine/internal/model"
)

// Folder is a browsable directory in the archive.
type Folder struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// File is a media file in the archive.
type File struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Listing is the content of one archive path.
type Listing struct {
	Folders []Folder `json:"folders"`
	Files   []File   `json:"files"`
}

// Entry is one search result.
type Entry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Client talks to the flat-file archive service.
type Client struct {
	hc  *resty.Client
	log zerolog.Logger
}

// New creates a client for the archive at baseURL.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		hc: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json").
			SetTimeout(timeout),
		log: log,
	}
}

// Browse lists the folders and files under path. A missing path is a
// NotFoundError so navigation can fall back to a known-good location.
func (c *Client) Browse(ctx context.Context, path string) (Listing, error) {
	var out Listing
	resp, err := c.hc.R().
		SetContext(ctx).
		SetQueryParam("path", path).
		SetResult(&out).
		Get("/api/browse")
	if err != nil {
		return Listing{}, model.NewUpstreamError("flat-files", "browse request failed", err)
	}
	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return Listing{}, model.NewNotFoundError("path", fmt.Sprintf("path %q not found", path))
	case resp.StatusCode() != http.StatusOK:
		return Listing{}, model.NewUpstreamError("flat-files", fmt.Sprintf("unexpected status %d", resp.StatusCode()), nil)
	}
	return out, nil
}

// Search returns entries matching keyword anywhere in the archive.
// Ranking is the archive's concern; results are passed through in order.
func (c *Client) Search(ctx context.Context, keyword string) ([]Entry, error) {
	var out []Entry
	resp, err := c.hc.R().
		SetContext(ctx).
		SetQueryParam("keyword", keyword).
		SetResult(&out).
		Get("/api/search")
	if err != nil {
		return nil, model.NewUpstreamError("flat-files", "search request failed", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, model.NewUpstreamError("flat-files", fmt.Sprintf("unexpected status %d", resp.StatusCode()), nil)
	}
	return out, nil
}

// Ping probes the archive's health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.hc.R().SetContext(ctx).Get("/api/health")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("flat-files status %d", resp.StatusCode())
	}
	return nil
}
