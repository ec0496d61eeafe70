// Package archiveindex is the client for the flat paginated media index
// service. The index serves pre-normalized entries, so mapping to the
// common item shape is nearly one-to-one.
package archiveindex

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/vitrine-media/vitrine/internal/model"
)

// Entry is one index record.
type Entry struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Poster    string  `json:"poster"`
	Year      string  `json:"year"`
	Rating    float64 `json:"rating"`
	MediaType string  `json:"mediaType"`
}

// IndexPage is one fetched window of the index plus its total size.
type IndexPage struct {
	List  []Entry `json:"list"`
	Total int     `json:"total"`
}

// Client talks to the archive index service.
type Client struct {
	hc  *resty.Client
	log zerolog.Logger
}

// New creates a client for the index at baseURL.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		hc: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json").
			SetTimeout(timeout),
		log: log,
	}
}

// Fetch returns one page of the index.
func (c *Client) Fetch(ctx context.Context, page, pageSize int) (IndexPage, error) {
	var out IndexPage
	resp, err := c.hc.R().
		SetContext(ctx).
		SetQueryParam("page", strconv.Itoa(page)).
		SetQueryParam("pageSize", strconv.Itoa(pageSize)).
		SetResult(&out).
		Get("/api/index")
	if err != nil {
		return IndexPage{}, model.NewUpstreamError("archive-index", "index request failed", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return IndexPage{}, model.NewUpstreamError("archive-index", fmt.Sprintf("unexpected status %d", resp.StatusCode()), nil)
	}
	return out, nil
}

// Ping probes the index's health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.hc.R().SetContext(ctx).Get("/api/health")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("archive-index status %d", resp.StatusCode())
	}
	return nil
}
