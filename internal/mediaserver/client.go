// Package mediaserver implements a Jellyfin-compatible REST client with
// support for multiple named instances. It performs no retries and no
// normalization: retry policy and item mapping belong to the callers.
package mediaserver

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/vitrine-media/vitrine/internal/model"
)

// Client talks to one or more named media-server instances.
type Client struct {
	instances  map[string]Instance
	clients    map[string]*resty.Client
	defaultKey string
	userID     string
	log        zerolog.Logger
}

// New builds a client for the given instance map (key -> base URL).
// defaultKey selects the instance used when a request carries no key.
func New(instances map[string]string, defaultKey, token, userID string, timeout time.Duration, log zerolog.Logger) *Client {
	c := &Client{
		instances:  make(map[string]Instance, len(instances)),
		clients:    make(map[string]*resty.Client, len(instances)),
		defaultKey: defaultKey,
		userID:     userID,
		log:        log,
	}
	for key, baseURL := range instances {
		base := strings.TrimRight(baseURL, "/")
		c.instances[key] = Instance{Key: key, Name: key, BaseURL: base}
		c.clients[key] = resty.New().
			SetBaseURL(base).
			SetHeader("Accept", "application/json").
			SetHeader("X-Emby-Token", token).
			SetTimeout(timeout)
	}
	return c
}

// Instances returns the configured instances in stable key order.
func (c *Client) Instances() []Instance {
	out := make([]Instance, 0, len(c.instances))
	for _, inst := range c.instances {
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// DefaultInstanceKey returns the instance used when no key is given.
func (c *Client) DefaultInstanceKey() string { return c.defaultKey }

// resolve maps an instance key (or the empty string) to a configured
// instance and its HTTP client.
func (c *Client) resolve(instanceKey string) (Instance, *resty.Client, error) {
	key := instanceKey
	if key == "" {
		key = c.defaultKey
	}
	inst, ok := c.instances[key]
	if !ok {
		return Instance{}, nil, model.NewNotFoundError("instanceKey", fmt.Sprintf("unknown media server instance %q", key))
	}
	return inst, c.clients[key], nil
}

// ListItems fetches one window of items from an instance.
func (c *Client) ListItems(ctx context.Context, instanceKey string, p ListParams) (ItemsPage, error) {
	inst, hc, err := c.resolve(instanceKey)
	if err != nil {
		return ItemsPage{}, err
	}

	req := hc.R().
		SetContext(ctx).
		SetQueryParam("Recursive", strconv.FormatBool(p.Recursive)).
		SetQueryParam("StartIndex", strconv.Itoa(p.Offset)).
		SetQueryParam("Fields", "ProductionYear,CommunityRating")
	if len(p.IncludeTypes) > 0 {
		req.SetQueryParam("IncludeItemTypes", strings.Join(p.IncludeTypes, ","))
	}
	if p.ContainerID != "" {
		req.SetQueryParam("ParentId", p.ContainerID)
	}
	if p.Limit > 0 {
		req.SetQueryParam("Limit", strconv.Itoa(p.Limit))
	}
	if p.SortField != "" {
		req.SetQueryParam("SortBy", p.SortField)
	}
	if p.SortDirection != "" {
		req.SetQueryParam("SortOrder", p.SortDirection)
	}

	var out itemsResponse
	resp, err := req.SetResult(&out).Get(fmt.Sprintf("/Users/%s/Items", c.userID))
	if err != nil {
		return ItemsPage{}, model.NewUpstreamError(inst.Key, "items request failed", err)
	}
	if err := checkStatus(inst.Key, resp, "containerId"); err != nil {
		return ItemsPage{}, err
	}

	c.log.Debug().
		Str("instance", inst.Key).
		Int("start", p.Offset).
		Int("count", len(out.Items)).
		Int("total", out.TotalRecordCount).
		Msg("media server items fetched")

	return ItemsPage{Items: out.Items, TotalCount: out.TotalRecordCount}, nil
}

// ListContainers returns the library views of an instance, keeping only
// the collection kinds the listing layer understands.
func (c *Client) ListContainers(ctx context.Context, instanceKey string) ([]Container, error) {
	inst, hc, err := c.resolve(instanceKey)
	if err != nil {
		return nil, err
	}

	var out itemsResponse
	resp, err := hc.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/Users/%s/Views", c.userID))
	if err != nil {
		return nil, model.NewUpstreamError(inst.Key, "views request failed", err)
	}
	if err := checkStatus(inst.Key, resp, "instanceKey"); err != nil {
		return nil, err
	}

	containers := make([]Container, 0, len(out.Items))
	for _, item := range out.Items {
		switch item.CollectionType {
		case "movies", "tvshows", "mixed", "":
			containers = append(containers, Container{ID: item.ID, Name: item.Name, Kind: item.CollectionType})
		default:
			// music, photos and the like are not listable here
		}
	}
	return containers, nil
}

// ImageURL constructs the URL for an item image of the given kind
// (e.g. "Primary"). It performs no request.
func (c *Client) ImageURL(instanceKey, itemID, kind string) string {
	inst, _, err := c.resolve(instanceKey)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s/Items/%s/Images/%s", inst.BaseURL, itemID, kind)
}

// Ping probes the default instance's public system info endpoint.
func (c *Client) Ping(ctx context.Context) error {
	inst, hc, err := c.resolve("")
	if err != nil {
		return err
	}
	resp, err := hc.R().SetContext(ctx).Get("/System/Info/Public")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("media server %s status %d", inst.Key, resp.StatusCode())
	}
	return nil
}

func checkStatus(instanceKey string, resp *resty.Response, notFoundField string) error {
	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return model.NewNotFoundError(notFoundField, "resource not found upstream")
	case resp.StatusCode() != http.StatusOK:
		return model.NewUpstreamError(instanceKey, fmt.Sprintf("unexpected status %d", resp.StatusCode()), nil)
	default:
		return nil
	}
}
