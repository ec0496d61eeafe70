package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

type listArgs struct {
	Source        string
	InstanceKey   string
	ContainerID   string
	Path          string
	Page          int
	PageSize      int
	SortField     string
	SortDirection string
}

type listingPayload struct {
	Success     bool   `json:"success"`
	Error       string `json:"error"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
	Total       int    `json:"total"`
	List        []struct {
		ID        string  `json:"id"`
		Title     string  `json:"title"`
		Year      string  `json:"year"`
		Rating    float64 `json:"rating"`
		MediaType string  `json:"mediaType"`
	} `json:"list"`
}

func getJSON(rawURL string, out interface{}) error {
	resp, err := httpClient.Get(rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func runSources(api string, w io.Writer) error {
	var out struct {
		Sources   map[string]bool `json:"sources"`
		Instances []struct {
			Key  string `json:"key"`
			Name string `json:"name"`
		} `json:"instances"`
	}
	if err := getJSON(api+"/api/sources", &out); err != nil {
		return err
	}
	for kind, enabled := range out.Sources {
		fmt.Fprintf(w, "%-15s enabled=%v\n", kind, enabled)
	}
	for _, inst := range out.Instances {
		fmt.Fprintf(w, "instance %s (%s)\n", inst.Key, inst.Name)
	}
	return nil
}

func runList(api string, args listArgs, w io.Writer) error {
	q := url.Values{}
	switch args.Source {
	case "media-server":
		q.Set("page", strconv.Itoa(args.Page))
		q.Set("pageSize", strconv.Itoa(args.PageSize))
		if args.InstanceKey != "" {
			q.Set("instanceKey", args.InstanceKey)
		}
		if args.ContainerID != "" {
			q.Set("containerId", args.ContainerID)
		}
		if args.SortField != "" {
			q.Set("sortField", args.SortField)
		}
		if args.SortDirection != "" {
			q.Set("sortDirection", args.SortDirection)
		}
	case "archive-index":
		q.Set("page", strconv.Itoa(args.Page))
		q.Set("pageSize", strconv.Itoa(args.PageSize))
	case "flat-files":
		q.Set("path", args.Path)
	default:
		return fmt.Errorf("unknown source: %s", args.Source)
	}

	var out listingPayload
	if err := getJSON(fmt.Sprintf("%s/api/listing/%s?%s", api, args.Source, q.Encode()), &out); err != nil {
		return err
	}
	if out.Error != "" {
		return fmt.Errorf("listing failed: %s", out.Error)
	}
	fmt.Fprintf(w, "page %d/%d, %d total\n", out.CurrentPage, out.TotalPages, out.Total)
	for _, item := range out.List {
		fmt.Fprintf(w, "%-8s %-6s %4.1f  %s\n", item.MediaType, item.Year, item.Rating, item.Title)
	}
	return nil
}

func runBrowse(api, path string, w io.Writer) error {
	var out struct {
		Folders []struct {
			Name string `json:"name"`
			Path string `json:"path"`
		} `json:"folders"`
		Files []struct {
			Name string `json:"name"`
			Path string `json:"path"`
		} `json:"files"`
	}
	q := url.Values{}
	q.Set("path", path)
	if err := getJSON(api+"/api/files/browse?"+q.Encode(), &out); err != nil {
		return err
	}
	for _, f := range out.Folders {
		fmt.Fprintf(w, "dir   %s\n", f.Path)
	}
	for _, f := range out.Files {
		fmt.Fprintf(w, "file  %s\n", f.Path)
	}
	return nil
}

func runSearch(api, keyword string, w io.Writer) error {
	var out struct {
		Results []struct {
			Name string `json:"name"`
			Path string `json:"path"`
		} `json:"results"`
		Count int `json:"count"`
	}
	q := url.Values{}
	q.Set("keyword", keyword)
	if err := getJSON(api+"/api/files/search?"+q.Encode(), &out); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d results\n", out.Count)
	for _, e := range out.Results {
		fmt.Fprintf(w, "%s\n", e.Path)
	}
	return nil
}
