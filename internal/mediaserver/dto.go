package mediaserver

// itemsResponse is the paginated item envelope returned by the server.
type itemsResponse struct {
	Items            []RawItem `json:"Items"`
	TotalRecordCount int       `json:"TotalRecordCount"`
	StartIndex       int       `json:"StartIndex"`
}

// RawItem is a media item as the server reports it (movie, series or
// library view). Only the fields the listing layer consumes are decoded.
type RawItem struct {
	ID              string    `json:"Id"`
	Name            string    `json:"Name"`
	Type            string    `json:"Type"`
	CollectionType  string    `json:"CollectionType,omitempty"`
	ProductionYear  int       `json:"ProductionYear,omitempty"`
	CommunityRating float64   `json:"CommunityRating,omitempty"`
	ImageTags       imageTags `json:"ImageTags,omitempty"`
}

type imageTags struct {
	Primary string `json:"Primary,omitempty"`
}

// ItemsPage is one fetched window of raw items plus the backend's total.
type ItemsPage struct {
	Items      []RawItem
	TotalCount int
}

// Instance is a named, configured media server.
type Instance struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	BaseURL string `json:"-"`
}

// Container is a server-side grouping (library view) used to scope a
// listing.
type Container struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// ListParams are the raw query knobs for ListItems.
type ListParams struct {
	ContainerID   string
	IncludeTypes  []string
	Recursive     bool
	SortField     string
	SortDirection string
	Offset        int
	Limit         int
}
