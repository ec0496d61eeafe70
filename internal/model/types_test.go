package model

import "testing"

func TestCacheEligible(t *testing.T) {
	cases := []struct {
		name  string
		field string
		dir   string
		want  bool
	}{
		{"empty sort is default", "", "", true},
		{"explicit defaults", DefaultSortField, DefaultSortDirection, true},
		{"default field empty direction", DefaultSortField, "", true},
		{"non-default field", "ProductionYear", "", false},
		{"non-default direction", "", SortDescending, false},
		{"both non-default", "CommunityRating", SortDescending, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := ListingQuery{SortField: tc.field, SortDirection: tc.dir}
			if got := q.CacheEligible(); got != tc.want {
				t.Fatalf("CacheEligible(%q, %q) = %v, want %v", tc.field, tc.dir, got, tc.want)
			}
		})
	}
}

func TestTotalPagesFor(t *testing.T) {
	cases := []struct {
		total    int
		pageSize int
		want     int
	}{
		{45, 20, 3},
		{40, 20, 2},
		{1, 20, 1},
		{0, 20, 0},
		{-1, 20, 0},
		{10, 0, 0},
	}
	for _, tc := range cases {
		if got := TotalPagesFor(tc.total, tc.pageSize); got != tc.want {
			t.Fatalf("TotalPagesFor(%d, %d) = %d, want %d", tc.total, tc.pageSize, got, tc.want)
		}
	}
}
