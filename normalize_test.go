package depot

import "testing"

func TestNormalize(t *testing.T) {
	req := Normalize(SearchRequest{
		Query:    "  ThinkPads  ",
		Category: " Laptop ",
		Status:   " Available ",
		Page:     0,
		PageSize: 0,
	})

	if req.Query != "thinkpads" {
		t.Fatalf("query not folded: %q", req.Query)
	}
	if req.Type != "Laptop" {
		t.Fatalf("category should become the effective type, got %q", req.Type)
	}
	if req.Status != "Available" {
		t.Fatalf("status not trimmed: %q", req.Status)
	}
	if req.Page != 1 {
		t.Fatalf("page not clamped: %d", req.Page)
	}
	if req.PageSize != SearchPageSizeMin {
		t.Fatalf("page size not clamped up: %d", req.PageSize)
	}
	if req.Totals != TotalsExact {
		t.Fatalf("totals should default to exact, got %q", req.Totals)
	}
}

func TestNormalizeTypeWinsOverCategory(t *testing.T) {
	req := Normalize(SearchRequest{Type: "Dock", Category: "Laptop"})
	if req.Type != "Dock" {
		t.Fatalf("explicit type should win, got %q", req.Type)
	}
}

func TestNormalizePageSizeClamp(t *testing.T) {
	cases := []struct{ in, want int }{
		{-10, SearchPageSizeMin},
		{0, SearchPageSizeMin},
		{SearchPageSizeMin, SearchPageSizeMin},
		{20, 20},
		{SearchPageSizeMax, SearchPageSizeMax},
		{999, SearchPageSizeMax},
	}
	for _, c := range cases {
		got := Normalize(SearchRequest{PageSize: c.in}).PageSize
		if got != c.want {
			t.Errorf("PageSize %d: got %d, want %d", c.in, got, c.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	in := SearchRequest{
		Query: "  Mixed Case  ", Category: "Laptop", Page: -3, PageSize: 500,
		Totals: TotalsLookahead,
	}
	once := Normalize(in)
	twice := Normalize(once)
	if once != twice {
		t.Fatalf("not idempotent: %+v vs %+v", once, twice)
	}
}

func TestNormalizePaging(t *testing.T) {
	cases := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 1, PagingPageSizeMin},
		{-1, 10, 1, PagingPageSizeMin},
		{3, 100, 3, 100},
		{2, 1000, 2, PagingPageSizeMax},
	}
	for _, c := range cases {
		page, size := NormalizePaging(c.page, c.size)
		if page != c.wantPage || size != c.wantSize {
			t.Errorf("NormalizePaging(%d, %d) = (%d, %d), want (%d, %d)",
				c.page, c.size, page, size, c.wantPage, c.wantSize)
		}
	}
}
