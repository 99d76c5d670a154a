package depot

import "strings"

// Page size clamp ranges. The search path and the generic paging helper
// deliberately differ: on-demand search renders compact result lists,
// while the admin listing utility pages large tables.
const (
	SearchPageSizeMin = 5
	SearchPageSizeMax = 50

	PagingPageSizeMin = 25
	PagingPageSizeMax = 200
)

// Normalize trims and folds the search inputs: the query is trimmed and
// lowercased (empty meaning "no text filter"), Category becomes the
// effective Type when Type is blank, Page is clamped to ≥ 1, and PageSize
// to [SearchPageSizeMin, SearchPageSizeMax]. Pure and idempotent:
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(req SearchRequest) SearchRequest {
	req.Query = strings.ToLower(strings.TrimSpace(req.Query))
	req.Type = strings.TrimSpace(req.Type)
	req.Category = strings.TrimSpace(req.Category)
	req.Status = strings.TrimSpace(req.Status)

	if req.Type == "" && req.Category != "" {
		req.Type = req.Category
	}

	if req.Page < 1 {
		req.Page = 1
	}
	req.PageSize = clamp(req.PageSize, SearchPageSizeMin, SearchPageSizeMax)

	if req.Totals == "" {
		req.Totals = TotalsExact
	}

	return req
}

// NormalizePaging clamps page and pageSize for the generic paging helper:
// page ≥ 1, pageSize in [PagingPageSizeMin, PagingPageSizeMax].
func NormalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	return page, clamp(pageSize, PagingPageSizeMin, PagingPageSizeMax)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
