// Package depot provides role-scoped search and paging over an asset
// inventory.
//
// Depot projects two asset families — physical hardware and licensed
// software — into a single searchable row shape, restricts visibility by
// the caller's role (admins see everything, supervisors see their
// reporting chain), and pages results with either exact counts or
// look-ahead totals. Free-text queries run through a three-tier match
// cascade: exact, then prefix, then contains.
//
//	eng, err := depot.NewEngine(
//	    depot.WithStore(memStore),
//	)
//	page, err := eng.Search(ctx, caller, depot.SearchRequest{
//	    Query:    "laptops",
//	    Page:     1,
//	    PageSize: 20,
//	})
package depot

import "github.com/xraph/depot/asset"

// AssetRow is the unified search result unit.
type AssetRow = asset.Row

// TotalsMode selects how the paging engine reports totals.
type TotalsMode string

const (
	// TotalsExact issues a count query; Total is always a real count.
	TotalsExact TotalsMode = "exact"

	// TotalsLookahead fetches one extra row instead of counting; Total is
	// TotalUnknown until the final page is reached.
	TotalsLookahead TotalsMode = "lookahead"
)

// TotalUnknown is the Total sentinel meaning "at least one more page
// exists" under look-ahead paging.
const TotalUnknown int64 = -1

// SearchRequest carries the caller-supplied search inputs. Pass it through
// Normalize (Search does this itself) before using the fields.
type SearchRequest struct {
	// Query is the free text to match. Empty or whitespace means no text
	// filter.
	Query string `json:"query,omitempty"`

	// Type filters by asset type/category label. When empty, Category is
	// used as the effective type filter.
	Type     string `json:"type,omitempty"`
	Category string `json:"category,omitempty"`

	// Status filters by the derived status label.
	Status string `json:"status,omitempty"`

	Page     int `json:"page"`
	PageSize int `json:"page_size"`

	// Totals selects the paging strategy for the non-text listing path.
	// The tiered matcher always pages with a bounded look-ahead.
	Totals TotalsMode `json:"totals,omitempty"`

	ShowArchived bool `json:"show_archived,omitempty"`
}

// HasQuery reports whether a normalized request carries a text filter.
func (r SearchRequest) HasQuery() bool { return r.Query != "" }

// PagedResult is one page of results plus a total. Total is TotalUnknown
// when look-ahead paging detected more pages without counting them.
type PagedResult[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}
