package asset

import (
	"context"
	"strings"

	"github.com/xraph/depot/id"
)

// MatchMode selects which text-match tier a query applies.
type MatchMode int

const (
	// MatchAll applies no text predicate.
	MatchAll MatchMode = iota

	// MatchExact compares each field for full equality to a term.
	MatchExact

	// MatchPrefix compares each field with "starts with".
	MatchPrefix

	// MatchContains compares each field with substring containment.
	MatchContains
)

// String returns the mode name for logging.
func (m MatchMode) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchPrefix:
		return "prefix"
	case MatchContains:
		return "contains"
	default:
		return "all"
	}
}

// Query is the projection request handed to a Source. Facet filters and
// role scope apply in every mode; Terms apply only when Match is not
// MatchAll. Results are always ordered by name, type, tag, hardware ID,
// software ID.
type Query struct {
	// Terms are ORed: a row matches when any searchable field matches any
	// term under the current mode. All comparisons are case-insensitive.
	Terms []string
	Match MatchMode

	// Facets. Empty string means unfiltered.
	Type   string
	Status string

	// ShowArchived includes archived assets in the projection.
	ShowArchived bool

	// Scope restricts rows to assets currently held by one of the given
	// users (any seat holder, for software). nil means unrestricted; an
	// empty non-nil slice means no row is visible.
	Scope []id.UserID

	Limit  int
	Offset int
}

// Scoped reports whether the query carries a visibility restriction.
func (q *Query) Scoped() bool { return q.Scope != nil }

// Source is the base projection boundary: a queryable view over the
// unified asset universe. Each storage backend implements it.
type Source interface {
	// SearchAssets returns projected rows matching the query, in the
	// canonical order, honoring Limit and Offset.
	SearchAssets(ctx context.Context, q *Query) ([]*Row, error)

	// CountAssets returns the number of rows matching the query,
	// ignoring Limit and Offset.
	CountAssets(ctx context.Context, q *Query) (int64, error)
}

// EscapeLike escapes the SQL LIKE metacharacters in a search term so that
// user input is matched literally. Backends pair the result with
// `ESCAPE '\'`.
func EscapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}
