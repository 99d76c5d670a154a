package depot

import (
	"context"

	"github.com/xraph/depot/asset"
)

// shortQueryLen is the query length at or below which the exact tier is
// final: short queries are assumed to be tag or ID lookups, and cascading
// them into prefix/contains matches produces noise.
const shortQueryLen = 3

// tier is one pass of the match cascade. stop decides, from the pass's
// own result count, whether its result is sufficient.
type tier struct {
	mode asset.MatchMode
	stop func(returned, pageSize int, query string) bool
}

// searchTiers is the match state machine, in execution order. Each pass
// fetches pageSize+1 rows; the cascade stops at the first tier whose stop
// predicate accepts, and the contains tier always accepts.
var searchTiers = []tier{
	{asset.MatchExact, func(n, size int, q string) bool {
		return n >= size || len(q) <= shortQueryLen
	}},
	{asset.MatchPrefix, func(n, size int, q string) bool {
		return n >= size
	}},
	{asset.MatchContains, func(n, size int, q string) bool {
		return true
	}},
}

// runTiers executes the tiered match against the scoped, faceted base
// query and returns the page rows plus a look-ahead total: TotalUnknown
// while more pages exist, the exact count once the final page is reached.
func (e *Engine) runTiers(ctx context.Context, base asset.Query, terms []string, query string, page, pageSize int) ([]*asset.Row, int64, error) {
	base.Terms = terms
	base.Limit = pageSize + 1
	base.Offset = (page - 1) * pageSize

	var rows []*asset.Row
	for _, t := range searchTiers {
		q := base
		q.Match = t.mode

		var err error
		rows, err = e.store.SearchAssets(ctx, &q)
		if err != nil {
			return nil, 0, err
		}
		if t.stop(len(rows), pageSize, query) {
			e.logger.DebugContext(ctx, "tier accepted",
				"tier", t.mode.String(), "rows", len(rows), "page_size", pageSize)
			break
		}
	}

	if len(rows) > pageSize {
		return rows[:pageSize], TotalUnknown, nil
	}
	return rows, int64((page-1)*pageSize + len(rows)), nil
}
