package depot

import (
	"context"
	"fmt"
	"time"
)

// Paging cache keys are contract surface: another layer holding the same
// cache may address the same entries.
func pageKey(key string, page, size int) string {
	return fmt.Sprintf("%s:page=%d:size=%d", key, page, size)
}

func totalKey(key string) string { return key + ":total" }

// PageExact pages with a real count: the total and the page slice are
// cached independently under <key>:total and <key>:page=<p>:size=<s>.
// Cache failures fall through to the fetch/count callbacks; callback
// errors propagate without cache writes.
func PageExact[T any](ctx context.Context, c Cache, key string, page, pageSize int, ttl time.Duration,
	fetch func(ctx context.Context, limit, offset int) ([]T, error),
	count func(ctx context.Context) (int64, error),
) (*PagedResult[T], error) {
	total, err := getOrCompute(ctx, c, totalKey(key), ttl, count)
	if err != nil {
		return nil, err
	}

	items, err := getOrCompute(ctx, c, pageKey(key, page, pageSize), ttl, func(ctx context.Context) ([]T, error) {
		return fetch(ctx, pageSize, (page-1)*pageSize)
	})
	if err != nil {
		return nil, err
	}

	return &PagedResult[T]{Items: items, Page: page, PageSize: pageSize, Total: total}, nil
}

// PageLookahead pages without counting: it fetches pageSize+1 rows
// (cached as fetched under <key>:page=<p>:size=<s>). When the extra row
// came back the total is TotalUnknown; otherwise this is the final page
// and the exact total is (page-1)*pageSize + len(items).
func PageLookahead[T any](ctx context.Context, c Cache, key string, page, pageSize int, ttl time.Duration,
	fetch func(ctx context.Context, limit, offset int) ([]T, error),
) (*PagedResult[T], error) {
	rows, err := getOrCompute(ctx, c, pageKey(key, page, pageSize), ttl, func(ctx context.Context) ([]T, error) {
		return fetch(ctx, pageSize+1, (page-1)*pageSize)
	})
	if err != nil {
		return nil, err
	}

	total := TotalUnknown
	if len(rows) <= pageSize {
		total = int64((page-1)*pageSize + len(rows))
	} else {
		rows = rows[:pageSize]
	}

	return &PagedResult[T]{Items: rows, Page: page, PageSize: pageSize, Total: total}, nil
}
