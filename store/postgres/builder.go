package postgres

import (
	"fmt"
	"strings"
)

// queryBuilder accumulates WHERE conditions with positional arguments.
// Condition templates carry %s verbs that are substituted with the $n
// placeholder of each bound argument.
type queryBuilder struct {
	base   string
	conds  []string
	order  string
	limit  int
	offset int
	args   []any
}

func newQueryBuilder(base string) *queryBuilder {
	return &queryBuilder{base: strings.TrimSpace(base)}
}

// where appends a condition binding a single argument.
func (q *queryBuilder) where(cond string, arg any) {
	q.whereArgs(cond, arg)
}

// whereArgs appends a condition binding each argument in order.
func (q *queryBuilder) whereArgs(cond string, args ...any) {
	ph := make([]any, len(args))
	for i, a := range args {
		q.args = append(q.args, a)
		ph[i] = fmt.Sprintf("$%d", len(q.args))
	}
	q.conds = append(q.conds, fmt.Sprintf(cond, ph...))
}

// whereRaw appends a condition with no arguments.
func (q *queryBuilder) whereRaw(cond string) {
	q.conds = append(q.conds, cond)
}

func (q *queryBuilder) orderBy(order string) { q.order = order }

// window sets LIMIT/OFFSET. Zero limit means unbounded.
func (q *queryBuilder) window(offset, limit int) {
	q.offset = offset
	q.limit = limit
}

func (q *queryBuilder) sql() string {
	var b strings.Builder
	b.WriteString(q.base)
	if len(q.conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(q.conds, " AND "))
	}
	if q.order != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(q.order)
	}
	if q.limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.limit)
	}
	if q.offset > 0 {
		fmt.Fprintf(&b, " OFFSET %d", q.offset)
	}
	return b.String()
}
