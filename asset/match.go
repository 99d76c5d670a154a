package asset

import (
	"sort"
	"strings"
)

// searchFields returns the projected fields a text match runs against.
func searchFields(r *Row) [6]string {
	f := [6]string{r.Name, r.Tag, r.Type, r.Status, "", ""}
	if r.Assignee != nil {
		f[4] = r.Assignee.Name
		f[5] = r.Assignee.EmployeeNumber
	}
	return f
}

// MatchRow reports whether the row matches any term under the given mode.
// Comparisons are case-insensitive. MatchAll always matches.
func MatchRow(r *Row, terms []string, mode MatchMode) bool {
	if mode == MatchAll {
		return true
	}
	fields := searchFields(r)
	for _, term := range terms {
		t := strings.ToLower(term)
		for _, f := range fields {
			if f == "" {
				continue
			}
			v := strings.ToLower(f)
			switch mode {
			case MatchExact:
				if v == t {
					return true
				}
			case MatchPrefix:
				if strings.HasPrefix(v, t) {
					return true
				}
			case MatchContains:
				if strings.Contains(v, t) {
					return true
				}
			}
		}
	}
	return false
}

// StatusMatches reports whether a derived status label satisfies a status
// facet. The comparison folds case; an "Assigned" facet also accepts the
// partial multi-seat form "Assigned (n/m)".
func StatusMatches(facet, derived string) bool {
	if facet == "" {
		return true
	}
	if strings.EqualFold(facet, derived) {
		return true
	}
	return strings.EqualFold(facet, StatusAssigned) && strings.HasPrefix(derived, StatusAssigned)
}

// SortRows sorts rows into the canonical order: name, type, tag, hardware
// ID, software ID. Name/type/tag comparisons are case-folded; the ID
// tiebreak makes the order total even when display fields collide.
func SortRows(rows []*Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if c := foldCompare(a.Name, b.Name); c != 0 {
			return c < 0
		}
		if c := foldCompare(a.Type, b.Type); c != 0 {
			return c < 0
		}
		if c := foldCompare(a.Tag, b.Tag); c != 0 {
			return c < 0
		}
		if c := strings.Compare(a.HardwareID.String(), b.HardwareID.String()); c != 0 {
			return c < 0
		}
		return a.SoftwareID.String() < b.SoftwareID.String()
	})
}

func foldCompare(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// SliceRows applies offset/limit to an already-sorted row set.
func SliceRows(rows []*Row, offset, limit int) []*Row {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return []*Row{}
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
