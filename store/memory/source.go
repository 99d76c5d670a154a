package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/xraph/depot/asset"
	"github.com/xraph/depot/assignment"
	"github.com/xraph/depot/id"
)

// SearchAssets projects the asset universe in memory, applies the query
// Go-side, and windows the canonical order.
func (s *Store) SearchAssets(_ context.Context, q *asset.Query) ([]*asset.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.projectRows(q)
	return asset.SliceRows(rows, q.Offset, q.Limit), nil
}

// CountAssets counts the projected rows matching the query.
func (s *Store) CountAssets(_ context.Context, q *asset.Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.projectRows(q))), nil
}

// projectRows builds the unified row set under the caller's read lock:
// one row per visible hardware asset and one per visible software asset,
// with derived statuses, in canonical order. Limit/Offset are not applied.
func (s *Store) projectRows(q *asset.Query) []*asset.Row {
	now := s.now()
	scoped := q.Scoped()
	inScope := make(map[string]bool, len(q.Scope))
	for _, uid := range q.Scope {
		inScope[uid.String()] = true
	}

	rows := []*asset.Row{}

	for _, h := range s.hardwareAssets {
		if h.Archived && !q.ShowArchived {
			continue
		}
		if q.Type != "" && !strings.EqualFold(h.Type, q.Type) {
			continue
		}
		cur := s.currentHardwareAssignment(h.ID)
		if scoped && (cur == nil || !inScope[cur.UserID.String()]) {
			continue
		}

		row := &asset.Row{
			HardwareID: h.ID,
			Name:       h.Name,
			Type:       h.Type,
			Tag:        h.SerialNumber,
			Status:     asset.HardwareStatus(h.Status, h.Archived, cur != nil),
		}
		if cur != nil {
			a := &asset.Assignee{UserID: cur.UserID, AssignedAt: cur.AssignedAt}
			if u, ok := s.users[cur.UserID.String()]; ok {
				a.Name = u.Name
				a.EmployeeNumber = u.EmployeeNumber
			}
			row.Assignee = a
		}

		if !asset.StatusMatches(q.Status, row.Status) {
			continue
		}
		if !asset.MatchRow(row, q.Terms, q.Match) {
			continue
		}
		rows = append(rows, row)
	}

	for _, sw := range s.softwareAssets {
		if sw.Archived && !q.ShowArchived {
			continue
		}
		if q.Type != "" && !strings.EqualFold(sw.Type, q.Type) {
			continue
		}
		seats := s.activeSeats(sw.ID)
		if scoped && !anyHolderInScope(seats, inScope) {
			continue
		}

		row := &asset.Row{
			SoftwareID: sw.ID,
			Name:       sw.Name,
			Type:       sw.Type,
			Tag:        sw.LicenseKey,
			Status:     asset.SoftwareStatus(sw, len(seats), now),
		}

		if !asset.StatusMatches(q.Status, row.Status) {
			continue
		}
		if !asset.MatchRow(row, q.Terms, q.Match) {
			continue
		}
		rows = append(rows, row)
	}

	asset.SortRows(rows)
	return rows
}

// currentHardwareAssignment returns the newest active assignment for a
// hardware asset, nil when unassigned. Callers hold the read lock.
func (s *Store) currentHardwareAssignment(hwID id.HardwareID) *assignment.Assignment {
	var cur *assignment.Assignment
	for _, a := range s.assignments {
		if !a.Active() || a.HardwareID != hwID {
			continue
		}
		if cur == nil || a.AssignedAt.After(cur.AssignedAt) {
			cur = a
		}
	}
	return cur
}

// activeSeats returns the active assignments consuming seats on a
// software asset. Callers hold the read lock.
func (s *Store) activeSeats(swID id.SoftwareID) []*assignment.Assignment {
	var out []*assignment.Assignment
	for _, a := range s.assignments {
		if a.Active() && a.SoftwareID == swID {
			out = append(out, a)
		}
	}
	return out
}

func anyHolderInScope(seats []*assignment.Assignment, inScope map[string]bool) bool {
	for _, a := range seats {
		if inScope[a.UserID.String()] {
			return true
		}
	}
	return false
}

// sortByName orders items by a case-folded display key with an opaque
// tiebreak key, mirroring the canonical asset ordering.
func sortByName[T any](items []T, key func(T) (display, tiebreak string)) {
	sort.SliceStable(items, func(i, j int) bool {
		an, at := key(items[i])
		bn, bt := key(items[j])
		if c := strings.Compare(strings.ToLower(an), strings.ToLower(bn)); c != 0 {
			return c < 0
		}
		return at < bt
	})
}

func sortIDs(ids []id.ID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
}

// window applies offset/limit to an already-sorted slice. Limit zero
// means unbounded.
func window[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
