package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/xraph/depot/asset"
	"github.com/xraph/depot/assignment"
	"github.com/xraph/depot/hardware"
	"github.com/xraph/depot/software"
)

// SearchAssets loads the faceted entity sets and assembles the unified
// projection Go-side, windowing the canonical order.
func (s *Store) SearchAssets(ctx context.Context, q *asset.Query) ([]*asset.Row, error) {
	rows, err := s.projectRows(ctx, q)
	if err != nil {
		return nil, err
	}
	return asset.SliceRows(rows, q.Offset, q.Limit), nil
}

// CountAssets counts the projected rows matching the query.
func (s *Store) CountAssets(ctx context.Context, q *asset.Query) (int64, error) {
	rows, err := s.projectRows(ctx, q)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

// projectRows builds the unified row set: one row per visible hardware
// asset and one per visible software asset, with derived statuses, in
// canonical order. Limit/Offset are not applied.
func (s *Store) projectRows(ctx context.Context, q *asset.Query) ([]*asset.Row, error) {
	now := time.Now().UTC()
	scoped := q.Scoped()
	inScope := make(map[string]bool, len(q.Scope))
	for _, uid := range q.Scope {
		inScope[uid.String()] = true
	}

	var archived *bool
	if !q.ShowArchived {
		f := false
		archived = &f
	}

	hw, err := s.ListHardware(ctx, &hardware.ListFilter{Type: q.Type, Archived: archived})
	if err != nil {
		return nil, err
	}
	sw, err := s.ListSoftware(ctx, &software.ListFilter{Type: q.Type, Archived: archived})
	if err != nil {
		return nil, err
	}
	active, err := s.ListAssignments(ctx, &assignment.ListFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	// Newest active assignment per hardware asset; seat holders per
	// software asset.
	hwCur := map[string]*assignment.Assignment{}
	swSeats := map[string][]*assignment.Assignment{}
	for _, a := range active {
		switch {
		case !a.HardwareID.IsNil():
			k := a.HardwareID.String()
			if cur, ok := hwCur[k]; !ok || a.AssignedAt.After(cur.AssignedAt) {
				hwCur[k] = a
			}
		case !a.SoftwareID.IsNil():
			k := a.SoftwareID.String()
			swSeats[k] = append(swSeats[k], a)
		}
	}

	rows := []*asset.Row{}

	for _, h := range hw {
		cur := hwCur[h.ID.String()]
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
			if u, err := s.GetUser(ctx, cur.UserID); err != nil {
				return nil, fmt.Errorf("depot: search assets: %w", err)
			} else if u != nil {
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

	for _, soft := range sw {
		seats := swSeats[soft.ID.String()]
		if scoped && !seatHolderInScope(seats, inScope) {
			continue
		}

		row := &asset.Row{
			SoftwareID: soft.ID,
			Name:       soft.Name,
			Type:       soft.Type,
			Tag:        soft.LicenseKey,
			Status:     asset.SoftwareStatus(soft, len(seats), now),
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
	return rows, nil
}

func seatHolderInScope(seats []*assignment.Assignment, inScope map[string]bool) bool {
	for _, a := range seats {
		if inScope[a.UserID.String()] {
			return true
		}
	}
	return false
}
