package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xraph/depot/asset"
	"github.com/xraph/depot/id"
)

// assetCTE is the unified projection both families feed: one row per
// hardware asset with its current assignment laterally joined, one row
// per software asset with its active seat count. Status labels are
// derived in SQL so facet filters and text matching see the same values
// the caller does.
const assetCTE = `
WITH hw AS (
	SELECT h.id AS hardware_id,
	       NULL::text AS software_id,
	       h.name AS name,
	       h.type AS type,
	       h.serial_number AS tag,
	       CASE WHEN h.archived THEN 'Archived'
	            WHEN h.status <> '' THEN h.status
	            WHEN cur.user_id IS NOT NULL THEN 'Assigned'
	            ELSE 'Available' END AS status,
	       cur.user_id AS assignee_id,
	       u.name AS assignee_name,
	       u.employee_number AS assignee_employee_number,
	       cur.assigned_at AS assignee_since
	FROM depot_hardware h
	LEFT JOIN LATERAL (
		SELECT a.user_id, a.assigned_at
		FROM depot_assignments a
		WHERE a.hardware_id = h.id AND a.unassigned_at IS NULL
		ORDER BY a.assigned_at DESC
		LIMIT 1
	) cur ON true
	LEFT JOIN depot_users u ON u.id = cur.user_id
	WHERE %s
), sw AS (
	SELECT NULL::text AS hardware_id,
	       s.id AS software_id,
	       s.name AS name,
	       s.type AS type,
	       s.license_key AS tag,
	       CASE WHEN s.archived THEN 'Archived'
	            WHEN s.expires_at IS NOT NULL AND s.expires_at < now() THEN 'Expired'
	            WHEN seats.n = 0 THEN 'Available'
	            WHEN s.seats > 1 AND seats.n < s.seats THEN 'Assigned (' || seats.n || '/' || s.seats || ')'
	            ELSE 'Assigned' END AS status,
	       NULL::text AS assignee_id,
	       NULL::text AS assignee_name,
	       NULL::text AS assignee_employee_number,
	       NULL::timestamptz AS assignee_since
	FROM depot_software s
	CROSS JOIN LATERAL (
		SELECT count(*) AS n
		FROM depot_assignments a
		WHERE a.software_id = s.id AND a.unassigned_at IS NULL
	) seats
	WHERE %s
)
`

// searchColumns in scan order.
const searchColumns = `hardware_id, software_id, name, type, tag, status, assignee_id, assignee_name, assignee_employee_number, assignee_since`

// SearchAssets runs the unified projection with the query's predicates
// pushed into SQL, in the canonical order.
func (s *Store) SearchAssets(ctx context.Context, q *asset.Query) ([]*asset.Row, error) {
	sqlText, args := buildAssetQuery(q, false)
	rows, err := s.pool.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("depot: search assets: %w", err)
	}
	defer rows.Close()

	out := []*asset.Row{}
	for rows.Next() {
		var r asset.Row
		var rawHW, rawSW, assigneeID, assigneeName, assigneeEmp *string
		var assigneeSince *time.Time
		if err := rows.Scan(&rawHW, &rawSW, &r.Name, &r.Type, &r.Tag, &r.Status,
			&assigneeID, &assigneeName, &assigneeEmp, &assigneeSince); err != nil {
			return nil, fmt.Errorf("depot: search assets: %w", err)
		}
		if rawHW != nil {
			if r.HardwareID, err = id.ParseHardwareID(*rawHW); err != nil {
				return nil, fmt.Errorf("depot: search assets: %w", err)
			}
		}
		if rawSW != nil {
			if r.SoftwareID, err = id.ParseSoftwareID(*rawSW); err != nil {
				return nil, fmt.Errorf("depot: search assets: %w", err)
			}
		}
		if assigneeID != nil {
			uid, err := id.ParseUserID(*assigneeID)
			if err != nil {
				return nil, fmt.Errorf("depot: search assets: %w", err)
			}
			a := &asset.Assignee{UserID: uid}
			if assigneeName != nil {
				a.Name = *assigneeName
			}
			if assigneeEmp != nil {
				a.EmployeeNumber = *assigneeEmp
			}
			if assigneeSince != nil {
				a.AssignedAt = *assigneeSince
			}
			r.Assignee = a
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

// CountAssets counts the projected rows matching the query.
func (s *Store) CountAssets(ctx context.Context, q *asset.Query) (int64, error) {
	sqlText, args := buildAssetQuery(q, true)
	var n int64
	if err := s.pool.QueryRow(ctx, sqlText, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("depot: count assets: %w", err)
	}
	return n, nil
}

// buildAssetQuery assembles the projection SQL for a query. Family
// predicates (archived, type, scope) go inside the CTEs; status and text
// predicates apply to the unified rows so they match derived labels.
func buildAssetQuery(q *asset.Query, count bool) (string, []any) {
	var args []any
	add := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	hwConds := []string{"true"}
	swConds := []string{"true"}

	if !q.ShowArchived {
		hwConds = append(hwConds, "NOT h.archived")
		swConds = append(swConds, "NOT s.archived")
	}
	if q.Type != "" {
		p := add(q.Type)
		hwConds = append(hwConds, "lower(h.type) = lower("+p+")")
		swConds = append(swConds, "lower(s.type) = lower("+p+")")
	}
	if q.Scoped() {
		raw := make([]string, len(q.Scope))
		for i, uid := range q.Scope {
			raw[i] = uid.String()
		}
		p := add(raw)
		hwConds = append(hwConds, "cur.user_id = ANY("+p+")")
		swConds = append(swConds, `EXISTS (
			SELECT 1 FROM depot_assignments sa
			WHERE sa.software_id = s.id AND sa.unassigned_at IS NULL AND sa.user_id = ANY(`+p+`))`)
	}

	outer := []string{"true"}
	if q.Status != "" {
		p := add(q.Status)
		outer = append(outer,
			"(lower(r.status) = lower("+p+") OR (lower("+p+") = 'assigned' AND r.status LIKE 'Assigned%'))")
	}
	if q.Match != asset.MatchAll && len(q.Terms) > 0 {
		cols := []string{"r.name", "r.type", "r.tag", "r.status", "r.assignee_name", "r.assignee_employee_number"}
		var alts []string
		for _, term := range q.Terms {
			switch q.Match {
			case asset.MatchExact:
				p := add(term)
				for _, col := range cols {
					alts = append(alts, "lower("+col+") = lower("+p+")")
				}
			case asset.MatchPrefix:
				p := add(asset.EscapeLike(term) + "%")
				for _, col := range cols {
					alts = append(alts, col+" ILIKE "+p+` ESCAPE '\'`)
				}
			case asset.MatchContains:
				p := add("%" + asset.EscapeLike(term) + "%")
				for _, col := range cols {
					alts = append(alts, col+" ILIKE "+p+` ESCAPE '\'`)
				}
			}
		}
		outer = append(outer, "("+strings.Join(alts, " OR ")+")")
	}

	var b strings.Builder
	fmt.Fprintf(&b, assetCTE, strings.Join(hwConds, " AND "), strings.Join(swConds, " AND "))
	if count {
		b.WriteString("SELECT count(*) FROM (SELECT * FROM hw UNION ALL SELECT * FROM sw) r WHERE ")
		b.WriteString(strings.Join(outer, " AND "))
		return b.String(), args
	}

	b.WriteString("SELECT " + searchColumns + " FROM (SELECT * FROM hw UNION ALL SELECT * FROM sw) r WHERE ")
	b.WriteString(strings.Join(outer, " AND "))
	b.WriteString(" ORDER BY lower(r.name), lower(r.type), lower(r.tag), COALESCE(r.hardware_id, ''), COALESCE(r.software_id, '')")
	if q.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.Limit)
	}
	if q.Offset > 0 {
		fmt.Fprintf(&b, " OFFSET %d", q.Offset)
	}
	return b.String(), args
}
