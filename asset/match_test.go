package asset

import (
	"testing"
	"time"

	"github.com/xraph/depot/id"
	"github.com/xraph/depot/software"
)

func row(name, typ, tag, status string, assignee *Assignee) *Row {
	return &Row{
		HardwareID: id.NewHardwareID(),
		Name:       name,
		Type:       typ,
		Tag:        tag,
		Status:     status,
		Assignee:   assignee,
	}
}

func TestMatchRowModes(t *testing.T) {
	r := row("ThinkPad X1", "Laptop", "SN-4421", "Assigned", &Assignee{
		UserID: id.NewUserID(), Name: "Dana Smith", EmployeeNumber: "E100",
	})

	tests := []struct {
		name  string
		terms []string
		mode  MatchMode
		want  bool
	}{
		{"exact full name", []string{"thinkpad x1"}, MatchExact, true},
		{"exact partial misses", []string{"thinkpad"}, MatchExact, false},
		{"exact tag", []string{"sn-4421"}, MatchExact, true},
		{"exact assignee", []string{"dana smith"}, MatchExact, true},
		{"exact employee number", []string{"e100"}, MatchExact, true},
		{"prefix name", []string{"think"}, MatchPrefix, true},
		{"prefix mid-string misses", []string{"pad"}, MatchPrefix, false},
		{"contains mid-string", []string{"pad"}, MatchContains, true},
		{"contains miss", []string{"tablet"}, MatchContains, false},
		{"any term matches", []string{"zzz", "laptop"}, MatchExact, true},
		{"match all ignores terms", []string{"zzz"}, MatchAll, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchRow(r, tt.terms, tt.mode); got != tt.want {
				t.Errorf("MatchRow(%v, %v) = %v, want %v", tt.terms, tt.mode, got, tt.want)
			}
		})
	}
}

func TestMatchRowNoAssignee(t *testing.T) {
	r := row("Monitor", "Display", "SN-1", "Available", nil)
	if MatchRow(r, []string{"dana"}, MatchContains) {
		t.Error("row without assignee should not match assignee terms")
	}
}

func TestSortRowsCanonicalOrder(t *testing.T) {
	a := row("alpha", "Laptop", "1", "Available", nil)
	b := row("Alpha", "Monitor", "2", "Available", nil)
	c := row("beta", "Laptop", "3", "Available", nil)

	rows := []*Row{c, b, a}
	SortRows(rows)

	// Case-folded name first, then type breaks the alpha tie.
	if rows[0] != a || rows[1] != b || rows[2] != c {
		t.Errorf("unexpected order: %q/%q, %q/%q, %q/%q",
			rows[0].Name, rows[0].Type, rows[1].Name, rows[1].Type, rows[2].Name, rows[2].Type)
	}
}

func TestSortRowsStableOnFieldCollision(t *testing.T) {
	a := row("same", "Laptop", "tag", "Available", nil)
	b := row("same", "Laptop", "tag", "Available", nil)

	rows := []*Row{b, a}
	SortRows(rows)
	first := rows[0]

	rows2 := []*Row{a, b}
	SortRows(rows2)
	if rows2[0] != first {
		t.Error("order on full display-field collision should be decided by ID, not input order")
	}
}

func TestSliceRows(t *testing.T) {
	rows := []*Row{
		row("a", "", "", "", nil),
		row("b", "", "", "", nil),
		row("c", "", "", "", nil),
	}

	if got := SliceRows(rows, 0, 2); len(got) != 2 || got[0].Name != "a" {
		t.Errorf("SliceRows(0,2) = %d rows", len(got))
	}
	if got := SliceRows(rows, 2, 2); len(got) != 1 || got[0].Name != "c" {
		t.Errorf("SliceRows(2,2) = %d rows", len(got))
	}
	if got := SliceRows(rows, 5, 2); len(got) != 0 {
		t.Errorf("SliceRows past end = %d rows", len(got))
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"50%", `50\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := EscapeLike(tt.in); got != tt.want {
			t.Errorf("EscapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSoftwareStatusPrecedence(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	tests := []struct {
		name  string
		sw    software.Software
		seats int
		want  string
	}{
		{"archived beats expired", software.Software{Archived: true, ExpiresAt: &past, Seats: 1}, 1, StatusArchived},
		{"expired beats seat state", software.Software{ExpiresAt: &past, Seats: 1}, 1, StatusExpired},
		{"single seat assigned", software.Software{Seats: 1}, 1, StatusAssigned},
		{"single seat available", software.Software{Seats: 1}, 0, StatusAvailable},
		{"multi seat partial", software.Software{Seats: 5}, 2, "Assigned (2/5)"},
		{"multi seat full", software.Software{Seats: 5}, 5, StatusAssigned},
		{"multi seat empty", software.Software{Seats: 5}, 0, StatusAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SoftwareStatus(&tt.sw, tt.seats, now); got != tt.want {
				t.Errorf("SoftwareStatus = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHardwareStatus(t *testing.T) {
	if got := HardwareStatus("In Repair", false, true); got != "In Repair" {
		t.Errorf("stored status should win, got %q", got)
	}
	if got := HardwareStatus("", false, true); got != StatusAssigned {
		t.Errorf("derived assigned, got %q", got)
	}
	if got := HardwareStatus("", false, false); got != StatusAvailable {
		t.Errorf("derived available, got %q", got)
	}
	if got := HardwareStatus("In Repair", true, false); got != StatusArchived {
		t.Errorf("archived should win, got %q", got)
	}
}
