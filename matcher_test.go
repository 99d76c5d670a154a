package depot

import (
	"context"
	"fmt"
	"testing"

	"github.com/xraph/depot/asset"
	"github.com/xraph/depot/id"
	"github.com/xraph/depot/store"
)

// tierStore serves canned rows per match mode and records the cascade.
type tierStore struct {
	store.Store
	rowsByMode map[asset.MatchMode][]*asset.Row
	calls      []asset.MatchMode
	lastLimit  int
	lastOffset int
}

func (s *tierStore) SearchAssets(_ context.Context, q *asset.Query) ([]*asset.Row, error) {
	s.calls = append(s.calls, q.Match)
	s.lastLimit, s.lastOffset = q.Limit, q.Offset
	rows := s.rowsByMode[q.Match]
	if q.Offset >= len(rows) {
		return nil, nil
	}
	rows = rows[q.Offset:]
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	return rows, nil
}

func makeRows(n int) []*asset.Row {
	rows := make([]*asset.Row, n)
	for i := range rows {
		rows[i] = &asset.Row{HardwareID: id.NewHardwareID(), Name: fmt.Sprintf("asset-%03d", i)}
	}
	return rows
}

func newTierEngine(t *testing.T, s *tierStore) *Engine {
	t.Helper()
	eng, err := NewEngine(WithStore(s))
	if err != nil {
		t.Fatal(err)
	}
	return eng
}

func TestRunTiersExactPageFull(t *testing.T) {
	s := &tierStore{rowsByMode: map[asset.MatchMode][]*asset.Row{
		asset.MatchExact: makeRows(5),
	}}
	eng := newTierEngine(t, s)

	rows, total, err := eng.runTiers(context.Background(), asset.Query{}, []string{"laptop"}, "laptop", 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.calls) != 1 || s.calls[0] != asset.MatchExact {
		t.Fatalf("expected a single exact pass, got %v", s.calls)
	}
	if s.lastLimit != 3 || s.lastOffset != 0 {
		t.Fatalf("expected look-ahead fetch of 3 at offset 0, got %d/%d", s.lastLimit, s.lastOffset)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 page rows, got %d", len(rows))
	}
	if total != TotalUnknown {
		t.Fatalf("expected unknown total with more pages, got %d", total)
	}
}

func TestRunTiersShortQueryNeverCascades(t *testing.T) {
	cases := []struct {
		query      string
		wantPasses int
	}{
		{"pc", 1},
		// Length 3 is the inclusive boundary: still no cascade.
		{"bus", 1},
		{"dock", 3},
	}
	for _, c := range cases {
		s := &tierStore{rowsByMode: map[asset.MatchMode][]*asset.Row{
			asset.MatchContains: makeRows(4),
		}}
		eng := newTierEngine(t, s)

		rows, total, err := eng.runTiers(context.Background(), asset.Query{}, []string{c.query}, c.query, 1, 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(s.calls) != c.wantPasses {
			t.Fatalf("query %q: expected %d passes, got %v", c.query, c.wantPasses, s.calls)
		}
		if s.calls[0] != asset.MatchExact {
			t.Fatalf("query %q: cascade must start at exact, got %v", c.query, s.calls)
		}
		if c.wantPasses == 1 {
			if len(rows) != 0 || total != 0 {
				t.Fatalf("query %q: expected empty exact result, got %d rows total %d", c.query, len(rows), total)
			}
		}
	}
}

func TestRunTiersCascadesToContains(t *testing.T) {
	s := &tierStore{rowsByMode: map[asset.MatchMode][]*asset.Row{
		asset.MatchPrefix:   makeRows(1),
		asset.MatchContains: makeRows(4),
	}}
	eng := newTierEngine(t, s)

	rows, total, err := eng.runTiers(context.Background(), asset.Query{}, []string{"think"}, "think", 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []asset.MatchMode{asset.MatchExact, asset.MatchPrefix, asset.MatchContains}
	if len(s.calls) != len(want) {
		t.Fatalf("expected full cascade, got %v", s.calls)
	}
	for i, m := range want {
		if s.calls[i] != m {
			t.Fatalf("cascade order: got %v, want %v", s.calls, want)
		}
	}
	if len(rows) != 4 || total != 4 {
		t.Fatalf("expected the contains page with exact total, got %d rows total %d", len(rows), total)
	}
}

func TestRunTiersFinalPageTotal(t *testing.T) {
	s := &tierStore{rowsByMode: map[asset.MatchMode][]*asset.Row{
		asset.MatchExact: makeRows(23),
	}}
	eng := newTierEngine(t, s)

	rows, total, err := eng.runTiers(context.Background(), asset.Query{}, []string{"asset"}, "asset", 3, 10)
	if err != nil {
		t.Fatal(err)
	}
	if s.lastOffset != 20 || s.lastLimit != 11 {
		t.Fatalf("expected offset 20 limit 11, got %d/%d", s.lastOffset, s.lastLimit)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 tail rows, got %d", len(rows))
	}
	if total != 23 {
		t.Fatalf("final page must report the exact total, got %d", total)
	}
}
