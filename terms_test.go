package depot

import (
	"reflect"
	"testing"
)

func TestExpandTerms(t *testing.T) {
	cases := []struct {
		query string
		want  []string
	}{
		{"", nil},
		{"   ", nil},
		{"laptop", []string{"laptop"}},
		{"laptops", []string{"laptops", "laptop"}},
		{"monitors", []string{"monitors", "monitor"}},
		// Three characters or fewer never expand: "bus" is not a plural.
		{"bus", []string{"bus"}},
		{"s", []string{"s"}},
		{"keys", []string{"keys", "key"}},
		{"mouse", []string{"mouse"}},
	}
	for _, c := range cases {
		got := ExpandTerms(c.query)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("ExpandTerms(%q) = %v, want %v", c.query, got, c.want)
		}
	}
}

func TestExpandTermsOriginalFirst(t *testing.T) {
	terms := ExpandTerms("docks")
	if len(terms) != 2 || terms[0] != "docks" {
		t.Fatalf("original term must lead: %v", terms)
	}
}
