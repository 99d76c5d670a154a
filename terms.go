package depot

import "strings"

// ExpandTerms derives the set of search terms for a normalized query.
// The original term is always first; queries longer than three characters
// ending in "s" also contribute the term with the trailing "s" removed.
// The heuristic deliberately ignores irregular plurals — it exists to make
// "laptops" find "Laptop", not to stem English.
func ExpandTerms(query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	terms := []string{query}
	if len(query) > 3 && strings.HasSuffix(query, "s") {
		singular := query[:len(query)-1]
		if singular != query {
			terms = append(terms, singular)
		}
	}
	return terms
}
