package svgdoc

import "sort"

// IDSet is a set of element identifiers.
type IDSet map[string]struct{}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id.
func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

// Sorted returns the identifiers in lexical order.
func (s IDSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
