package filter

import (
	"strings"

	"gamedex/internal"
	"gamedex/internal/util"
)

// State is the full browsing state: free-text query, 1-based page and the
// selected value set per facet key. It is created from the incoming URL or
// defaults, mutated only by user interaction or navigation, and never
// touched by the ingestion pipeline.
type State struct {
	Query  string                         `json:"query"`
	Page   int                            `json:"page"`
	Facets map[internal.FacetKey][]string `json:"facets"`
}

func NewState() State {
	return State{Page: 1, Facets: emptyFacets()}
}

func emptyFacets() map[internal.FacetKey][]string {
	m := make(map[internal.FacetKey][]string, len(internal.FacetKeys))
	for _, k := range internal.FacetKeys {
		m[k] = []string{}
	}
	return m
}

// Canonicalize returns the state in its unique serialized-comparable form:
// query trimmed, page clamped to >= 1, facet values trimmed, de-duplicated
// and sorted, every facet key present.
func (s State) Canonicalize() State {
	out := State{
		Query:  strings.TrimSpace(s.Query),
		Page:   s.Page,
		Facets: emptyFacets(),
	}
	if out.Page < 1 {
		out.Page = 1
	}
	for _, k := range internal.FacetKeys {
		out.Facets[k] = util.UniqueSorted(s.Facets[k])
	}
	return out
}

// Selected reports whether the facet has a non-empty selection.
func (s State) Selected(key internal.FacetKey) bool {
	return len(s.Facets[key]) > 0
}
