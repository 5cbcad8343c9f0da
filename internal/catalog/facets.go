package catalog

import (
	"gamedex/internal"
	"gamedex/internal/util"
)

// FacetIndex maps each facet key to the sorted set of distinct values
// present in the catalogue. Built once for deterministic UI presentation.
type FacetIndex struct {
	values map[internal.FacetKey][]string
}

func BuildFacetIndex(c *Catalog) *FacetIndex {
	idx := &FacetIndex{values: map[internal.FacetKey][]string{}}
	for _, key := range internal.FacetKeys {
		var all []string
		for _, g := range c.Games() {
			all = append(all, g.FacetValues(key)...)
		}
		idx.values[key] = util.UniqueSorted(all)
	}
	return idx
}

// Values returns the sorted distinct values for one facet key.
func (f *FacetIndex) Values(key internal.FacetKey) []string {
	return f.values[key]
}

// All returns the full facet map keyed by facet name.
func (f *FacetIndex) All() map[internal.FacetKey][]string {
	return f.values
}
