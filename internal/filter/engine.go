package filter

import (
	"strings"

	"gamedex/internal"
	"gamedex/internal/catalog"
)

// Result is one evaluated page of the catalogue.
type Result struct {
	Games      []*internal.Game `json:"games"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	TotalCount int              `json:"totalCount"`
}

// Evaluate combines search ranking, facet predicates and pagination. Pure
// and deterministic: identical inputs yield identical results, and neither
// the catalogue nor the indexes are mutated.
func Evaluate(c *catalog.Catalog, search *catalog.SearchIndex, state State, pageSize int) Result {
	state = state.Canonicalize()
	if pageSize < 1 {
		pageSize = 1
	}

	var base []*internal.Game
	if query := strings.TrimSpace(state.Query); query != "" {
		base = search.Search(query)
	} else {
		base = c.Games()
	}

	filtered := base
	for _, key := range internal.FacetKeys {
		if !state.Selected(key) {
			continue
		}
		selection := map[string]struct{}{}
		for _, v := range state.Facets[key] {
			selection[v] = struct{}{}
		}
		kept := make([]*internal.Game, 0, len(filtered))
		for _, g := range filtered {
			if intersects(g.FacetValues(key), selection) {
				kept = append(kept, g)
			}
		}
		filtered = kept
	}

	totalCount := len(filtered)
	totalPages := (totalCount + pageSize - 1) / pageSize
	clampCeil := totalPages
	if clampCeil < 1 {
		clampCeil = 1
	}

	page := state.Page
	if page > clampCeil {
		page = clampCeil
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > totalCount {
		start = totalCount
	}
	if end > totalCount {
		end = totalCount
	}

	return Result{
		Games:      filtered[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalCount: totalCount,
	}
}

func intersects(values []string, selection map[string]struct{}) bool {
	for _, v := range values {
		if _, ok := selection[v]; ok {
			return true
		}
	}
	return false
}
