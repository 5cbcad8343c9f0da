package filter

import (
	"net/url"
	"strconv"

	"gamedex/internal"
)

const (
	paramQuery = "q"
	paramPage  = "page"
)

// Encode serializes the state into its canonical query string: the query
// parameter is omitted when empty, page is omitted when 1, and each facet
// emits repeated key=value pairs with trimmed, de-duplicated, sorted
// values. Encode(Decode(x)) is stable for any canonical x.
func Encode(state State) string {
	state = state.Canonicalize()

	values := url.Values{}
	if state.Query != "" {
		values.Set(paramQuery, state.Query)
	}
	if state.Page > 1 {
		values.Set(paramPage, strconv.Itoa(state.Page))
	}
	for _, key := range internal.FacetKeys {
		for _, v := range state.Facets[key] {
			values.Add(string(key), v)
		}
	}
	return values.Encode()
}

// Decode parses a raw query string into a canonical state. It is total:
// malformed fragments, unknown parameters and unparseable page numbers are
// defaulted or ignored rather than reported.
func Decode(rawQuery string) State {
	state := NewState()

	// ParseQuery reports the first malformed fragment but still returns
	// every pair it could parse; malformed fragments are simply dropped.
	values, _ := url.ParseQuery(rawQuery)

	state.Query = values.Get(paramQuery)
	if page, err := strconv.Atoi(values.Get(paramPage)); err == nil && page >= 1 {
		state.Page = page
	}
	for _, key := range internal.FacetKeys {
		state.Facets[key] = values[string(key)]
	}

	return state.Canonicalize()
}
