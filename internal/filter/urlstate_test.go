package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"gamedex/internal"
)

func TestEncodeOmitsDefaults(t *testing.T) {
	state := NewState()
	state.Facets[internal.FacetTags] = []string{"ball", "active"}

	encoded := Encode(state)
	assert.Equal(t, "tags=active&tags=ball", encoded)

	decoded := Decode(encoded)
	assert.Equal(t, []string{"active", "ball"}, decoded.Facets[internal.FacetTags])
	assert.Equal(t, "", decoded.Query)
	assert.Equal(t, 1, decoded.Page)
}

func TestEncodeFullState(t *testing.T) {
	state := NewState()
	state.Query = "hide and seek"
	state.Page = 3
	state.Facets[internal.FacetCategory] = []string{"Outdoor"}

	encoded := Encode(state)
	assert.Contains(t, encoded, "q=hide+and+seek")
	assert.Contains(t, encoded, "page=3")
	assert.Contains(t, encoded, "category=Outdoor")
}

func TestDecodeDefaultsAndFailClosed(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{name: "empty", query: ""},
		{name: "bad page", query: "page=banana"},
		{name: "negative page", query: "page=-2"},
		{name: "unknown params", query: "utm_source=x&wat=y"},
		{name: "malformed fragment", query: "tags=%zz&category=Party;bad"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := Decode(tc.query)
			assert.GreaterOrEqual(t, state.Page, 1)
			for _, key := range internal.FacetKeys {
				assert.NotNil(t, state.Facets[key])
			}
		})
	}
}

func TestDecodeCleansFacetValues(t *testing.T) {
	state := Decode("tags=+ball+&tags=ball&tags=&tags=active")
	assert.Equal(t, []string{"active", "ball"}, state.Facets[internal.FacetTags])
}

func TestRoundTripLaw(t *testing.T) {
	states := []State{
		NewState(),
		{Query: "  hide  ", Page: 0, Facets: map[internal.FacetKey][]string{
			internal.FacetTags: {"b", "a", "a", " c "},
		}},
		{Query: "tag", Page: 7, Facets: map[internal.FacetKey][]string{
			internal.FacetCategory:           {"Party"},
			internal.FacetTags:               {"active", "ball"},
			internal.FacetTraditionality:     {"modern", "classic"},
			internal.FacetPrepLevel:          {"none"},
			internal.FacetSkillsDeveloped:    {"agility"},
			internal.FacetRegionalPopularity: {"north", "south"},
		}},
	}

	for _, s := range states {
		canonical := s.Canonicalize()
		roundTripped := Decode(Encode(canonical))
		if diff := cmp.Diff(canonical, roundTripped); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}
