package catalog

import (
	"reflect"
	"testing"

	"gamedex/internal"
)

func strp(v string) *string { return &v }

func testCatalog() *Catalog {
	return New([]*internal.Game{
		{ID: "tag", Name: "Tag", Category: strp("Outdoor"), Tags: []string{"active", "chase"}},
		{ID: "charades", Name: "Charades", Category: strp("Party"), Tags: []string{"indoor"}},
		{ID: "hide-and-seek", Name: "Hide-and-Seek", Category: strp("Outdoor"), Tags: []string{"active", "hiding"}},
		{ID: "quiet-game", Name: "Quiet Game"},
	})
}

func TestFacetIndexSortedDistinct(t *testing.T) {
	idx := BuildFacetIndex(testCatalog())

	got := idx.Values(internal.FacetCategory)
	want := []string{"Outdoor", "Party"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("category: got %v want %v", got, want)
	}

	got = idx.Values(internal.FacetTags)
	want = []string{"active", "chase", "hiding", "indoor"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tags: got %v want %v", got, want)
	}

	if vals := idx.Values(internal.FacetPrepLevel); len(vals) != 0 {
		t.Fatalf("prepLevel should be empty, got %v", vals)
	}
}
