package catalog

import (
	"testing"

	"gamedex/internal"
)

func TestSearchRanksFuzzyMatches(t *testing.T) {
	cat := New([]*internal.Game{
		{ID: "hide-and-seek", Name: "Hide-and-Seek", Keywords: []string{"hiding", "seeking"}},
		{ID: "tag", Name: "Tag", Keywords: []string{"chase"}},
	})
	idx := BuildSearchIndex(cat, DefaultSearchThreshold)

	results := idx.Search("hide")
	if len(results) == 0 {
		t.Fatal("no results for 'hide'")
	}
	if results[0].ID != "hide-and-seek" {
		t.Fatalf("expected hide-and-seek first, got %s", results[0].ID)
	}
	for _, g := range results {
		if g.ID == "tag" {
			t.Fatal("'Tag' must fall below the similarity threshold for 'hide'")
		}
	}
}

func TestSearchMatchesDescriptionAndKeywords(t *testing.T) {
	desc := "Players kick a ball across the field."
	cat := New([]*internal.Game{
		{ID: "rounders", Name: "Rounders", Description: &desc},
		{ID: "charades", Name: "Charades"},
	})
	idx := BuildSearchIndex(cat, DefaultSearchThreshold)

	results := idx.Search("ball")
	if len(results) != 1 || results[0].ID != "rounders" {
		t.Fatalf("expected only rounders, got %v", names(results))
	}
}

func TestSearchPrefixQuery(t *testing.T) {
	cat := New([]*internal.Game{
		{ID: "hopscotch", Name: "Hopscotch"},
		{ID: "charades", Name: "Charades"},
	})
	idx := BuildSearchIndex(cat, DefaultSearchThreshold)

	results := idx.Search("hops")
	if len(results) == 0 || results[0].ID != "hopscotch" {
		t.Fatalf("prefix query failed: %v", names(results))
	}
}

func TestSearchDeterministic(t *testing.T) {
	cat := New([]*internal.Game{
		{ID: "a", Name: "Ball Game One"},
		{ID: "b", Name: "Ball Game Two"},
	})
	idx := BuildSearchIndex(cat, DefaultSearchThreshold)

	first := idx.Search("ball game")
	for i := 0; i < 10; i++ {
		again := idx.Search("ball game")
		if len(again) != len(first) {
			t.Fatal("result size changed between runs")
		}
		for j := range again {
			if again[j].ID != first[j].ID {
				t.Fatal("result order changed between runs")
			}
		}
	}
}

func names(games []*internal.Game) []string {
	out := make([]string, 0, len(games))
	for _, g := range games {
		out = append(out, g.Name)
	}
	return out
}
