package catalog

import (
	"sort"
	"strings"

	"gamedex/internal"
	"gamedex/internal/util"
)

// DefaultSearchThreshold is the minimum blended similarity score a game
// must reach to appear in search results.
const DefaultSearchThreshold = 0.30

// SearchIndex is an approximate-string-match structure over game names,
// descriptions and keywords. Built once per catalogue, read-only afterwards.
type SearchIndex struct {
	catalog   *Catalog
	threshold float64

	tokenToIDs map[string]map[string]struct{}
	normName   map[string]string
	tokens     map[string][]string
	order      map[string]int
}

func BuildSearchIndex(c *Catalog, threshold float64) *SearchIndex {
	idx := &SearchIndex{
		catalog:    c,
		threshold:  threshold,
		tokenToIDs: map[string]map[string]struct{}{},
		normName:   map[string]string{},
		tokens:     map[string][]string{},
		order:      map[string]int{},
	}

	for pos, g := range c.Games() {
		idx.order[g.ID] = pos
		idx.normName[g.ID] = util.NormalizeText(g.Name)

		text := []string{g.Name}
		if g.Description != nil {
			text = append(text, *g.Description)
		}
		text = append(text, g.Keywords...)
		tokens := util.Tokenize(strings.Join(text, " "))
		idx.tokens[g.ID] = tokens

		for _, token := range tokens {
			if _, ok := idx.tokenToIDs[token]; !ok {
				idx.tokenToIDs[token] = map[string]struct{}{}
			}
			idx.tokenToIDs[token][g.ID] = struct{}{}
		}
	}

	return idx
}

// Search ranks games by similarity to the query, best match first, dropping
// everything below the index threshold. The caller is responsible for not
// calling this with an empty or whitespace-only query; that case means "no
// search applied" and uses catalogue order instead.
func (s *SearchIndex) Search(query string) []*internal.Game {
	normQuery := util.NormalizeText(query)
	queryTokens := util.Tokenize(normQuery)

	ids := s.candidateIDs(queryTokens)
	if len(ids) == 0 {
		// Token lookup found nothing; fall back to scoring the whole
		// catalogue so bigram similarity can still surface near-misses.
		for _, g := range s.catalog.Games() {
			ids[g.ID] = struct{}{}
		}
	}

	type scored struct {
		game  *internal.Game
		score float64
	}
	matches := make([]scored, 0, len(ids))
	for id := range ids {
		game, ok := s.catalog.ByID(id)
		if !ok {
			continue
		}
		score := s.score(normQuery, queryTokens, id)
		if score < s.threshold {
			continue
		}
		matches = append(matches, scored{game: game, score: score})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return s.order[matches[i].game.ID] < s.order[matches[j].game.ID]
	})

	out := make([]*internal.Game, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.game)
	}
	return out
}

func (s *SearchIndex) candidateIDs(queryTokens []string) map[string]struct{} {
	ids := map[string]struct{}{}
	for _, qt := range queryTokens {
		for token, tokenIDs := range s.tokenToIDs {
			if token != qt && !strings.HasPrefix(token, qt) {
				continue
			}
			for id := range tokenIDs {
				ids[id] = struct{}{}
			}
		}
	}
	return ids
}

// score blends bigram similarity against the name with token overlap over
// name, description and keywords.
func (s *SearchIndex) score(normQuery string, queryTokens []string, id string) float64 {
	dice := util.DiceCoefficient(normQuery, s.normName[id])
	if len(queryTokens) == 0 {
		return dice
	}

	overlap := 0
	for _, qt := range queryTokens {
		for _, token := range s.tokens[id] {
			if token == qt || strings.HasPrefix(token, qt) {
				overlap++
				break
			}
		}
	}
	tokenScore := float64(overlap) / float64(len(queryTokens))
	return 0.65*dice + 0.35*tokenScore
}
