package catalog

import "gamedex/internal"

// Catalog is the frozen, ordered set of accepted games. Built once per
// process; never mutated afterwards.
type Catalog struct {
	games []*internal.Game
	byID  map[string]*internal.Game
}

func New(games []*internal.Game) *Catalog {
	byID := make(map[string]*internal.Game, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}
	return &Catalog{games: games, byID: byID}
}

// Games returns the accepted games in catalogue order. Callers must treat
// the slice as read-only.
func (c *Catalog) Games() []*internal.Game {
	return c.games
}

func (c *Catalog) ByID(id string) (*internal.Game, bool) {
	g, ok := c.byID[id]
	return g, ok
}

func (c *Catalog) Len() int {
	return len(c.games)
}
