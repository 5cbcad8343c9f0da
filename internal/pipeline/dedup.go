package pipeline

import "gamedex/internal"

// Deduplicator enforces identifier uniqueness across the validated stream:
// the first record carrying an id wins, later ones are excluded and linked
// back to the winner's input index.
type Deduplicator struct {
	firstIndex map[string]int
	order      []string
	members    map[string][]int
	names      map[string][]string
}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{
		firstIndex: map[string]int{},
		members:    map[string][]int{},
		names:      map[string][]string{},
	}
}

// Admit records one validated id at the given input index. It returns true
// when this is the first occurrence; otherwise false plus the index of the
// first occurrence.
func (d *Deduplicator) Admit(id string, index int, name string) (bool, int) {
	d.members[id] = append(d.members[id], index)
	d.names[id] = append(d.names[id], name)
	if first, seen := d.firstIndex[id]; seen {
		return false, first
	}
	d.firstIndex[id] = index
	d.order = append(d.order, id)
	return true, index
}

// Count reports how many admitted records shared the given id.
func (d *Deduplicator) Count(id string) int {
	return len(d.members[id])
}

// Groups returns every id that occurred more than once, in first-seen order.
func (d *Deduplicator) Groups() []internal.DuplicateGroup {
	var out []internal.DuplicateGroup
	for _, id := range d.order {
		if len(d.members[id]) < 2 {
			continue
		}
		out = append(out, internal.DuplicateGroup{
			SharedID:      id,
			MemberIndices: d.members[id],
			Names:         d.names[id],
		})
	}
	return out
}
