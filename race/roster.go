package race

import (
	"github.com/tutumagi/racenav/config"
	"github.com/tutumagi/racenav/engine/algo"
)

// Roster hands out personality profiles by weight
type Roster struct {
	items []algo.IWeight
}

// NewRoster over profiles; zero weight profiles are never drawn
func NewRoster(profiles []*config.Profile) *Roster {
	items := make([]algo.IWeight, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, p)
	}
	return &Roster{items: items}
}

// Draw n profiles with replacement. Nil entries mean nothing is drawable.
func (r *Roster) Draw(src algo.Source, n int) []*config.Profile {
	picked := algo.RandomWeight(src, r.items, n)
	out := make([]*config.Profile, n)
	for i := range picked {
		out[i] = picked[i].(*config.Profile)
	}
	return out
}
