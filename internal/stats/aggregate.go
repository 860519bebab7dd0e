package stats

import "sort"

// AggregateLimit caps server-wide top lists.
const AggregateLimit = 10

// Tally is an item name with an accumulated play count.
type Tally struct {
	Name  string
	Plays int
}

// AggregateTop sums play counts across all members' individual top lists,
// keyed by exact item name, and returns the highest totals first.
//
// Matching is case-sensitive as returned by the API, so the same logical
// artist can fragment into multiple tallies when casings differ between
// members' libraries. Equal totals are ordered by name to keep the output
// deterministic.
func AggregateTop(lists [][]Tally, limit int) []Tally {
	totals := make(map[string]int)
	for _, list := range lists {
		for _, item := range list {
			totals[item.Name] += item.Plays
		}
	}

	aggregate := make([]Tally, 0, len(totals))
	for name, plays := range totals {
		aggregate = append(aggregate, Tally{Name: name, Plays: plays})
	}

	sort.Slice(aggregate, func(i, j int) bool {
		if aggregate[i].Plays != aggregate[j].Plays {
			return aggregate[i].Plays > aggregate[j].Plays
		}
		return aggregate[i].Name < aggregate[j].Name
	})

	if limit > 0 && len(aggregate) > limit {
		aggregate = aggregate[:limit]
	}

	return aggregate
}
