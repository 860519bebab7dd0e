// Package stats holds the pure ranking and aggregation algorithms that run
// over already-fetched listening data. Nothing in here performs I/O, so every
// function is deterministic given its inputs.
package stats

import "sort"

// RankedEntry is one guild member's play count for the queried item.
type RankedEntry struct {
	UserID   uint64
	Username string
	Plays    int
}

// RankByPlays drops members with zero or negative plays and sorts the rest
// by play count descending. The sort is stable: members with equal counts
// keep the order they arrived in.
func RankByPlays(entries []RankedEntry) []RankedEntry {
	ranked := make([]RankedEntry, 0, len(entries))
	for _, e := range entries {
		if e.Plays > 0 {
			ranked = append(ranked, e)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Plays > ranked[j].Plays
	})

	return ranked
}
