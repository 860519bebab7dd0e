package stats

import (
	"math"
	"sort"
)

// SharedLimit caps the shared-artist list in a taste comparison.
const SharedLimit = 10

// ArtistPlays is one artist from a user's top list, keeping the original
// display casing alongside the play count. Maps of these are keyed by the
// lowercased artist name.
type ArtistPlays struct {
	Name  string
	Plays int
}

// SharedArtist is an artist both compared users have played.
type SharedArtist struct {
	Name   string
	PlaysA int
	PlaysB int
}

// TasteOverlap is the result of comparing two users' top-artist maps.
type TasteOverlap struct {
	// Percent is round(100 * shared / max(|a|, |b|)). The max denominator is
	// carried over from the observed behavior of the original system.
	Percent     int
	SharedCount int
	Shared      []SharedArtist
}

// Overlap intersects two users' top-artist maps. The shared list is ordered
// by the sum of both users' play counts descending, truncated to SharedLimit,
// with equal sums ordered by name for determinism. Swapping the inputs yields
// the same percentage and set; only the per-entry count order flips.
func Overlap(a, b map[string]ArtistPlays) *TasteOverlap {
	shared := make([]SharedArtist, 0)
	for key, pa := range a {
		if pb, ok := b[key]; ok {
			shared = append(shared, SharedArtist{
				Name:   pa.Name,
				PlaysA: pa.Plays,
				PlaysB: pb.Plays,
			})
		}
	}

	if len(shared) == 0 {
		return &TasteOverlap{}
	}

	larger := len(a)
	if len(b) > larger {
		larger = len(b)
	}
	percent := int(math.Round(float64(len(shared)) / float64(larger) * 100))

	sort.Slice(shared, func(i, j int) bool {
		si, sj := shared[i].PlaysA+shared[i].PlaysB, shared[j].PlaysA+shared[j].PlaysB
		if si != sj {
			return si > sj
		}
		return shared[i].Name < shared[j].Name
	})

	result := &TasteOverlap{
		Percent:     percent,
		SharedCount: len(shared),
		Shared:      shared,
	}
	if len(result.Shared) > SharedLimit {
		result.Shared = result.Shared[:SharedLimit]
	}

	return result
}
