package stats

import "strings"

// Play is one entry of a listening history, most recent first. The caller is
// expected to exclude a currently playing entry before computing streaks.
type Play struct {
	Artist string
	Album  string
	Track  string
}

// Streak is the length of the leading run for one dimension of the history.
type Streak struct {
	Name   string
	Length int
}

// StreakSet holds the independent artist, album and track streaks computed
// from the same history. The artist streak can be longer than the track
// streak even though both start at the newest play.
type StreakSet struct {
	Artist Streak
	Album  Streak
	Track  Streak
}

// Streaks computes the run of leading plays whose key matches the first
// entry's, per dimension, comparing case-insensitively.
func Streaks(history []Play) StreakSet {
	return StreakSet{
		Artist: leadingRun(history, func(p Play) string { return p.Artist }),
		Album:  leadingRun(history, func(p Play) string { return p.Album }),
		Track:  leadingRun(history, func(p Play) string { return p.Track }),
	}
}

func leadingRun(history []Play, key func(Play) string) Streak {
	if len(history) == 0 {
		return Streak{}
	}

	ref := key(history[0])
	count := 0
	for _, p := range history {
		if !strings.EqualFold(key(p), ref) {
			break
		}
		count++
	}

	return Streak{Name: ref, Length: count}
}
