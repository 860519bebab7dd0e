package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scrobblyx/crowned/internal/stats"
)

func TestRankByPlays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		entries  []stats.RankedEntry
		expected []stats.RankedEntry
	}{
		{
			name:     "empty input",
			entries:  nil,
			expected: []stats.RankedEntry{},
		},
		{
			name: "sorts descending by plays",
			entries: []stats.RankedEntry{
				{UserID: 1, Username: "alice", Plays: 10},
				{UserID: 2, Username: "bob", Plays: 50},
				{UserID: 3, Username: "carol", Plays: 30},
			},
			expected: []stats.RankedEntry{
				{UserID: 2, Username: "bob", Plays: 50},
				{UserID: 3, Username: "carol", Plays: 30},
				{UserID: 1, Username: "alice", Plays: 10},
			},
		},
		{
			name: "drops zero and negative plays",
			entries: []stats.RankedEntry{
				{UserID: 1, Username: "alice", Plays: 50},
				{UserID: 2, Username: "bob", Plays: 0},
				{UserID: 3, Username: "carol", Plays: -3},
			},
			expected: []stats.RankedEntry{
				{UserID: 1, Username: "alice", Plays: 50},
			},
		},
		{
			name: "ties keep input order",
			entries: []stats.RankedEntry{
				{UserID: 1, Username: "alice", Plays: 20},
				{UserID: 2, Username: "bob", Plays: 20},
				{UserID: 3, Username: "carol", Plays: 20},
			},
			expected: []stats.RankedEntry{
				{UserID: 1, Username: "alice", Plays: 20},
				{UserID: 2, Username: "bob", Plays: 20},
				{UserID: 3, Username: "carol", Plays: 20},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, stats.RankByPlays(tt.entries))
		})
	}
}

func TestRankByPlaysDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	entries := []stats.RankedEntry{
		{UserID: 1, Plays: 1},
		{UserID: 2, Plays: 2},
	}

	stats.RankByPlays(entries)

	assert.Equal(t, uint64(1), entries[0].UserID)
	assert.Equal(t, uint64(2), entries[1].UserID)
}
