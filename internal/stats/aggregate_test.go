package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scrobblyx/crowned/internal/stats"
)

func TestAggregateTop(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lists    [][]stats.Tally
		limit    int
		expected []stats.Tally
	}{
		{
			name:     "no lists",
			lists:    nil,
			limit:    10,
			expected: []stats.Tally{},
		},
		{
			name: "sums across members",
			lists: [][]stats.Tally{
				{{Name: "Radiohead", Plays: 100}, {Name: "Burial", Plays: 40}},
				{{Name: "Radiohead", Plays: 50}},
			},
			limit: 10,
			expected: []stats.Tally{
				{Name: "Radiohead", Plays: 150},
				{Name: "Burial", Plays: 40},
			},
		},
		{
			name: "matching is case sensitive",
			lists: [][]stats.Tally{
				{{Name: "radiohead", Plays: 10}},
				{{Name: "Radiohead", Plays: 10}},
			},
			limit: 10,
			expected: []stats.Tally{
				{Name: "Radiohead", Plays: 10},
				{Name: "radiohead", Plays: 10},
			},
		},
		{
			name: "equal totals order by name",
			lists: [][]stats.Tally{
				{{Name: "Zebra", Plays: 5}, {Name: "Apple", Plays: 5}},
			},
			limit: 10,
			expected: []stats.Tally{
				{Name: "Apple", Plays: 5},
				{Name: "Zebra", Plays: 5},
			},
		},
		{
			name: "truncates to limit",
			lists: [][]stats.Tally{
				{
					{Name: "a", Plays: 3},
					{Name: "b", Plays: 2},
					{Name: "c", Plays: 1},
				},
			},
			limit: 2,
			expected: []stats.Tally{
				{Name: "a", Plays: 3},
				{Name: "b", Plays: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, stats.AggregateTop(tt.lists, tt.limit))
		})
	}
}
