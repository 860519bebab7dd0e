package commands

import (
	"context"

	"github.com/scrobblyx/crowned/internal/lastfm/fetcher"
	"github.com/scrobblyx/crowned/internal/stats"
)

// ServerTopResult is a guild-wide aggregate over every registered member's
// personal all-time top list.
type ServerTopResult struct {
	Category  fetcher.Category
	Listeners int
	Entries   []stats.Tally
}

// ServerTop sums play counts across each registered member's all-time top
// list for the category. Items are merged by exact name, so differently
// spelled variants of the same item count separately.
func (h *Handlers) ServerTop(
	ctx context.Context, memberIDs []uint64, category fetcher.Category,
) (*ServerTopResult, error) {
	members, err := h.guildMembers(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	lists := h.fetcher.TopLists(ctx, members, category)
	if len(lists) == 0 {
		// Every member lookup failed; this is the one place a remote
		// outage surfaces to the caller.
		return nil, ErrNoQualifyingData
	}

	entries := stats.AggregateTop(lists, stats.AggregateLimit)
	if len(entries) == 0 {
		return nil, ErrNoQualifyingData
	}

	return &ServerTopResult{
		Category:  category,
		Listeners: len(lists),
		Entries:   entries,
	}, nil
}
