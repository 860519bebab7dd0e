package commands

import (
	"context"

	"github.com/scrobblyx/crowned/internal/lastfm"
	"github.com/scrobblyx/crowned/internal/stats"
)

// TasteResult compares two members' top artists.
type TasteResult struct {
	UsernameA string
	UsernameB string
	Period    lastfm.Period
	Overlap   *stats.TasteOverlap
}

// Taste compares the top artists of two members over a period. Both sides of
// the comparison must be registered; unlike guild fan-outs, either lookup
// failing fails the whole command.
func (h *Handlers) Taste(
	ctx context.Context, userA, userB uint64, period lastfm.Period,
) (*TasteResult, error) {
	usernameA, err := h.username(ctx, userA)
	if err != nil {
		return nil, err
	}

	usernameB, err := h.username(ctx, userB)
	if err != nil {
		return nil, err
	}

	mapA, mapB, err := h.fetcher.ArtistMaps(ctx, usernameA, usernameB, period)
	if err != nil {
		return nil, err
	}
	if len(mapA) == 0 && len(mapB) == 0 {
		return nil, ErrNoQualifyingData
	}

	return &TasteResult{
		UsernameA: usernameA,
		UsernameB: usernameB,
		Period:    period,
		Overlap:   stats.Overlap(mapA, mapB),
	}, nil
}
