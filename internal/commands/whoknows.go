package commands

import (
	"context"

	"github.com/scrobblyx/crowned/internal/crown"
	"github.com/scrobblyx/crowned/internal/stats"
)

// WhoKnowsResult ranks a guild's members by play count for one item. Theft is
// non-nil only when an artist ranking displaced an existing crown holder.
// CrownHolderID is the holder after resolution, zero when the artist has no
// crown; track and album rankings carry no crowns and always leave it zero.
type WhoKnowsResult struct {
	Subject       string
	Entries       []stats.RankedEntry
	Theft         *crown.Theft
	CrownHolderID uint64
}

// WhoKnowsArtist ranks every registered guild member by their play count for
// an artist. The top entry feeds the crown resolver; this is the only
// operation that mutates the crown ledger.
func (h *Handlers) WhoKnowsArtist(
	ctx context.Context, guildID, requesterID uint64, memberIDs []uint64, query string,
) (*WhoKnowsResult, error) {
	username, err := h.username(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	artist, err := h.resolveArtistQuery(ctx, username, query)
	if err != nil {
		return nil, err
	}

	members, err := h.guildMembers(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	ranked := stats.RankByPlays(h.fetcher.ArtistPlays(ctx, members, artist))
	if len(ranked) == 0 {
		return nil, ErrNoQualifyingData
	}

	theft, err := h.resolver.Resolve(ctx, guildID, artist, ranked[0])
	if err != nil {
		return nil, err
	}

	result := &WhoKnowsResult{Subject: artist, Entries: ranked, Theft: theft}

	// The crown marker follows the ledger, not the ranking: a holder below
	// rank 1 keeps the crown until someone qualifying outplays them.
	record, err := h.ledger.Get(ctx, guildID, crown.NormalizeArtist(artist))
	if err != nil {
		return nil, err
	}
	if record != nil {
		result.CrownHolderID = record.HolderID
	}

	return result, nil
}

// WhoKnowsTrack ranks every registered guild member by their play count for a
// track. Tracks carry no crowns.
func (h *Handlers) WhoKnowsTrack(
	ctx context.Context, requesterID uint64, memberIDs []uint64, query string,
) (*WhoKnowsResult, error) {
	username, err := h.username(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	artist, title, err := h.resolveTrackQuery(ctx, username, query)
	if err != nil {
		return nil, err
	}

	members, err := h.guildMembers(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	ranked := stats.RankByPlays(h.fetcher.TrackPlays(ctx, members, artist, title))
	if len(ranked) == 0 {
		return nil, ErrNoQualifyingData
	}

	return &WhoKnowsResult{Subject: artist + " - " + title, Entries: ranked}, nil
}

// WhoKnowsAlbum ranks every registered guild member by their play count for an
// album. Albums carry no crowns.
func (h *Handlers) WhoKnowsAlbum(
	ctx context.Context, requesterID uint64, memberIDs []uint64, query string,
) (*WhoKnowsResult, error) {
	username, err := h.username(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	artist, title, err := h.resolveAlbumQuery(ctx, username, query)
	if err != nil {
		return nil, err
	}

	members, err := h.guildMembers(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	ranked := stats.RankByPlays(h.fetcher.AlbumPlays(ctx, members, artist, title))
	if len(ranked) == 0 {
		return nil, ErrNoQualifyingData
	}

	return &WhoKnowsResult{Subject: artist + " - " + title, Entries: ranked}, nil
}
