package commands

import (
	"context"

	"github.com/scrobblyx/crowned/internal/lastfm"
)

// ArtistResult is artist metadata plus the caller's own play count.
type ArtistResult struct {
	Username string
	Info     *lastfm.ArtistInfo
}

// Artist returns artist metadata for the query, falling back to the caller's
// current track when the query is blank.
func (h *Handlers) Artist(ctx context.Context, userID uint64, query string) (*ArtistResult, error) {
	username, err := h.username(ctx, userID)
	if err != nil {
		return nil, err
	}

	artist, err := h.resolveArtistQuery(ctx, username, query)
	if err != nil {
		return nil, err
	}

	info, err := h.client.ArtistInfo(ctx, artist, username)
	if err != nil {
		return nil, err
	}

	return &ArtistResult{Username: username, Info: info}, nil
}

// ArtistPlaysResult is the caller's play count for one artist.
type ArtistPlaysResult struct {
	Username string
	Artist   string
	Plays    int
}

// ArtistPlays returns how many times the caller has played the artist.
func (h *Handlers) ArtistPlays(ctx context.Context, userID uint64, query string) (*ArtistPlaysResult, error) {
	result, err := h.Artist(ctx, userID, query)
	if err != nil {
		return nil, err
	}

	return &ArtistPlaysResult{
		Username: result.Username,
		Artist:   result.Info.Name,
		Plays:    result.Info.Stats.UserPlayCount.Int(),
	}, nil
}

// TrackResult is track metadata plus the caller's own play count.
type TrackResult struct {
	Username string
	Info     *lastfm.TrackInfo
}

// Track returns track metadata for an "Artist - Title" query, falling back to
// the caller's current track when the query is blank.
func (h *Handlers) Track(ctx context.Context, userID uint64, query string) (*TrackResult, error) {
	username, err := h.username(ctx, userID)
	if err != nil {
		return nil, err
	}

	artist, title, err := h.resolveTrackQuery(ctx, username, query)
	if err != nil {
		return nil, err
	}

	info, err := h.client.TrackInfo(ctx, artist, title, username)
	if err != nil {
		return nil, err
	}

	return &TrackResult{Username: username, Info: info}, nil
}

// TrackPlaysResult is the caller's play count for one track.
type TrackPlaysResult struct {
	Username string
	Artist   string
	Track    string
	Plays    int
}

// TrackPlays returns how many times the caller has played the track.
func (h *Handlers) TrackPlays(ctx context.Context, userID uint64, query string) (*TrackPlaysResult, error) {
	result, err := h.Track(ctx, userID, query)
	if err != nil {
		return nil, err
	}

	return &TrackPlaysResult{
		Username: result.Username,
		Artist:   result.Info.ArtistName(),
		Track:    result.Info.Name,
		Plays:    result.Info.UserPlayCount.Int(),
	}, nil
}

// AlbumResult is album metadata plus the caller's own play count.
type AlbumResult struct {
	Username string
	Info     *lastfm.AlbumInfo
}

// Album returns album metadata for an "Artist - Title" query, falling back to
// the caller's current track's album when the query is blank.
func (h *Handlers) Album(ctx context.Context, userID uint64, query string) (*AlbumResult, error) {
	username, err := h.username(ctx, userID)
	if err != nil {
		return nil, err
	}

	artist, title, err := h.resolveAlbumQuery(ctx, username, query)
	if err != nil {
		return nil, err
	}

	info, err := h.client.AlbumInfo(ctx, artist, title, username)
	if err != nil {
		return nil, err
	}

	return &AlbumResult{Username: username, Info: info}, nil
}

// AlbumPlaysResult is the caller's play count for one album.
type AlbumPlaysResult struct {
	Username string
	Artist   string
	Album    string
	Plays    int
}

// AlbumPlays returns how many times the caller has played the album.
func (h *Handlers) AlbumPlays(ctx context.Context, userID uint64, query string) (*AlbumPlaysResult, error) {
	result, err := h.Album(ctx, userID, query)
	if err != nil {
		return nil, err
	}

	return &AlbumPlaysResult{
		Username: result.Username,
		Artist:   result.Info.Artist,
		Album:    result.Info.Name,
		Plays:    result.Info.UserPlayCount.Int(),
	}, nil
}
