package commands

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/scrobblyx/crowned/internal/lastfm"
	"github.com/scrobblyx/crowned/internal/stats"
)

// StreakScanSize is how much history a streak scan reads. A streak longer
// than this reports the scan size as its length.
const StreakScanSize = 100

// OverviewListSize is how many entries each top list of an overview shows.
const OverviewListSize = 5

// SetFM links or replaces the caller's Last.fm username. Last writer wins.
func (h *Handlers) SetFM(ctx context.Context, userID uint64, username string) error {
	username = strings.TrimSpace(username)

	if err := h.registry.Set(ctx, userID, username); err != nil {
		return err
	}

	h.logger.Debug("Linked last.fm account",
		zap.Uint64("userID", userID),
		zap.String("username", username))

	return nil
}

// NowPlayingResult describes the caller's current or most recent track.
type NowPlayingResult struct {
	Username string
	Current  lastfm.RecentTrack
	Previous *lastfm.RecentTrack
	Total    int
}

// NowPlaying returns the caller's now-playing track, or their last played
// track when nothing is currently scrobbling.
func (h *Handlers) NowPlaying(ctx context.Context, userID uint64) (*NowPlayingResult, error) {
	username, err := h.username(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := h.client.RecentTracks(ctx, username, 2)
	if err != nil {
		return nil, err
	}
	if len(recent.Tracks) == 0 {
		return nil, ErrNoQualifyingData
	}

	result := &NowPlayingResult{
		Username: username,
		Current:  recent.Tracks[0],
		Total:    recent.Attr.Total.Int(),
	}
	if len(recent.Tracks) > 1 {
		result.Previous = &recent.Tracks[1]
	}

	return result, nil
}

// RecentResult is a page of the caller's listening history.
type RecentResult struct {
	Username string
	Tracks   []lastfm.RecentTrack
	Total    int
}

// Recent returns the caller's most recent plays, newest first.
func (h *Handlers) Recent(ctx context.Context, userID uint64, limit int) (*RecentResult, error) {
	username, err := h.username(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := h.client.RecentTracks(ctx, username, limit)
	if err != nil {
		return nil, err
	}
	if len(recent.Tracks) == 0 {
		return nil, ErrNoQualifyingData
	}

	return &RecentResult{
		Username: username,
		Tracks:   recent.Tracks,
		Total:    recent.Attr.Total.Int(),
	}, nil
}

// PlaysResult is the caller's lifetime scrobble count.
type PlaysResult struct {
	Username string
	Total    int
}

// Plays returns the caller's total scrobble count.
func (h *Handlers) Plays(ctx context.Context, userID uint64) (*PlaysResult, error) {
	username, err := h.username(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := h.client.RecentTracks(ctx, username, 1)
	if err != nil {
		return nil, err
	}

	return &PlaysResult{
		Username: username,
		Total:    recent.Attr.Total.Int(),
	}, nil
}

// TopArtistsResult is a page of the caller's personal top artists.
type TopArtistsResult struct {
	Username string
	Period   lastfm.Period
	Artists  []lastfm.TopArtist
}

// TopArtists returns the caller's most played artists for the period.
func (h *Handlers) TopArtists(
	ctx context.Context, userID uint64, period lastfm.Period, limit int,
) (*TopArtistsResult, error) {
	username, err := h.username(ctx, userID)
	if err != nil {
		return nil, err
	}

	top, err := h.client.TopArtists(ctx, username, period, limit)
	if err != nil {
		return nil, err
	}
	if len(top.Artists) == 0 {
		return nil, ErrNoQualifyingData
	}

	return &TopArtistsResult{Username: username, Period: period, Artists: top.Artists}, nil
}

// TopAlbumsResult is a page of the caller's personal top albums.
type TopAlbumsResult struct {
	Username string
	Period   lastfm.Period
	Albums   []lastfm.TopAlbum
}

// TopAlbums returns the caller's most played albums for the period.
func (h *Handlers) TopAlbums(
	ctx context.Context, userID uint64, period lastfm.Period, limit int,
) (*TopAlbumsResult, error) {
	username, err := h.username(ctx, userID)
	if err != nil {
		return nil, err
	}

	top, err := h.client.TopAlbums(ctx, username, period, limit)
	if err != nil {
		return nil, err
	}
	if len(top.Albums) == 0 {
		return nil, ErrNoQualifyingData
	}

	return &TopAlbumsResult{Username: username, Period: period, Albums: top.Albums}, nil
}

// TopTracksResult is a page of the caller's personal top tracks.
type TopTracksResult struct {
	Username string
	Period   lastfm.Period
	Tracks   []lastfm.TopTrack
}

// TopTracks returns the caller's most played tracks for the period.
func (h *Handlers) TopTracks(
	ctx context.Context, userID uint64, period lastfm.Period, limit int,
) (*TopTracksResult, error) {
	username, err := h.username(ctx, userID)
	if err != nil {
		return nil, err
	}

	top, err := h.client.TopTracks(ctx, username, period, limit)
	if err != nil {
		return nil, err
	}
	if len(top.Tracks) == 0 {
		return nil, ErrNoQualifyingData
	}

	return &TopTracksResult{Username: username, Period: period, Tracks: top.Tracks}, nil
}

// OverviewResult summarizes the caller's listening for a period.
type OverviewResult struct {
	Username string
	Period   lastfm.Period
	Total    int
	Artists  []lastfm.TopArtist
	Albums   []lastfm.TopAlbum
	Tracks   []lastfm.TopTrack
}

// Overview combines the caller's top artists, albums and tracks for a period
// with their lifetime scrobble count.
func (h *Handlers) Overview(
	ctx context.Context, userID uint64, period lastfm.Period,
) (*OverviewResult, error) {
	username, err := h.username(ctx, userID)
	if err != nil {
		return nil, err
	}

	artists, err := h.client.TopArtists(ctx, username, period, OverviewListSize)
	if err != nil {
		return nil, err
	}

	albums, err := h.client.TopAlbums(ctx, username, period, OverviewListSize)
	if err != nil {
		return nil, err
	}

	tracks, err := h.client.TopTracks(ctx, username, period, OverviewListSize)
	if err != nil {
		return nil, err
	}

	if len(artists.Artists) == 0 && len(albums.Albums) == 0 && len(tracks.Tracks) == 0 {
		return nil, ErrNoQualifyingData
	}

	recent, err := h.client.RecentTracks(ctx, username, 1)
	if err != nil {
		return nil, err
	}

	return &OverviewResult{
		Username: username,
		Period:   period,
		Total:    recent.Attr.Total.Int(),
		Artists:  artists.Artists,
		Albums:   albums.Albums,
		Tracks:   tracks.Tracks,
	}, nil
}

// StreakResult holds the caller's current listening streaks.
type StreakResult struct {
	Username string
	Streaks  stats.StreakSet
}

// Streak scans the caller's recent history for leading runs of the same
// artist, album and track. The three dimensions are independent.
func (h *Handlers) Streak(ctx context.Context, userID uint64) (*StreakResult, error) {
	username, err := h.username(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := h.client.RecentTracks(ctx, username, StreakScanSize)
	if err != nil {
		return nil, err
	}

	history := make([]stats.Play, 0, len(recent.Tracks))
	for _, track := range recent.Tracks {
		// A currently playing entry is not a completed scrobble.
		if track.NowPlaying() {
			continue
		}

		history = append(history, stats.Play{
			Artist: track.ArtistName(),
			Album:  track.AlbumName(),
			Track:  track.Name,
		})
	}

	if len(history) == 0 {
		return nil, ErrNoQualifyingData
	}

	return &StreakResult{
		Username: username,
		Streaks:  stats.Streaks(history),
	}, nil
}
