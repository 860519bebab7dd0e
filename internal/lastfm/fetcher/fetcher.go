// Package fetcher fans a single query out across every registered member of a
// guild, one concurrent Last.fm call per member. Individual failures are
// dropped so one dead lookup never aborts or delays the rest.
package fetcher

import (
	"context"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/scrobblyx/crowned/internal/lastfm"
	"github.com/scrobblyx/crowned/internal/stats"
)

// StatsClient is the slice of the Last.fm client the aggregator needs.
// *lastfm.Client satisfies it; tests substitute call-counting stubs.
type StatsClient interface {
	ArtistInfo(ctx context.Context, artist, username string) (*lastfm.ArtistInfo, error)
	TrackInfo(ctx context.Context, artist, track, username string) (*lastfm.TrackInfo, error)
	AlbumInfo(ctx context.Context, artist, album, username string) (*lastfm.AlbumInfo, error)
	TopArtists(ctx context.Context, user string, period lastfm.Period, limit int) (*lastfm.TopArtists, error)
	TopAlbums(ctx context.Context, user string, period lastfm.Period, limit int) (*lastfm.TopAlbums, error)
	TopTracks(ctx context.Context, user string, period lastfm.Period, limit int) (*lastfm.TopTracks, error)
}

// Member pairs a guild member's Discord ID with their Last.fm username.
type Member struct {
	UserID   uint64
	Username string
}

// Fetcher runs per-member lookups concurrently. Each lookup gets its own
// timeout so a hung remote call delays only its own fan-out.
type Fetcher struct {
	client  StatsClient
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a Fetcher.
func New(client StatsClient, timeout time.Duration, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client:  client,
		timeout: timeout,
		logger:  logger.Named("fetcher"),
	}
}

// fanOut runs one lookup per member and collects the successes in no
// particular order. Failed lookups are logged at debug level and dropped.
func (f *Fetcher) fanOut(
	ctx context.Context, members []Member, lookup func(ctx context.Context, m Member) (int, error),
) []stats.RankedEntry {
	if len(members) == 0 {
		return nil
	}

	var (
		results = make([]stats.RankedEntry, 0, len(members))
		p       = pool.New().WithContext(ctx)
		mu      sync.Mutex
	)

	for _, member := range members {
		p.Go(func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, f.timeout)
			defer cancel()

			plays, err := lookup(ctx, member)
			if err != nil {
				// Don't fail the other members' lookups
				f.logger.Debug("Dropping failed member lookup",
					zap.Uint64("userID", member.UserID),
					zap.String("username", member.Username),
					zap.Error(err))
				return nil
			}

			mu.Lock()
			results = append(results, stats.RankedEntry{
				UserID:   member.UserID,
				Username: member.Username,
				Plays:    plays,
			})
			mu.Unlock()

			return nil
		})
	}

	if err := p.Wait(); err != nil {
		f.logger.Error("Error during member fan-out", zap.Error(err))
	}

	f.logger.Debug("Finished member fan-out",
		zap.Int("requested", len(members)),
		zap.Int("collected", len(results)))

	return results
}

// ArtistPlays fetches every member's play count for one artist.
func (f *Fetcher) ArtistPlays(ctx context.Context, members []Member, artist string) []stats.RankedEntry {
	return f.fanOut(ctx, members, func(ctx context.Context, m Member) (int, error) {
		info, err := f.client.ArtistInfo(ctx, artist, m.Username)
		if err != nil {
			return 0, err
		}
		return info.Stats.UserPlayCount.Int(), nil
	})
}

// TrackPlays fetches every member's play count for one track.
func (f *Fetcher) TrackPlays(ctx context.Context, members []Member, artist, track string) []stats.RankedEntry {
	return f.fanOut(ctx, members, func(ctx context.Context, m Member) (int, error) {
		info, err := f.client.TrackInfo(ctx, artist, track, m.Username)
		if err != nil {
			return 0, err
		}
		return info.UserPlayCount.Int(), nil
	})
}

// AlbumPlays fetches every member's play count for one album.
func (f *Fetcher) AlbumPlays(ctx context.Context, members []Member, artist, album string) []stats.RankedEntry {
	return f.fanOut(ctx, members, func(ctx context.Context, m Member) (int, error) {
		info, err := f.client.AlbumInfo(ctx, artist, album, m.Username)
		if err != nil {
			return 0, err
		}
		return info.UserPlayCount.Int(), nil
	})
}
