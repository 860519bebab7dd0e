package fetcher

import (
	"context"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/scrobblyx/crowned/internal/lastfm"
	"github.com/scrobblyx/crowned/internal/stats"
)

// Category selects which top list a query runs over.
type Category string

const (
	CategoryArtists Category = "artists"
	CategoryAlbums  Category = "albums"
	CategoryTracks  Category = "tracks"
)

// TopListSize is how many entries of each member's top list feed a
// server-wide aggregate.
const TopListSize = 50

// TopArtistMapSize bounds the top-artist maps fetched for taste comparisons.
const TopArtistMapSize = 1000

// TopLists fetches each member's personal all-time top list for the category,
// one concurrent call per member, dropping failed members.
func (f *Fetcher) TopLists(
	ctx context.Context, members []Member, category Category,
) [][]stats.Tally {
	if len(members) == 0 {
		return nil
	}

	var (
		lists = make([][]stats.Tally, 0, len(members))
		p     = pool.New().WithContext(ctx)
		mu    sync.Mutex
	)

	for _, member := range members {
		p.Go(func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, f.timeout)
			defer cancel()

			list, err := f.topList(ctx, member.Username, category)
			if err != nil {
				f.logger.Debug("Dropping failed top-list lookup",
					zap.String("username", member.Username),
					zap.String("category", string(category)),
					zap.Error(err))
				return nil
			}

			mu.Lock()
			lists = append(lists, list)
			mu.Unlock()

			return nil
		})
	}

	if err := p.Wait(); err != nil {
		f.logger.Error("Error during top-list fan-out", zap.Error(err))
	}

	return lists
}

func (f *Fetcher) topList(ctx context.Context, username string, category Category) ([]stats.Tally, error) {
	switch category {
	case CategoryAlbums:
		top, err := f.client.TopAlbums(ctx, username, lastfm.PeriodAllTime, TopListSize)
		if err != nil {
			return nil, err
		}
		list := make([]stats.Tally, 0, len(top.Albums))
		for _, a := range top.Albums {
			list = append(list, stats.Tally{Name: a.Name, Plays: a.PlayCount.Int()})
		}
		return list, nil
	case CategoryTracks:
		top, err := f.client.TopTracks(ctx, username, lastfm.PeriodAllTime, TopListSize)
		if err != nil {
			return nil, err
		}
		list := make([]stats.Tally, 0, len(top.Tracks))
		for _, t := range top.Tracks {
			list = append(list, stats.Tally{Name: t.Name, Plays: t.PlayCount.Int()})
		}
		return list, nil
	default:
		top, err := f.client.TopArtists(ctx, username, lastfm.PeriodAllTime, TopListSize)
		if err != nil {
			return nil, err
		}
		list := make([]stats.Tally, 0, len(top.Artists))
		for _, a := range top.Artists {
			list = append(list, stats.Tally{Name: a.Name, Plays: a.PlayCount.Int()})
		}
		return list, nil
	}
}

// ArtistMaps fetches both users' full top-artist maps concurrently for a
// taste comparison. Unlike guild fan-outs, either failure fails the whole
// comparison since the overlap needs both sides.
func (f *Fetcher) ArtistMaps(
	ctx context.Context, userA, userB string, period lastfm.Period,
) (map[string]stats.ArtistPlays, map[string]stats.ArtistPlays, error) {
	var (
		mapA, mapB map[string]stats.ArtistPlays
		p          = pool.New().WithContext(ctx)
	)

	fetch := func(username string, dst *map[string]stats.ArtistPlays) func(context.Context) error {
		return func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, f.timeout)
			defer cancel()

			top, err := f.client.TopArtists(ctx, username, period, TopArtistMapSize)
			if err != nil {
				return err
			}

			m := make(map[string]stats.ArtistPlays, len(top.Artists))
			for _, a := range top.Artists {
				m[normalizeKey(a.Name)] = stats.ArtistPlays{Name: a.Name, Plays: a.PlayCount.Int()}
			}
			*dst = m

			return nil
		}
	}

	p.Go(fetch(userA, &mapA))
	p.Go(fetch(userB, &mapB))

	if err := p.Wait(); err != nil {
		return nil, nil, err
	}

	return mapA, mapB, nil
}

// normalizeKey lowercases an artist name for use as a comparison key while
// the original casing is kept in the map value.
func normalizeKey(name string) string {
	return strings.ToLower(name)
}
