// Package commands implements the typed operations behind every slash
// command. Handlers take structured requests and return structured results;
// rendering them into Discord embeds is the bot layer's job.
package commands

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/scrobblyx/crowned/internal/crown"
	"github.com/scrobblyx/crowned/internal/database/types"
	"github.com/scrobblyx/crowned/internal/lastfm"
	"github.com/scrobblyx/crowned/internal/lastfm/fetcher"
)

// UserRegistry is the slice of the user binding store the handlers need.
// models.BindingModel satisfies it; tests substitute in-memory fakes.
type UserRegistry interface {
	Get(ctx context.Context, userID uint64) (*types.UserBinding, error)
	Set(ctx context.Context, userID uint64, username string) error
	List(ctx context.Context) ([]*types.UserBinding, error)
}

// CrownLedger is the slice of the crown store the handlers need.
// models.CrownModel satisfies it.
type CrownLedger interface {
	Get(ctx context.Context, guildID uint64, artistKey string) (*types.CrownRecord, error)
	Upsert(ctx context.Context, record *types.CrownRecord) error
	ListForGuild(ctx context.Context, guildID uint64) ([]*types.CrownRecord, error)
}

// StatsClient extends the fan-out client slice with the single-user history
// calls the profile commands need. *lastfm.Client satisfies it.
type StatsClient interface {
	fetcher.StatsClient
	RecentTracks(ctx context.Context, user string, limit int) (*lastfm.RecentTracks, error)
	CurrentTrack(ctx context.Context, user string) (*lastfm.RecentTrack, error)
}

// Handlers holds the dependencies shared by every command operation.
type Handlers struct {
	registry UserRegistry
	ledger   CrownLedger
	client   StatsClient
	fetcher  *fetcher.Fetcher
	resolver *crown.Resolver
	logger   *zap.Logger
}

// NewHandlers creates the command handler set.
func NewHandlers(
	registry UserRegistry, ledger CrownLedger, client StatsClient,
	f *fetcher.Fetcher, logger *zap.Logger,
) *Handlers {
	return &Handlers{
		registry: registry,
		ledger:   ledger,
		client:   client,
		fetcher:  f,
		resolver: crown.NewResolver(ledger, logger),
		logger:   logger.Named("commands"),
	}
}

// username resolves a Discord user's linked Last.fm username.
func (h *Handlers) username(ctx context.Context, userID uint64) (string, error) {
	binding, err := h.registry.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if binding == nil {
		return "", ErrNotRegistered
	}

	return binding.Username, nil
}

// guildMembers intersects the guild member list with the user registry,
// producing the fan-out input for server-wide commands.
func (h *Handlers) guildMembers(ctx context.Context, memberIDs []uint64) ([]fetcher.Member, error) {
	bindings, err := h.registry.List(ctx)
	if err != nil {
		return nil, err
	}

	present := make(map[uint64]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		present[id] = struct{}{}
	}

	members := make([]fetcher.Member, 0, len(bindings))
	for _, binding := range bindings {
		if _, ok := present[binding.UserID]; ok {
			members = append(members, fetcher.Member{
				UserID:   binding.UserID,
				Username: binding.Username,
			})
		}
	}

	if len(members) == 0 {
		return nil, ErrNoRegisteredMembers
	}

	return members, nil
}

// SplitQuery splits an "Artist - Title" query on the first " - " separator.
func SplitQuery(query string) (string, string, bool) {
	artist, title, found := strings.Cut(query, " - ")
	if !found {
		return "", "", false
	}

	artist = strings.TrimSpace(artist)
	title = strings.TrimSpace(title)
	if artist == "" || title == "" {
		return "", "", false
	}

	return artist, title, true
}

// resolveArtistQuery returns the queried artist name, falling back to the
// user's current or last played track when the query is blank.
func (h *Handlers) resolveArtistQuery(ctx context.Context, username, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query != "" {
		return query, nil
	}

	track, err := h.client.CurrentTrack(ctx, username)
	if err != nil {
		return "", err
	}
	if track == nil {
		return "", ErrNoQualifyingData
	}

	return track.ArtistName(), nil
}

// resolveTrackQuery returns the queried artist and track title, falling back
// to the user's current or last played track when the query is blank.
func (h *Handlers) resolveTrackQuery(ctx context.Context, username, query string) (string, string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		track, err := h.client.CurrentTrack(ctx, username)
		if err != nil {
			return "", "", err
		}
		if track == nil {
			return "", "", ErrNoQualifyingData
		}

		return track.ArtistName(), track.Name, nil
	}

	artist, title, ok := SplitQuery(query)
	if !ok {
		return "", "", ErrInvalidQuery
	}

	return artist, title, nil
}

// resolveAlbumQuery returns the queried artist and album title, falling back
// to the user's current or last played track's album when the query is blank.
func (h *Handlers) resolveAlbumQuery(ctx context.Context, username, query string) (string, string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		track, err := h.client.CurrentTrack(ctx, username)
		if err != nil {
			return "", "", err
		}
		if track == nil || track.AlbumName() == "" {
			return "", "", ErrNoQualifyingData
		}

		return track.ArtistName(), track.AlbumName(), nil
	}

	artist, title, ok := SplitQuery(query)
	if !ok {
		return "", "", ErrInvalidQuery
	}

	return artist, title, nil
}
