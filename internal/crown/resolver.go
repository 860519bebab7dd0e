// Package crown applies the state-transition rule deciding when crown
// ownership is established, reconfirmed or contested away.
package crown

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/scrobblyx/crowned/internal/database/types"
	"github.com/scrobblyx/crowned/internal/stats"
)

// Threshold is the minimum play count required to claim or steal a crown.
// The value is inherited behavior; changing it would change which rankings
// mutate the ledger.
const Threshold = 30

// Ledger is the slice of the crown store the resolver needs.
// models.CrownModel satisfies it; tests substitute in-memory fakes.
type Ledger interface {
	Get(ctx context.Context, guildID uint64, artistKey string) (*types.CrownRecord, error)
	Upsert(ctx context.Context, record *types.CrownRecord) error
}

// Theft is emitted when a crown changes hands so the caller can announce it.
// Establishment and reconfirmation are silent.
type Theft struct {
	NewHolderID  uint64
	OldHolderID  uint64
	ArtistName   string
	NewPlayCount int
}

// Resolver owns all mutations of the crown ledger.
type Resolver struct {
	ledger Ledger
	logger *zap.Logger
}

// NewResolver creates a Resolver.
func NewResolver(ledger Ledger, logger *zap.Logger) *Resolver {
	return &Resolver{
		ledger: ledger,
		logger: logger.Named("crown"),
	}
}

// NormalizeArtist derives the ledger key from an artist display name.
func NormalizeArtist(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Resolve applies the crown rule for the top entry of a who-knows ranking.
// It returns a non-nil Theft only when an existing holder was displaced.
// Entries below the threshold never touch the ledger, even when they would
// outrank the incumbent. Callers must not invoke Resolve on empty rankings.
func (r *Resolver) Resolve(
	ctx context.Context, guildID uint64, artistName string, top stats.RankedEntry,
) (*Theft, error) {
	if top.Plays < Threshold {
		return nil, nil
	}

	key := NormalizeArtist(artistName)

	existing, err := r.ledger.Get(ctx, guildID, key)
	if err != nil {
		return nil, err
	}

	record := &types.CrownRecord{
		GuildID:       guildID,
		ArtistKey:     key,
		ArtistDisplay: artistName,
		HolderID:      top.UserID,
		PlayCount:     top.Plays,
	}

	switch {
	case existing == nil:
		// First qualifying resolution claims the crown silently.
		if err := r.ledger.Upsert(ctx, record); err != nil {
			return nil, err
		}
		r.logger.Debug("Crown established",
			zap.Uint64("guildID", guildID),
			zap.String("artist", key),
			zap.Uint64("holderID", top.UserID),
			zap.Int("plays", top.Plays))
		return nil, nil

	case existing.HolderID == top.UserID:
		// Reconfirmation refreshes the cached count, changed or not.
		if err := r.ledger.Upsert(ctx, record); err != nil {
			return nil, err
		}
		return nil, nil

	default:
		if err := r.ledger.Upsert(ctx, record); err != nil {
			return nil, err
		}
		r.logger.Debug("Crown stolen",
			zap.Uint64("guildID", guildID),
			zap.String("artist", key),
			zap.Uint64("newHolderID", top.UserID),
			zap.Uint64("oldHolderID", existing.HolderID),
			zap.Int("plays", top.Plays))
		return &Theft{
			NewHolderID:  top.UserID,
			OldHolderID:  existing.HolderID,
			ArtistName:   artistName,
			NewPlayCount: top.Plays,
		}, nil
	}
}
