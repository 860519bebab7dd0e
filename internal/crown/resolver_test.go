package crown_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scrobblyx/crowned/internal/crown"
	"github.com/scrobblyx/crowned/internal/database/types"
	"github.com/scrobblyx/crowned/internal/stats"
)

// fakeLedger is an in-memory crown store recording every mutation.
type fakeLedger struct {
	records map[string]*types.CrownRecord
	upserts int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{records: make(map[string]*types.CrownRecord)}
}

func (l *fakeLedger) key(guildID uint64, artistKey string) string {
	return fmt.Sprintf("%d/%s", guildID, artistKey)
}

func (l *fakeLedger) Get(_ context.Context, guildID uint64, artistKey string) (*types.CrownRecord, error) {
	record, ok := l.records[l.key(guildID, artistKey)]
	if !ok {
		return nil, nil
	}

	copied := *record
	return &copied, nil
}

func (l *fakeLedger) Upsert(_ context.Context, record *types.CrownRecord) error {
	copied := *record
	l.records[l.key(record.GuildID, record.ArtistKey)] = &copied
	l.upserts++
	return nil
}

func setupResolver(t *testing.T) (*crown.Resolver, *fakeLedger) {
	t.Helper()

	ledger := newFakeLedger()
	return crown.NewResolver(ledger, zap.NewNop()), ledger
}

func TestResolveEstablishesAtThreshold(t *testing.T) {
	t.Parallel()

	resolver, ledger := setupResolver(t)
	ctx := context.Background()

	theft, err := resolver.Resolve(ctx, 1, "Radiohead", stats.RankedEntry{
		UserID: 100, Username: "alice", Plays: crown.Threshold,
	})
	require.NoError(t, err)
	assert.Nil(t, theft, "establishment must be silent")

	record, err := ledger.Get(ctx, 1, "radiohead")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, uint64(100), record.HolderID)
	assert.Equal(t, crown.Threshold, record.PlayCount)
	assert.Equal(t, "Radiohead", record.ArtistDisplay)
}

func TestResolveBelowThresholdNeverMutates(t *testing.T) {
	t.Parallel()

	resolver, ledger := setupResolver(t)
	ctx := context.Background()

	theft, err := resolver.Resolve(ctx, 1, "Radiohead", stats.RankedEntry{
		UserID: 100, Username: "alice", Plays: crown.Threshold - 1,
	})
	require.NoError(t, err)
	assert.Nil(t, theft)
	assert.Zero(t, ledger.upserts, "29 plays must not create a crown")

	record, err := ledger.Get(ctx, 1, "radiohead")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestResolveTheft(t *testing.T) {
	t.Parallel()

	resolver, ledger := setupResolver(t)
	ctx := context.Background()

	_, err := resolver.Resolve(ctx, 1, "Radiohead", stats.RankedEntry{
		UserID: 100, Username: "alice", Plays: 40,
	})
	require.NoError(t, err)

	theft, err := resolver.Resolve(ctx, 1, "Radiohead", stats.RankedEntry{
		UserID: 200, Username: "bob", Plays: 45,
	})
	require.NoError(t, err)

	require.NotNil(t, theft)
	assert.Equal(t, uint64(200), theft.NewHolderID)
	assert.Equal(t, uint64(100), theft.OldHolderID)
	assert.Equal(t, "Radiohead", theft.ArtistName)
	assert.Equal(t, 45, theft.NewPlayCount)

	record, err := ledger.Get(ctx, 1, "radiohead")
	require.NoError(t, err)
	assert.Equal(t, uint64(200), record.HolderID)
	assert.Equal(t, 45, record.PlayCount)
}

func TestResolveChallengerBelowThresholdLeavesHolder(t *testing.T) {
	t.Parallel()

	resolver, ledger := setupResolver(t)
	ctx := context.Background()

	_, err := resolver.Resolve(ctx, 1, "Radiohead", stats.RankedEntry{
		UserID: 100, Username: "alice", Plays: 40,
	})
	require.NoError(t, err)

	theft, err := resolver.Resolve(ctx, 1, "Radiohead", stats.RankedEntry{
		UserID: 200, Username: "bob", Plays: 25,
	})
	require.NoError(t, err)
	assert.Nil(t, theft)

	record, err := ledger.Get(ctx, 1, "radiohead")
	require.NoError(t, err)
	assert.Equal(t, uint64(100), record.HolderID)
	assert.Equal(t, 40, record.PlayCount)
}

func TestResolveReconfirmationIsSilent(t *testing.T) {
	t.Parallel()

	resolver, ledger := setupResolver(t)
	ctx := context.Background()

	_, err := resolver.Resolve(ctx, 1, "Radiohead", stats.RankedEntry{
		UserID: 100, Username: "alice", Plays: 40,
	})
	require.NoError(t, err)

	// Same holder twice in a row, count unchanged then grown
	for _, plays := range []int{40, 55} {
		theft, err := resolver.Resolve(ctx, 1, "Radiohead", stats.RankedEntry{
			UserID: 100, Username: "alice", Plays: plays,
		})
		require.NoError(t, err)
		assert.Nil(t, theft, "reconfirmation must never announce")
	}

	record, err := ledger.Get(ctx, 1, "radiohead")
	require.NoError(t, err)
	assert.Equal(t, 55, record.PlayCount, "reconfirmation refreshes the cached count")
}

func TestResolveKeysAreNormalizedPerGuild(t *testing.T) {
	t.Parallel()

	resolver, ledger := setupResolver(t)
	ctx := context.Background()

	_, err := resolver.Resolve(ctx, 1, "  RADIOHEAD ", stats.RankedEntry{
		UserID: 100, Username: "alice", Plays: 40,
	})
	require.NoError(t, err)

	// Same artist spelled differently resolves to the same record
	theft, err := resolver.Resolve(ctx, 1, "radiohead", stats.RankedEntry{
		UserID: 200, Username: "bob", Plays: 50,
	})
	require.NoError(t, err)
	assert.NotNil(t, theft)

	// A different guild is untouched
	record, err := ledger.Get(ctx, 2, "radiohead")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestNormalizeArtist(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "radiohead", crown.NormalizeArtist("  Radiohead "))
	assert.Equal(t, "aphex twin", crown.NormalizeArtist("Aphex Twin"))
}
