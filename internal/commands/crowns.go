package commands

import (
	"context"
	"sort"

	"github.com/scrobblyx/crowned/internal/crown"
	"github.com/scrobblyx/crowned/internal/database/types"
)

// CrownResult is one crown record.
type CrownResult struct {
	Record *types.CrownRecord
}

// Crown looks up the crown for one artist, falling back to the caller's
// current track when the query is blank. Lookups never mutate the ledger.
func (h *Handlers) Crown(
	ctx context.Context, guildID, requesterID uint64, query string,
) (*CrownResult, error) {
	username, err := h.username(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	artist, err := h.resolveArtistQuery(ctx, username, query)
	if err != nil {
		return nil, err
	}

	record, err := h.ledger.Get(ctx, guildID, crown.NormalizeArtist(artist))
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNoCrown
	}

	return &CrownResult{Record: record}, nil
}

// CrownsResult lists the crowns one member holds in a guild.
type CrownsResult struct {
	HolderID uint64
	Records  []*types.CrownRecord
}

// Crowns lists every crown the member holds in the guild, ordered by play
// count descending.
func (h *Handlers) Crowns(ctx context.Context, guildID, holderID uint64) (*CrownsResult, error) {
	records, err := h.ledger.ListForGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}

	held := make([]*types.CrownRecord, 0, len(records))
	for _, record := range records {
		if record.HolderID == holderID {
			held = append(held, record)
		}
	}

	return &CrownsResult{HolderID: holderID, Records: held}, nil
}

// ServerCrownsResult lists every crown in a guild.
type ServerCrownsResult struct {
	Records []*types.CrownRecord
}

// ServerCrowns lists every crown in the guild, ordered by play count
// descending.
func (h *Handlers) ServerCrowns(ctx context.Context, guildID uint64) (*ServerCrownsResult, error) {
	records, err := h.ledger.ListForGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}

	return &ServerCrownsResult{Records: records}, nil
}

// CrownCount is one row of the crown leaderboard.
type CrownCount struct {
	HolderID uint64
	Crowns   int
}

// TopCrownsResult is the guild's crown leaderboard.
type TopCrownsResult struct {
	Counts []CrownCount
}

// TopCrowns counts crowns per holder across the guild, most crowns first.
// Equal counts order by holder ID for a stable leaderboard.
func (h *Handlers) TopCrowns(ctx context.Context, guildID uint64) (*TopCrownsResult, error) {
	records, err := h.ledger.ListForGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}

	byHolder := make(map[uint64]int, len(records))
	for _, record := range records {
		byHolder[record.HolderID]++
	}

	counts := make([]CrownCount, 0, len(byHolder))
	for holderID, crowns := range byHolder {
		counts = append(counts, CrownCount{HolderID: holderID, Crowns: crowns})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Crowns != counts[j].Crowns {
			return counts[i].Crowns > counts[j].Crowns
		}
		return counts[i].HolderID < counts[j].HolderID
	})

	return &TopCrownsResult{Counts: counts}, nil
}
