package commands_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scrobblyx/crowned/internal/commands"
	"github.com/scrobblyx/crowned/internal/database/types"
	"github.com/scrobblyx/crowned/internal/lastfm"
	"github.com/scrobblyx/crowned/internal/lastfm/fetcher"
)

// fakeRegistry is an in-memory UserRegistry.
type fakeRegistry struct {
	bindings map[uint64]string
}

func (r *fakeRegistry) Get(_ context.Context, userID uint64) (*types.UserBinding, error) {
	username, ok := r.bindings[userID]
	if !ok {
		return nil, nil
	}
	return &types.UserBinding{UserID: userID, Username: username}, nil
}

func (r *fakeRegistry) Set(_ context.Context, userID uint64, username string) error {
	r.bindings[userID] = username
	return nil
}

func (r *fakeRegistry) List(_ context.Context) ([]*types.UserBinding, error) {
	bindings := make([]*types.UserBinding, 0, len(r.bindings))
	for userID, username := range r.bindings {
		bindings = append(bindings, &types.UserBinding{UserID: userID, Username: username})
	}
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].UserID < bindings[j].UserID })
	return bindings, nil
}

// fakeLedger is an in-memory CrownLedger.
type fakeLedger struct {
	records map[string]*types.CrownRecord
}

func ledgerKey(guildID uint64, artistKey string) string {
	return fmt.Sprintf("%d/%s", guildID, artistKey)
}

func (l *fakeLedger) Get(_ context.Context, guildID uint64, artistKey string) (*types.CrownRecord, error) {
	return l.records[ledgerKey(guildID, artistKey)], nil
}

func (l *fakeLedger) Upsert(_ context.Context, record *types.CrownRecord) error {
	l.records[ledgerKey(record.GuildID, record.ArtistKey)] = record
	return nil
}

func (l *fakeLedger) ListForGuild(_ context.Context, guildID uint64) ([]*types.CrownRecord, error) {
	records := make([]*types.CrownRecord, 0, len(l.records))
	for _, record := range l.records {
		if record.GuildID == guildID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].PlayCount > records[j].PlayCount })
	return records, nil
}

// statsStub serves canned responses keyed by Last.fm username.
type statsStub struct {
	plays      map[string]int
	topArtists map[string][]lastfm.TopArtist
	recent     map[string]*lastfm.RecentTracks
	current    map[string]*lastfm.RecentTrack
	fail       map[string]bool
}

func newStatsStub() *statsStub {
	return &statsStub{
		plays:      make(map[string]int),
		topArtists: make(map[string][]lastfm.TopArtist),
		recent:     make(map[string]*lastfm.RecentTracks),
		current:    make(map[string]*lastfm.RecentTrack),
		fail:       make(map[string]bool),
	}
}

func (s *statsStub) lookup(username string) (int, error) {
	if s.fail[username] {
		return 0, &lastfm.Error{Kind: lastfm.KindTransport, Message: "stub failure"}
	}
	return s.plays[username], nil
}

func (s *statsStub) ArtistInfo(_ context.Context, _, username string) (*lastfm.ArtistInfo, error) {
	plays, err := s.lookup(username)
	if err != nil {
		return nil, err
	}

	info := &lastfm.ArtistInfo{}
	info.Stats.UserPlayCount = lastfm.Number(plays)
	return info, nil
}

func (s *statsStub) TrackInfo(_ context.Context, _, _, username string) (*lastfm.TrackInfo, error) {
	plays, err := s.lookup(username)
	if err != nil {
		return nil, err
	}
	return &lastfm.TrackInfo{UserPlayCount: lastfm.Number(plays)}, nil
}

func (s *statsStub) AlbumInfo(_ context.Context, _, _, username string) (*lastfm.AlbumInfo, error) {
	plays, err := s.lookup(username)
	if err != nil {
		return nil, err
	}
	return &lastfm.AlbumInfo{UserPlayCount: lastfm.Number(plays)}, nil
}

func (s *statsStub) TopArtists(_ context.Context, username string, _ lastfm.Period, _ int) (*lastfm.TopArtists, error) {
	if _, err := s.lookup(username); err != nil {
		return nil, err
	}
	return &lastfm.TopArtists{Artists: s.topArtists[username]}, nil
}

func (s *statsStub) TopAlbums(_ context.Context, username string, _ lastfm.Period, _ int) (*lastfm.TopAlbums, error) {
	if _, err := s.lookup(username); err != nil {
		return nil, err
	}
	return &lastfm.TopAlbums{}, nil
}

func (s *statsStub) TopTracks(_ context.Context, username string, _ lastfm.Period, _ int) (*lastfm.TopTracks, error) {
	if _, err := s.lookup(username); err != nil {
		return nil, err
	}
	return &lastfm.TopTracks{}, nil
}

func (s *statsStub) RecentTracks(_ context.Context, username string, _ int) (*lastfm.RecentTracks, error) {
	if _, err := s.lookup(username); err != nil {
		return nil, err
	}
	if recent, ok := s.recent[username]; ok {
		return recent, nil
	}
	return &lastfm.RecentTracks{}, nil
}

func (s *statsStub) CurrentTrack(_ context.Context, username string) (*lastfm.RecentTrack, error) {
	if _, err := s.lookup(username); err != nil {
		return nil, err
	}
	return s.current[username], nil
}

func setupHandlers(t *testing.T) (*commands.Handlers, *fakeRegistry, *fakeLedger, *statsStub) {
	t.Helper()

	registry := &fakeRegistry{bindings: make(map[uint64]string)}
	ledger := &fakeLedger{records: make(map[string]*types.CrownRecord)}
	stub := newStatsStub()

	handlers := commands.NewHandlers(
		registry, ledger, stub,
		fetcher.New(stub, time.Second, zap.NewNop()), zap.NewNop(),
	)

	return handlers, registry, ledger, stub
}

func decodeRecent(t *testing.T, payload string) *lastfm.RecentTracks {
	t.Helper()

	var recent lastfm.RecentTracks
	require.NoError(t, sonic.Unmarshal([]byte(payload), &recent))
	return &recent
}

func decodeTrack(t *testing.T, payload string) *lastfm.RecentTrack {
	t.Helper()

	var track lastfm.RecentTrack
	require.NoError(t, sonic.Unmarshal([]byte(payload), &track))
	return &track
}

func TestSetFMTrimsAndStores(t *testing.T) {
	t.Parallel()

	handlers, registry, _, _ := setupHandlers(t)

	require.NoError(t, handlers.SetFM(context.Background(), 1, "  alice_fm "))
	assert.Equal(t, "alice_fm", registry.bindings[1])

	// Re-linking replaces the previous binding.
	require.NoError(t, handlers.SetFM(context.Background(), 1, "alice_two"))
	assert.Equal(t, "alice_two", registry.bindings[1])
}

func TestSplitQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query  string
		artist string
		title  string
		ok     bool
	}{
		{"Radiohead - Airbag", "Radiohead", "Airbag", true},
		{"A - B - C", "A", "B - C", true},
		{"  Radiohead   -   Airbag  ", "Radiohead", "Airbag", true},
		{"Radiohead", "", "", false},
		{"Radiohead-Airbag", "", "", false},
		{" - Airbag", "", "", false},
		{"Radiohead - ", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()

			artist, title, ok := commands.SplitQuery(tt.query)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.artist, artist)
			assert.Equal(t, tt.title, title)
		})
	}
}

func TestWhoKnowsArtistRanksAndEstablishesCrown(t *testing.T) {
	t.Parallel()

	handlers, registry, ledger, stub := setupHandlers(t)
	registry.bindings[1] = "alice_fm"
	registry.bindings[2] = "bob_fm"
	stub.plays["alice_fm"] = 50
	stub.plays["bob_fm"] = 10

	result, err := handlers.WhoKnowsArtist(context.Background(), 100, 1, []uint64{1, 2}, "Radiohead")
	require.NoError(t, err)

	require.Len(t, result.Entries, 2)
	assert.Equal(t, "alice_fm", result.Entries[0].Username)
	assert.Equal(t, 50, result.Entries[0].Plays)
	assert.Equal(t, "bob_fm", result.Entries[1].Username)

	// Establishment is silent but recorded.
	assert.Nil(t, result.Theft)
	assert.Equal(t, uint64(1), result.CrownHolderID)

	record := ledger.records[ledgerKey(100, "radiohead")]
	require.NotNil(t, record)
	assert.Equal(t, uint64(1), record.HolderID)
	assert.Equal(t, 50, record.PlayCount)
	assert.Equal(t, "Radiohead", record.ArtistDisplay)
}

func TestWhoKnowsArtistReportsTheft(t *testing.T) {
	t.Parallel()

	handlers, registry, ledger, stub := setupHandlers(t)
	registry.bindings[1] = "alice_fm"
	registry.bindings[2] = "bob_fm"
	stub.plays["alice_fm"] = 45
	stub.plays["bob_fm"] = 10
	ledger.records[ledgerKey(100, "radiohead")] = &types.CrownRecord{
		GuildID:       100,
		ArtistKey:     "radiohead",
		ArtistDisplay: "Radiohead",
		HolderID:      2,
		PlayCount:     40,
	}

	result, err := handlers.WhoKnowsArtist(context.Background(), 100, 1, []uint64{1, 2}, "Radiohead")
	require.NoError(t, err)

	require.NotNil(t, result.Theft)
	assert.Equal(t, uint64(1), result.Theft.NewHolderID)
	assert.Equal(t, uint64(2), result.Theft.OldHolderID)
	assert.Equal(t, "Radiohead", result.Theft.ArtistName)
	assert.Equal(t, 45, result.Theft.NewPlayCount)
	assert.Equal(t, uint64(1), result.CrownHolderID)

	assert.Equal(t, uint64(1), ledger.records[ledgerKey(100, "radiohead")].HolderID)
}

func TestWhoKnowsArtistErrors(t *testing.T) {
	t.Parallel()

	t.Run("unregistered requester", func(t *testing.T) {
		t.Parallel()

		handlers, _, _, _ := setupHandlers(t)

		_, err := handlers.WhoKnowsArtist(context.Background(), 100, 1, []uint64{1}, "Radiohead")
		assert.ErrorIs(t, err, commands.ErrNotRegistered)
	})

	t.Run("no registered members", func(t *testing.T) {
		t.Parallel()

		handlers, registry, _, _ := setupHandlers(t)
		registry.bindings[1] = "alice_fm"

		_, err := handlers.WhoKnowsArtist(context.Background(), 100, 1, []uint64{99}, "Radiohead")
		assert.ErrorIs(t, err, commands.ErrNoRegisteredMembers)
	})

	t.Run("nobody has plays", func(t *testing.T) {
		t.Parallel()

		handlers, registry, ledger, _ := setupHandlers(t)
		registry.bindings[1] = "alice_fm"

		_, err := handlers.WhoKnowsArtist(context.Background(), 100, 1, []uint64{1}, "Radiohead")
		assert.ErrorIs(t, err, commands.ErrNoQualifyingData)
		assert.Empty(t, ledger.records)
	})
}

func TestWhoKnowsArtistBelowThresholdLeavesCrownAlone(t *testing.T) {
	t.Parallel()

	handlers, registry, ledger, stub := setupHandlers(t)
	registry.bindings[1] = "alice_fm"
	registry.bindings[2] = "bob_fm"
	stub.plays["alice_fm"] = 29
	ledger.records[ledgerKey(100, "radiohead")] = &types.CrownRecord{
		GuildID:       100,
		ArtistKey:     "radiohead",
		ArtistDisplay: "Radiohead",
		HolderID:      2,
		PlayCount:     40,
	}

	result, err := handlers.WhoKnowsArtist(context.Background(), 100, 1, []uint64{1, 2}, "Radiohead")
	require.NoError(t, err)

	// The incumbent keeps the crown even while outranked.
	assert.Nil(t, result.Theft)
	assert.Equal(t, uint64(2), result.CrownHolderID)
	assert.Equal(t, 40, ledger.records[ledgerKey(100, "radiohead")].PlayCount)
}

func TestWhoKnowsArtistNoCrownBelowThreshold(t *testing.T) {
	t.Parallel()

	handlers, registry, ledger, stub := setupHandlers(t)
	registry.bindings[1] = "alice_fm"
	stub.plays["alice_fm"] = 5

	result, err := handlers.WhoKnowsArtist(context.Background(), 100, 1, []uint64{1}, "Radiohead")
	require.NoError(t, err)

	require.Len(t, result.Entries, 1)
	assert.Zero(t, result.CrownHolderID)
	assert.Empty(t, ledger.records)
}

func TestWhoKnowsTrackRequiresArtistTitleQuery(t *testing.T) {
	t.Parallel()

	handlers, registry, ledger, stub := setupHandlers(t)
	registry.bindings[1] = "alice_fm"
	stub.plays["alice_fm"] = 7

	_, err := handlers.WhoKnowsTrack(context.Background(), 1, []uint64{1}, "just a track")
	assert.ErrorIs(t, err, commands.ErrInvalidQuery)

	result, err := handlers.WhoKnowsTrack(context.Background(), 1, []uint64{1}, "Radiohead - Airbag")
	require.NoError(t, err)
	assert.Equal(t, "Radiohead - Airbag", result.Subject)
	require.Len(t, result.Entries, 1)

	// Track rankings never touch the crown ledger.
	assert.Empty(t, ledger.records)
	assert.Zero(t, result.CrownHolderID)
}

func TestCrownBlankQueryUsesCurrentTrack(t *testing.T) {
	t.Parallel()

	handlers, registry, ledger, stub := setupHandlers(t)
	registry.bindings[1] = "alice_fm"
	stub.current["alice_fm"] = decodeTrack(t, `{
		"name": "Airbag",
		"artist": {"#text": "Radiohead"}
	}`)
	ledger.records[ledgerKey(100, "radiohead")] = &types.CrownRecord{
		GuildID:       100,
		ArtistKey:     "radiohead",
		ArtistDisplay: "Radiohead",
		HolderID:      1,
		PlayCount:     50,
	}

	result, err := handlers.Crown(context.Background(), 100, 1, "")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.Record.HolderID)

	_, err = handlers.Crown(context.Background(), 100, 1, "Pavement")
	assert.ErrorIs(t, err, commands.ErrNoCrown)
}

func TestCrownsFiltersByHolder(t *testing.T) {
	t.Parallel()

	handlers, _, ledger, _ := setupHandlers(t)
	ledger.records[ledgerKey(100, "radiohead")] = &types.CrownRecord{
		GuildID: 100, ArtistKey: "radiohead", ArtistDisplay: "Radiohead", HolderID: 1, PlayCount: 50,
	}
	ledger.records[ledgerKey(100, "pavement")] = &types.CrownRecord{
		GuildID: 100, ArtistKey: "pavement", ArtistDisplay: "Pavement", HolderID: 2, PlayCount: 40,
	}
	ledger.records[ledgerKey(100, "low")] = &types.CrownRecord{
		GuildID: 100, ArtistKey: "low", ArtistDisplay: "Low", HolderID: 1, PlayCount: 35,
	}
	ledger.records[ledgerKey(200, "radiohead")] = &types.CrownRecord{
		GuildID: 200, ArtistKey: "radiohead", ArtistDisplay: "Radiohead", HolderID: 3, PlayCount: 90,
	}

	result, err := handlers.Crowns(context.Background(), 100, 1)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	for _, record := range result.Records {
		assert.Equal(t, uint64(1), record.HolderID)
	}

	server, err := handlers.ServerCrowns(context.Background(), 100)
	require.NoError(t, err)
	assert.Len(t, server.Records, 3)
}

func TestTopCrownsLeaderboard(t *testing.T) {
	t.Parallel()

	handlers, _, ledger, _ := setupHandlers(t)
	ledger.records[ledgerKey(100, "radiohead")] = &types.CrownRecord{
		GuildID: 100, ArtistKey: "radiohead", HolderID: 1, PlayCount: 50,
	}
	ledger.records[ledgerKey(100, "pavement")] = &types.CrownRecord{
		GuildID: 100, ArtistKey: "pavement", HolderID: 1, PlayCount: 40,
	}
	ledger.records[ledgerKey(100, "low")] = &types.CrownRecord{
		GuildID: 100, ArtistKey: "low", HolderID: 2, PlayCount: 35,
	}

	result, err := handlers.TopCrowns(context.Background(), 100)
	require.NoError(t, err)

	require.Len(t, result.Counts, 2)
	assert.Equal(t, commands.CrownCount{HolderID: 1, Crowns: 2}, result.Counts[0])
	assert.Equal(t, commands.CrownCount{HolderID: 2, Crowns: 1}, result.Counts[1])
}

func TestTasteComparesBothSides(t *testing.T) {
	t.Parallel()

	handlers, registry, _, stub := setupHandlers(t)
	registry.bindings[1] = "alice_fm"
	registry.bindings[2] = "bob_fm"
	stub.topArtists["alice_fm"] = []lastfm.TopArtist{
		{Name: "Radiohead", PlayCount: lastfm.Number(100)},
		{Name: "Pavement", PlayCount: lastfm.Number(60)},
	}
	stub.topArtists["bob_fm"] = []lastfm.TopArtist{
		{Name: "RADIOHEAD", PlayCount: lastfm.Number(30)},
	}

	result, err := handlers.Taste(context.Background(), 1, 2, lastfm.PeriodAllTime)
	require.NoError(t, err)

	assert.Equal(t, "alice_fm", result.UsernameA)
	assert.Equal(t, "bob_fm", result.UsernameB)
	assert.Equal(t, 50, result.Overlap.Percent)
	require.Len(t, result.Overlap.Shared, 1)
	assert.Equal(t, "Radiohead", result.Overlap.Shared[0].Name)
}

func TestTasteRequiresBothRegistered(t *testing.T) {
	t.Parallel()

	handlers, registry, _, _ := setupHandlers(t)
	registry.bindings[1] = "alice_fm"

	_, err := handlers.Taste(context.Background(), 1, 2, lastfm.PeriodAllTime)
	assert.ErrorIs(t, err, commands.ErrNotRegistered)
}

func TestServerTopAggregates(t *testing.T) {
	t.Parallel()

	handlers, registry, _, stub := setupHandlers(t)
	registry.bindings[1] = "alice_fm"
	registry.bindings[2] = "bob_fm"
	stub.topArtists["alice_fm"] = []lastfm.TopArtist{
		{Name: "Radiohead", PlayCount: lastfm.Number(100)},
		{Name: "Pavement", PlayCount: lastfm.Number(60)},
	}
	stub.topArtists["bob_fm"] = []lastfm.TopArtist{
		{Name: "Radiohead", PlayCount: lastfm.Number(30)},
	}

	result, err := handlers.ServerTop(context.Background(), []uint64{1, 2}, fetcher.CategoryArtists)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Listeners)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "Radiohead", result.Entries[0].Name)
	assert.Equal(t, 130, result.Entries[0].Plays)
	assert.Equal(t, "Pavement", result.Entries[1].Name)
}

func TestNowPlaying(t *testing.T) {
	t.Parallel()

	handlers, registry, _, stub := setupHandlers(t)
	registry.bindings[1] = "alice_fm"
	stub.recent["alice_fm"] = decodeRecent(t, `{
		"track": [
			{"name": "Airbag", "artist": {"#text": "Radiohead"}, "@attr": {"nowplaying": "true"}},
			{"name": "Gold Soundz", "artist": {"#text": "Pavement"}}
		],
		"@attr": {"total": "4321"}
	}`)

	result, err := handlers.NowPlaying(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Airbag", result.Current.Name)
	assert.True(t, result.Current.NowPlaying())
	require.NotNil(t, result.Previous)
	assert.Equal(t, "Gold Soundz", result.Previous.Name)
	assert.Equal(t, 4321, result.Total)
}

func TestStreakSkipsNowPlayingEntry(t *testing.T) {
	t.Parallel()

	handlers, registry, _, stub := setupHandlers(t)
	registry.bindings[1] = "alice_fm"
	stub.recent["alice_fm"] = decodeRecent(t, `{
		"track": [
			{"name": "Airbag", "artist": {"#text": "Radiohead"}, "album": {"#text": "OK Computer"}, "@attr": {"nowplaying": "true"}},
			{"name": "Let Down", "artist": {"#text": "Radiohead"}, "album": {"#text": "OK Computer"}},
			{"name": "Lucky", "artist": {"#text": "Radiohead"}, "album": {"#text": "OK Computer"}},
			{"name": "Gold Soundz", "artist": {"#text": "Pavement"}, "album": {"#text": "Crooked Rain"}}
		],
		"@attr": {"total": "4321"}
	}`)

	result, err := handlers.Streak(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Streaks.Artist.Length)
	assert.Equal(t, "Radiohead", result.Streaks.Artist.Name)
	assert.Equal(t, 2, result.Streaks.Album.Length)
	assert.Equal(t, 1, result.Streaks.Track.Length)
}
