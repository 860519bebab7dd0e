package types

// CrownRecord is the current crown holder for one artist within one guild.
// ArtistKey is the trimmed, lowercased artist name; ArtistDisplay preserves
// the original casing for output. PlayCount is the holder's play count at the
// last resolution, a stale-tolerant snapshot rather than a live value.
type CrownRecord struct {
	GuildID       uint64 `bun:",pk,notnull"`
	ArtistKey     string `bun:",pk,notnull"`
	ArtistDisplay string `bun:",notnull"`
	HolderID      uint64 `bun:",notnull"`
	PlayCount     int    `bun:",notnull"`
}
