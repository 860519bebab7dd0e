package bot

import (
	"context"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"

	"github.com/scrobblyx/crowned/internal/lastfm"
	"github.com/scrobblyx/crowned/internal/lastfm/fetcher"
)

// commandRoutes maps slash command names to their handlers.
func (b *Bot) commandRoutes() map[string]commandFunc {
	return map[string]commandFunc{
		"setfm":         b.handleSetFM,
		"fm":            b.handleNowPlaying,
		"recent":        b.handleRecent,
		"plays":         b.handlePlays,
		"toptracks":     b.handleTopTracks,
		"topalbums":     b.handleTopAlbums,
		"topartists":    b.handleTopArtists,
		"track":         b.handleTrack,
		"trackplays":    b.handleTrackPlays,
		"artist":        b.handleArtist,
		"artistplays":   b.handleArtistPlays,
		"album":         b.handleAlbum,
		"albumplays":    b.handleAlbumPlays,
		"whoknows":      b.handleWhoKnowsArtist,
		"whoknowstrack": b.handleWhoKnowsTrack,
		"whoknowsalbum": b.handleWhoKnowsAlbum,
		"taste":         b.handleTaste,
		"overview":      b.handleOverview,
		"streak":        b.handleStreak,
		"serverartists": b.serverTopHandler(fetcher.CategoryArtists),
		"serveralbums":  b.serverTopHandler(fetcher.CategoryAlbums),
		"servertracks":  b.serverTopHandler(fetcher.CategoryTracks),
		"crown":         b.handleCrown,
		"crowns":        b.handleCrowns,
		"servercrowns":  b.handleServerCrowns,
		"topcrowns":     b.handleTopCrowns,
	}
}

// tasteDefaultPeriod is the window /taste compares without a period option.
// Taste comparisons run over whole libraries, so the default is all-time
// rather than the weekly window the top-list commands use.
const tasteDefaultPeriod = lastfm.OverallDefault

// optPeriod reads the period option, using the fallback when absent.
func optPeriod(data discord.SlashCommandInteractionData, fallback lastfm.Period) lastfm.Period {
	raw, ok := data.OptString("period")
	return periodOrDefault(raw, ok, fallback)
}

// periodOrDefault validates a raw period value, falling back when the option
// was absent or not a known period name.
func periodOrDefault(raw string, present bool, fallback lastfm.Period) lastfm.Period {
	if present {
		if period, valid := lastfm.ParsePeriod(raw); valid {
			return period
		}
	}

	return fallback
}

// targetUser returns the member a profile command is about, defaulting to the
// caller when no user option was supplied.
func targetUser(
	event *events.ApplicationCommandInteractionCreate, data discord.SlashCommandInteractionData,
) uint64 {
	if other, ok := data.OptSnowflake("user"); ok {
		return uint64(other)
	}

	return uint64(event.User().ID)
}

// optQuery reads the optional query string, blank meaning current track.
func optQuery(data discord.SlashCommandInteractionData) string {
	query, _ := data.OptString("query")
	return query
}

// guildContext extracts the guild ID and member list for server-wide commands.
func (b *Bot) guildContext(
	event *events.ApplicationCommandInteractionCreate,
) (uint64, []uint64, error) {
	guildID := event.GuildID()
	if guildID == nil {
		return 0, nil, errGuildOnly
	}

	memberIDs, err := b.guildMemberIDs(event, *guildID)
	if err != nil {
		return 0, nil, err
	}

	return uint64(*guildID), memberIDs, nil
}

func (b *Bot) handleSetFM(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	username := data.String("username")

	if err := b.handlers.SetFM(ctx, uint64(event.User().ID), username); err != nil {
		return discord.Embed{}, err
	}

	return newEmbed().
		SetDescription("Linked your Last.fm account: **" + username + "**").
		Build(), nil
}

func (b *Bot) handleNowPlaying(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	result, err := b.handlers.NowPlaying(ctx, targetUser(event, data))
	if err != nil {
		return discord.Embed{}, err
	}

	return nowPlayingEmbed(result), nil
}

func (b *Bot) handleRecent(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	limit, ok := data.OptInt("limit")
	if !ok {
		limit = RecentDefaultLimit
	}

	result, err := b.handlers.Recent(ctx, targetUser(event, data), limit)
	if err != nil {
		return discord.Embed{}, err
	}

	return recentEmbed(result), nil
}

func (b *Bot) handlePlays(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	result, err := b.handlers.Plays(ctx, targetUser(event, data))
	if err != nil {
		return discord.Embed{}, err
	}

	return playsEmbed(result), nil
}

func (b *Bot) handleTopTracks(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	result, err := b.handlers.TopTracks(ctx, targetUser(event, data), optPeriod(data, lastfm.DefaultPeriod), TopListLimit)
	if err != nil {
		return discord.Embed{}, err
	}

	return topTracksEmbed(result), nil
}

func (b *Bot) handleTopAlbums(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	result, err := b.handlers.TopAlbums(ctx, targetUser(event, data), optPeriod(data, lastfm.DefaultPeriod), TopListLimit)
	if err != nil {
		return discord.Embed{}, err
	}

	return topAlbumsEmbed(result), nil
}

func (b *Bot) handleTopArtists(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	result, err := b.handlers.TopArtists(ctx, targetUser(event, data), optPeriod(data, lastfm.DefaultPeriod), TopListLimit)
	if err != nil {
		return discord.Embed{}, err
	}

	return topArtistsEmbed(result), nil
}

func (b *Bot) handleTrack(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	result, err := b.handlers.Track(ctx, uint64(event.User().ID), optQuery(data))
	if err != nil {
		return discord.Embed{}, err
	}

	return trackEmbed(result), nil
}

func (b *Bot) handleTrackPlays(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	result, err := b.handlers.TrackPlays(ctx, uint64(event.User().ID), optQuery(data))
	if err != nil {
		return discord.Embed{}, err
	}

	return trackPlaysEmbed(result), nil
}

func (b *Bot) handleArtist(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	result, err := b.handlers.Artist(ctx, uint64(event.User().ID), optQuery(data))
	if err != nil {
		return discord.Embed{}, err
	}

	return artistEmbed(result), nil
}

func (b *Bot) handleArtistPlays(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	result, err := b.handlers.ArtistPlays(ctx, uint64(event.User().ID), optQuery(data))
	if err != nil {
		return discord.Embed{}, err
	}

	return artistPlaysEmbed(result), nil
}

func (b *Bot) handleAlbum(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	result, err := b.handlers.Album(ctx, uint64(event.User().ID), optQuery(data))
	if err != nil {
		return discord.Embed{}, err
	}

	return albumEmbed(result), nil
}

func (b *Bot) handleAlbumPlays(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	result, err := b.handlers.AlbumPlays(ctx, uint64(event.User().ID), optQuery(data))
	if err != nil {
		return discord.Embed{}, err
	}

	return albumPlaysEmbed(result), nil
}

func (b *Bot) handleWhoKnowsArtist(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	guildID, memberIDs, err := b.guildContext(event)
	if err != nil {
		return discord.Embed{}, err
	}

	result, err := b.handlers.WhoKnowsArtist(ctx, guildID, uint64(event.User().ID), memberIDs, optQuery(data))
	if err != nil {
		return discord.Embed{}, err
	}

	// Crown thefts get their own announcement after the ranking
	if result.Theft != nil {
		b.followUp(event, theftMessage(result.Theft))
	}

	return whoKnowsEmbed("Who knows", result), nil
}

func (b *Bot) handleWhoKnowsTrack(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	_, memberIDs, err := b.guildContext(event)
	if err != nil {
		return discord.Embed{}, err
	}

	result, err := b.handlers.WhoKnowsTrack(ctx, uint64(event.User().ID), memberIDs, optQuery(data))
	if err != nil {
		return discord.Embed{}, err
	}

	return whoKnowsEmbed("Who knows track", result), nil
}

func (b *Bot) handleWhoKnowsAlbum(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	_, memberIDs, err := b.guildContext(event)
	if err != nil {
		return discord.Embed{}, err
	}

	result, err := b.handlers.WhoKnowsAlbum(ctx, uint64(event.User().ID), memberIDs, optQuery(data))
	if err != nil {
		return discord.Embed{}, err
	}

	return whoKnowsEmbed("Who knows album", result), nil
}

func (b *Bot) handleTaste(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	other := data.Snowflake("user")

	result, err := b.handlers.Taste(ctx, uint64(event.User().ID), uint64(other), optPeriod(data, tasteDefaultPeriod))
	if err != nil {
		return discord.Embed{}, err
	}

	return tasteEmbed(result), nil
}

func (b *Bot) handleOverview(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	result, err := b.handlers.Overview(ctx, targetUser(event, data), optPeriod(data, lastfm.DefaultPeriod))
	if err != nil {
		return discord.Embed{}, err
	}

	return overviewEmbed(result), nil
}

func (b *Bot) handleStreak(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	result, err := b.handlers.Streak(ctx, targetUser(event, data))
	if err != nil {
		return discord.Embed{}, err
	}

	return streakEmbed(result), nil
}

// serverTopHandler builds a handler for one server aggregate category.
func (b *Bot) serverTopHandler(category fetcher.Category) commandFunc {
	return func(
		ctx context.Context, event *events.ApplicationCommandInteractionCreate,
		_ discord.SlashCommandInteractionData,
	) (discord.Embed, error) {
		_, memberIDs, err := b.guildContext(event)
		if err != nil {
			return discord.Embed{}, err
		}

		result, err := b.handlers.ServerTop(ctx, memberIDs, category)
		if err != nil {
			return discord.Embed{}, err
		}

		return serverTopEmbed(result), nil
	}
}

func (b *Bot) handleCrown(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	guildID := event.GuildID()
	if guildID == nil {
		return discord.Embed{}, errGuildOnly
	}

	result, err := b.handlers.Crown(ctx, uint64(*guildID), uint64(event.User().ID), optQuery(data))
	if err != nil {
		return discord.Embed{}, err
	}

	return crownEmbed(result.Record), nil
}

func (b *Bot) handleCrowns(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	guildID := event.GuildID()
	if guildID == nil {
		return discord.Embed{}, errGuildOnly
	}

	holder := event.User().ID
	if other, ok := data.OptSnowflake("user"); ok {
		holder = other
	}

	result, err := b.handlers.Crowns(ctx, uint64(*guildID), uint64(holder))
	if err != nil {
		return discord.Embed{}, err
	}

	return crownsEmbed(result), nil
}

func (b *Bot) handleServerCrowns(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	_ discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	guildID := event.GuildID()
	if guildID == nil {
		return discord.Embed{}, errGuildOnly
	}

	result, err := b.handlers.ServerCrowns(ctx, uint64(*guildID))
	if err != nil {
		return discord.Embed{}, err
	}

	return serverCrownsEmbed(result), nil
}

func (b *Bot) handleTopCrowns(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	_ discord.SlashCommandInteractionData,
) (discord.Embed, error) {
	guildID := event.GuildID()
	if guildID == nil {
		return discord.Embed{}, errGuildOnly
	}

	result, err := b.handlers.TopCrowns(ctx, uint64(*guildID))
	if err != nil {
		return discord.Embed{}, err
	}

	return topCrownsEmbed(result), nil
}
