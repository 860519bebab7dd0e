package bot

import (
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"

	"github.com/scrobblyx/crowned/internal/commands"
	"github.com/scrobblyx/crowned/internal/crown"
	"github.com/scrobblyx/crowned/internal/database/types"
	"github.com/scrobblyx/crowned/internal/lastfm"
	"github.com/scrobblyx/crowned/internal/stats"
	"github.com/scrobblyx/crowned/pkg/utils"
)

// EmbedColor is the Last.fm red used for every embed.
const EmbedColor = 0xD51007

// thumbnailSize is the Last.fm image size embeds use.
const thumbnailSize = "large"

// bioMaxLength caps artist bio summaries rendered into embed descriptions.
const bioMaxLength = 512

func newEmbed() *discord.EmbedBuilder {
	return discord.NewEmbedBuilder().SetColor(EmbedColor)
}

func mention(userID uint64) string {
	return fmt.Sprintf("<@%d>", userID)
}

func nowPlayingEmbed(result *commands.NowPlayingResult) discord.Embed {
	header := "Last track"
	if result.Current.NowPlaying() {
		header = "Now playing"
	}

	builder := newEmbed().
		SetAuthorName(fmt.Sprintf("%s — %s", header, result.Username)).
		SetTitle(result.Current.Name).
		SetURL(result.Current.URL).
		SetDescription(trackLine(&result.Current)).
		SetFooterText(fmt.Sprintf("%d total scrobbles", result.Total))

	if url := lastfm.ImageURL(result.Current.Images, thumbnailSize); url != "" {
		builder.SetThumbnail(url)
	}

	if result.Previous != nil {
		builder.AddField("Previous", fmt.Sprintf("%s — %s", result.Previous.Name, result.Previous.ArtistName()), false)
	}

	return builder.Build()
}

func trackLine(track *lastfm.RecentTrack) string {
	line := track.ArtistName()
	if album := track.AlbumName(); album != "" {
		line += " • " + album
	}

	return line
}

func recentEmbed(result *commands.RecentResult) discord.Embed {
	var sb strings.Builder
	for i, track := range result.Tracks {
		marker := fmt.Sprintf("`%2d.`", i+1)
		if track.NowPlaying() {
			marker = "` ▶.`"
		}

		fmt.Fprintf(&sb, "%s **%s** — %s\n", marker, track.Name, track.ArtistName())
	}

	return newEmbed().
		SetAuthorName("Recent tracks — " + result.Username).
		SetDescription(sb.String()).
		SetFooterText(fmt.Sprintf("%d total scrobbles", result.Total)).
		Build()
}

func playsEmbed(result *commands.PlaysResult) discord.Embed {
	return newEmbed().
		SetDescription(fmt.Sprintf("**%s** has **%d** scrobbles.", result.Username, result.Total)).
		Build()
}

func topArtistsEmbed(result *commands.TopArtistsResult) discord.Embed {
	var sb strings.Builder
	for i, artist := range result.Artists {
		fmt.Fprintf(&sb, "`%2d.` **%s** — %d plays\n", i+1, artist.Name, artist.PlayCount.Int())
	}

	return newEmbed().
		SetAuthorName(fmt.Sprintf("Top artists (%s) — %s", result.Period, result.Username)).
		SetDescription(sb.String()).
		Build()
}

func topAlbumsEmbed(result *commands.TopAlbumsResult) discord.Embed {
	var sb strings.Builder
	for i, album := range result.Albums {
		fmt.Fprintf(&sb, "`%2d.` **%s** by %s — %d plays\n", i+1, album.Name, album.ArtistName(), album.PlayCount.Int())
	}

	return newEmbed().
		SetAuthorName(fmt.Sprintf("Top albums (%s) — %s", result.Period, result.Username)).
		SetDescription(sb.String()).
		Build()
}

func topTracksEmbed(result *commands.TopTracksResult) discord.Embed {
	var sb strings.Builder
	for i, track := range result.Tracks {
		fmt.Fprintf(&sb, "`%2d.` **%s** by %s — %d plays\n", i+1, track.Name, track.ArtistName(), track.PlayCount.Int())
	}

	return newEmbed().
		SetAuthorName(fmt.Sprintf("Top tracks (%s) — %s", result.Period, result.Username)).
		SetDescription(sb.String()).
		Build()
}

func artistEmbed(result *commands.ArtistResult) discord.Embed {
	info := result.Info

	builder := newEmbed().
		SetTitle(info.Name).
		SetURL(info.URL).
		AddField("Listeners", fmt.Sprintf("%d", info.Stats.Listeners.Int()), true).
		AddField("Global plays", fmt.Sprintf("%d", info.Stats.PlayCount.Int()), true).
		AddField("Your plays", fmt.Sprintf("%d", info.Stats.UserPlayCount.Int()), true)

	if summary := utils.CompressAllWhitespace(info.Bio.Summary); summary != "" {
		builder.SetDescription(utils.TruncateString(summary, bioMaxLength))
	}

	return builder.Build()
}

func artistPlaysEmbed(result *commands.ArtistPlaysResult) discord.Embed {
	return newEmbed().
		SetDescription(fmt.Sprintf("**%s** has **%d** plays of **%s**.",
			result.Username, result.Plays, result.Artist)).
		Build()
}

func trackEmbed(result *commands.TrackResult) discord.Embed {
	info := result.Info

	builder := newEmbed().
		SetTitle(info.Name).
		SetURL(info.URL).
		SetDescription("by " + info.ArtistName()).
		AddField("Listeners", fmt.Sprintf("%d", info.Listeners.Int()), true).
		AddField("Global plays", fmt.Sprintf("%d", info.PlayCount.Int()), true).
		AddField("Your plays", fmt.Sprintf("%d", info.UserPlayCount.Int()), true)

	if album := info.AlbumTitle(); album != "" {
		builder.AddField("Album", album, false)
	}

	if url := info.AlbumImageURL(thumbnailSize); url != "" {
		builder.SetThumbnail(url)
	}

	return builder.Build()
}

func trackPlaysEmbed(result *commands.TrackPlaysResult) discord.Embed {
	return newEmbed().
		SetDescription(fmt.Sprintf("**%s** has **%d** plays of **%s** by **%s**.",
			result.Username, result.Plays, result.Track, result.Artist)).
		Build()
}

func albumEmbed(result *commands.AlbumResult) discord.Embed {
	info := result.Info

	builder := newEmbed().
		SetTitle(info.Name).
		SetURL(info.URL).
		SetDescription("by " + info.Artist).
		AddField("Listeners", fmt.Sprintf("%d", info.Listeners.Int()), true).
		AddField("Global plays", fmt.Sprintf("%d", info.PlayCount.Int()), true).
		AddField("Your plays", fmt.Sprintf("%d", info.UserPlayCount.Int()), true)

	if url := lastfm.ImageURL(info.Images, thumbnailSize); url != "" {
		builder.SetThumbnail(url)
	}

	return builder.Build()
}

func albumPlaysEmbed(result *commands.AlbumPlaysResult) discord.Embed {
	return newEmbed().
		SetDescription(fmt.Sprintf("**%s** has **%d** plays of **%s** by **%s**.",
			result.Username, result.Plays, result.Album, result.Artist)).
		Build()
}

func whoKnowsEmbed(title string, result *commands.WhoKnowsResult) discord.Embed {
	var sb strings.Builder
	for i, entry := range result.Entries {
		marker := fmt.Sprintf("`%2d.`", i+1)
		if result.CrownHolderID != 0 && entry.UserID == result.CrownHolderID {
			marker = "👑"
		}

		fmt.Fprintf(&sb, "%s %s (%s) — **%d** plays\n",
			marker, mention(entry.UserID), entry.Username, entry.Plays)
	}

	return newEmbed().
		SetTitle(fmt.Sprintf("%s %s", title, result.Subject)).
		SetDescription(sb.String()).
		Build()
}

func theftMessage(theft *crown.Theft) discord.MessageCreate {
	return discord.NewMessageCreateBuilder().
		SetContentf("👑 %s yoinked the **%s** crown from %s with **%d** plays!",
			mention(theft.NewHolderID), theft.ArtistName, mention(theft.OldHolderID), theft.NewPlayCount).
		Build()
}

func tasteEmbed(result *commands.TasteResult) discord.Embed {
	var sb strings.Builder

	fmt.Fprintf(&sb, "**%d%%** overlap — %d shared artists\n\n",
		result.Overlap.Percent, result.Overlap.SharedCount)

	for _, shared := range result.Overlap.Shared {
		fmt.Fprintf(&sb, "**%s** — %d vs %d plays\n", shared.Name, shared.PlaysA, shared.PlaysB)
	}

	return newEmbed().
		SetTitle(fmt.Sprintf("Taste: %s vs %s (%s)", result.UsernameA, result.UsernameB, result.Period)).
		SetDescription(sb.String()).
		Build()
}

func overviewEmbed(result *commands.OverviewResult) discord.Embed {
	builder := newEmbed().
		SetAuthorName(fmt.Sprintf("Overview (%s) — %s", result.Period, result.Username)).
		SetFooterText(fmt.Sprintf("%d total scrobbles", result.Total))

	if len(result.Artists) > 0 {
		var sb strings.Builder
		for _, artist := range result.Artists {
			fmt.Fprintf(&sb, "**%s** — %d plays\n", artist.Name, artist.PlayCount.Int())
		}

		builder.AddField("Artists", sb.String(), true)
	}

	if len(result.Albums) > 0 {
		var sb strings.Builder
		for _, album := range result.Albums {
			fmt.Fprintf(&sb, "**%s** — %d plays\n", album.Name, album.PlayCount.Int())
		}

		builder.AddField("Albums", sb.String(), true)
	}

	if len(result.Tracks) > 0 {
		var sb strings.Builder
		for _, track := range result.Tracks {
			fmt.Fprintf(&sb, "**%s** — %d plays\n", track.Name, track.PlayCount.Int())
		}

		builder.AddField("Tracks", sb.String(), true)
	}

	return builder.Build()
}

func streakEmbed(result *commands.StreakResult) discord.Embed {
	builder := newEmbed().
		SetAuthorName("Streak — " + result.Username)

	addStreak := func(label string, streak stats.Streak) {
		if streak.Length < 2 || streak.Name == "" {
			return
		}

		builder.AddField(label, fmt.Sprintf("**%s** — %d in a row", streak.Name, streak.Length), false)
	}

	addStreak("Artist", result.Streaks.Artist)
	addStreak("Album", result.Streaks.Album)
	addStreak("Track", result.Streaks.Track)

	if len(builder.Fields) == 0 {
		builder.SetDescription("No streak going right now.")
	}

	return builder.Build()
}

func serverTopEmbed(result *commands.ServerTopResult) discord.Embed {
	var sb strings.Builder
	for i, entry := range result.Entries {
		fmt.Fprintf(&sb, "`%2d.` **%s** — %d plays\n", i+1, entry.Name, entry.Plays)
	}

	return newEmbed().
		SetTitle("Server top " + string(result.Category)).
		SetDescription(sb.String()).
		SetFooterText(fmt.Sprintf("across %d listeners", result.Listeners)).
		Build()
}

func crownEmbed(record *types.CrownRecord) discord.Embed {
	return newEmbed().
		SetTitle("👑 " + record.ArtistDisplay).
		SetDescription(fmt.Sprintf("Held by %s with **%d** plays.",
			mention(record.HolderID), record.PlayCount)).
		Build()
}

func crownsEmbed(result *commands.CrownsResult) discord.Embed {
	var sb strings.Builder
	for _, record := range result.Records {
		fmt.Fprintf(&sb, "**%s** — %d plays\n", record.ArtistDisplay, record.PlayCount)
	}
	if sb.Len() == 0 {
		sb.WriteString("No crowns held.")
	}

	return newEmbed().
		SetTitle(fmt.Sprintf("Crowns held by %s", mention(result.HolderID))).
		SetDescription(sb.String()).
		SetFooterText(fmt.Sprintf("%d crowns", len(result.Records))).
		Build()
}

func serverCrownsEmbed(result *commands.ServerCrownsResult) discord.Embed {
	var sb strings.Builder
	for _, record := range result.Records {
		fmt.Fprintf(&sb, "**%s** — %s with %d plays\n",
			record.ArtistDisplay, mention(record.HolderID), record.PlayCount)
	}
	if sb.Len() == 0 {
		sb.WriteString("No crowns have been claimed yet. Try /whoknows.")
	}

	return newEmbed().
		SetTitle("Server crowns").
		SetDescription(sb.String()).
		SetFooterText(fmt.Sprintf("%d crowns", len(result.Records))).
		Build()
}

func topCrownsEmbed(result *commands.TopCrownsResult) discord.Embed {
	var sb strings.Builder
	for i, count := range result.Counts {
		fmt.Fprintf(&sb, "`%2d.` %s — **%d** crowns\n", i+1, mention(count.HolderID), count.Crowns)
	}
	if sb.Len() == 0 {
		sb.WriteString("No crowns have been claimed yet. Try /whoknows.")
	}

	return newEmbed().
		SetTitle("Crown leaderboard").
		SetDescription(sb.String()).
		Build()
}
