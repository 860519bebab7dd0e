package bot

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/json"

	"github.com/scrobblyx/crowned/internal/lastfm"
)

// RecentDefaultLimit is how many tracks /recent shows without a limit option.
const RecentDefaultLimit = 10

// TopListLimit is how many entries the personal top-list commands show.
const TopListLimit = 10

// periodChoices builds the period option choices from the valid period set.
func periodChoices() []discord.ApplicationCommandOptionChoiceString {
	periods := lastfm.Periods()
	choices := make([]discord.ApplicationCommandOptionChoiceString, len(periods))
	for i, p := range periods {
		choices[i] = discord.ApplicationCommandOptionChoiceString{
			Name:  string(p),
			Value: string(p),
		}
	}

	return choices
}

// periodOption is the shared optional period selector.
func periodOption() discord.ApplicationCommandOptionString {
	return discord.ApplicationCommandOptionString{
		Name:        "period",
		Description: "Time window for the query",
		Choices:     periodChoices(),
	}
}

// queryOption is the shared optional query string. Blank queries fall back to
// the caller's current track.
func queryOption(description string) discord.ApplicationCommandOptionString {
	return discord.ApplicationCommandOptionString{
		Name:        "query",
		Description: description,
	}
}

// userOption is the shared optional member selector. Commands that take it
// run against the chosen member instead of the caller.
func userOption() discord.ApplicationCommandOptionUser {
	return discord.ApplicationCommandOptionUser{
		Name:        "user",
		Description: "Member to show, blank for yourself",
	}
}

// commandDefinitions lists every slash command the bot registers.
func commandDefinitions() []discord.ApplicationCommandCreate {
	return []discord.ApplicationCommandCreate{
		discord.SlashCommandCreate{
			Name:        "setfm",
			Description: "Link your Last.fm account",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "username",
					Description: "Your Last.fm username",
					Required:    true,
				},
			},
		},
		discord.SlashCommandCreate{
			Name:        "fm",
			Description: "Show what you're listening to",
			Options:     []discord.ApplicationCommandOption{userOption()},
		},
		discord.SlashCommandCreate{
			Name:        "recent",
			Description: "Show your recently played tracks",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionInt{
					Name:        "limit",
					Description: "How many tracks to show",
					MinValue:    json.Ptr(1),
					MaxValue:    json.Ptr(25),
				},
				userOption(),
			},
		},
		discord.SlashCommandCreate{
			Name:        "plays",
			Description: "Show your total scrobble count",
			Options:     []discord.ApplicationCommandOption{userOption()},
		},
		discord.SlashCommandCreate{
			Name:        "toptracks",
			Description: "Show your most played tracks",
			Options:     []discord.ApplicationCommandOption{periodOption(), userOption()},
		},
		discord.SlashCommandCreate{
			Name:        "topalbums",
			Description: "Show your most played albums",
			Options:     []discord.ApplicationCommandOption{periodOption(), userOption()},
		},
		discord.SlashCommandCreate{
			Name:        "topartists",
			Description: "Show your most played artists",
			Options:     []discord.ApplicationCommandOption{periodOption(), userOption()},
		},
		discord.SlashCommandCreate{
			Name:        "track",
			Description: "Show track info",
			Options: []discord.ApplicationCommandOption{
				queryOption("Track as 'Artist - Title', blank for your current track"),
			},
		},
		discord.SlashCommandCreate{
			Name:        "trackplays",
			Description: "Show your play count for a track",
			Options: []discord.ApplicationCommandOption{
				queryOption("Track as 'Artist - Title', blank for your current track"),
			},
		},
		discord.SlashCommandCreate{
			Name:        "artist",
			Description: "Show artist info",
			Options: []discord.ApplicationCommandOption{
				queryOption("Artist name, blank for your current track's artist"),
			},
		},
		discord.SlashCommandCreate{
			Name:        "artistplays",
			Description: "Show your play count for an artist",
			Options: []discord.ApplicationCommandOption{
				queryOption("Artist name, blank for your current track's artist"),
			},
		},
		discord.SlashCommandCreate{
			Name:        "album",
			Description: "Show album info",
			Options: []discord.ApplicationCommandOption{
				queryOption("Album as 'Artist - Title', blank for your current track's album"),
			},
		},
		discord.SlashCommandCreate{
			Name:        "albumplays",
			Description: "Show your play count for an album",
			Options: []discord.ApplicationCommandOption{
				queryOption("Album as 'Artist - Title', blank for your current track's album"),
			},
		},
		discord.SlashCommandCreate{
			Name:        "whoknows",
			Description: "Rank this server's listeners of an artist",
			Options: []discord.ApplicationCommandOption{
				queryOption("Artist name, blank for your current track's artist"),
			},
		},
		discord.SlashCommandCreate{
			Name:        "whoknowstrack",
			Description: "Rank this server's listeners of a track",
			Options: []discord.ApplicationCommandOption{
				queryOption("Track as 'Artist - Title', blank for your current track"),
			},
		},
		discord.SlashCommandCreate{
			Name:        "whoknowsalbum",
			Description: "Rank this server's listeners of an album",
			Options: []discord.ApplicationCommandOption{
				queryOption("Album as 'Artist - Title', blank for your current track's album"),
			},
		},
		discord.SlashCommandCreate{
			Name:        "taste",
			Description: "Compare your top artists with another member",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionUser{
					Name:        "user",
					Description: "Member to compare with",
					Required:    true,
				},
				periodOption(),
			},
		},
		discord.SlashCommandCreate{
			Name:        "overview",
			Description: "Show a summary of your listening",
			Options:     []discord.ApplicationCommandOption{periodOption(), userOption()},
		},
		discord.SlashCommandCreate{
			Name:        "streak",
			Description: "Show your current listening streaks",
			Options:     []discord.ApplicationCommandOption{userOption()},
		},
		discord.SlashCommandCreate{
			Name:        "serverartists",
			Description: "Show this server's most played artists",
		},
		discord.SlashCommandCreate{
			Name:        "serveralbums",
			Description: "Show this server's most played albums",
		},
		discord.SlashCommandCreate{
			Name:        "servertracks",
			Description: "Show this server's most played tracks",
		},
		discord.SlashCommandCreate{
			Name:        "crown",
			Description: "Show who holds the crown for an artist",
			Options: []discord.ApplicationCommandOption{
				queryOption("Artist name, blank for your current track's artist"),
			},
		},
		discord.SlashCommandCreate{
			Name:        "crowns",
			Description: "Show the crowns a member holds",
			Options:     []discord.ApplicationCommandOption{userOption()},
		},
		discord.SlashCommandCreate{
			Name:        "servercrowns",
			Description: "Show every crown in this server",
		},
		discord.SlashCommandCreate{
			Name:        "topcrowns",
			Description: "Show this server's crown leaderboard",
		},
	}
}
