package bot

import (
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func definitionsByName(t *testing.T) map[string]discord.SlashCommandCreate {
	t.Helper()

	byName := make(map[string]discord.SlashCommandCreate)
	for _, def := range commandDefinitions() {
		cmd, ok := def.(discord.SlashCommandCreate)
		require.True(t, ok)
		byName[cmd.Name] = cmd
	}

	return byName
}

func findUserOption(cmd discord.SlashCommandCreate) (discord.ApplicationCommandOptionUser, bool) {
	for _, opt := range cmd.Options {
		if user, ok := opt.(discord.ApplicationCommandOptionUser); ok && user.Name == "user" {
			return user, true
		}
	}

	return discord.ApplicationCommandOptionUser{}, false
}

func TestProfileCommandsAcceptUserOption(t *testing.T) {
	t.Parallel()

	byName := definitionsByName(t)

	profileCommands := []string{
		"fm", "recent", "plays", "toptracks", "topalbums", "topartists",
		"overview", "streak", "crowns",
	}
	for _, name := range profileCommands {
		cmd, ok := byName[name]
		require.True(t, ok, name)

		user, ok := findUserOption(cmd)
		require.True(t, ok, "%s must take an optional user", name)
		assert.False(t, user.Required, name)
	}
}

func TestTasteRequiresUserOption(t *testing.T) {
	t.Parallel()

	byName := definitionsByName(t)

	user, ok := findUserOption(byName["taste"])
	require.True(t, ok)
	assert.True(t, user.Required)
}
