package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scrobblyx/crowned/internal/commands"
	"github.com/scrobblyx/crowned/internal/stats"
)

func TestWhoKnowsEmbedCrownMarker(t *testing.T) {
	t.Parallel()

	entries := []stats.RankedEntry{
		{UserID: 1, Username: "alice_fm", Plays: 50},
		{UserID: 2, Username: "bob_fm", Plays: 40},
	}

	t.Run("holder gets the marker", func(t *testing.T) {
		t.Parallel()

		embed := whoKnowsEmbed("Who knows", &commands.WhoKnowsResult{
			Subject:       "Radiohead",
			Entries:       entries,
			CrownHolderID: 1,
		})

		lines := strings.Split(strings.TrimSpace(embed.Description), "\n")
		assert.Contains(t, lines[0], "👑")
		assert.NotContains(t, lines[1], "👑")
	})

	t.Run("holder below rank one keeps the marker", func(t *testing.T) {
		t.Parallel()

		embed := whoKnowsEmbed("Who knows", &commands.WhoKnowsResult{
			Subject:       "Radiohead",
			Entries:       entries,
			CrownHolderID: 2,
		})

		lines := strings.Split(strings.TrimSpace(embed.Description), "\n")
		assert.NotContains(t, lines[0], "👑")
		assert.Contains(t, lines[1], "👑")
	})

	t.Run("no holder means no marker", func(t *testing.T) {
		t.Parallel()

		embed := whoKnowsEmbed("Who knows track", &commands.WhoKnowsResult{
			Subject: "Radiohead - Airbag",
			Entries: entries,
		})

		assert.NotContains(t, embed.Description, "👑")
	})
}
