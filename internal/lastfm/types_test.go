package lastfm_test

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrobblyx/crowned/internal/lastfm"
)

func TestNumberUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		payload  string
		expected int
	}{
		{name: "quoted string", payload: `"42"`, expected: 42},
		{name: "bare number", payload: `42`, expected: 42},
		{name: "empty string", payload: `""`, expected: 0},
		{name: "null", payload: `null`, expected: 0},
		{name: "non-numeric string", payload: `"many"`, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var n lastfm.Number
			require.NoError(t, sonic.Unmarshal([]byte(tt.payload), &n))
			assert.Equal(t, tt.expected, n.Int())
		})
	}
}

func TestTrackListUnmarshal(t *testing.T) {
	t.Parallel()

	t.Run("array of tracks", func(t *testing.T) {
		t.Parallel()

		payload := `[
			{"name": "Airbag", "artist": {"#text": "Radiohead"}},
			{"name": "Archangel", "artist": {"#text": "Burial"}}
		]`

		var list lastfm.TrackList
		require.NoError(t, sonic.Unmarshal([]byte(payload), &list))
		require.Len(t, list, 2)
		assert.Equal(t, "Airbag", list[0].Name)
		assert.Equal(t, "Burial", list[1].ArtistName())
	})

	t.Run("single track as object", func(t *testing.T) {
		t.Parallel()

		payload := `{"name": "Airbag", "artist": {"#text": "Radiohead"}}`

		var list lastfm.TrackList
		require.NoError(t, sonic.Unmarshal([]byte(payload), &list))
		require.Len(t, list, 1)
		assert.Equal(t, "Airbag", list[0].Name)
		assert.Equal(t, "Radiohead", list[0].ArtistName())
	})
}

func TestRecentTracksDecoding(t *testing.T) {
	t.Parallel()

	payload := `{
		"track": [
			{
				"name": "Idioteque",
				"artist": {"#text": "Radiohead"},
				"album": {"#text": "Kid A"},
				"@attr": {"nowplaying": "true"}
			},
			{
				"name": "Archangel",
				"artist": {"#text": "Burial"},
				"album": {"#text": "Untrue"}
			}
		],
		"@attr": {"total": "10432"}
	}`

	var recent lastfm.RecentTracks
	require.NoError(t, sonic.Unmarshal([]byte(payload), &recent))

	require.Len(t, recent.Tracks, 2)
	assert.True(t, recent.Tracks[0].NowPlaying())
	assert.False(t, recent.Tracks[1].NowPlaying())
	assert.Equal(t, "Kid A", recent.Tracks[0].AlbumName())
	assert.Equal(t, 10432, recent.Attr.Total.Int())
}

func TestArtistInfoDecoding(t *testing.T) {
	t.Parallel()

	payload := `{
		"name": "Radiohead",
		"url": "https://www.last.fm/music/Radiohead",
		"stats": {
			"listeners": "5000000",
			"playcount": "500000000",
			"userplaycount": "1337"
		},
		"bio": {"summary": "An English rock band."}
	}`

	var info lastfm.ArtistInfo
	require.NoError(t, sonic.Unmarshal([]byte(payload), &info))

	assert.Equal(t, "Radiohead", info.Name)
	assert.Equal(t, 5000000, info.Stats.Listeners.Int())
	assert.Equal(t, 1337, info.Stats.UserPlayCount.Int())
	assert.Equal(t, "An English rock band.", info.Bio.Summary)
}

func TestImageURL(t *testing.T) {
	t.Parallel()

	images := []lastfm.Image{
		{Size: "small", URL: "https://img/small.png"},
		{Size: "large", URL: "https://img/large.png"},
		{Size: "extralarge", URL: ""},
	}

	assert.Equal(t, "https://img/large.png", lastfm.ImageURL(images, "large"))
	assert.Empty(t, lastfm.ImageURL(images, "extralarge"), "blank URLs are treated as absent")
	assert.Empty(t, lastfm.ImageURL(images, "mega"))
}

func TestTrackInfoAlbumHelpers(t *testing.T) {
	t.Parallel()

	var noAlbum lastfm.TrackInfo
	assert.Empty(t, noAlbum.AlbumTitle())
	assert.Empty(t, noAlbum.AlbumImageURL("large"))

	payload := `{
		"name": "Airbag",
		"artist": {"name": "Radiohead"},
		"album": {
			"title": "OK Computer",
			"image": [{"size": "large", "#text": "https://img/ok.png"}]
		}
	}`

	var info lastfm.TrackInfo
	require.NoError(t, sonic.Unmarshal([]byte(payload), &info))
	assert.Equal(t, "OK Computer", info.AlbumTitle())
	assert.Equal(t, "https://img/ok.png", info.AlbumImageURL("large"))
}
