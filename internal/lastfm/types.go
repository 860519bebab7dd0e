package lastfm

import (
	"bytes"
	"strconv"

	"github.com/bytedance/sonic"
)

// Number decodes Last.fm numeric fields, which arrive either as JSON numbers
// or as quoted strings depending on the endpoint. Missing, empty and null
// values decode to zero rather than failing the whole payload.
type Number int

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Some endpoints report totals like "12.5M listeners" in edge cases;
		// treat anything non-numeric as absent.
		*n = 0
		return nil
	}

	*n = Number(v)
	return nil
}

// Int returns the value as a plain int.
func (n Number) Int() int {
	return int(n)
}

// Image is one entry of a Last.fm image set.
type Image struct {
	Size string `json:"size"`
	URL  string `json:"#text"`
}

// ImageURL picks the URL for the requested size, or empty if absent.
func ImageURL(images []Image, size string) string {
	for _, img := range images {
		if img.Size == size && img.URL != "" {
			return img.URL
		}
	}
	return ""
}

// textField decodes the {"#text": "..."} objects used by user.getrecenttracks.
type textField struct {
	Text string `json:"#text"`
}

// namedEntity decodes the {"name": "..."} artist sub-objects used by top lists
// and the *.getInfo endpoints.
type namedEntity struct {
	Name string `json:"name"`
}

// RecentTrack is a single play from a user's listening history.
type RecentTrack struct {
	Name   string    `json:"name"`
	URL    string    `json:"url"`
	Artist textField `json:"artist"`
	Album  textField `json:"album"`
	Images []Image   `json:"image"`
	Attr   struct {
		NowPlaying string `json:"nowplaying"`
	} `json:"@attr"`
}

// ArtistName returns the track's artist display name.
func (t *RecentTrack) ArtistName() string { return t.Artist.Text }

// AlbumName returns the track's album display name, possibly empty.
func (t *RecentTrack) AlbumName() string { return t.Album.Text }

// NowPlaying reports whether the entry is the currently playing track rather
// than a completed scrobble.
func (t *RecentTrack) NowPlaying() bool { return t.Attr.NowPlaying == "true" }

// TrackList tolerates the API quirk where a single-element "track" field is
// serialized as an object instead of a one-element array.
type TrackList []RecentTrack

// UnmarshalJSON implements json.Unmarshaler.
func (l *TrackList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var single RecentTrack
		if err := sonic.Unmarshal(trimmed, &single); err != nil {
			return err
		}
		*l = TrackList{single}
		return nil
	}

	var many []RecentTrack
	if err := sonic.Unmarshal(trimmed, &many); err != nil {
		return err
	}
	*l = TrackList(many)
	return nil
}

// RecentTracks is the user.getrecenttracks response body.
type RecentTracks struct {
	Tracks TrackList `json:"track"`
	Attr   struct {
		Total Number `json:"total"`
	} `json:"@attr"`
}

// TopArtist is one entry of a user's top-artist list.
type TopArtist struct {
	Name      string `json:"name"`
	PlayCount Number `json:"playcount"`
}

// TopArtists is the user.gettopartists response body.
type TopArtists struct {
	Artists []TopArtist `json:"artist"`
}

// TopAlbum is one entry of a user's top-album list.
type TopAlbum struct {
	Name      string      `json:"name"`
	Artist    namedEntity `json:"artist"`
	PlayCount Number      `json:"playcount"`
}

// ArtistName returns the album's artist display name.
func (a *TopAlbum) ArtistName() string { return a.Artist.Name }

// TopAlbums is the user.gettopalbums response body.
type TopAlbums struct {
	Albums []TopAlbum `json:"album"`
}

// TopTrack is one entry of a user's top-track list.
type TopTrack struct {
	Name      string      `json:"name"`
	Artist    namedEntity `json:"artist"`
	PlayCount Number      `json:"playcount"`
}

// ArtistName returns the track's artist display name.
func (t *TopTrack) ArtistName() string { return t.Artist.Name }

// TopTracks is the user.gettoptracks response body.
type TopTracks struct {
	Tracks []TopTrack `json:"track"`
}

// ArtistInfo is the artist.getInfo response body, including the per-user play
// count when a username was supplied with the query.
type ArtistInfo struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Stats struct {
		Listeners     Number `json:"listeners"`
		PlayCount     Number `json:"playcount"`
		UserPlayCount Number `json:"userplaycount"`
	} `json:"stats"`
	Bio struct {
		Summary string `json:"summary"`
	} `json:"bio"`
}

// trackAlbum is the album sub-object of track.getInfo.
type trackAlbum struct {
	Title  string  `json:"title"`
	Images []Image `json:"image"`
}

// TrackInfo is the track.getInfo response body.
type TrackInfo struct {
	Name          string      `json:"name"`
	URL           string      `json:"url"`
	Artist        namedEntity `json:"artist"`
	Album         *trackAlbum `json:"album"`
	Listeners     Number      `json:"listeners"`
	PlayCount     Number      `json:"playcount"`
	UserPlayCount Number      `json:"userplaycount"`
}

// ArtistName returns the track's artist display name.
func (t *TrackInfo) ArtistName() string { return t.Artist.Name }

// AlbumTitle returns the track's album title, or empty when Last.fm has none.
func (t *TrackInfo) AlbumTitle() string {
	if t.Album == nil {
		return ""
	}
	return t.Album.Title
}

// AlbumImageURL returns the track album art URL for the given size.
func (t *TrackInfo) AlbumImageURL(size string) string {
	if t.Album == nil {
		return ""
	}
	return ImageURL(t.Album.Images, size)
}

// AlbumInfo is the album.getInfo response body.
type AlbumInfo struct {
	Name          string  `json:"name"`
	Artist        string  `json:"artist"`
	URL           string  `json:"url"`
	Images        []Image `json:"image"`
	Listeners     Number  `json:"listeners"`
	PlayCount     Number  `json:"playcount"`
	UserPlayCount Number  `json:"userplaycount"`
}
