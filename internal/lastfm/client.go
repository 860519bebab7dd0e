package lastfm

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/jaxron/axonet/pkg/client"
	"go.uber.org/zap"
)

// BaseURL is the Last.fm web service root.
const BaseURL = "https://ws.audioscrobbler.com/2.0/"

// Last.fm API error code for missing entities (unknown artist/track/album/user).
const apiErrNotFound = 6

// Client issues typed queries against the Last.fm API. Each method performs
// exactly one outbound request; retries, caching and rate limiting belong to
// the HTTP client's middleware chain, not here.
type Client struct {
	http    *client.Client
	apiKey  string
	baseURL string
	logger  *zap.Logger
}

// NewClient creates a Last.fm API client on top of an axonet HTTP client.
func NewClient(httpClient *client.Client, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		http:    httpClient,
		apiKey:  apiKey,
		baseURL: BaseURL,
		logger:  logger.Named("lastfm"),
	}
}

// call performs one API request and decodes the response into out.
// HTTP-level failures and API error payloads are folded into *Error.
func (c *Client) call(ctx context.Context, method string, params map[string]string, out any) error {
	req := c.http.NewRequest().
		Method(http.MethodGet).
		URL(c.baseURL).
		Query("method", method).
		Query("api_key", c.apiKey).
		Query("format", "json")
	for k, v := range params {
		req = req.Query(k, v)
	}

	resp, err := req.Do(ctx)
	if err != nil {
		return &Error{Kind: KindTransport, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Message: err.Error()}
	}

	// The API reports its own failures as 200s with an error payload.
	var apiErr struct {
		Code    int    `json:"error"`
		Message string `json:"message"`
	}
	if err := sonic.Unmarshal(body, &apiErr); err == nil && apiErr.Code != 0 {
		kind := KindTransport
		if apiErr.Code == apiErrNotFound {
			kind = KindNotFound
		}
		return &Error{Kind: kind, Message: apiErr.Message}
	}

	if resp.StatusCode != http.StatusOK {
		return &Error{Kind: KindTransport, Message: http.StatusText(resp.StatusCode)}
	}

	if err := sonic.Unmarshal(body, out); err != nil {
		c.logger.Debug("Failed to decode response",
			zap.String("method", method),
			zap.Error(err))
		return &Error{Kind: KindDecode, Message: err.Error()}
	}

	return nil
}

// RecentTracks fetches a user's listening history, most recent first.
// The first entry may be the currently playing track.
func (c *Client) RecentTracks(ctx context.Context, user string, limit int) (*RecentTracks, error) {
	var envelope struct {
		RecentTracks *RecentTracks `json:"recenttracks"`
	}
	err := c.call(ctx, "user.getrecenttracks", map[string]string{
		"user":  user,
		"limit": strconv.Itoa(limit),
	}, &envelope)
	if err != nil {
		return nil, err
	}
	if envelope.RecentTracks == nil {
		return nil, &Error{Kind: KindDecode, Message: "missing recenttracks payload"}
	}
	return envelope.RecentTracks, nil
}

// CurrentTrack returns the user's now-playing or last-played track,
// or nil when the user has no history at all.
func (c *Client) CurrentTrack(ctx context.Context, user string) (*RecentTrack, error) {
	recent, err := c.RecentTracks(ctx, user, 1)
	if err != nil {
		return nil, err
	}
	if len(recent.Tracks) == 0 {
		return nil, nil
	}
	return &recent.Tracks[0], nil
}

// TopArtists fetches a user's most played artists for the period.
func (c *Client) TopArtists(ctx context.Context, user string, period Period, limit int) (*TopArtists, error) {
	var envelope struct {
		TopArtists *TopArtists `json:"topartists"`
	}
	err := c.call(ctx, "user.gettopartists", map[string]string{
		"user":   user,
		"period": period.APIValue(),
		"limit":  strconv.Itoa(limit),
	}, &envelope)
	if err != nil {
		return nil, err
	}
	if envelope.TopArtists == nil {
		return &TopArtists{}, nil
	}
	return envelope.TopArtists, nil
}

// TopAlbums fetches a user's most played albums for the period.
func (c *Client) TopAlbums(ctx context.Context, user string, period Period, limit int) (*TopAlbums, error) {
	var envelope struct {
		TopAlbums *TopAlbums `json:"topalbums"`
	}
	err := c.call(ctx, "user.gettopalbums", map[string]string{
		"user":   user,
		"period": period.APIValue(),
		"limit":  strconv.Itoa(limit),
	}, &envelope)
	if err != nil {
		return nil, err
	}
	if envelope.TopAlbums == nil {
		return &TopAlbums{}, nil
	}
	return envelope.TopAlbums, nil
}

// TopTracks fetches a user's most played tracks for the period.
func (c *Client) TopTracks(ctx context.Context, user string, period Period, limit int) (*TopTracks, error) {
	var envelope struct {
		TopTracks *TopTracks `json:"toptracks"`
	}
	err := c.call(ctx, "user.gettoptracks", map[string]string{
		"user":   user,
		"period": period.APIValue(),
		"limit":  strconv.Itoa(limit),
	}, &envelope)
	if err != nil {
		return nil, err
	}
	if envelope.TopTracks == nil {
		return &TopTracks{}, nil
	}
	return envelope.TopTracks, nil
}

// ArtistInfo fetches artist metadata plus the named user's play count.
func (c *Client) ArtistInfo(ctx context.Context, artist, username string) (*ArtistInfo, error) {
	var envelope struct {
		Artist *ArtistInfo `json:"artist"`
	}
	err := c.call(ctx, "artist.getInfo", map[string]string{
		"artist":      artist,
		"username":    username,
		"autocorrect": "1",
	}, &envelope)
	if err != nil {
		return nil, err
	}
	if envelope.Artist == nil {
		return nil, &Error{Kind: KindNotFound, Message: "artist not found: " + artist}
	}
	return envelope.Artist, nil
}

// TrackInfo fetches track metadata plus the named user's play count.
func (c *Client) TrackInfo(ctx context.Context, artist, track, username string) (*TrackInfo, error) {
	var envelope struct {
		Track *TrackInfo `json:"track"`
	}
	err := c.call(ctx, "track.getInfo", map[string]string{
		"artist":      artist,
		"track":       track,
		"username":    username,
		"autocorrect": "1",
	}, &envelope)
	if err != nil {
		return nil, err
	}
	if envelope.Track == nil {
		return nil, &Error{Kind: KindNotFound, Message: "track not found: " + track}
	}
	return envelope.Track, nil
}

// AlbumInfo fetches album metadata plus the named user's play count.
func (c *Client) AlbumInfo(ctx context.Context, artist, album, username string) (*AlbumInfo, error) {
	var envelope struct {
		Album *AlbumInfo `json:"album"`
	}
	err := c.call(ctx, "album.getInfo", map[string]string{
		"artist":      artist,
		"album":       album,
		"username":    username,
		"autocorrect": "1",
	}, &envelope)
	if err != nil {
		return nil, err
	}
	if envelope.Album == nil {
		return nil, &Error{Kind: KindNotFound, Message: "album not found: " + album}
	}
	return envelope.Album, nil
}
