package spotify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	spotifyapi "github.com/zmb3/spotify/v2"

	"spotiplus/models"
)

// ErrNotConnected is returned when a catalog call is made before a user
// session has been established through the oauth callback.
var ErrNotConnected = errors.New("spotify session not connected")

const pageSize = 100

// Client is the remote catalog. It is constructed disconnected and becomes
// usable once Connect installs an authenticated session; all methods are
// safe for concurrent use.
type Client struct {
	mu      sync.RWMutex
	api     *spotifyapi.Client
	userID  string
	limiter *RateLimiter
}

func NewClient() *Client {
	return &Client{limiter: NewRateLimiter()}
}

// Connect installs an authenticated session, replacing any previous one.
func (c *Client) Connect(api *spotifyapi.Client) {
	c.mu.Lock()
	c.api = api
	c.userID = ""
	c.mu.Unlock()
}

func (c *Client) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.api != nil
}

func (c *Client) session() (*spotifyapi.Client, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.api == nil {
		return nil, ErrNotConnected
	}
	return c.api, nil
}

// PlaylistTracks fetches every track of a remote playlist, following
// pagination. Episodes and removed items are skipped.
func (c *Client) PlaylistTracks(ctx context.Context, playlistID string) ([]models.Track, error) {
	api, err := c.session()
	if err != nil {
		return nil, err
	}

	var tracks []models.Track
	offset := 0
	for {
		c.limiter.Wait()
		page, err := api.GetPlaylistItems(ctx, spotifyapi.ID(playlistID),
			spotifyapi.Limit(pageSize), spotifyapi.Offset(offset))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch items of playlist %s: %w", playlistID, err)
		}

		for _, item := range page.Items {
			if item.Track.Track == nil {
				continue
			}
			tracks = append(tracks, trackFromFull(item.Track.Track))
		}

		if len(page.Items) < pageSize {
			break
		}
		offset += pageSize
	}

	return tracks, nil
}

// Track fetches one track with full detail, including popularity.
func (c *Client) Track(ctx context.Context, id string) (*models.Track, error) {
	api, err := c.session()
	if err != nil {
		return nil, err
	}

	c.limiter.Wait()
	ft, err := api.GetTrack(ctx, spotifyapi.ID(id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch track %s: %w", id, err)
	}

	t := trackFromFull(ft)
	return &t, nil
}

// Album fetches one album with full detail.
func (c *Client) Album(ctx context.Context, id string) (*models.Album, error) {
	api, err := c.session()
	if err != nil {
		return nil, err
	}

	c.limiter.Wait()
	fa, err := api.GetAlbum(ctx, spotifyapi.ID(id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch album %s: %w", id, err)
	}

	a := albumFromFull(fa)
	return &a, nil
}

// Artist fetches one artist with full detail.
func (c *Client) Artist(ctx context.Context, id string) (*models.Artist, error) {
	api, err := c.session()
	if err != nil {
		return nil, err
	}

	c.limiter.Wait()
	fa, err := api.GetArtist(ctx, spotifyapi.ID(id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artist %s: %w", id, err)
	}

	a := artistFromFull(fa)
	return &a, nil
}

// AlbumTrackIDs lists the track ids of an album in a single call, without
// per-track detail. Cheap enough to run on every album status check.
func (c *Client) AlbumTrackIDs(ctx context.Context, albumID string) ([]string, error) {
	api, err := c.session()
	if err != nil {
		return nil, err
	}

	c.limiter.Wait()
	fa, err := api.GetAlbum(ctx, spotifyapi.ID(albumID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch album %s track list: %w", albumID, err)
	}

	ids := make([]string, 0, len(fa.Tracks.Tracks))
	for _, st := range fa.Tracks.Tracks {
		ids = append(ids, string(st.ID))
	}
	return ids, nil
}

// CreatePlaylist creates a private playlist on the current user's account
// and returns its remote id.
func (c *Client) CreatePlaylist(ctx context.Context, name string) (string, error) {
	api, err := c.session()
	if err != nil {
		return "", err
	}

	c.mu.RLock()
	userID := c.userID
	c.mu.RUnlock()

	if userID == "" {
		c.limiter.Wait()
		user, err := api.CurrentUser(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to resolve current user: %w", err)
		}
		userID = user.ID
		c.mu.Lock()
		c.userID = userID
		c.mu.Unlock()
	}

	c.limiter.Wait()
	pl, err := api.CreatePlaylistForUser(ctx, userID, name, "", false, false)
	if err != nil {
		return "", fmt.Errorf("failed to create playlist %q: %w", name, err)
	}
	return string(pl.ID), nil
}

// AddPlaylistTracks appends the given track URIs to a remote playlist. The
// caller is responsible for keeping each batch within the API limit.
func (c *Client) AddPlaylistTracks(ctx context.Context, playlistID string, uris []string) error {
	api, err := c.session()
	if err != nil {
		return err
	}

	ids := make([]spotifyapi.ID, 0, len(uris))
	for _, uri := range uris {
		ids = append(ids, spotifyapi.ID(strings.TrimPrefix(uri, "spotify:track:")))
	}

	c.limiter.Wait()
	if _, err := api.AddTracksToPlaylist(ctx, spotifyapi.ID(playlistID), ids...); err != nil {
		return fmt.Errorf("failed to add %d tracks to playlist %s: %w", len(ids), playlistID, err)
	}
	return nil
}

func trackFromFull(ft *spotifyapi.FullTrack) models.Track {
	authors := make([]string, 0, len(ft.Artists))
	authorIDs := make(models.StringList, 0, len(ft.Artists))
	for _, a := range ft.Artists {
		authors = append(authors, a.Name)
		authorIDs = append(authorIDs, string(a.ID))
	}

	imageURL := ""
	if len(ft.Album.Images) > 0 {
		imageURL = ft.Album.Images[0].URL
	}

	return models.Track{
		ID:         string(ft.ID),
		Title:      ft.Name,
		Author:     strings.Join(authors, ", "),
		AuthorIDs:  authorIDs,
		AlbumID:    string(ft.Album.ID),
		AlbumName:  ft.Album.Name,
		Duration:   (int(ft.Duration) + 500) / 1000,
		ImageURL:   imageURL,
		Popularity: int(ft.Popularity),
		URI:        string(ft.URI),
	}
}

func albumFromFull(fa *spotifyapi.FullAlbum) models.Album {
	imageURL := ""
	if len(fa.Images) > 0 {
		imageURL = fa.Images[0].URL
	}

	artistID := ""
	artistName := ""
	if len(fa.Artists) > 0 {
		artistID = string(fa.Artists[0].ID)
		artistName = fa.Artists[0].Name
	}

	return models.Album{
		ID:          string(fa.ID),
		Name:        fa.Name,
		ArtistID:    artistID,
		ArtistName:  artistName,
		TotalTracks: int(fa.Tracks.Total),
		ImageURL:    imageURL,
		Popularity:  int(fa.Popularity),
		URI:         string(fa.URI),
	}
}

func artistFromFull(fa *spotifyapi.FullArtist) models.Artist {
	imageURL := ""
	if len(fa.Images) > 0 {
		imageURL = fa.Images[0].URL
	}

	return models.Artist{
		ID:         string(fa.ID),
		Name:       fa.Name,
		ImageURL:   imageURL,
		Popularity: int(fa.Popularity),
		URI:        string(fa.URI),
	}
}
