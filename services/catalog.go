package services

import (
	"context"
	"errors"

	"spotiplus/models"
	"spotiplus/spotify"
)

// Catalog is the remote side of the mirror. The concrete implementation
// lives in the spotify package; services only ever see this interface, which
// keeps every remote interaction replaceable in tests.
type Catalog interface {
	// PlaylistTracks fetches every track of a remote playlist.
	PlaylistTracks(ctx context.Context, playlistID string) ([]models.Track, error)
	// Track fetches one track with full detail, including popularity.
	Track(ctx context.Context, id string) (*models.Track, error)
	// Album fetches one album with full detail.
	Album(ctx context.Context, id string) (*models.Album, error)
	// Artist fetches one artist with full detail.
	Artist(ctx context.Context, id string) (*models.Artist, error)
	// AlbumTrackIDs lists an album's track ids without per-track detail.
	AlbumTrackIDs(ctx context.Context, albumID string) ([]string, error)
	// CreatePlaylist creates a remote playlist and returns its id.
	CreatePlaylist(ctx context.Context, name string) (string, error)
	// AddPlaylistTracks appends track URIs to a remote playlist.
	AddPlaylistTracks(ctx context.Context, playlistID string, uris []string) error
}

// fatalCatalog reports remote errors that retrying with the next entity
// cannot recover from; per-entity recovery loops abort on these.
func fatalCatalog(err error) bool {
	return errors.Is(err, spotify.ErrNotConnected) || errors.Is(err, context.Canceled)
}
