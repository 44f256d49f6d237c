package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"spotiplus/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Kind names the four persisted collections.
type Kind string

const (
	KindTrack    Kind = "musics"
	KindAlbum    Kind = "albums"
	KindArtist   Kind = "artists"
	KindPlaylist Kind = "playlists"
)

// Store wraps all local persistence. Writes are insert-or-replace by primary
// key; partial updates go through the Merge methods, which preserve fields
// the patch does not set.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// IsPresent reports whether a record with the given id exists in the
// collection.
func (s *Store) IsPresent(kind Kind, id interface{}) (bool, error) {
	var count int64
	if err := s.db.Table(string(kind)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check presence in %s: %w", kind, err)
	}
	return count > 0, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Tracks

func (s *Store) PutTrack(t *models.Track) error {
	if err := s.db.Save(t).Error; err != nil {
		return fmt.Errorf("failed to save track %s: %w", t.ID, err)
	}
	return nil
}

func (s *Store) GetTrack(id string) (*models.Track, error) {
	var t models.Track
	if err := s.db.First(&t, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (s *Store) AllTracks() ([]models.Track, error) {
	var tracks []models.Track
	if err := s.db.Find(&tracks).Error; err != nil {
		return nil, fmt.Errorf("failed to load tracks: %w", err)
	}
	return tracks, nil
}

func (s *Store) DeleteTrack(id string) error {
	res := s.db.Delete(&models.Track{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete track %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MergeTrack applies a partial update and returns the merged record.
func (s *Store) MergeTrack(id string, patch models.TrackPatch) (*models.Track, error) {
	t, err := s.GetTrack(id)
	if err != nil {
		return nil, err
	}
	t.Apply(patch)
	if err := s.PutTrack(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Albums

func (s *Store) PutAlbum(a *models.Album) error {
	if err := s.db.Save(a).Error; err != nil {
		return fmt.Errorf("failed to save album %s: %w", a.ID, err)
	}
	return nil
}

func (s *Store) GetAlbum(id string) (*models.Album, error) {
	var a models.Album
	if err := s.db.First(&a, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (s *Store) AllAlbums() ([]models.Album, error) {
	var albums []models.Album
	if err := s.db.Find(&albums).Error; err != nil {
		return nil, fmt.Errorf("failed to load albums: %w", err)
	}
	return albums, nil
}

func (s *Store) DeleteAlbum(id string) error {
	res := s.db.Delete(&models.Album{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete album %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) MergeAlbum(id string, patch models.AlbumPatch) (*models.Album, error) {
	a, err := s.GetAlbum(id)
	if err != nil {
		return nil, err
	}
	a.Apply(patch)
	if err := s.PutAlbum(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Artists

func (s *Store) PutArtist(a *models.Artist) error {
	if err := s.db.Save(a).Error; err != nil {
		return fmt.Errorf("failed to save artist %s: %w", a.ID, err)
	}
	return nil
}

func (s *Store) GetArtist(id string) (*models.Artist, error) {
	var a models.Artist
	if err := s.db.First(&a, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (s *Store) AllArtists() ([]models.Artist, error) {
	var artists []models.Artist
	if err := s.db.Find(&artists).Error; err != nil {
		return nil, fmt.Errorf("failed to load artists: %w", err)
	}
	return artists, nil
}

func (s *Store) DeleteArtist(id string) error {
	res := s.db.Delete(&models.Artist{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete artist %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) MergeArtist(id string, patch models.ArtistPatch) (*models.Artist, error) {
	a, err := s.GetArtist(id)
	if err != nil {
		return nil, err
	}
	a.Apply(patch)
	if err := s.PutArtist(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Playlists

func (s *Store) PutPlaylist(p *models.SavedPlaylist) error {
	if err := s.db.Save(p).Error; err != nil {
		return fmt.Errorf("failed to save playlist %q: %w", p.Name, err)
	}
	return nil
}

func (s *Store) GetPlaylist(id uint) (*models.SavedPlaylist, error) {
	var p models.SavedPlaylist
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *Store) AllPlaylists() ([]models.SavedPlaylist, error) {
	var playlists []models.SavedPlaylist
	if err := s.db.Find(&playlists).Error; err != nil {
		return nil, fmt.Errorf("failed to load playlists: %w", err)
	}
	return playlists, nil
}

func (s *Store) DeletePlaylist(id uint) error {
	res := s.db.Delete(&models.SavedPlaylist{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete playlist %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MergePlaylist applies a partial update; criteria inside the patch merge
// key by key against the stored criteria.
func (s *Store) MergePlaylist(id uint, patch models.SavedPlaylistPatch) (*models.SavedPlaylist, error) {
	p, err := s.GetPlaylist(id)
	if err != nil {
		return nil, err
	}
	p.Apply(patch)
	if err := s.PutPlaylist(p); err != nil {
		return nil, err
	}
	return p, nil
}
