package store

import (
	"fmt"

	"gorm.io/gorm"
	"spotiplus/models"
)

// Snapshot is a portable dump of the whole library, one key per collection.
type Snapshot struct {
	Musics    []models.Track         `json:"musics"`
	Albums    []models.Album         `json:"albums"`
	Artists   []models.Artist        `json:"artists"`
	Playlists []models.SavedPlaylist `json:"playlists"`
}

// Export reads every collection into a single snapshot.
func (s *Store) Export() (*Snapshot, error) {
	snap := &Snapshot{}
	var err error

	if snap.Musics, err = s.AllTracks(); err != nil {
		return nil, fmt.Errorf("backup export: %w", err)
	}
	if snap.Albums, err = s.AllAlbums(); err != nil {
		return nil, fmt.Errorf("backup export: %w", err)
	}
	if snap.Artists, err = s.AllArtists(); err != nil {
		return nil, fmt.Errorf("backup export: %w", err)
	}
	if snap.Playlists, err = s.AllPlaylists(); err != nil {
		return nil, fmt.Errorf("backup export: %w", err)
	}

	return snap, nil
}

// Import replaces the whole library with the snapshot: each collection is
// cleared, then the snapshot records are re-inserted. Runs in a single
// transaction so a failed restore leaves the previous data intact.
func (s *Store) Import(snap *Snapshot) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"musics", "albums", "artists", "playlists"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("backup import: failed to clear %s: %w", table, err)
			}
		}

		for i := range snap.Musics {
			if err := tx.Create(&snap.Musics[i]).Error; err != nil {
				return fmt.Errorf("backup import: track %s: %w", snap.Musics[i].ID, err)
			}
		}
		for i := range snap.Albums {
			if err := tx.Create(&snap.Albums[i]).Error; err != nil {
				return fmt.Errorf("backup import: album %s: %w", snap.Albums[i].ID, err)
			}
		}
		for i := range snap.Artists {
			if err := tx.Create(&snap.Artists[i]).Error; err != nil {
				return fmt.Errorf("backup import: artist %s: %w", snap.Artists[i].ID, err)
			}
		}
		for i := range snap.Playlists {
			if err := tx.Create(&snap.Playlists[i]).Error; err != nil {
				return fmt.Errorf("backup import: playlist %q: %w", snap.Playlists[i].Name, err)
			}
		}

		return nil
	})
}
