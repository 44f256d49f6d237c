package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"spotiplus/models"
	"spotiplus/store"
)

// Mirror copies remote entities into the local library. Mirroring is
// idempotent: a track that already exists locally is left untouched, so user
// annotations survive repeated imports.
type Mirror struct {
	db      *gorm.DB
	store   *store.Store
	catalog Catalog
	now     func() time.Time
}

func NewMirror(db *gorm.DB, st *store.Store, catalog Catalog) *Mirror {
	return &Mirror{
		db:      db,
		store:   st,
		catalog: catalog,
		now:     time.Now,
	}
}

// MirrorResult summarizes one mirroring pass.
type MirrorResult struct {
	Inserted     int `json:"inserted"`
	Known        int `json:"known"`
	AlbumsAdded  int `json:"albums_added"`
	ArtistsAdded int `json:"artists_added"`
	Failures     int `json:"failures"`
}

func (m *Mirror) recordFailure(kind, id, op string, err error) {
	log.Printf("mirror: %s %s (%s): %v", kind, id, op, err)
	logErr := m.db.Create(&models.MirrorLog{
		EntityKind: kind,
		EntityID:   id,
		Operation:  op,
		ErrorMsg:   err.Error(),
	}).Error
	if logErr != nil {
		log.Printf("mirror: failed to record failure for %s %s: %v", kind, id, logErr)
	}
}

// MirrorTracks inserts each unknown track, resolving its album and primary
// artist lazily. A failed album or artist fetch is logged and does not roll
// back the track insert. Store errors abort the pass; remote errors never
// do.
func (m *Mirror) MirrorTracks(ctx context.Context, tracks []models.Track) (*MirrorResult, error) {
	result := &MirrorResult{}

	for _, remote := range tracks {
		known, err := m.store.IsPresent(store.KindTrack, remote.ID)
		if err != nil {
			return result, err
		}
		if known {
			result.Known++
			continue
		}

		track := remote
		track.CustomFields = models.NewCustomFields(m.now())
		if err := m.store.PutTrack(&track); err != nil {
			return result, err
		}
		result.Inserted++

		if err := m.resolveAlbum(ctx, track, result); err != nil {
			return result, err
		}
		if err := m.resolveArtist(ctx, track, result); err != nil {
			return result, err
		}
	}

	return result, nil
}

func (m *Mirror) resolveAlbum(ctx context.Context, track models.Track, result *MirrorResult) error {
	if track.AlbumID == "" {
		return nil
	}

	known, err := m.store.IsPresent(store.KindAlbum, track.AlbumID)
	if err != nil {
		return err
	}
	if known {
		return nil
	}

	album, err := m.catalog.Album(ctx, track.AlbumID)
	if err != nil {
		if fatalCatalog(err) {
			return err
		}
		m.recordFailure("album", track.AlbumID, models.MirrorOpAlbum, err)
		result.Failures++
		return nil
	}

	album.CustomFields = models.NewCustomFields(m.now())
	if err := m.store.PutAlbum(album); err != nil {
		return err
	}
	result.AlbumsAdded++
	return nil
}

func (m *Mirror) resolveArtist(ctx context.Context, track models.Track, result *MirrorResult) error {
	artistID := track.PrimaryArtistID()
	if artistID == "" {
		return nil
	}

	known, err := m.store.IsPresent(store.KindArtist, artistID)
	if err != nil {
		return err
	}
	if known {
		return nil
	}

	artist, err := m.catalog.Artist(ctx, artistID)
	if err != nil {
		if fatalCatalog(err) {
			return err
		}
		m.recordFailure("artist", artistID, models.MirrorOpArtist, err)
		result.Failures++
		return nil
	}

	artist.CustomFields = models.NewCustomFields(m.now())
	if err := m.store.PutArtist(artist); err != nil {
		return err
	}
	result.ArtistsAdded++
	return nil
}

// ImportPlaylist mirrors every track of a remote playlist.
func (m *Mirror) ImportPlaylist(ctx context.Context, playlistID string) (*MirrorResult, error) {
	tracks, err := m.catalog.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("playlist import %s: %w", playlistID, err)
	}
	return m.MirrorTracks(ctx, tracks)
}

// AlbumStatus reports how many of an album's tracks are already local.
type AlbumStatus struct {
	AlbumID  string `json:"album_id"`
	Have     int    `json:"have"`
	Total    int    `json:"total"`
	Complete bool   `json:"complete"`
}

// Status counts local coverage of an album against the remote track list.
func (m *Mirror) Status(ctx context.Context, albumID string) (*AlbumStatus, error) {
	ids, err := m.catalog.AlbumTrackIDs(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("album status %s: %w", albumID, err)
	}

	status := &AlbumStatus{AlbumID: albumID, Total: len(ids)}
	for _, id := range ids {
		known, err := m.store.IsPresent(store.KindTrack, id)
		if err != nil {
			return nil, err
		}
		if known {
			status.Have++
		}
	}
	status.Complete = status.Have == status.Total
	return status, nil
}

// CompleteAlbum mirrors every track of the album that is not yet local. Each
// missing track is fetched with full detail; a failed fetch is logged and
// the rest of the album is still attempted.
func (m *Mirror) CompleteAlbum(ctx context.Context, albumID string) (*MirrorResult, error) {
	ids, err := m.catalog.AlbumTrackIDs(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("complete album %s: %w", albumID, err)
	}

	result := &MirrorResult{}
	var missing []models.Track
	for _, id := range ids {
		known, err := m.store.IsPresent(store.KindTrack, id)
		if err != nil {
			return result, err
		}
		if known {
			result.Known++
			continue
		}

		track, err := m.catalog.Track(ctx, id)
		if err != nil {
			if fatalCatalog(err) {
				return result, err
			}
			m.recordFailure("track", id, models.MirrorOpImport, err)
			result.Failures++
			continue
		}
		missing = append(missing, *track)
	}

	sub, err := m.MirrorTracks(ctx, missing)
	result.Inserted = sub.Inserted
	result.AlbumsAdded = sub.AlbumsAdded
	result.ArtistsAdded = sub.ArtistsAdded
	result.Failures += sub.Failures
	result.Known += sub.Known
	return result, err
}

// Logs returns the most recent per-entity failure records.
func (m *Mirror) Logs(limit int) ([]models.MirrorLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var logs []models.MirrorLog
	if err := m.db.Order("id desc").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to load mirror logs: %w", err)
	}
	return logs, nil
}
