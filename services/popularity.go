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

// Refresher re-reads popularity scores from the remote catalog, at most once
// per calendar day. The last completed day is persisted, so restarts within
// the same day never trigger a second pass.
type Refresher struct {
	db      *gorm.DB
	store   *store.Store
	catalog Catalog
	now     func() time.Time
}

func NewRefresher(db *gorm.DB, st *store.Store, catalog Catalog) *Refresher {
	return &Refresher{
		db:      db,
		store:   st,
		catalog: catalog,
		now:     time.Now,
	}
}

// RefreshResult summarizes one refresh pass.
type RefreshResult struct {
	Skipped  bool `json:"skipped"`
	Tracks   int  `json:"tracks"`
	Albums   int  `json:"albums"`
	Artists  int  `json:"artists"`
	Failures int  `json:"failures"`
}

// RefreshDaily runs a full popularity pass unless one already completed
// today. The date is only persisted after the pass, so a crash mid-pass
// retries on the next call.
func (r *Refresher) RefreshDaily(ctx context.Context) (*RefreshResult, error) {
	today := r.now().Format("2006-01-02")

	var cfg models.AppConfig
	if err := r.db.First(&cfg).Error; err != nil {
		return nil, fmt.Errorf("popularity refresh: failed to load app config: %w", err)
	}
	if cfg.LastPopularityRefresh == today {
		return &RefreshResult{Skipped: true}, nil
	}

	result, err := r.refreshAll(ctx)
	if err != nil {
		return result, err
	}

	cfg.LastPopularityRefresh = today
	if err := r.db.Save(&cfg).Error; err != nil {
		return result, fmt.Errorf("popularity refresh: failed to persist refresh date: %w", err)
	}

	r.pruneLogs(cfg.LogRetentionCount)

	log.Printf("popularity refresh: %d tracks, %d albums, %d artists, %d failures",
		result.Tracks, result.Albums, result.Artists, result.Failures)
	return result, nil
}

// pruneLogs drops mirror log rows beyond the configured retention count,
// oldest first. The log table would otherwise grow without bound on a library
// with flaky entities.
func (r *Refresher) pruneLogs(keep int) {
	if keep <= 0 {
		return
	}

	var cutoff models.MirrorLog
	if err := r.db.Order("id desc").Offset(keep).First(&cutoff).Error; err != nil {
		return // fewer rows than the retention count
	}
	if err := r.db.Where("id <= ?", cutoff.ID).Delete(&models.MirrorLog{}).Error; err != nil {
		log.Printf("popularity refresh: failed to prune mirror logs: %v", err)
	}
}

func (r *Refresher) recordFailure(kind, id string, err error) {
	log.Printf("popularity refresh: %s %s: %v", kind, id, err)
	logErr := r.db.Create(&models.MirrorLog{
		EntityKind: kind,
		EntityID:   id,
		Operation:  models.MirrorOpRefresh,
		ErrorMsg:   err.Error(),
	}).Error
	if logErr != nil {
		log.Printf("popularity refresh: failed to record failure for %s %s: %v", kind, id, logErr)
	}
}

// refreshAll walks every entity, best effort. A failed remote fetch is
// logged and counted; it never stops the pass. Only popularity is merged, so
// annotations stay untouched.
func (r *Refresher) refreshAll(ctx context.Context) (*RefreshResult, error) {
	result := &RefreshResult{}

	tracks, err := r.store.AllTracks()
	if err != nil {
		return result, err
	}
	for _, t := range tracks {
		remote, err := r.catalog.Track(ctx, t.ID)
		if err != nil {
			if fatalCatalog(err) {
				return result, err
			}
			r.recordFailure("track", t.ID, err)
			result.Failures++
			continue
		}
		if _, err := r.store.MergeTrack(t.ID, models.TrackPatch{Popularity: &remote.Popularity}); err != nil {
			return result, err
		}
		result.Tracks++
	}

	albums, err := r.store.AllAlbums()
	if err != nil {
		return result, err
	}
	for _, a := range albums {
		remote, err := r.catalog.Album(ctx, a.ID)
		if err != nil {
			if fatalCatalog(err) {
				return result, err
			}
			r.recordFailure("album", a.ID, err)
			result.Failures++
			continue
		}
		if _, err := r.store.MergeAlbum(a.ID, models.AlbumPatch{Popularity: &remote.Popularity}); err != nil {
			return result, err
		}
		result.Albums++
	}

	artists, err := r.store.AllArtists()
	if err != nil {
		return result, err
	}
	for _, a := range artists {
		remote, err := r.catalog.Artist(ctx, a.ID)
		if err != nil {
			if fatalCatalog(err) {
				return result, err
			}
			r.recordFailure("artist", a.ID, err)
			result.Failures++
			continue
		}
		if _, err := r.store.MergeArtist(a.ID, models.ArtistPatch{Popularity: &remote.Popularity}); err != nil {
			return result, err
		}
		result.Artists++
	}

	return result, nil
}
