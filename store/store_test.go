package store

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"spotiplus/models"
)

func setupTestStore(t *testing.T) *Store {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Track{},
		&models.Album{},
		&models.Artist{},
		&models.SavedPlaylist{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return New(db)
}

func intPtr(i int) *int { return &i }

func TestTrackRoundTrip(t *testing.T) {
	st := setupTestStore(t)

	track := models.Track{
		ID:           "t1",
		Title:        "First Song",
		Author:       "Some Band",
		AuthorIDs:    models.StringList{"a1", "a2"},
		AlbumID:      "al1",
		Duration:     215,
		URI:          "spotify:track:t1",
		CustomFields: models.NewCustomFields(time.Now()),
	}

	if err := st.PutTrack(&track); err != nil {
		t.Fatalf("PutTrack failed: %v", err)
	}

	got, err := st.GetTrack("t1")
	if err != nil {
		t.Fatalf("GetTrack failed: %v", err)
	}
	if got.Title != "First Song" {
		t.Errorf("Expected title %q, got %q", "First Song", got.Title)
	}
	if len(got.AuthorIDs) != 2 || got.AuthorIDs[0] != "a1" {
		t.Errorf("AuthorIDs not preserved: %v", got.AuthorIDs)
	}
	if got.CustomFields.Heart != models.FavoriteNone {
		t.Errorf("Expected heart %q, got %q", models.FavoriteNone, got.CustomFields.Heart)
	}

	t.Run("missing track", func(t *testing.T) {
		if _, err := st.GetTrack("nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("presence", func(t *testing.T) {
		present, err := st.IsPresent(KindTrack, "t1")
		if err != nil {
			t.Fatalf("IsPresent failed: %v", err)
		}
		if !present {
			t.Error("Expected t1 to be present")
		}

		present, err = st.IsPresent(KindTrack, "t2")
		if err != nil {
			t.Fatalf("IsPresent failed: %v", err)
		}
		if present {
			t.Error("Expected t2 to be absent")
		}
	})
}

func TestDeleteTrack(t *testing.T) {
	st := setupTestStore(t)

	track := models.Track{ID: "t1", Title: "Song"}
	if err := st.PutTrack(&track); err != nil {
		t.Fatalf("PutTrack failed: %v", err)
	}

	if err := st.DeleteTrack("t1"); err != nil {
		t.Fatalf("DeleteTrack failed: %v", err)
	}

	if _, err := st.GetTrack("t1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	t.Run("deleting missing track is reported", func(t *testing.T) {
		if err := st.DeleteTrack("t1"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestMergeTrackPreservesDisjointFields(t *testing.T) {
	st := setupTestStore(t)

	added := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	track := models.Track{
		ID:           "t1",
		Title:        "Song",
		CustomFields: models.NewCustomFields(added),
	}
	if err := st.PutTrack(&track); err != nil {
		t.Fatalf("PutTrack failed: %v", err)
	}

	// First merge sets a mood rating.
	_, err := st.MergeTrack("t1", models.TrackPatch{
		CustomFields: &models.CustomFieldsPatch{Energetic: intPtr(3)},
	})
	if err != nil {
		t.Fatalf("First merge failed: %v", err)
	}

	// Second merge sets the heart without mentioning the rating.
	liked := models.FavoriteLiked
	got, err := st.MergeTrack("t1", models.TrackPatch{
		CustomFields: &models.CustomFieldsPatch{Heart: &liked},
	})
	if err != nil {
		t.Fatalf("Second merge failed: %v", err)
	}

	if got.CustomFields.Heart != models.FavoriteLiked {
		t.Errorf("Expected heart %q, got %q", models.FavoriteLiked, got.CustomFields.Heart)
	}
	if got.CustomFields.Energetic == nil || *got.CustomFields.Energetic != 3 {
		t.Errorf("Energetic rating lost by unrelated merge: %v", got.CustomFields.Energetic)
	}
	if !got.CustomFields.DateAdded.Equal(added) {
		t.Errorf("DateAdded changed by merge: %v", got.CustomFields.DateAdded)
	}
	if got.Title != "Song" {
		t.Errorf("Title changed by merge: %q", got.Title)
	}
}

func TestMergePlaylistCriteria(t *testing.T) {
	st := setupTestStore(t)

	playlist := models.SavedPlaylist{
		Name:     "rock hearts",
		Criteria: models.DefaultCriteria(),
	}
	playlist.Criteria.Title = "rock"
	if err := st.PutPlaylist(&playlist); err != nil {
		t.Fatalf("PutPlaylist failed: %v", err)
	}

	hearts := models.HeartAllHearts
	got, err := st.MergePlaylist(playlist.ID, models.SavedPlaylistPatch{
		Criteria: &models.CriteriaPatch{TitleHeart: &hearts},
	})
	if err != nil {
		t.Fatalf("MergePlaylist failed: %v", err)
	}

	if got.Criteria.TitleHeart != models.HeartAllHearts {
		t.Errorf("Expected title heart %q, got %q", models.HeartAllHearts, got.Criteria.TitleHeart)
	}
	if got.Criteria.Title != "rock" {
		t.Errorf("Title filter lost by criteria merge: %q", got.Criteria.Title)
	}
	if got.Name != "rock hearts" {
		t.Errorf("Name changed by criteria merge: %q", got.Name)
	}
}
