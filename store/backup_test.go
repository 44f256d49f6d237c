package store

import (
	"testing"
	"time"

	"spotiplus/models"
)

func TestBackupRoundTrip(t *testing.T) {
	st := setupTestStore(t)

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	liked := models.FavoriteLiked

	track := models.Track{ID: "t1", Title: "Song", CustomFields: models.NewCustomFields(now)}
	track.CustomFields.Heart = liked
	track.CustomFields.Energetic = intPtr(2)
	if err := st.PutTrack(&track); err != nil {
		t.Fatalf("PutTrack failed: %v", err)
	}
	if err := st.PutAlbum(&models.Album{ID: "al1", Name: "Album"}); err != nil {
		t.Fatalf("PutAlbum failed: %v", err)
	}
	if err := st.PutArtist(&models.Artist{ID: "a1", Name: "Artist"}); err != nil {
		t.Fatalf("PutArtist failed: %v", err)
	}
	playlist := models.SavedPlaylist{Name: "all", Criteria: models.DefaultCriteria()}
	if err := st.PutPlaylist(&playlist); err != nil {
		t.Fatalf("PutPlaylist failed: %v", err)
	}

	snap, err := st.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if len(snap.Musics) != 1 || len(snap.Albums) != 1 || len(snap.Artists) != 1 || len(snap.Playlists) != 1 {
		t.Fatalf("Unexpected snapshot sizes: %d/%d/%d/%d",
			len(snap.Musics), len(snap.Albums), len(snap.Artists), len(snap.Playlists))
	}

	// Restore into a second, pre-populated store: old content must be gone.
	other := setupTestStore(t)
	if err := other.PutTrack(&models.Track{ID: "stale", Title: "Old"}); err != nil {
		t.Fatalf("PutTrack failed: %v", err)
	}

	if err := other.Import(snap); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if _, err := other.GetTrack("stale"); err == nil {
		t.Error("Stale track survived restore")
	}

	got, err := other.GetTrack("t1")
	if err != nil {
		t.Fatalf("GetTrack after restore failed: %v", err)
	}
	if got.CustomFields.Heart != liked {
		t.Errorf("Heart lost in round trip: %q", got.CustomFields.Heart)
	}
	if got.CustomFields.Energetic == nil || *got.CustomFields.Energetic != 2 {
		t.Errorf("Rating lost in round trip: %v", got.CustomFields.Energetic)
	}

	playlists, err := other.AllPlaylists()
	if err != nil {
		t.Fatalf("AllPlaylists failed: %v", err)
	}
	if len(playlists) != 1 || playlists[0].Name != "all" {
		t.Errorf("Playlists not restored: %v", playlists)
	}
}

func TestBackupEmptyLibrary(t *testing.T) {
	st := setupTestStore(t)

	snap, err := st.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	other := setupTestStore(t)
	if err := other.PutTrack(&models.Track{ID: "t1", Title: "Song"}); err != nil {
		t.Fatalf("PutTrack failed: %v", err)
	}

	if err := other.Import(snap); err != nil {
		t.Fatalf("Import of empty snapshot failed: %v", err)
	}

	tracks, err := other.AllTracks()
	if err != nil {
		t.Fatalf("AllTracks failed: %v", err)
	}
	if len(tracks) != 0 {
		t.Errorf("Expected empty library after restoring empty snapshot, got %d tracks", len(tracks))
	}
}
