package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"spotiplus/models"
	"spotiplus/store"
)

func setupExporter(t *testing.T) (*store.Store, *fakeCatalog, *Exporter) {
	st := store.New(setupTestDB(t))
	catalog := newFakeCatalog()
	materializer := NewMaterializer(NewFilterEngine(st), st)
	return st, catalog, NewExporter(st, catalog, materializer)
}

func TestExportBatching(t *testing.T) {
	_, catalog, exporter := setupExporter(t)

	tracks := make([]models.Track, 185)
	for i := range tracks {
		tracks[i] = models.Track{
			ID:  fmt.Sprintf("t%03d", i),
			URI: fmt.Sprintf("spotify:track:t%03d", i),
		}
	}

	result, err := exporter.ExportTracks(context.Background(), "big list", tracks)
	if err != nil {
		t.Fatalf("ExportTracks failed: %v", err)
	}

	if result.TrackCount != 185 {
		t.Errorf("Expected 185 tracks, got %d", result.TrackCount)
	}
	if len(catalog.createdNames) != 1 || catalog.createdNames[0] != "big list" {
		t.Errorf("Unexpected created playlists: %v", catalog.createdNames)
	}

	wantSizes := []int{90, 90, 5}
	if len(catalog.added) != len(wantSizes) {
		t.Fatalf("Expected %d add batches, got %d", len(wantSizes), len(catalog.added))
	}
	for i, want := range wantSizes {
		if len(catalog.added[i]) != want {
			t.Errorf("Batch %d: expected %d URIs, got %d", i, want, len(catalog.added[i]))
		}
	}
	if catalog.added[0][0] != "spotify:track:t000" {
		t.Errorf("Batches out of order: first URI %q", catalog.added[0][0])
	}
}

func TestExportValidation(t *testing.T) {
	_, _, exporter := setupExporter(t)

	t.Run("empty name", func(t *testing.T) {
		_, err := exporter.ExportTracks(context.Background(), "   ", []models.Track{{ID: "t1"}})
		if !errors.Is(err, ErrEmptyPlaylistName) {
			t.Errorf("Expected ErrEmptyPlaylistName, got %v", err)
		}
	})

	t.Run("no tracks", func(t *testing.T) {
		_, err := exporter.ExportTracks(context.Background(), "empty", nil)
		if !errors.Is(err, ErrNoTracksToExport) {
			t.Errorf("Expected ErrNoTracksToExport, got %v", err)
		}
	})
}

func TestExportFailedBatchContinues(t *testing.T) {
	_, catalog, exporter := setupExporter(t)
	catalog.failBatch = 1

	tracks := make([]models.Track, 100)
	for i := range tracks {
		tracks[i] = models.Track{ID: fmt.Sprintf("t%03d", i), URI: fmt.Sprintf("spotify:track:t%03d", i)}
	}

	result, err := exporter.ExportTracks(context.Background(), "flaky", tracks)
	if err != nil {
		t.Fatalf("ExportTracks failed: %v", err)
	}

	if result.FailedBatches != 1 {
		t.Errorf("Expected 1 failed batch, got %d", result.FailedBatches)
	}
	if len(catalog.added) != 2 {
		t.Errorf("Remaining batch not attempted after failure: %d batches", len(catalog.added))
	}
}

func TestExportPlaylistUsesCriteria(t *testing.T) {
	st, catalog, exporter := setupExporter(t)

	base := time.Now()
	rock := testTrack("rock1", 0, base, 100)
	rock.Title = "Rock Anthem"
	seedEntity(t, st, rock)

	jazz := testTrack("jazz1", 0, base, 100)
	jazz.Title = "Jazz Evening"
	seedEntity(t, st, jazz)

	criteria := models.DefaultCriteria()
	criteria.Title = "rock"
	playlist := models.SavedPlaylist{Name: "rock only", Criteria: criteria}
	if err := st.PutPlaylist(&playlist); err != nil {
		t.Fatalf("PutPlaylist failed: %v", err)
	}

	result, err := exporter.ExportPlaylist(context.Background(), playlist.ID, "")
	if err != nil {
		t.Fatalf("ExportPlaylist failed: %v", err)
	}

	if result.TrackCount != 1 {
		t.Errorf("Expected 1 exported track, got %d", result.TrackCount)
	}
	// Empty export name falls back to the saved playlist's name.
	if len(catalog.createdNames) != 1 || catalog.createdNames[0] != "rock only" {
		t.Errorf("Unexpected created playlists: %v", catalog.createdNames)
	}
	if len(catalog.added) != 1 || catalog.added[0][0] != "spotify:track:rock1" {
		t.Errorf("Unexpected exported URIs: %v", catalog.added)
	}
}
