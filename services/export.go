package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"spotiplus/models"
	"spotiplus/store"
)

// ExportBatchSize caps the number of URIs sent per add request; the Web API
// rejects oversized batches.
const ExportBatchSize = 90

var (
	ErrEmptyPlaylistName = errors.New("playlist name cannot be empty")
	ErrNoTracksToExport  = errors.New("no tracks to export")
)

// Exporter pushes materialized track lists back to the remote catalog as
// real playlists.
type Exporter struct {
	store        *store.Store
	catalog      Catalog
	materializer *Materializer
}

func NewExporter(st *store.Store, catalog Catalog, materializer *Materializer) *Exporter {
	return &Exporter{store: st, catalog: catalog, materializer: materializer}
}

// ExportResult describes one finished export.
type ExportResult struct {
	RemotePlaylistID string `json:"remote_playlist_id"`
	TrackCount       int    `json:"track_count"`
	FailedBatches    int    `json:"failed_batches"`
}

// ExportTracks creates a remote playlist and fills it in batches of at most
// ExportBatchSize URIs. A failed batch is logged and counted; the remaining
// batches are still attempted.
func (e *Exporter) ExportTracks(ctx context.Context, name string, tracks []models.Track) (*ExportResult, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyPlaylistName
	}
	if len(tracks) == 0 {
		return nil, ErrNoTracksToExport
	}

	remoteID, err := e.catalog.CreatePlaylist(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("export %q: %w", name, err)
	}

	uris := make([]string, 0, len(tracks))
	for _, t := range tracks {
		uris = append(uris, t.URI)
	}

	result := &ExportResult{RemotePlaylistID: remoteID, TrackCount: len(uris)}
	for start := 0; start < len(uris); start += ExportBatchSize {
		end := start + ExportBatchSize
		if end > len(uris) {
			end = len(uris)
		}

		if err := e.catalog.AddPlaylistTracks(ctx, remoteID, uris[start:end]); err != nil {
			log.Printf("export %q: batch %d-%d failed: %v", name, start, end, err)
			result.FailedBatches++
		}
	}

	return result, nil
}

// ExportPlaylist materializes a saved playlist's criteria in shuffled order
// and exports the result under the given name. An empty name falls back to
// the saved playlist's own name.
func (e *Exporter) ExportPlaylist(ctx context.Context, id uint, name string) (*ExportResult, error) {
	playlist, err := e.store.GetPlaylist(id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		name = playlist.Name
	}

	list, err := e.materializer.MaterializeForExport(playlist.Criteria)
	if err != nil {
		return nil, err
	}

	return e.ExportTracks(ctx, name, list.Tracks)
}

// ExportUnrated exports the rating backlog, oldest first, so it can be
// listened to in order and rated.
func (e *Exporter) ExportUnrated(ctx context.Context, name string) (*ExportResult, error) {
	list, err := e.materializer.UnratedTracks()
	if err != nil {
		return nil, err
	}
	return e.ExportTracks(ctx, name, list.Tracks)
}
