package services

import (
	"math/rand"
	"sort"

	"spotiplus/models"
	"spotiplus/store"
	"spotiplus/utils"
)

// Materializer turns criteria into ordered track lists with stats. Saved
// playlists store no tracks, so every listing and export goes through here.
type Materializer struct {
	engine *FilterEngine
	store  *store.Store
}

func NewMaterializer(engine *FilterEngine, st *store.Store) *Materializer {
	return &Materializer{engine: engine, store: st}
}

// TrackList is a materialized playlist: the tracks in display order plus the
// stats shown alongside them.
type TrackList struct {
	Tracks            []models.Track `json:"tracks"`
	Count             int            `json:"count"`
	TotalDuration     int            `json:"total_duration"` // seconds
	TotalDurationText string         `json:"total_duration_text"`
	Skipped           int            `json:"skipped"`
}

func newTrackList(tracks []models.Track, skipped int) *TrackList {
	total := 0
	for _, t := range tracks {
		total += t.Duration
	}
	return &TrackList{
		Tracks:            tracks,
		Count:             len(tracks),
		TotalDuration:     total,
		TotalDurationText: utils.FormatDurationLong(total),
		Skipped:           skipped,
	}
}

// sortTracks orders a list for display. Ties break on track id ascending so
// the order is stable across runs.
func sortTracks(tracks []models.Track, mode models.SortMode) {
	switch mode {
	case models.SortAscending:
		sort.Slice(tracks, func(i, j int) bool {
			if tracks[i].Popularity != tracks[j].Popularity {
				return tracks[i].Popularity < tracks[j].Popularity
			}
			return tracks[i].ID < tracks[j].ID
		})
	case models.SortDescending:
		sort.Slice(tracks, func(i, j int) bool {
			if tracks[i].Popularity != tracks[j].Popularity {
				return tracks[i].Popularity > tracks[j].Popularity
			}
			return tracks[i].ID < tracks[j].ID
		})
	default:
		// newest first
		sort.Slice(tracks, func(i, j int) bool {
			di, dj := tracks[i].CustomFields.DateAdded, tracks[j].CustomFields.DateAdded
			if !di.Equal(dj) {
				return di.After(dj)
			}
			return tracks[i].ID < tracks[j].ID
		})
	}
}

// shuffleTracks is a Fisher-Yates shuffle; exports are always randomized.
func shuffleTracks(tracks []models.Track) {
	rand.Shuffle(len(tracks), func(i, j int) {
		tracks[i], tracks[j] = tracks[j], tracks[i]
	})
}

// Materialize evaluates the criteria and returns the tracks in the criteria's
// display order.
func (m *Materializer) Materialize(c models.Criteria) (*TrackList, error) {
	res, err := m.engine.Evaluate(c)
	if err != nil {
		return nil, err
	}
	sortTracks(res.Tracks, c.Sort)
	return newTrackList(res.Tracks, res.Skipped), nil
}

// MaterializeForExport evaluates the criteria and shuffles the result; the
// display sort never applies to exports.
func (m *Materializer) MaterializeForExport(c models.Criteria) (*TrackList, error) {
	res, err := m.engine.Evaluate(c)
	if err != nil {
		return nil, err
	}
	shuffleTracks(res.Tracks)
	return newTrackList(res.Tracks, res.Skipped), nil
}

// UnratedTracks lists tracks still missing at least one mood rating, oldest
// first, so the backlog is rated in the order it accumulated.
func (m *Materializer) UnratedTracks() (*TrackList, error) {
	tracks, err := m.store.AllTracks()
	if err != nil {
		return nil, err
	}

	var unrated []models.Track
	for _, t := range tracks {
		if !t.CustomFields.Rated() {
			unrated = append(unrated, t)
		}
	}

	sort.Slice(unrated, func(i, j int) bool {
		di, dj := unrated[i].CustomFields.DateAdded, unrated[j].CustomFields.DateAdded
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return unrated[i].ID < unrated[j].ID
	})

	return newTrackList(unrated, 0), nil
}
