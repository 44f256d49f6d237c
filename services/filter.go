package services

import (
	"log"
	"strings"

	"spotiplus/models"
	"spotiplus/store"
)

// FilterEngine evaluates criteria against the local library. Evaluation is
// pure in-memory predicate logic; the only I/O is loading the collections
// once per pass.
type FilterEngine struct {
	store *store.Store
}

func NewFilterEngine(st *store.Store) *FilterEngine {
	return &FilterEngine{store: st}
}

// matchTokens implements the comma token filter. The filter splits on
// commas; a token prefixed with '!' excludes, any other token includes.
// A target passes when at least one include token is a substring (or no
// include tokens exist) and no exclude token is a substring. Matching is
// case-insensitive.
func matchTokens(filter, target string) bool {
	target = strings.ToLower(target)

	var includes, excludes []string
	for _, raw := range strings.Split(filter, ",") {
		token := strings.ToLower(strings.TrimSpace(raw))
		if token == "" {
			continue
		}
		if strings.HasPrefix(token, "!") {
			// A lone '!' strips to the empty token; every target contains
			// the empty string, so it excludes everything.
			excludes = append(excludes, strings.TrimSpace(strings.TrimPrefix(token, "!")))
			continue
		}
		includes = append(includes, token)
	}

	for _, token := range excludes {
		if strings.Contains(target, token) {
			return false
		}
	}

	if len(includes) == 0 {
		return true
	}
	for _, token := range includes {
		if strings.Contains(target, token) {
			return true
		}
	}
	return false
}

func moodInRange(value *int, min, max int) bool {
	return value != nil && *value >= min && *value <= max
}

// Matches reports whether one track passes the criteria. The album and
// artist arguments are the track's joined entities; a nil entity skips its
// heart predicate but fails a text predicate that needs it.
func (e *FilterEngine) Matches(t models.Track, album *models.Album, artist *models.Artist, c models.Criteria) bool {
	if c.Title != "" && !matchTokens(c.Title, t.Title) {
		return false
	}
	// The author filter runs against the joined primary-artist record, not
	// the track's display string, so featured co-artists never match.
	if c.Author != "" {
		if artist == nil || !matchTokens(c.Author, artist.Name) {
			return false
		}
	}
	if c.Album != "" {
		if album == nil || !matchTokens(c.Album, album.Name) {
			return false
		}
	}

	if !c.TitleHeart.Matches(t.CustomFields.Heart) {
		return false
	}
	if album != nil && !c.AlbumHeart.Matches(album.CustomFields.Heart) {
		return false
	}
	if artist != nil && !c.ArtistHeart.Matches(artist.CustomFields.Heart) {
		return false
	}

	// With every bound at the default the mood predicates are skipped
	// entirely, so never-rated tracks still match. Narrowing any single
	// bound turns all three predicates on.
	if !c.MoodBoundsAtDefault() {
		if !moodInRange(t.CustomFields.Energetic, c.MinEnergetic, c.MaxEnergetic) {
			return false
		}
		if !moodInRange(t.CustomFields.Joyful, c.MinJoyful, c.MaxJoyful) {
			return false
		}
		if !moodInRange(t.CustomFields.Musical, c.MinMusical, c.MaxMusical) {
			return false
		}
	}

	return true
}

// EvalResult is one filter pass over the library.
type EvalResult struct {
	Tracks  []models.Track
	Skipped int // tracks dropped because their album or artist is missing
}

// Evaluate runs the criteria over every local track. A track whose album or
// artist record is missing is excluded and counted, never fatal.
func (e *FilterEngine) Evaluate(c models.Criteria) (*EvalResult, error) {
	tracks, err := e.store.AllTracks()
	if err != nil {
		return nil, err
	}
	albums, err := e.store.AllAlbums()
	if err != nil {
		return nil, err
	}
	artists, err := e.store.AllArtists()
	if err != nil {
		return nil, err
	}

	albumByID := make(map[string]models.Album, len(albums))
	for _, a := range albums {
		albumByID[a.ID] = a
	}
	artistByID := make(map[string]models.Artist, len(artists))
	for _, a := range artists {
		artistByID[a.ID] = a
	}

	result := &EvalResult{}
	for _, t := range tracks {
		album, albumOK := albumByID[t.AlbumID]
		artist, artistOK := artistByID[t.PrimaryArtistID()]
		if !albumOK || !artistOK {
			log.Printf("filter: skipping track %s: unresolved album or artist", t.ID)
			result.Skipped++
			continue
		}

		if e.Matches(t, &album, &artist, c) {
			result.Tracks = append(result.Tracks, t)
		}
	}

	return result, nil
}
