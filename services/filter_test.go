package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"spotiplus/models"
	"spotiplus/store"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Track{},
		&models.Album{},
		&models.Artist{},
		&models.SavedPlaylist{},
		&models.AppConfig{},
		&models.MirrorLog{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func intPtr(i int) *int { return &i }

// seedEntity inserts a track plus the album and artist it joins to.
func seedEntity(t *testing.T, st *store.Store, track models.Track) {
	t.Helper()

	if track.AlbumID != "" {
		present, err := st.IsPresent(store.KindAlbum, track.AlbumID)
		if err != nil {
			t.Fatalf("IsPresent failed: %v", err)
		}
		if !present {
			if err := st.PutAlbum(&models.Album{ID: track.AlbumID, Name: "Album " + track.AlbumID}); err != nil {
				t.Fatalf("PutAlbum failed: %v", err)
			}
		}
	}
	if id := track.PrimaryArtistID(); id != "" {
		present, err := st.IsPresent(store.KindArtist, id)
		if err != nil {
			t.Fatalf("IsPresent failed: %v", err)
		}
		if !present {
			if err := st.PutArtist(&models.Artist{ID: id, Name: "Artist " + id}); err != nil {
				t.Fatalf("PutArtist failed: %v", err)
			}
		}
	}
	if err := st.PutTrack(&track); err != nil {
		t.Fatalf("PutTrack failed: %v", err)
	}
}

func TestMatchTokens(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		target string
		want   bool
	}{
		{"single include hit", "rock", "Hard Rock Anthem", true},
		{"single include miss", "rock", "Smooth Jazz", false},
		{"exclude wins over include", "rock,!live", "rock live version", false},
		{"include without excluded token", "rock,!live", "rock ballad", true},
		{"exclude only, absent", "!live", "studio take", true},
		{"exclude only, present", "!live", "live at the arena", false},
		{"any include suffices", "rock, pop", "POP anthem", true},
		{"case insensitive", "RoCk", "classic rock", true},
		{"blank tokens ignored", " , ,rock", "rock on", true},
		{"only blank tokens match all", " , ", "anything", true},
		{"bare exclamation matches nothing", "!", "anything", false},
		{"bare exclamation poisons other tokens", "rock,!", "rock on", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchTokens(tt.filter, tt.target); got != tt.want {
				t.Errorf("matchTokens(%q, %q) = %v, want %v", tt.filter, tt.target, got, tt.want)
			}
		})
	}
}

func TestHeartFilterMatches(t *testing.T) {
	tests := []struct {
		mode  models.HeartFilter
		heart models.FavoriteLevel
		want  bool
	}{
		{models.HeartAll, models.FavoriteNone, true},
		{models.HeartAll, models.FavoriteSuperliked, true},
		{models.HeartAllHearts, models.FavoriteNone, false},
		{models.HeartAllHearts, models.FavoriteLiked, true},
		{models.HeartAllHearts, models.FavoriteSuperliked, true},
		{models.HeartOnlySuper, models.FavoriteLiked, false},
		{models.HeartOnlySuper, models.FavoriteSuperliked, true},
		{models.HeartAllExceptSuper, models.FavoriteNone, true},
		{models.HeartAllExceptSuper, models.FavoriteLiked, true},
		{models.HeartAllExceptSuper, models.FavoriteSuperliked, false},
		{models.HeartOnlySimple, models.FavoriteLiked, true},
		{models.HeartOnlySimple, models.FavoriteNone, false},
		{models.HeartOnlyWithout, models.FavoriteNone, true},
		{models.HeartOnlyWithout, models.FavoriteLiked, false},
	}

	for _, tt := range tests {
		if got := tt.mode.Matches(tt.heart); got != tt.want {
			t.Errorf("%s.Matches(%s) = %v, want %v", tt.mode, tt.heart, got, tt.want)
		}
	}
}

func TestMoodBypass(t *testing.T) {
	engine := NewFilterEngine(store.New(setupTestDB(t)))

	unrated := models.Track{
		ID:           "t1",
		Title:        "Song",
		CustomFields: models.NewCustomFields(time.Now()),
	}
	album := &models.Album{ID: "al1", Name: "Album"}
	artist := &models.Artist{ID: "a1", Name: "Artist"}

	t.Run("default bounds match unrated tracks", func(t *testing.T) {
		if !engine.Matches(unrated, album, artist, models.DefaultCriteria()) {
			t.Error("Unrated track should match default criteria")
		}
	})

	t.Run("narrowing one bound excludes unrated tracks", func(t *testing.T) {
		c := models.DefaultCriteria()
		c.MaxEnergetic = 3
		if engine.Matches(unrated, album, artist, c) {
			t.Error("Unrated track should fail once a bound is narrowed")
		}
	})

	t.Run("narrowing one bound requires all three ratings", func(t *testing.T) {
		partial := unrated
		partial.CustomFields.Energetic = intPtr(2)

		c := models.DefaultCriteria()
		c.MaxEnergetic = 3
		if engine.Matches(partial, album, artist, c) {
			t.Error("Track rated on one dimension only should still fail")
		}
	})

	t.Run("fully rated track in range matches", func(t *testing.T) {
		rated := unrated
		rated.CustomFields.Energetic = intPtr(2)
		rated.CustomFields.Joyful = intPtr(0)
		rated.CustomFields.Musical = intPtr(4)

		c := models.DefaultCriteria()
		c.MaxEnergetic = 3
		if !engine.Matches(rated, album, artist, c) {
			t.Error("Fully rated track within bounds should match")
		}

		c.MinJoyful = 1
		if engine.Matches(rated, album, artist, c) {
			t.Error("Track below a min bound should fail")
		}
	})
}

func TestAuthorFilterUsesArtistRecord(t *testing.T) {
	engine := NewFilterEngine(store.New(setupTestDB(t)))

	track := models.Track{
		ID:           "t1",
		Title:        "Duet",
		Author:       "Main Artist, Guest Star",
		AuthorIDs:    models.StringList{"a1", "a2"},
		CustomFields: models.NewCustomFields(time.Now()),
	}
	album := &models.Album{ID: "al1", Name: "Album"}
	artist := &models.Artist{ID: "a1", Name: "Main Artist"}

	t.Run("primary artist name matches", func(t *testing.T) {
		c := models.DefaultCriteria()
		c.Author = "main"
		if !engine.Matches(track, album, artist, c) {
			t.Error("Track should match on its primary artist's name")
		}
	})

	t.Run("featured co-artist does not match", func(t *testing.T) {
		c := models.DefaultCriteria()
		c.Author = "Guest Star"
		if engine.Matches(track, album, artist, c) {
			t.Error("Co-artist from the display string should not satisfy the author filter")
		}
	})

	t.Run("excluding a co-artist keeps the track", func(t *testing.T) {
		c := models.DefaultCriteria()
		c.Author = "!Guest Star"
		if !engine.Matches(track, album, artist, c) {
			t.Error("Excluding a co-artist should not drop a track whose primary artist differs")
		}
	})

	t.Run("nil artist fails the author filter", func(t *testing.T) {
		c := models.DefaultCriteria()
		c.Author = "main"
		if engine.Matches(track, album, nil, c) {
			t.Error("Author filter needs the joined artist record")
		}
	})
}

func TestMatchesHearts(t *testing.T) {
	engine := NewFilterEngine(store.New(setupTestDB(t)))

	track := models.Track{ID: "t1", Title: "Song", CustomFields: models.NewCustomFields(time.Now())}
	track.CustomFields.Heart = models.FavoriteSuperliked

	album := &models.Album{ID: "al1", Name: "Album", CustomFields: models.CustomFields{Heart: models.FavoriteLiked}}
	artist := &models.Artist{ID: "a1", Name: "Artist", CustomFields: models.CustomFields{Heart: models.FavoriteNone}}

	c := models.DefaultCriteria()
	c.TitleHeart = models.HeartOnlySuper
	c.AlbumHeart = models.HeartAllHearts
	c.ArtistHeart = models.HeartOnlyWithout
	if !engine.Matches(track, album, artist, c) {
		t.Error("Track should pass all three heart predicates")
	}

	c.ArtistHeart = models.HeartOnlySuper
	if engine.Matches(track, album, artist, c) {
		t.Error("Track should fail on the artist heart predicate")
	}
}

func TestEvaluateSkipsUnresolvedJoins(t *testing.T) {
	st := store.New(setupTestDB(t))
	engine := NewFilterEngine(st)

	seedEntity(t, st, models.Track{
		ID: "ok", Title: "Resolved", AlbumID: "al1",
		AuthorIDs:    models.StringList{"a1"},
		CustomFields: models.NewCustomFields(time.Now()),
	})

	// Track referencing an album that was never mirrored.
	orphan := models.Track{
		ID: "orphan", Title: "Orphan", AlbumID: "missing",
		AuthorIDs:    models.StringList{"a1"},
		CustomFields: models.NewCustomFields(time.Now()),
	}
	if err := st.PutTrack(&orphan); err != nil {
		t.Fatalf("PutTrack failed: %v", err)
	}

	res, err := engine.Evaluate(models.DefaultCriteria())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if len(res.Tracks) != 1 || res.Tracks[0].ID != "ok" {
		t.Errorf("Expected only the resolved track, got %v", res.Tracks)
	}
	if res.Skipped != 1 {
		t.Errorf("Expected 1 skipped track, got %d", res.Skipped)
	}
}
