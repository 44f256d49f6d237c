package models

import (
	"strings"
	"time"
)

// FavoriteLevel is the per-entity heart tag. Every track, album and artist
// carries one; freshly mirrored entities start at FavoriteNone.
type FavoriteLevel string

const (
	FavoriteNone       FavoriteLevel = "none"
	FavoriteLiked      FavoriteLevel = "liked"
	FavoriteSuperliked FavoriteLevel = "superliked"
)

func (f FavoriteLevel) Valid() bool {
	switch f {
	case FavoriteNone, FavoriteLiked, FavoriteSuperliked:
		return true
	}
	return false
}

// StringList is stored as a JSON array in a single column.
type StringList []string

// CustomFields holds the user-owned annotations on an entity. Mood ratings
// are nil until the user rates the entity; zero is a real rating.
type CustomFields struct {
	Heart     FavoriteLevel `json:"heart"`
	Energetic *int          `json:"energetic,omitempty"`
	Joyful    *int          `json:"joyful,omitempty"`
	Musical   *int          `json:"musical,omitempty"`
	DateAdded time.Time     `json:"date_added"`
}

// NewCustomFields returns the annotations a freshly mirrored entity gets.
func NewCustomFields(now time.Time) CustomFields {
	return CustomFields{Heart: FavoriteNone, DateAdded: now}
}

// CustomFieldsPatch is a partial update. Nil fields leave the stored value
// untouched; set fields win.
type CustomFieldsPatch struct {
	Heart     *FavoriteLevel `json:"heart,omitempty"`
	Energetic *int           `json:"energetic,omitempty"`
	Joyful    *int           `json:"joyful,omitempty"`
	Musical   *int           `json:"musical,omitempty"`
	DateAdded *time.Time     `json:"date_added,omitempty"`
}

func (cf *CustomFields) Apply(p CustomFieldsPatch) {
	if p.Heart != nil {
		cf.Heart = *p.Heart
	}
	if p.Energetic != nil {
		cf.Energetic = p.Energetic
	}
	if p.Joyful != nil {
		cf.Joyful = p.Joyful
	}
	if p.Musical != nil {
		cf.Musical = p.Musical
	}
	if p.DateAdded != nil {
		cf.DateAdded = *p.DateAdded
	}
}

// Rated reports whether all three mood dimensions have been set.
func (cf CustomFields) Rated() bool {
	return cf.Energetic != nil && cf.Joyful != nil && cf.Musical != nil
}

type Track struct {
	ID           string       `gorm:"primaryKey;size:64" json:"id"`
	Title        string       `gorm:"not null;index" json:"title"`
	Author       string       `json:"author"`
	AuthorIDs    StringList   `gorm:"serializer:json" json:"author_ids"`
	AlbumID      string       `gorm:"size:64;index" json:"album_id"`
	AlbumName    string       `json:"album_name"`
	Duration     int          `json:"duration"` // seconds
	ImageURL     string       `json:"image_url"`
	Popularity   int          `json:"popularity"`
	URI          string       `json:"uri"`
	CustomFields CustomFields `gorm:"serializer:json" json:"custom_fields"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (Track) TableName() string {
	return "musics"
}

// PrimaryArtistID returns the first listed author id, which is the only one
// mirrored as a full Artist record.
func (t Track) PrimaryArtistID() string {
	if len(t.AuthorIDs) == 0 {
		return ""
	}
	return strings.TrimSpace(t.AuthorIDs[0])
}

// TrackPatch is a partial track update. CustomFields are merged key by key,
// never replaced wholesale.
type TrackPatch struct {
	Title        *string            `json:"title,omitempty"`
	Author       *string            `json:"author,omitempty"`
	AuthorIDs    *StringList        `json:"author_ids,omitempty"`
	AlbumID      *string            `json:"album_id,omitempty"`
	AlbumName    *string            `json:"album_name,omitempty"`
	Duration     *int               `json:"duration,omitempty"`
	ImageURL     *string            `json:"image_url,omitempty"`
	Popularity   *int               `json:"popularity,omitempty"`
	URI          *string            `json:"uri,omitempty"`
	CustomFields *CustomFieldsPatch `json:"custom_fields,omitempty"`
}

func (t *Track) Apply(p TrackPatch) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Author != nil {
		t.Author = *p.Author
	}
	if p.AuthorIDs != nil {
		t.AuthorIDs = *p.AuthorIDs
	}
	if p.AlbumID != nil {
		t.AlbumID = *p.AlbumID
	}
	if p.AlbumName != nil {
		t.AlbumName = *p.AlbumName
	}
	if p.Duration != nil {
		t.Duration = *p.Duration
	}
	if p.ImageURL != nil {
		t.ImageURL = *p.ImageURL
	}
	if p.Popularity != nil {
		t.Popularity = *p.Popularity
	}
	if p.URI != nil {
		t.URI = *p.URI
	}
	if p.CustomFields != nil {
		t.CustomFields.Apply(*p.CustomFields)
	}
}

type Album struct {
	ID           string       `gorm:"primaryKey;size:64" json:"id"`
	Name         string       `gorm:"not null;index" json:"name"`
	ArtistID     string       `gorm:"size:64" json:"artist_id"`
	ArtistName   string       `json:"artist_name"`
	TotalTracks  int          `json:"total_tracks"`
	ImageURL     string       `json:"image_url"`
	Popularity   int          `json:"popularity"`
	URI          string       `json:"uri"`
	CustomFields CustomFields `gorm:"serializer:json" json:"custom_fields"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (Album) TableName() string {
	return "albums"
}

type AlbumPatch struct {
	Name         *string            `json:"name,omitempty"`
	ArtistID     *string            `json:"artist_id,omitempty"`
	ArtistName   *string            `json:"artist_name,omitempty"`
	TotalTracks  *int               `json:"total_tracks,omitempty"`
	ImageURL     *string            `json:"image_url,omitempty"`
	Popularity   *int               `json:"popularity,omitempty"`
	URI          *string            `json:"uri,omitempty"`
	CustomFields *CustomFieldsPatch `json:"custom_fields,omitempty"`
}

func (a *Album) Apply(p AlbumPatch) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.ArtistID != nil {
		a.ArtistID = *p.ArtistID
	}
	if p.ArtistName != nil {
		a.ArtistName = *p.ArtistName
	}
	if p.TotalTracks != nil {
		a.TotalTracks = *p.TotalTracks
	}
	if p.ImageURL != nil {
		a.ImageURL = *p.ImageURL
	}
	if p.Popularity != nil {
		a.Popularity = *p.Popularity
	}
	if p.URI != nil {
		a.URI = *p.URI
	}
	if p.CustomFields != nil {
		a.CustomFields.Apply(*p.CustomFields)
	}
}

type Artist struct {
	ID           string       `gorm:"primaryKey;size:64" json:"id"`
	Name         string       `gorm:"not null;index" json:"name"`
	ImageURL     string       `json:"image_url"`
	Popularity   int          `json:"popularity"`
	URI          string       `json:"uri"`
	CustomFields CustomFields `gorm:"serializer:json" json:"custom_fields"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (Artist) TableName() string {
	return "artists"
}

type ArtistPatch struct {
	Name         *string            `json:"name,omitempty"`
	ImageURL     *string            `json:"image_url,omitempty"`
	Popularity   *int               `json:"popularity,omitempty"`
	URI          *string            `json:"uri,omitempty"`
	CustomFields *CustomFieldsPatch `json:"custom_fields,omitempty"`
}

func (a *Artist) Apply(p ArtistPatch) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.ImageURL != nil {
		a.ImageURL = *p.ImageURL
	}
	if p.Popularity != nil {
		a.Popularity = *p.Popularity
	}
	if p.URI != nil {
		a.URI = *p.URI
	}
	if p.CustomFields != nil {
		a.CustomFields.Apply(*p.CustomFields)
	}
}

// SavedPlaylist stores a named filter, not a track list. Its tracks are
// recomputed from the criteria every time it is opened or exported.
type SavedPlaylist struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Criteria  Criteria  `gorm:"serializer:json" json:"criteria"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SavedPlaylist) TableName() string {
	return "playlists"
}

type SavedPlaylistPatch struct {
	Name     *string        `json:"name,omitempty"`
	Criteria *CriteriaPatch `json:"criteria,omitempty"`
}

func (pl *SavedPlaylist) Apply(p SavedPlaylistPatch) {
	if p.Name != nil {
		pl.Name = *p.Name
	}
	if p.Criteria != nil {
		pl.Criteria.Apply(*p.Criteria)
	}
}
