package models

import (
	"time"
)

// Mirror log operations.
const (
	MirrorOpImport  = "import"
	MirrorOpAlbum   = "album"
	MirrorOpArtist  = "artist"
	MirrorOpRefresh = "refresh"
)

// MirrorLog records a per-entity failure during mirroring or a popularity
// refresh. One bad entity never aborts the surrounding pass; it lands here
// instead.
type MirrorLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EntityKind string    `gorm:"size:20;index" json:"entity_kind"` // track, album, artist
	EntityID   string    `gorm:"size:64" json:"entity_id"`
	Operation  string    `gorm:"size:20" json:"operation"`
	ErrorMsg   string    `gorm:"type:text" json:"error_msg"`
	CreatedAt  time.Time `json:"created_at"`
}
