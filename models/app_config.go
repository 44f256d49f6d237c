package models

import (
	"time"
)

// AppConfig is a single-row settings table. InitDB guarantees the row
// exists.
type AppConfig struct {
	ID                    uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	LastPopularityRefresh string    `gorm:"size:10" json:"last_popularity_refresh"` // YYYY-MM-DD
	LogRetentionCount     int       `gorm:"default:500" json:"log_retention_count"` // mirror log rows kept
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
