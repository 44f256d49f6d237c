package controllers

import (
	"github.com/gin-gonic/gin"

	"spotiplus/store"
	"spotiplus/utils"
)

type BackupController struct {
	store *store.Store
}

func NewBackupController(st *store.Store) *BackupController {
	return &BackupController{store: st}
}

// Export dumps the whole library as one JSON document, keyed by collection.
func (c *BackupController) Export(ctx *gin.Context) {
	snap, err := c.store.Export()
	if err != nil {
		utils.InternalError(ctx, "Failed to export backup")
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="spotiplus-backup.json"`)
	ctx.JSON(200, snap)
}

// Import replaces the whole library with the uploaded snapshot. The restore
// runs in one transaction; on failure the previous data is kept.
func (c *BackupController) Import(ctx *gin.Context) {
	var snap store.Snapshot
	if err := ctx.ShouldBindJSON(&snap); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}

	if err := c.store.Import(&snap); err != nil {
		utils.InternalError(ctx, "Failed to restore backup")
		return
	}

	ctx.JSON(200, gin.H{
		"musics":    len(snap.Musics),
		"albums":    len(snap.Albums),
		"artists":   len(snap.Artists),
		"playlists": len(snap.Playlists),
	})
}
