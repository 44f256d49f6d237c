package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"spotiplus/services"
	"spotiplus/spotify"
	"spotiplus/utils"
)

type MirrorController struct {
	mirror *services.Mirror
}

func NewMirrorController(mirror *services.Mirror) *MirrorController {
	return &MirrorController{mirror: mirror}
}

// ImportPlaylist mirrors every track of a remote playlist into the local
// library. Already-known tracks keep their annotations.
func (c *MirrorController) ImportPlaylist(ctx *gin.Context) {
	result, err := c.mirror.ImportPlaylist(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, spotify.ErrNotConnected) {
			utils.ServiceUnavailable(ctx, "Spotify session not connected")
			return
		}
		utils.InternalError(ctx, "Failed to import playlist")
		return
	}
	ctx.JSON(200, result)
}

// GetLogs lists recent per-entity mirror and refresh failures.
func (c *MirrorController) GetLogs(ctx *gin.Context) {
	limit := 100
	if v := ctx.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			utils.BadRequest(ctx, "Invalid limit")
			return
		}
		limit = n
	}

	logs, err := c.mirror.Logs(limit)
	if err != nil {
		utils.InternalError(ctx, "Failed to fetch mirror logs")
		return
	}
	ctx.JSON(200, logs)
}
