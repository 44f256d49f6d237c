package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"spotiplus/services"
	"spotiplus/spotify"
	"spotiplus/utils"
)

type PopularityController struct {
	refresher *services.Refresher
}

func NewPopularityController(refresher *services.Refresher) *PopularityController {
	return &PopularityController{refresher: refresher}
}

// Refresh triggers the daily popularity pass. If a pass already completed
// today the call returns immediately with skipped=true.
func (c *PopularityController) Refresh(ctx *gin.Context) {
	result, err := c.refresher.RefreshDaily(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, spotify.ErrNotConnected) {
			utils.ServiceUnavailable(ctx, "Spotify session not connected")
			return
		}
		utils.InternalError(ctx, "Failed to refresh popularity")
		return
	}
	ctx.JSON(200, result)
}
