package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"spotiplus/models"
	"spotiplus/services"
	"spotiplus/spotify"
	"spotiplus/store"
	"spotiplus/utils"
)

type AlbumController struct {
	store  *store.Store
	mirror *services.Mirror
}

func NewAlbumController(st *store.Store, mirror *services.Mirror) *AlbumController {
	return &AlbumController{store: st, mirror: mirror}
}

func (c *AlbumController) GetAlbums(ctx *gin.Context) {
	albums, err := c.store.AllAlbums()
	if err != nil {
		utils.InternalError(ctx, "Failed to fetch albums")
		return
	}
	ctx.JSON(200, albums)
}

func (c *AlbumController) GetAlbumByID(ctx *gin.Context) {
	album, err := c.store.GetAlbum(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(ctx, "Album not found")
			return
		}
		utils.InternalError(ctx, "Failed to fetch album")
		return
	}
	ctx.JSON(200, album)
}

func (c *AlbumController) UpdateCustomFields(ctx *gin.Context) {
	var patch models.CustomFieldsPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}
	if err := validateCustomFieldsPatch(patch); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}

	album, err := c.store.MergeAlbum(ctx.Param("id"), models.AlbumPatch{CustomFields: &patch})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(ctx, "Album not found")
			return
		}
		utils.InternalError(ctx, "Failed to update album")
		return
	}
	ctx.JSON(200, album)
}

// GetStatus reports how many of the album's tracks are already local.
func (c *AlbumController) GetStatus(ctx *gin.Context) {
	status, err := c.mirror.Status(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, spotify.ErrNotConnected) {
			utils.ServiceUnavailable(ctx, "Spotify session not connected")
			return
		}
		utils.InternalError(ctx, "Failed to check album status")
		return
	}
	ctx.JSON(200, status)
}

// Complete mirrors the album's missing tracks.
func (c *AlbumController) Complete(ctx *gin.Context) {
	result, err := c.mirror.CompleteAlbum(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, spotify.ErrNotConnected) {
			utils.ServiceUnavailable(ctx, "Spotify session not connected")
			return
		}
		utils.InternalError(ctx, "Failed to complete album")
		return
	}
	ctx.JSON(200, result)
}

func (c *AlbumController) DeleteAlbum(ctx *gin.Context) {
	if err := c.store.DeleteAlbum(ctx.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(ctx, "Album not found")
			return
		}
		utils.InternalError(ctx, "Failed to delete album")
		return
	}
	utils.NoContent(ctx)
}
