package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"spotiplus/models"
	"spotiplus/store"
	"spotiplus/utils"
)

type ArtistController struct {
	store *store.Store
}

func NewArtistController(st *store.Store) *ArtistController {
	return &ArtistController{store: st}
}

func (c *ArtistController) GetArtists(ctx *gin.Context) {
	artists, err := c.store.AllArtists()
	if err != nil {
		utils.InternalError(ctx, "Failed to fetch artists")
		return
	}
	ctx.JSON(200, artists)
}

func (c *ArtistController) GetArtistByID(ctx *gin.Context) {
	artist, err := c.store.GetArtist(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(ctx, "Artist not found")
			return
		}
		utils.InternalError(ctx, "Failed to fetch artist")
		return
	}
	ctx.JSON(200, artist)
}

func (c *ArtistController) UpdateCustomFields(ctx *gin.Context) {
	var patch models.CustomFieldsPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}
	if err := validateCustomFieldsPatch(patch); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}

	artist, err := c.store.MergeArtist(ctx.Param("id"), models.ArtistPatch{CustomFields: &patch})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(ctx, "Artist not found")
			return
		}
		utils.InternalError(ctx, "Failed to update artist")
		return
	}
	ctx.JSON(200, artist)
}

func (c *ArtistController) DeleteArtist(ctx *gin.Context) {
	if err := c.store.DeleteArtist(ctx.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(ctx, "Artist not found")
			return
		}
		utils.InternalError(ctx, "Failed to delete artist")
		return
	}
	utils.NoContent(ctx)
}
