package controllers

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"spotiplus/models"
	"spotiplus/services"
	"spotiplus/spotify"
	"spotiplus/store"
	"spotiplus/utils"
)

type PlaylistController struct {
	store        *store.Store
	materializer *services.Materializer
	exporter     *services.Exporter
}

func NewPlaylistController(st *store.Store, materializer *services.Materializer, exporter *services.Exporter) *PlaylistController {
	return &PlaylistController{store: st, materializer: materializer, exporter: exporter}
}

func playlistID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(ctx, "Invalid playlist id")
		return 0, false
	}
	return uint(id), true
}

func (c *PlaylistController) GetPlaylists(ctx *gin.Context) {
	playlists, err := c.store.AllPlaylists()
	if err != nil {
		utils.InternalError(ctx, "Failed to fetch playlists")
		return
	}
	ctx.JSON(200, playlists)
}

type createPlaylistRequest struct {
	Name     string                `json:"name"`
	Criteria *models.CriteriaPatch `json:"criteria"`
}

// CreatePlaylist saves a named filter. Criteria start from the defaults and
// any provided fields are applied on top.
func (c *PlaylistController) CreatePlaylist(ctx *gin.Context) {
	var req createPlaylistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		utils.BadRequest(ctx, "Playlist name cannot be empty")
		return
	}

	playlist := models.SavedPlaylist{
		Name:     req.Name,
		Criteria: models.DefaultCriteria(),
	}
	if req.Criteria != nil {
		playlist.Criteria.Apply(*req.Criteria)
	}

	if err := c.store.PutPlaylist(&playlist); err != nil {
		utils.InternalError(ctx, "Failed to create playlist")
		return
	}
	utils.Created(ctx, playlist)
}

func (c *PlaylistController) GetPlaylist(ctx *gin.Context) {
	id, ok := playlistID(ctx)
	if !ok {
		return
	}

	playlist, err := c.store.GetPlaylist(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(ctx, "Playlist not found")
			return
		}
		utils.InternalError(ctx, "Failed to fetch playlist")
		return
	}
	ctx.JSON(200, playlist)
}

// UpdatePlaylist merges a partial update. Criteria fields absent from the
// body keep their stored values.
func (c *PlaylistController) UpdatePlaylist(ctx *gin.Context) {
	id, ok := playlistID(ctx)
	if !ok {
		return
	}

	var patch models.SavedPlaylistPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		utils.BadRequest(ctx, "Playlist name cannot be empty")
		return
	}

	playlist, err := c.store.MergePlaylist(id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(ctx, "Playlist not found")
			return
		}
		utils.InternalError(ctx, "Failed to update playlist")
		return
	}
	ctx.JSON(200, playlist)
}

func (c *PlaylistController) DeletePlaylist(ctx *gin.Context) {
	id, ok := playlistID(ctx)
	if !ok {
		return
	}

	if err := c.store.DeletePlaylist(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(ctx, "Playlist not found")
			return
		}
		utils.InternalError(ctx, "Failed to delete playlist")
		return
	}
	utils.NoContent(ctx)
}

// GetPlaylistTracks materializes the playlist's criteria into its current
// track list.
func (c *PlaylistController) GetPlaylistTracks(ctx *gin.Context) {
	id, ok := playlistID(ctx)
	if !ok {
		return
	}

	playlist, err := c.store.GetPlaylist(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(ctx, "Playlist not found")
			return
		}
		utils.InternalError(ctx, "Failed to fetch playlist")
		return
	}

	list, err := c.materializer.Materialize(playlist.Criteria)
	if err != nil {
		utils.InternalError(ctx, "Failed to materialize playlist")
		return
	}
	ctx.JSON(200, list)
}

type exportRequest struct {
	Name string `json:"name"`
}

// ExportPlaylist pushes the materialized playlist to the remote catalog in
// shuffled order.
func (c *PlaylistController) ExportPlaylist(ctx *gin.Context) {
	id, ok := playlistID(ctx)
	if !ok {
		return
	}

	// The body is optional; without a name the saved playlist's own name is
	// used.
	var req exportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.exporter.ExportPlaylist(ctx.Request.Context(), id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			utils.NotFound(ctx, "Playlist not found")
		case errors.Is(err, services.ErrNoTracksToExport):
			utils.UnprocessableEntity(ctx, "No tracks match the playlist criteria")
		case errors.Is(err, spotify.ErrNotConnected):
			utils.ServiceUnavailable(ctx, "Spotify session not connected")
		default:
			utils.InternalError(ctx, "Failed to export playlist")
		}
		return
	}
	utils.Created(ctx, result)
}

// ExportUnrated pushes the rating backlog to the remote catalog, oldest
// first.
func (c *PlaylistController) ExportUnrated(ctx *gin.Context) {
	var req exportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		utils.BadRequest(ctx, "Playlist name cannot be empty")
		return
	}

	result, err := c.exporter.ExportUnrated(ctx.Request.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoTracksToExport):
			utils.UnprocessableEntity(ctx, "No unrated tracks to export")
		case errors.Is(err, spotify.ErrNotConnected):
			utils.ServiceUnavailable(ctx, "Spotify session not connected")
		default:
			utils.InternalError(ctx, "Failed to export unrated tracks")
		}
		return
	}
	utils.Created(ctx, result)
}
