package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"spotiplus/models"
	"spotiplus/services"
	"spotiplus/store"
	"spotiplus/utils"
)

type TrackController struct {
	store        *store.Store
	materializer *services.Materializer
}

func NewTrackController(st *store.Store, materializer *services.Materializer) *TrackController {
	return &TrackController{store: st, materializer: materializer}
}

// criteriaFromQuery builds filter criteria from query parameters; absent
// parameters keep their defaults, so a bare request lists the whole library.
func criteriaFromQuery(ctx *gin.Context) (models.Criteria, error) {
	c := models.DefaultCriteria()

	c.Title = ctx.Query("title")
	c.Album = ctx.Query("album")
	c.Author = ctx.Query("author")

	hearts := []struct {
		param  string
		target *models.HeartFilter
	}{
		{"title_heart", &c.TitleHeart},
		{"album_heart", &c.AlbumHeart},
		{"artist_heart", &c.ArtistHeart},
	}
	for _, h := range hearts {
		if v := ctx.Query(h.param); v != "" {
			mode := models.HeartFilter(v)
			if !mode.Valid() {
				return c, fmt.Errorf("invalid %s: %q", h.param, v)
			}
			*h.target = mode
		}
	}

	bounds := []struct {
		param  string
		target *int
	}{
		{"min_energetic", &c.MinEnergetic},
		{"max_energetic", &c.MaxEnergetic},
		{"min_joyful", &c.MinJoyful},
		{"max_joyful", &c.MaxJoyful},
		{"min_musical", &c.MinMusical},
		{"max_musical", &c.MaxMusical},
	}
	for _, b := range bounds {
		if v := ctx.Query(b.param); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return c, fmt.Errorf("invalid %s: %q", b.param, v)
			}
			if n < models.MoodMin || n > models.MoodMax {
				return c, fmt.Errorf("%s out of range: %d", b.param, n)
			}
			*b.target = n
		}
	}

	if v := ctx.Query("sort"); v != "" {
		mode := models.SortMode(v)
		if !mode.Valid() {
			return c, fmt.Errorf("invalid sort: %q", v)
		}
		c.Sort = mode
	}

	return c, nil
}

func validateCustomFieldsPatch(p models.CustomFieldsPatch) error {
	if p.Heart != nil && !p.Heart.Valid() {
		return fmt.Errorf("invalid heart: %q", *p.Heart)
	}
	moods := map[string]*int{
		"energetic": p.Energetic,
		"joyful":    p.Joyful,
		"musical":   p.Musical,
	}
	for name, v := range moods {
		if v != nil && (*v < models.MoodMin || *v > models.MoodMax) {
			return fmt.Errorf("%s out of range: %d", name, *v)
		}
	}
	return nil
}

// GetTracks lists the library filtered by query-string criteria.
func (c *TrackController) GetTracks(ctx *gin.Context) {
	criteria, err := criteriaFromQuery(ctx)
	if err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}

	list, err := c.materializer.Materialize(criteria)
	if err != nil {
		utils.InternalError(ctx, "Failed to filter tracks")
		return
	}
	ctx.JSON(200, list)
}

// GetUnrated lists the rating backlog, oldest first.
func (c *TrackController) GetUnrated(ctx *gin.Context) {
	list, err := c.materializer.UnratedTracks()
	if err != nil {
		utils.InternalError(ctx, "Failed to list unrated tracks")
		return
	}
	ctx.JSON(200, list)
}

func (c *TrackController) GetTrackByID(ctx *gin.Context) {
	track, err := c.store.GetTrack(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(ctx, "Track not found")
			return
		}
		utils.InternalError(ctx, "Failed to fetch track")
		return
	}
	ctx.JSON(200, track)
}

// UpdateCustomFields merges a partial annotation update into the track.
// Fields absent from the body keep their stored values.
func (c *TrackController) UpdateCustomFields(ctx *gin.Context) {
	var patch models.CustomFieldsPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}
	if err := validateCustomFieldsPatch(patch); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}

	track, err := c.store.MergeTrack(ctx.Param("id"), models.TrackPatch{CustomFields: &patch})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(ctx, "Track not found")
			return
		}
		utils.InternalError(ctx, "Failed to update track")
		return
	}
	ctx.JSON(200, track)
}

func (c *TrackController) DeleteTrack(ctx *gin.Context) {
	if err := c.store.DeleteTrack(ctx.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(ctx, "Track not found")
			return
		}
		utils.InternalError(ctx, "Failed to delete track")
		return
	}
	utils.NoContent(ctx)
}
