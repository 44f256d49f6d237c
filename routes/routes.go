package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"gorm.io/gorm"

	"spotiplus/controllers"
	"spotiplus/services"
	"spotiplus/spotify"
	"spotiplus/store"
)

// SetupRoutes wires the stores, services and controllers onto the engine.
func SetupRoutes(r *gin.Engine, db *gorm.DB, client *spotify.Client, auth *spotifyauth.Authenticator) {
	st := store.New(db)
	engine := services.NewFilterEngine(st)
	materializer := services.NewMaterializer(engine, st)
	mirror := services.NewMirror(db, st, client)
	exporter := services.NewExporter(st, client, materializer)
	refresher := services.NewRefresher(db, st, client)

	trackController := controllers.NewTrackController(st, materializer)
	albumController := controllers.NewAlbumController(st, mirror)
	artistController := controllers.NewArtistController(st)
	playlistController := controllers.NewPlaylistController(st, materializer, exporter)
	mirrorController := controllers.NewMirrorController(mirror)
	popularityController := controllers.NewPopularityController(refresher)
	backupController := controllers.NewBackupController(st)
	authController := controllers.NewAuthController(auth, client, refresher)

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil {
			c.JSON(503, gin.H{
				"status":    "unhealthy",
				"error":     "database connection error",
				"timestamp": time.Now().Unix(),
			})
			return
		}

		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := sqlDB.PingContext(pingCtx); err != nil {
			c.JSON(503, gin.H{
				"status":    "unhealthy",
				"error":     "database ping failed",
				"timestamp": time.Now().Unix(),
			})
			return
		}

		c.JSON(200, gin.H{
			"status":    "healthy",
			"database":  "connected",
			"spotify":   client.Connected(),
			"timestamp": time.Now().Unix(),
		})
	})

	r.GET("/auth/login", authController.Login)
	r.GET("/auth/callback", authController.Callback)
	r.GET("/auth/status", authController.Status)

	r.GET("/tracks", trackController.GetTracks)
	r.GET("/tracks/unrated", trackController.GetUnrated)
	r.GET("/tracks/:id", trackController.GetTrackByID)
	r.PATCH("/tracks/:id/custom-fields", trackController.UpdateCustomFields)
	r.DELETE("/tracks/:id", trackController.DeleteTrack)

	r.GET("/albums", albumController.GetAlbums)
	r.GET("/albums/:id", albumController.GetAlbumByID)
	r.PATCH("/albums/:id/custom-fields", albumController.UpdateCustomFields)
	r.GET("/albums/:id/status", albumController.GetStatus)
	r.POST("/albums/:id/complete", albumController.Complete)
	r.DELETE("/albums/:id", albumController.DeleteAlbum)

	r.GET("/artists", artistController.GetArtists)
	r.GET("/artists/:id", artistController.GetArtistByID)
	r.PATCH("/artists/:id/custom-fields", artistController.UpdateCustomFields)
	r.DELETE("/artists/:id", artistController.DeleteArtist)

	r.GET("/playlists", playlistController.GetPlaylists)
	r.POST("/playlists", playlistController.CreatePlaylist)
	r.GET("/playlists/:id", playlistController.GetPlaylist)
	r.PUT("/playlists/:id", playlistController.UpdatePlaylist)
	r.DELETE("/playlists/:id", playlistController.DeletePlaylist)
	r.GET("/playlists/:id/tracks", playlistController.GetPlaylistTracks)
	r.POST("/playlists/:id/export", playlistController.ExportPlaylist)
	r.POST("/export/unrated", playlistController.ExportUnrated)

	r.POST("/import/playlists/:id", mirrorController.ImportPlaylist)
	r.GET("/mirror/logs", mirrorController.GetLogs)

	r.POST("/popularity/refresh", popularityController.Refresh)

	r.GET("/backup", backupController.Export)
	r.POST("/restore", backupController.Import)
}
