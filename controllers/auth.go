package controllers

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	spotifyapi "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"

	"spotiplus/config"
	"spotiplus/services"
	"spotiplus/spotify"
	"spotiplus/utils"
)

// AuthController runs the oauth round trip that turns the disconnected
// catalog client into a live user session. Once connected it kicks off the
// daily popularity refresh in the background.
type AuthController struct {
	auth      *spotifyauth.Authenticator
	client    *spotify.Client
	refresher *services.Refresher

	mu    sync.Mutex
	state string
}

func NewAuthController(auth *spotifyauth.Authenticator, client *spotify.Client, refresher *services.Refresher) *AuthController {
	return &AuthController{auth: auth, client: client, refresher: refresher}
}

// Login redirects the browser to the consent page.
func (c *AuthController) Login(ctx *gin.Context) {
	state, err := spotify.GenerateState()
	if err != nil {
		utils.InternalError(ctx, "Failed to start login")
		return
	}

	c.mu.Lock()
	c.state = state
	c.mu.Unlock()

	ctx.Redirect(http.StatusFound, c.auth.AuthURL(state))
}

// Callback completes the oauth exchange and installs the session.
func (c *AuthController) Callback(ctx *gin.Context) {
	c.mu.Lock()
	state := c.state
	c.mu.Unlock()

	if state == "" {
		utils.BadRequest(ctx, "No login in progress")
		return
	}

	token, err := c.auth.Token(ctx.Request.Context(), state, ctx.Request)
	if err != nil {
		utils.Unauthorized(ctx, "Token exchange failed")
		return
	}

	// The session outlives this request, and all its calls go through the
	// configured Spotify timeout.
	sessionCtx := context.WithValue(context.Background(), oauth2.HTTPClient, config.SpotifyClient())
	c.client.Connect(spotifyapi.New(c.auth.Client(sessionCtx, token)))
	log.Println("Spotify session connected")

	// First connection of the day triggers the popularity pass.
	go func() {
		if _, err := c.refresher.RefreshDaily(context.Background()); err != nil {
			log.Printf("startup popularity refresh: %v", err)
		}
	}()

	ctx.JSON(200, gin.H{"status": "connected"})
}

// Status reports whether a user session is live.
func (c *AuthController) Status(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"connected": c.client.Connected()})
}
