package spotify

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	spotifyauth "github.com/zmb3/spotify/v2/auth"
)

// NewAuthenticator builds the authorization-code flow used to obtain a user
// session. Client id and secret come from SPOTIFY_ID / SPOTIFY_SECRET in the
// environment; playlist creation needs the modify scopes.
func NewAuthenticator() *spotifyauth.Authenticator {
	redirectURL := os.Getenv("SPOTIFY_REDIRECT_URL")
	if redirectURL == "" {
		redirectURL = "http://localhost:8080/auth/callback"
	}

	return spotifyauth.New(
		spotifyauth.WithRedirectURL(redirectURL),
		spotifyauth.WithScopes(
			spotifyauth.ScopePlaylistReadPrivate,
			spotifyauth.ScopePlaylistReadCollaborative,
			spotifyauth.ScopePlaylistModifyPrivate,
			spotifyauth.ScopePlaylistModifyPublic,
		),
	)
}

// GenerateState returns a random state token for the oauth round trip.
func GenerateState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
