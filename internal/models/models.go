package models

// Playlist represents a YouTube playlist owned by the authenticated user.
type Playlist struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	ItemCount int    `json:"itemCount"`
}

// TokenPair holds the credentials returned by an OAuth2 token exchange.
//
// The access token is treated as opaque and valid until the API rejects it.
// The refresh token is stored for completeness but never used to renew the
// access token; an expired session requires a fresh login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
