// Package auth implements the Google OAuth2 authorization-code flow and owns
// the stored token pair.
//
// Tokens live in an injected [Store] rather than package-level state so the
// session backend can be swapped (SQLite in production, in-memory in tests).
// The refresh token is persisted but never used for silent renewal; when the
// API rejects the access token the user logs in again.
package auth

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/leessosso/ytpaste/internal/models"
	"github.com/leessosso/ytpaste/internal/shared"
	"golang.org/x/oauth2"
)

const (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"

	scopeYouTubeForceSSL = "https://www.googleapis.com/auth/youtube.force-ssl"
	scopeYouTube         = "https://www.googleapis.com/auth/youtube"

	// Session store keys for the persisted token pair.
	AccessTokenKey  = "youtube_access_token"
	RefreshTokenKey = "youtube_refresh_token"
)

// Store defines the session storage the Manager persists tokens in.
//
// Get returns the empty string (and no error) for an absent key.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Clear() error
}

// Manager owns the OAuth2 authorization-code flow: it builds the consent URL,
// exchanges authorization codes for tokens, persists the token pair, and
// reports authentication status.
type Manager struct {
	config *oauth2.Config
	store  Store
	logger *log.Logger
}

// NewManager creates a Manager from the given Google OAuth2 credentials.
func NewManager(credentials map[string]string, store Store, logger *log.Logger) (*Manager, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:3000/youtube-callback"
	}

	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{scopeYouTubeForceSSL, scopeYouTube},
		Endpoint: oauth2.Endpoint{
			AuthURL:  googleAuthURL,
			TokenURL: googleTokenURL,
		},
	}

	return &Manager{config: config, store: store, logger: logger}, nil
}

// AuthURL returns the Google consent URL for the given CSRF state token.
//
// Requests offline access with a forced consent prompt so the exchange returns
// a refresh token alongside the access token.
func (m *Manager) AuthURL(state string) string {
	return m.config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// OAuthConfig exposes the underlying [oauth2.Config] for callback handlers.
func (m *Manager) OAuthConfig() *oauth2.Config {
	return m.config
}

// Complete exchanges an authorization code for tokens and persists the pair.
//
// Reports success as a boolean; failures are logged, never propagated. A code
// is single-use on Google's side, so a repeated call with the same code fails
// normally. Previously stored tokens are left untouched on failure.
func (m *Manager) Complete(ctx context.Context, code string) bool {
	token, err := m.config.Exchange(ctx, code)
	if err != nil {
		m.logger.Error("token exchange failed", "error", err)
		return false
	}

	if err := m.SaveToken(token); err != nil {
		m.logger.Error("failed to persist token pair", "error", err)
		return false
	}

	return true
}

// SaveToken persists a token pair obtained elsewhere, such as the callback
// handler's own exchange.
func (m *Manager) SaveToken(token *oauth2.Token) error {
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("%w: empty token", shared.ErrAuthFailed)
	}

	if err := m.store.Set(AccessTokenKey, token.AccessToken); err != nil {
		return fmt.Errorf("failed to persist access token: %w", err)
	}
	if err := m.store.Set(RefreshTokenKey, token.RefreshToken); err != nil {
		return fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return nil
}

// IsAuthenticated reports whether an access token is currently stored.
// It does not validate the token against the API.
func (m *Manager) IsAuthenticated() bool {
	_, ok := m.AccessToken()
	return ok
}

// AccessToken returns the stored access token, if any.
func (m *Manager) AccessToken() (string, bool) {
	token, err := m.store.Get(AccessTokenKey)
	if err != nil {
		m.logger.Warn("failed to read access token", "error", err)
		return "", false
	}
	return token, token != ""
}

// Tokens returns the stored token pair. The second return value is false when
// no access token is stored.
func (m *Manager) Tokens() (models.TokenPair, bool) {
	access, ok := m.AccessToken()
	if !ok {
		return models.TokenPair{}, false
	}

	refresh, err := m.store.Get(RefreshTokenKey)
	if err != nil {
		m.logger.Warn("failed to read refresh token", "error", err)
	}

	return models.TokenPair{AccessToken: access, RefreshToken: refresh}, true
}

// Logout clears the stored token pair. Callers discard any in-memory playlist
// and extraction state afterwards.
func (m *Manager) Logout() error {
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
