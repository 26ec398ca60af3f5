package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
)

func newTestManager(t *testing.T, store Store) *Manager {
	t.Helper()
	m, err := NewManager(map[string]string{
		"client_id":     "test-client",
		"client_secret": "test-secret",
		"redirect_uri":  "http://localhost:3000/youtube-callback",
	}, store, log.New(io.Discard))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	return m
}

func TestNewManager(t *testing.T) {
	t.Run("fails without client_id", func(t *testing.T) {
		if _, err := NewManager(map[string]string{"client_secret": "s"}, NewMemoryStore(), nil); err == nil {
			t.Fatal("expected error for missing client_id")
		}
	})

	t.Run("fails without client_secret", func(t *testing.T) {
		if _, err := NewManager(map[string]string{"client_id": "c"}, NewMemoryStore(), nil); err == nil {
			t.Fatal("expected error for missing client_secret")
		}
	})

	t.Run("defaults the redirect URI", func(t *testing.T) {
		m := newTestManager(t, NewMemoryStore())
		if m.config.RedirectURL == "" {
			t.Error("expected redirect URI to be set")
		}
	})
}

func TestSaveToken(t *testing.T) {
	t.Run("persists the token pair", func(t *testing.T) {
		store := NewMemoryStore()
		m := newTestManager(t, store)

		err := m.SaveToken(&oauth2.Token{AccessToken: "access-1", RefreshToken: "refresh-1"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if got, _ := store.Get(AccessTokenKey); got != "access-1" {
			t.Errorf("expected stored access token, got %q", got)
		}
		if got, _ := store.Get(RefreshTokenKey); got != "refresh-1" {
			t.Errorf("expected stored refresh token, got %q", got)
		}
	})

	t.Run("rejects an empty token", func(t *testing.T) {
		m := newTestManager(t, NewMemoryStore())
		if err := m.SaveToken(nil); err == nil {
			t.Error("expected an error for a nil token")
		}
		if err := m.SaveToken(&oauth2.Token{}); err == nil {
			t.Error("expected an error for an empty access token")
		}
	})
}

func TestTokens(t *testing.T) {
	store := NewMemoryStore()
	m := newTestManager(t, store)

	if _, ok := m.Tokens(); ok {
		t.Error("expected no tokens before login")
	}

	if err := m.SaveToken(&oauth2.Token{AccessToken: "access-1", RefreshToken: "refresh-1"}); err != nil {
		t.Fatalf("failed to save token: %v", err)
	}

	tokens, ok := m.Tokens()
	if !ok {
		t.Fatal("expected stored tokens")
	}
	if tokens.AccessToken != "access-1" || tokens.RefreshToken != "refresh-1" {
		t.Errorf("unexpected pair: %+v", tokens)
	}
}

func TestAuthURL(t *testing.T) {
	m := newTestManager(t, NewMemoryStore())

	authURL := m.AuthURL("state123")
	parsed, err := url.Parse(authURL)
	if err != nil {
		t.Fatalf("failed to parse auth URL: %v", err)
	}

	if parsed.Host != "accounts.google.com" {
		t.Errorf("expected host accounts.google.com, got %s", parsed.Host)
	}
	if parsed.Path != "/o/oauth2/v2/auth" {
		t.Errorf("expected path /o/oauth2/v2/auth, got %s", parsed.Path)
	}

	query := parsed.Query()
	for param, want := range map[string]string{
		"client_id":     "test-client",
		"response_type": "code",
		"access_type":   "offline",
		"prompt":        "consent",
		"state":         "state123",
	} {
		if got := query.Get(param); got != want {
			t.Errorf("expected %s=%s, got %s", param, want, got)
		}
	}

	scope := query.Get("scope")
	if !strings.Contains(scope, "youtube.force-ssl") || !strings.Contains(scope, "auth/youtube") {
		t.Errorf("expected both youtube scopes, got %s", scope)
	}
}

func TestComplete(t *testing.T) {
	t.Run("persists tokens on success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				t.Fatalf("failed to parse form: %v", err)
			}
			if r.Form.Get("grant_type") != "authorization_code" {
				t.Errorf("expected grant_type authorization_code, got %s", r.Form.Get("grant_type"))
			}
			if r.Form.Get("code") != "code-1" {
				t.Errorf("expected code code-1, got %s", r.Form.Get("code"))
			}

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"at-1","refresh_token":"rt-1","token_type":"Bearer"}`))
		}))
		defer server.Close()

		store := NewMemoryStore()
		m := newTestManager(t, store)
		m.config.Endpoint.TokenURL = server.URL

		if !m.Complete(context.Background(), "code-1") {
			t.Fatal("expected exchange to succeed")
		}

		if access, _ := store.Get(AccessTokenKey); access != "at-1" {
			t.Errorf("expected stored access token at-1, got %s", access)
		}
		if refresh, _ := store.Get(RefreshTokenKey); refresh != "rt-1" {
			t.Errorf("expected stored refresh token rt-1, got %s", refresh)
		}
		if !m.IsAuthenticated() {
			t.Error("expected IsAuthenticated after successful exchange")
		}
	})

	t.Run("leaves stored tokens untouched on failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Google invalidates codes after first use.
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant"}`))
		}))
		defer server.Close()

		store := NewMemoryStore()
		store.Set(AccessTokenKey, "previous-token")

		m := newTestManager(t, store)
		m.config.Endpoint.TokenURL = server.URL

		if m.Complete(context.Background(), "used-code") {
			t.Fatal("expected exchange to fail")
		}

		if access, _ := store.Get(AccessTokenKey); access != "previous-token" {
			t.Errorf("expected previous token to survive failure, got %s", access)
		}
	})
}

func TestAuthenticationStatus(t *testing.T) {
	store := NewMemoryStore()
	m := newTestManager(t, store)

	if m.IsAuthenticated() {
		t.Error("expected unauthenticated with empty store")
	}

	store.Set(AccessTokenKey, "token")
	if !m.IsAuthenticated() {
		t.Error("expected authenticated with stored token")
	}

	if err := m.Logout(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if m.IsAuthenticated() {
		t.Error("expected unauthenticated after logout")
	}
	if refresh, _ := store.Get(RefreshTokenKey); refresh != "" {
		t.Errorf("expected refresh token cleared, got %s", refresh)
	}
}
