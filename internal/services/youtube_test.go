package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leessosso/ytpaste/internal/shared"
	internaltest "github.com/leessosso/ytpaste/internal/testing"
)

type staticTokens struct {
	token string
	ok    bool
}

func (s staticTokens) AccessToken() (string, bool) {
	return s.token, s.ok
}

func TestYouTubeServicePlaylists(t *testing.T) {
	t.Run("maps response items to playlists", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/playlists" {
				t.Errorf("expected path /playlists, got %s", r.URL.Path)
			}
			if got := r.URL.Query().Get("mine"); got != "true" {
				t.Errorf("expected mine=true, got %q", got)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
				t.Errorf("expected bearer header, got %q", got)
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{
						"id":             "PL1",
						"snippet":        map[string]any{"title": "Mix"},
						"contentDetails": map[string]any{"itemCount": 12},
					},
					{
						"id":             "PL2",
						"snippet":        map[string]any{"title": "Favorites"},
						"contentDetails": map[string]any{"itemCount": 0},
					},
				},
			})
		}))
		defer server.Close()

		svc := NewYouTubeService(server.URL, staticTokens{"test-token", true}, server.Client())
		playlists, err := svc.Playlists(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(playlists) != 2 {
			t.Fatalf("expected 2 playlists, got %d", len(playlists))
		}
		if playlists[0].ID != "PL1" || playlists[0].Title != "Mix" || playlists[0].ItemCount != 12 {
			t.Errorf("unexpected first playlist: %+v", playlists[0])
		}
	})

	t.Run("fails without a stored token before any request", func(t *testing.T) {
		svc := NewYouTubeService("http://127.0.0.1:0", staticTokens{}, nil)
		_, err := svc.Playlists(context.Background())
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})
}

func TestYouTubeServicePlaylistItems(t *testing.T) {
	t.Run("forwards the page token and returns the next one", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("playlistId"); got != "PL1" {
				t.Errorf("expected playlistId PL1, got %q", got)
			}
			if got := r.URL.Query().Get("pageToken"); got != "tok-1" {
				t.Errorf("expected pageToken tok-1, got %q", got)
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"items":         []map[string]any{{"id": "item-a"}, {"id": "item-b"}},
				"nextPageToken": "tok-2",
			})
		}))
		defer server.Close()

		svc := NewYouTubeService(server.URL, staticTokens{"test-token", true}, server.Client())
		page, err := svc.PlaylistItems(context.Background(), "PL1", "tok-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(page.ItemIDs) != 2 || page.ItemIDs[0] != "item-a" {
			t.Errorf("unexpected item ids: %v", page.ItemIDs)
		}
		if page.NextPageToken != "tok-2" {
			t.Errorf("expected next token tok-2, got %q", page.NextPageToken)
		}
	})

	t.Run("omits the page token on the first page", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Has("pageToken") {
				t.Error("expected no pageToken on first page")
			}
			w.Write([]byte(`{"items": []}`))
		}))
		defer server.Close()

		svc := NewYouTubeService(server.URL, staticTokens{"test-token", true}, server.Client())
		page, err := svc.PlaylistItems(context.Background(), "PL1", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(page.ItemIDs) != 0 || page.NextPageToken != "" {
			t.Errorf("expected empty page, got %+v", page)
		}
	})
}

func TestYouTubeServiceInsertVideo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.URL.Query().Get("part"); got != "snippet" {
			t.Errorf("expected part=snippet, got %q", got)
		}

		var body insertItemRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body.Snippet.PlaylistID != "PL1" {
			t.Errorf("expected playlistId PL1, got %q", body.Snippet.PlaylistID)
		}
		if body.Snippet.ResourceID.Kind != "youtube#video" {
			t.Errorf("expected kind youtube#video, got %q", body.Snippet.ResourceID.Kind)
		}
		if body.Snippet.ResourceID.VideoID != "vid-1" {
			t.Errorf("expected videoId vid-1, got %q", body.Snippet.ResourceID.VideoID)
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id": "new-item"}`))
	}))
	defer server.Close()

	svc := NewYouTubeService(server.URL, staticTokens{"test-token", true}, server.Client())
	if err := svc.InsertVideo(context.Background(), "PL1", "vid-1"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestYouTubeServiceDeleteItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		if got := r.URL.Query().Get("id"); got != "item-a" {
			t.Errorf("expected id item-a, got %q", got)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	svc := NewYouTubeService(server.URL, staticTokens{"test-token", true}, server.Client())
	if err := svc.DeleteItem(context.Background(), "item-a"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestYouTubeServiceErrors(t *testing.T) {
	t.Run("maps 401 to a token expiry error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		svc := NewYouTubeService(server.URL, staticTokens{"stale", true}, server.Client())
		_, err := svc.Playlists(context.Background())
		if !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("treats a 403 auth error like an expired token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": {"code": 403, "message": "Invalid Credentials", "errors": [{"reason": "authError"}]}}`))
		}))
		defer server.Close()

		svc := NewYouTubeService(server.URL, staticTokens{"stale", true}, server.Client())
		_, err := svc.Playlists(context.Background())
		if !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("wraps transport failures", func(t *testing.T) {
		client := &http.Client{
			Transport: internaltest.NewMockRoundTripper(nil, errors.New("connection refused")),
		}

		svc := NewYouTubeService("http://example.invalid", staticTokens{"test-token", true}, client)
		_, err := svc.Playlists(context.Background())
		if err == nil || !strings.Contains(err.Error(), "connection refused") {
			t.Errorf("expected the transport error to surface, got %v", err)
		}
	})

	t.Run("surfaces the API error message on other failures", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": {"code": 403, "message": "quotaExceeded"}}`))
		}))
		defer server.Close()

		svc := NewYouTubeService(server.URL, staticTokens{"test-token", true}, server.Client())
		err := svc.DeleteItem(context.Background(), "item-a")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Fatalf("expected ErrAPIRequest, got %v", err)
		}
		if got := err.Error(); !strings.Contains(got, "quotaExceeded") {
			t.Errorf("expected error message to include quotaExceeded, got %q", got)
		}
	})
}
