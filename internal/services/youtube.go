// YouTube Data API v3 implementation of [PlaylistAPI]
//
// Endpoint shapes based on https://developers.google.com/youtube/v3/docs
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/leessosso/ytpaste/internal/models"
	"github.com/leessosso/ytpaste/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

	// Page size for both playlist and playlist-item listing.
	listPageSize = 50
)

// youtubePlaylistsResponse is the playlists.list response shape.
type youtubePlaylistsResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
		ContentDetails struct {
			ItemCount int `json:"itemCount"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// youtubeItemsResponse is the playlistItems.list response shape.
type youtubeItemsResponse struct {
	Items []struct {
		ID string `json:"id"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

// youtubeErrorResponse is the error envelope Google wraps failures in.
type youtubeErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// authReason reports whether the failure is credential-related rather than,
// say, quota or a missing resource.
func (e youtubeErrorResponse) authReason() bool {
	for _, item := range e.Error.Errors {
		if item.Reason == "authError" {
			return true
		}
	}
	return false
}

// insertItemRequest is the playlistItems.insert request body.
type insertItemRequest struct {
	Snippet struct {
		PlaylistID string `json:"playlistId"`
		ResourceID struct {
			Kind    string `json:"kind"`
			VideoID string `json:"videoId"`
		} `json:"resourceId"`
	} `json:"snippet"`
}

// YouTubeService implements [PlaylistAPI] against the YouTube Data API.
type YouTubeService struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewYouTubeService creates a new YouTube Data API client. An empty baseURL
// selects the production endpoint; tests point it at a local server.
func NewYouTubeService(baseURL string, tokens TokenSource, client *http.Client) *YouTubeService {
	if baseURL == "" {
		baseURL = defaultYouTubeBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &YouTubeService{
		baseURL:    baseURL,
		tokens:     tokens,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(8), 4),
	}
}

// doRequest performs an authenticated request and decodes a JSON response into result.
func (y *YouTubeService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	token, ok := y.tokens.AccessToken()
	if !ok {
		return shared.ErrNotAuthenticated
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, y.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: status %d", shared.ErrTokenExpired, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp youtubeErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			if resp.StatusCode == http.StatusForbidden && errResp.authReason() {
				return fmt.Errorf("%w: status %d: %s", shared.ErrTokenExpired, resp.StatusCode, errResp.Error.Message)
			}
			return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Playlists retrieves the authenticated user's playlists.
//
// Fetches a single page of up to 50 playlists; users with more only see the
// first page.
func (y *YouTubeService) Playlists(ctx context.Context) ([]models.Playlist, error) {
	endpoint := fmt.Sprintf("/playlists?part=snippet,contentDetails&mine=true&maxResults=%d", listPageSize)

	var resp youtubePlaylistsResponse
	if err := y.doRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}

	playlists := make([]models.Playlist, len(resp.Items))
	for i, item := range resp.Items {
		playlists[i] = models.Playlist{
			ID:        item.ID,
			Title:     item.Snippet.Title,
			ItemCount: item.ContentDetails.ItemCount,
		}
	}

	return playlists, nil
}

// PlaylistItems retrieves one page of item IDs for the given playlist.
func (y *YouTubeService) PlaylistItems(ctx context.Context, playlistID, pageToken string) (*ItemPage, error) {
	endpoint := fmt.Sprintf("/playlistItems?part=id&playlistId=%s&maxResults=%d",
		url.QueryEscape(playlistID), listPageSize)
	if pageToken != "" {
		endpoint += "&pageToken=" + url.QueryEscape(pageToken)
	}

	var resp youtubeItemsResponse
	if err := y.doRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}

	page := &ItemPage{
		ItemIDs:       make([]string, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}
	for i, item := range resp.Items {
		page.ItemIDs[i] = item.ID
	}

	return page, nil
}

// DeleteItem removes a single playlist item.
func (y *YouTubeService) DeleteItem(ctx context.Context, itemID string) error {
	endpoint := "/playlistItems?id=" + url.QueryEscape(itemID)
	return y.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// InsertVideo appends a video to the end of the given playlist.
func (y *YouTubeService) InsertVideo(ctx context.Context, playlistID, videoID string) error {
	var body insertItemRequest
	body.Snippet.PlaylistID = playlistID
	body.Snippet.ResourceID.Kind = "youtube#video"
	body.Snippet.ResourceID.VideoID = videoID

	return y.doRequest(ctx, http.MethodPost, "/playlistItems?part=snippet", body, nil)
}
