package services

import (
	"context"

	"github.com/leessosso/ytpaste/internal/models"
)

// TokenSource reports the stored bearer credential for API calls.
// Implemented by auth.Manager.
type TokenSource interface {
	AccessToken() (string, bool)
}

// ItemPage is one page of playlist item IDs with an optional continuation token.
type ItemPage struct {
	ItemIDs       []string
	NextPageToken string
}

// PlaylistAPI defines the YouTube operations the replace engine depends on.
type PlaylistAPI interface {
	// Playlists retrieves the authenticated user's playlists (first page, up to 50).
	Playlists(ctx context.Context) ([]models.Playlist, error)

	// PlaylistItems retrieves one page of item IDs for a playlist.
	// An empty pageToken requests the first page.
	PlaylistItems(ctx context.Context, playlistID, pageToken string) (*ItemPage, error)

	// DeleteItem removes a single playlist item by its item ID.
	DeleteItem(ctx context.Context, itemID string) error

	// InsertVideo appends a video to the end of a playlist.
	InsertVideo(ctx context.Context, playlistID, videoID string) error
}
