package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/leessosso/ytpaste/internal/extract"
	"github.com/leessosso/ytpaste/internal/services"
	"github.com/leessosso/ytpaste/internal/shared"
)

// pageSize mirrors the maxResults the API client requests per page. A page
// shorter than this with no continuation token is the last one even when
// some deletions on it failed.
const pageSize = 50

// Session is the authentication surface the engine needs: a precondition
// check before starting, and a forced logout when the credential expires
// mid-run. Implemented by auth.Manager.
type Session interface {
	IsAuthenticated() bool
	Logout() error
}

// ReplaceEngine executes playlist replace runs against a [services.PlaylistAPI].
type ReplaceEngine struct {
	api     services.PlaylistAPI
	session Session
	logger  *log.Logger
	busy    atomic.Bool
}

// NewReplaceEngine creates a replace engine.
func NewReplaceEngine(api services.PlaylistAPI, session Session, logger *log.Logger) *ReplaceEngine {
	return &ReplaceEngine{
		api:     api,
		session: session,
		logger:  logger,
	}
}

// Busy reports whether a replace is currently running.
func (e *ReplaceEngine) Busy() bool {
	return e.busy.Load()
}

// Replace empties the playlist and inserts the videos from links in order.
// The optional progress callback is invoked synchronously after each item.
//
// Preconditions are checked before any network call: a run already in
// progress, an empty playlist ID, links yielding no video IDs, and a missing
// credential each fail with their sentinel error.
func (e *ReplaceEngine) Replace(ctx context.Context, playlistID string, links []string, progress func(ProgressUpdate)) (*Result, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, shared.ErrReplaceInProgress
	}
	defer e.busy.Store(false)

	if playlistID == "" {
		return nil, shared.ErrNoPlaylistSelected
	}

	videoIDs := extract.VideoIDs(links)
	if len(videoIDs) == 0 {
		return nil, shared.ErrNoLinks
	}

	if !e.session.IsAuthenticated() {
		return nil, shared.ErrNotAuthenticated
	}

	if progress == nil {
		progress = func(ProgressUpdate) {}
	}

	result := &Result{Total: len(videoIDs)}

	runID := shared.GenerateID()
	e.logger.Info("starting playlist replace", "run", runID, "playlist", playlistID, "videos", len(videoIDs))

	if err := e.deleteAll(ctx, playlistID, result, progress); err != nil {
		return nil, err
	}

	if err := e.insertAll(ctx, playlistID, videoIDs, result, progress); err != nil {
		return nil, err
	}

	progress(ProgressUpdate{Phase: PhaseDone, Completed: result.Inserted, Total: result.Total})
	e.logger.Info("playlist replace finished",
		"run", runID, "playlist", playlistID, "deleted", result.Deleted,
		"inserted", result.Inserted, "skipped", result.Skipped)

	return result, nil
}

// deleteAll removes every existing item, page by page. Each pass re-requests
// the first page because deletions invalidate continuation tokens.
func (e *ReplaceEngine) deleteAll(ctx context.Context, playlistID string, result *Result, progress func(ProgressUpdate)) error {
	for {
		page, err := e.api.PlaylistItems(ctx, playlistID, "")
		if err != nil {
			if errors.Is(err, shared.ErrTokenExpired) {
				return e.expire(err)
			}
			return fmt.Errorf("failed to list playlist items: %w", err)
		}

		if len(page.ItemIDs) == 0 {
			return nil
		}

		deletedBefore := result.Deleted
		for _, itemID := range page.ItemIDs {
			if err := ctx.Err(); err != nil {
				return err
			}

			// A single failed delete is not fatal; the item count
			// just stays one higher than expected.
			if err := e.api.DeleteItem(ctx, itemID); err != nil {
				if errors.Is(err, shared.ErrTokenExpired) {
					return e.expire(err)
				}
				e.logger.Warn("failed to delete playlist item", "item", itemID, "error", err)
				continue
			}

			result.Deleted++
			progress(ProgressUpdate{Phase: PhaseDeleting, Completed: result.Deleted})
		}

		// A pass that removed nothing would serve the same items again
		// forever. Leave them in place; the deletions already failed
		// individually and were logged above.
		if result.Deleted == deletedBefore {
			e.logger.Warn("no playlist items could be deleted, leaving the rest in place",
				"remaining", len(page.ItemIDs))
			return nil
		}

		if page.NextPageToken == "" && len(page.ItemIDs) < pageSize {
			return nil
		}
	}
}

// insertAll appends the videos one at a time so the final order matches the
// paste order. Failed inserts are skipped; an expired credential aborts.
func (e *ReplaceEngine) insertAll(ctx context.Context, playlistID string, videoIDs []string, result *Result, progress func(ProgressUpdate)) error {
	for _, videoID := range videoIDs {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := e.api.InsertVideo(ctx, playlistID, videoID); err != nil {
			if errors.Is(err, shared.ErrTokenExpired) {
				return e.expire(err)
			}

			result.Skipped++
			e.logger.Warn("failed to insert video", "video", videoID, "error", err)
			continue
		}

		result.Inserted++
		progress(ProgressUpdate{
			Phase:     PhaseInserting,
			Completed: result.Inserted,
			Total:     result.Total,
			VideoID:   videoID,
		})
	}

	return nil
}

// expire logs the session out after a credential rejection and returns the
// auth failure to the caller.
func (e *ReplaceEngine) expire(cause error) error {
	e.logger.Error("credential rejected mid-run, logging out", "error", cause)
	if err := e.session.Logout(); err != nil {
		e.logger.Error("failed to clear session", "error", err)
	}
	return fmt.Errorf("%w: %v", shared.ErrAuthFailed, cause)
}
