package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/leessosso/ytpaste/internal/extract"
	"github.com/leessosso/ytpaste/internal/formatter"
	"github.com/leessosso/ytpaste/internal/shared"
	"github.com/leessosso/ytpaste/internal/tasks"
	"github.com/urfave/cli/v3"
)

// refreshDelay is how long to wait after a replace before re-fetching the
// playlist listing, giving the API time to report the new item counts.
const refreshDelay = 1500 * time.Millisecond

// Playlists lists the authenticated user's playlists.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	if r.youtube == nil {
		return fmt.Errorf("%w: YouTube service not initialized", shared.ErrServiceUnavailable)
	}

	playlists, err := r.youtube.Playlists(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch playlists: %w", err)
	}

	if cmd.Bool("json") {
		data, err := formatter.PlaylistsToJSON(playlists)
		if err != nil {
			return err
		}
		r.output.Write(data)
		return r.writePlain("\n")
	}

	if len(playlists) == 0 {
		return r.writePlain("No playlists found\n")
	}

	for _, pl := range playlists {
		r.writePlain("%s  %s (%d items)\n", pl.ID, pl.Title, pl.ItemCount)
	}
	return nil
}

// Replace runs the bulk replace: extract links from input, confirm, then
// delete all existing items and insert the extracted videos in order.
func (r *Runner) Replace(ctx context.Context, cmd *cli.Command) error {
	if r.engine == nil {
		return fmt.Errorf("%w: replace engine not initialized", shared.ErrServiceUnavailable)
	}

	playlistID := cmd.String("playlist")

	text, err := r.readInputText(cmd)
	if err != nil {
		return err
	}

	links := extract.Links(text)
	if len(links) == 0 {
		return fmt.Errorf("%w: no YouTube links found in input", shared.ErrNoLinks)
	}

	r.writePlain("Extracted %d links (%d with video IDs)\n", len(links), len(extract.VideoIDs(links)))

	if !cmd.Bool("yes") {
		r.writePlain("This removes every item in playlist %s. Continue? [y/N] ", playlistID)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			return r.writePlain("Aborted\n")
		}
	}

	result, err := r.engine.Replace(ctx, playlistID, links, func(u tasks.ProgressUpdate) {
		switch u.Phase {
		case tasks.PhaseDeleting:
			r.writePlain("\rRemoving existing items... %d", u.Completed)
		case tasks.PhaseInserting:
			r.writePlain("\rInserting videos... %d/%d", u.Completed, u.Total)
		case tasks.PhaseDone:
			r.writePlain("\n")
		}
	})
	if err != nil {
		return fmt.Errorf("replace failed: %w", err)
	}

	r.writePlainln("✓ Replace complete: removed %d, inserted %d/%d (skipped %d)",
		result.Deleted, result.Inserted, result.Total, result.Skipped)

	time.Sleep(refreshDelay)
	playlists, err := r.youtube.Playlists(ctx)
	if err != nil {
		r.logger.Warn("failed to refresh playlist listing", "error", err)
		return nil
	}

	for _, pl := range playlists {
		if pl.ID == playlistID {
			r.writePlain("Playlist now: %s (%d items)\n", pl.Title, pl.ItemCount)
		}
	}
	return nil
}
