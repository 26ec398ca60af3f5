package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/leessosso/ytpaste/internal/extract"
	"github.com/leessosso/ytpaste/internal/formatter"
	"github.com/leessosso/ytpaste/internal/shared"
	"github.com/urfave/cli/v3"
)

// readInputText reads the pasted text from a file or stdin.
func (r *Runner) readInputText(cmd *cli.Command) (string, error) {
	if path := cmd.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// Extract pulls YouTube links out of text and prints or exports them.
func (r *Runner) Extract(ctx context.Context, cmd *cli.Command) error {
	text, err := r.readInputText(cmd)
	if err != nil {
		return err
	}

	links := extract.Links(text)
	r.logger.Info("extracted links", "count", len(links))

	if len(links) == 0 {
		return fmt.Errorf("%w: no YouTube links found in input", shared.ErrNoLinks)
	}

	if format := cmd.String("format"); format != "" || cmd.String("output") != "" {
		path, err := formatter.WriteLinksExport(links, format, cmd.String("output"))
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported %d links to %s\n", len(links), path)
	}

	if cmd.Bool("json") {
		return r.writeJSON(links, true)
	}

	for i, link := range links {
		videoID, _ := extract.VideoID(link)
		r.writePlain("%d. %s (%s)\n", i+1, link, videoID)
	}
	return nil
}
