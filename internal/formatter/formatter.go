// package formatter exports extracted links and playlist listings to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/leessosso/ytpaste/internal/extract"
	"github.com/leessosso/ytpaste/internal/models"
	"github.com/leessosso/ytpaste/internal/shared"
)

// Format names accepted by [WriteLinksExport].
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// LinksToCSV converts extracted links to CSV with columns: Index, VideoID, Link.
// Links without a parseable video ID get an empty VideoID column.
func LinksToCSV(links []string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Index", "VideoID", "Link"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, link := range links {
		videoID, _ := extract.VideoID(link)
		record := []string{strconv.Itoa(i + 1), videoID, link}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// LinksToMarkdown converts extracted links to a numbered Markdown list.
func LinksToMarkdown(links []string) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Extracted Links\n\n")
	buf.WriteString(fmt.Sprintf("**Links**: %d\n\n", len(links)))

	for i, link := range links {
		if videoID, ok := extract.VideoID(link); ok {
			buf.WriteString(fmt.Sprintf("%d. [%s](%s)\n", i+1, videoID, link))
		} else {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, link))
		}
	}

	return buf.Bytes()
}

// LinksToText converts extracted links to plain text, one per line.
func LinksToText(links []string) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Links: %d\n\n", len(links)))
	for i, link := range links {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, link))
	}

	return buf.Bytes()
}

// PlaylistsToJSON generates a pretty-printed JSON listing of playlists.
func PlaylistsToJSON(playlists []models.Playlist) ([]byte, error) {
	return shared.MarshalJSON(playlists, true)
}

// WriteLinksExport writes extracted links to a file in the given format and
// returns the path written. An empty filepath defaults to links.{ext}.
func WriteLinksExport(links []string, format, filepath string) (string, error) {
	var data []byte
	var ext string
	var err error

	switch format {
	case FormatCSV:
		ext = "csv"
		data, err = LinksToCSV(links)
		if err != nil {
			return "", err
		}
	case FormatMarkdown:
		ext = "md"
		data = LinksToMarkdown(links)
	case FormatText, "":
		ext = "txt"
		data = LinksToText(links)
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}

	if filepath == "" {
		filepath = "links." + ext
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return filepath, nil
}
