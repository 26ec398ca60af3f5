package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/leessosso/ytpaste/internal/extract"
	"github.com/leessosso/ytpaste/internal/models"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = linkItem{}
)

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Title }
func (i playlistItem) Title() string       { return i.playlist.Title }
func (i playlistItem) Description() string {
	return fmt.Sprintf("%d items", i.playlist.ItemCount)
}

// linkItem wraps an extracted link to implement [list.Item].
type linkItem struct {
	link string
}

func (i linkItem) FilterValue() string { return i.link }
func (i linkItem) Title() string       { return i.link }
func (i linkItem) Description() string {
	if videoID, ok := extract.VideoID(i.link); ok {
		return "video " + videoID
	}
	return "no video ID, will be skipped"
}
