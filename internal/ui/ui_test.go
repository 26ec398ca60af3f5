package ui

import (
	"context"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/leessosso/ytpaste/internal/models"
	"github.com/leessosso/ytpaste/internal/services"
	"github.com/leessosso/ytpaste/internal/tasks"
)

// stubAPI is a minimal in-memory PlaylistAPI for driving the model.
type stubAPI struct {
	remaining []string
	inserted  []string
}

func (s *stubAPI) Playlists(ctx context.Context) ([]models.Playlist, error) {
	return []models.Playlist{{ID: "PL1", Title: "Mix", ItemCount: len(s.remaining)}}, nil
}

func (s *stubAPI) PlaylistItems(ctx context.Context, playlistID, pageToken string) (*services.ItemPage, error) {
	return &services.ItemPage{ItemIDs: append([]string(nil), s.remaining...)}, nil
}

func (s *stubAPI) DeleteItem(ctx context.Context, itemID string) error {
	for i, id := range s.remaining {
		if id == itemID {
			s.remaining = append(s.remaining[:i], s.remaining[i+1:]...)
			break
		}
	}
	return nil
}

func (s *stubAPI) InsertVideo(ctx context.Context, playlistID, videoID string) error {
	s.inserted = append(s.inserted, videoID)
	return nil
}

type stubSession struct {
	authenticated bool
}

func (s *stubSession) IsAuthenticated() bool { return s.authenticated }

func (s *stubSession) Logout() error {
	s.authenticated = false
	return nil
}

func TestReplaceFlow(t *testing.T) {
	t.Run("delivers progress and the outcome as messages", func(t *testing.T) {
		api := &stubAPI{remaining: []string{"old-1", "old-2"}}
		engine := tasks.NewReplaceEngine(api, &stubSession{authenticated: true}, log.New(io.Discard))

		m := NewModel(context.Background(), api, engine)
		m.links = []string{"https://youtu.be/abc"}
		m.selected = &models.Playlist{ID: "PL1", Title: "Mix", ItemCount: 2}
		m.view = ConfirmView

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
		m = model.(*Model)
		if m.view != ReplaceView {
			t.Fatalf("expected the replace view after confirmation, got %v", m.view)
		}

		var progressSeen int
		for i := 0; i < 20 && m.view != ResultView; i++ {
			if cmd == nil {
				t.Fatal("update loop stalled before completion")
			}

			msg := cmd()
			if _, ok := msg.(progressUpdateMsg); ok {
				progressSeen++
			}
			model, cmd = m.Update(msg)
			m = model.(*Model)
		}

		if m.view != ResultView {
			t.Fatal("expected the result view after the run completed")
		}
		if m.err != nil {
			t.Fatalf("expected no error, got %v", m.err)
		}
		if m.result == nil {
			t.Fatal("expected the completion message to carry a result")
		}
		if m.result.Deleted != 2 || m.result.Inserted != 1 {
			t.Errorf("unexpected result: %+v", m.result)
		}
		if progressSeen == 0 {
			t.Error("expected at least one progress message before completion")
		}
		if m.progressChan != nil || m.doneChan != nil {
			t.Error("expected the run channels to be released after completion")
		}
	})
}
