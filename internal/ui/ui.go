package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leessosso/ytpaste/internal/extract"
	"github.com/leessosso/ytpaste/internal/models"
	"github.com/leessosso/ytpaste/internal/services"
	"github.com/leessosso/ytpaste/internal/tasks"
)

// refreshDelay is how long the result stays on screen before the playlist
// listing is re-fetched and the pasted text cleared.
const refreshDelay = 1500 * time.Millisecond

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PasteView ViewState = iota
	LinkListView
	PlaylistListView
	ConfirmView
	ReplaceView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	api          services.PlaylistAPI
	engine       *tasks.ReplaceEngine
	width        int
	height       int
	input        textarea.Model
	links        []string
	linkList     list.Model
	playlists    []models.Playlist
	playlistList list.Model
	selected     *models.Playlist
	progressChan chan tasks.ProgressUpdate
	doneChan     chan replaceCompleteMsg
	progress     tasks.ProgressUpdate
	result       *tasks.Result
	err          error
	help         help.Model
	keys         keyMap
}

type playlistsFetchedMsg struct {
	playlists []models.Playlist
	err       error
}

type progressUpdateMsg tasks.ProgressUpdate

type replaceCompleteMsg struct {
	result *tasks.Result
	err    error
}

// refreshMsg fires after the post-replace delay to reset extraction state
// and reload the playlist listing.
type refreshMsg struct{}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, api services.PlaylistAPI, engine *tasks.ReplaceEngine) *Model {
	input := textarea.New()
	input.Placeholder = "Paste chat text containing YouTube links..."
	input.Focus()

	return &Model{
		ctx:    ctx,
		view:   PasteView,
		api:    api,
		engine: engine,
		input:  input,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init starts fetching the playlist listing while the user pastes.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.fetchPlaylists())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(msg.Width - 4)
		m.input.SetHeight(msg.Height - 8)
		if m.linkList.Width() == 0 {
			m.linkList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.playlistList.Width() == 0 {
			m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PasteView:
			return m.handlePasteKeys(msg)
		case LinkListView:
			return m.handleLinkListKeys(msg)
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case playlistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.playlists = msg.playlists
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		m.playlistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.playlistList.Title = "Your Playlists"
		m.playlistList.SetSize(m.width-4, m.height-8)
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case replaceCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		m.doneChan = nil
		if msg.err == nil {
			return m, tea.Tick(refreshDelay, func(time.Time) tea.Msg {
				return refreshMsg{}
			})
		}
		return m, nil

	case refreshMsg:
		m.links = nil
		m.input.Reset()
		return m, m.fetchPlaylists()
	}

	return m.updateComponents(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case PasteView:
		return m.renderPaste()
	case LinkListView:
		return m.renderLinkList()
	case PlaylistListView:
		return m.renderPlaylistList()
	case ConfirmView:
		return m.renderConfirm()
	case ReplaceView:
		return m.renderReplace()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handlePasteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+d":
		m.links = extract.Links(m.input.Value())
		if len(m.links) == 0 {
			return m, nil
		}

		items := make([]list.Item, len(m.links))
		for i, link := range m.links {
			items[i] = linkItem{link: link}
		}
		m.linkList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.linkList.Title = fmt.Sprintf("Extracted Links (%d)", len(m.links))
		m.linkList.SetSize(m.width-4, m.height-8)
		m.view = LinkListView
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleLinkListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = PasteView
		return m, nil
	case "enter":
		m.view = PlaylistListView
		return m, nil
	}

	var cmd tea.Cmd
	m.linkList, cmd = m.linkList.Update(msg)
	return m, cmd
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = LinkListView
		return m, nil
	case "enter":
		if selected := m.playlistList.SelectedItem(); selected != nil {
			if pl, ok := selected.(playlistItem); ok {
				m.selected = &pl.playlist
				m.view = ConfirmView
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = PlaylistListView
		return m, nil
	case "y":
		m.view = ReplaceView
		return m, m.startReplace()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = PasteView
		m.selected = nil
		m.result = nil
		m.err = nil
		m.links = nil
		m.input.Reset()
		m.input.Focus()
		return m, m.fetchPlaylists()
	}
	return m, nil
}

func (m *Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PasteView:
		m.input, cmd = m.input.Update(msg)
	case LinkListView:
		m.linkList, cmd = m.linkList.Update(msg)
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.api.Playlists(m.ctx)
		return playlistsFetchedMsg{playlists: playlists, err: err}
	}
}

// startReplace runs the engine in a goroutine. The goroutine never touches
// the model; progress and the final outcome arrive as messages through the
// two channels, with the outcome buffered before the progress channel closes.
func (m *Model) startReplace() tea.Cmd {
	progressChan := make(chan tasks.ProgressUpdate, 50)
	doneChan := make(chan replaceCompleteMsg, 1)
	m.progressChan = progressChan
	m.doneChan = doneChan

	engine, ctx := m.engine, m.ctx
	playlistID, links := m.selected.ID, m.links

	go func() {
		result, err := engine.Replace(ctx, playlistID, links, func(u tasks.ProgressUpdate) {
			progressChan <- u
		})
		doneChan <- replaceCompleteMsg{result: result, err: err}
		close(progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progressChan, doneChan := m.progressChan, m.doneChan
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}

		update, ok := <-progressChan
		if !ok {
			return <-doneChan
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderPaste() string {
	title := styles.title.Render("Paste Chat Text")
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.submit, m.keys.quit})

	var warn string
	if m.input.Value() != "" && len(extract.Links(m.input.Value())) == 0 {
		warn = styles.warn.Render("No YouTube links found yet") + "\n"
	}

	return fmt.Sprintf("%s\n%s\n%s%s", title, m.input.View(), warn, helpView)
}

func (m *Model) renderLinkList() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.linkList.View(), helpView)
}

func (m *Model) renderPlaylistList() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.playlistList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Replace '%s'?", m.selected.Title))
	info := fmt.Sprintf(
		"\nAll %d existing items will be removed.\n%d extracted links will be inserted in order.\n",
		m.selected.ItemCount, len(m.links))

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no, m.keys.quit})

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderReplace() string {
	title := styles.title.Render("Replacing Playlist")

	var phase string
	switch m.progress.Phase {
	case tasks.PhaseDeleting:
		phase = fmt.Sprintf("Removing existing items... (%d removed)", m.progress.Completed)
	case tasks.PhaseInserting:
		phase = fmt.Sprintf("Inserting videos (%d/%d)", m.progress.Completed, m.progress.Total)
	default:
		phase = "Working..."
	}

	return fmt.Sprintf("%s\n\n%s\n", title, phase)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Replace failed: %v\n\nPress r to retry, q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to retry, q to quit")
	}

	title := styles.ok.Render("✓ Replace Complete!")
	info := fmt.Sprintf(
		"\nPlaylist: %s\nRemoved: %d\nInserted: %d/%d",
		m.selected.Title, m.result.Deleted, m.result.Inserted, m.result.Total)

	var skipped string
	if m.result.Skipped > 0 {
		skipped = "\n" + styles.warn.Render(fmt.Sprintf("Skipped %d videos that could not be inserted", m.result.Skipped))
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.restart, m.keys.quit})

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, skipped, helpView)
}
