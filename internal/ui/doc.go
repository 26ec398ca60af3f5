// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for replacing a playlist from pasted chat text:
//  1. [PasteView] : Paste chat text into a textarea
//  2. [LinkListView] : Review the extracted YouTube links
//  3. [PlaylistListView] : Browse and select the target playlist
//  4. [ConfirmView] : Confirm the destructive replace
//  5. [ReplaceView] : Monitor delete and insert progress
//  6. [ResultView] : Display the outcome
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the ReplaceEngine, providing non-blocking
// status reporting during the run. After a successful replace the playlist listing is
// refreshed on a short delay and the pasted text is cleared, so a restart begins from
// a clean slate.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual
// help displayed via charmbracelet/bubbles/help.
package ui
