// Package models defines the domain entities shared across ytpaste packages.
//
// The types are lightweight DTOs:
//   - [Playlist] : playlist metadata as returned by the YouTube Data API
//   - [TokenPair] : the access/refresh credential pair from a token exchange
//
// Playlists are transient; they are fetched fresh per authenticated session and
// never persisted. Tokens are persisted through the session store in
// internal/repositories.
package models
