// Package services implements the HTTP client for the YouTube Data API v3.
//
// # Authentication
//
// Every request reads the bearer credential from a [TokenSource] at call time,
// so a login or logout between calls takes effect immediately. A missing token
// fails fast with shared.ErrNotAuthenticated before any network call.
//
// # Error mapping
//
// A 401 response surfaces as shared.ErrTokenExpired so callers can force a
// logout; any other non-2xx response wraps shared.ErrAPIRequest with the
// message Google returned.
//
// # Pacing
//
// Calls are issued sequentially by callers; a [rate.Limiter] additionally
// paces requests to stay under per-second quota bursts during the delete and
// insert loops.
package services
