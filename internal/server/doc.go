// Package server hosts the temporary localhost HTTP endpoint for the Google
// OAuth flow.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
// [Middleware] wraps handlers in reverse order (last added executes first).
// The [BasicRouter] implementation uses [http.ServeMux] internally with
// method filtering.
//
// # Callback Handler
//
// [CallbackHandler] receives the Google authorization-code redirect. It
// validates the state parameter, exchanges the code for tokens, and delivers
// exactly one [CallbackResult] through a channel before the server shuts
// down. Failures carry a reason code: "no_code" when Google redirected
// without an authorization code, "auth_failed" for a state mismatch or a
// failed token exchange.
//
// The handler processes a single callback; repeated hits on the redirect URL
// get a 400.
package server
