package server

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"sync"

	"golang.org/x/oauth2"
)

// Reason codes attached to failed callback results.
const (
	ReasonNoCode     = "no_code"
	ReasonAuthFailed = "auth_failed"
)

// CallbackPath is the redirect endpoint registered with Google, relative to
// the configured base path.
const CallbackPath = "/youtube-callback"

// CallbackResult is the outcome of one authorization attempt. Either Token
// is set, or Reason carries a code and Error the detail.
type CallbackResult struct {
	Token  *oauth2.Token
	Reason string
	err    error
}

func (c *CallbackResult) Error() error {
	return c.err
}

// CallbackHandler receives the Google authorization-code redirect.
// Implements the [Handler] interface for registration with a [Router].
type CallbackHandler struct {
	config      *oauth2.Config
	state       string
	basePath    string
	resultChan  chan CallbackResult
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewCallbackHandler creates a callback handler bound to the given OAuth2
// config and CSRF state token. basePath prefixes the callback route, mirroring
// a reverse-proxied deployment; empty means root.
func NewCallbackHandler(config *oauth2.Config, state, basePath string) *CallbackHandler {
	return &CallbackHandler{
		config:     config,
		state:      state,
		basePath:   basePath,
		resultChan: make(chan CallbackResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{path.Join("/", h.basePath, CallbackPath)}
}

// ServeHTTP handles the redirect from Google.
//
// Validates the state parameter, exchanges the authorization code for tokens,
// and sends the result through the result channel. Only the first callback is
// processed.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	if state := r.URL.Query().Get("state"); state != h.state {
		h.fail(w, ReasonAuthFailed, fmt.Errorf("state parameter mismatch"))
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		errParam := r.URL.Query().Get("error")
		h.fail(w, ReasonNoCode, fmt.Errorf("redirect carried no authorization code: %s", errParam))
		return
	}

	token, err := h.config.Exchange(context.Background(), code)
	if err != nil {
		h.fail(w, ReasonAuthFailed, fmt.Errorf("token exchange failed: %w", err))
		return
	}

	h.send(CallbackResult{Token: token})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, successPage)
}

// Result returns the channel carrying the single flow outcome. The channel
// receives exactly one result and is then closed.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.resultChan
}

func (h *CallbackHandler) fail(w http.ResponseWriter, reason string, err error) {
	h.send(CallbackResult{Reason: reason, err: err})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, failurePage, reason)
}

func (h *CallbackHandler) send(result CallbackResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

const successPage = `
<!DOCTYPE html>
<html>
<head>
    <title>Authorization Successful</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #cc0000; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>&#10003; Authorization Successful</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`

const failurePage = `
<!DOCTYPE html>
<html>
<head>
    <title>Authorization Failed</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #990000; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>&#10007; Authorization Failed</h1>
        <p>Reason: %s. Close this window and retry from the terminal.</p>
    </div>
</body>
</html>
`
