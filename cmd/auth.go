package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/leessosso/ytpaste/internal/server"
	"github.com/leessosso/ytpaste/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// AuthLogin performs the OAuth2 authorization-code flow for Google.
//
// Starts a local HTTP server, opens the browser for consent, and persists the
// exchanged token pair.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	manager, err := r.requireAuth()
	if err != nil {
		return err
	}

	token, err := r.doOAuth()
	if err != nil {
		return err
	}

	if err := manager.SaveToken(token); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	r.logger.Info("authentication successful")
	return r.writePlain("✓ Authentication successful\n")
}

// AuthStatus reports whether a session token is stored.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	manager, err := r.requireAuth()
	if err != nil {
		return err
	}

	tokens, ok := manager.Tokens()
	if !ok {
		return r.writePlain("Authentication: ✗ Not authenticated\n")
	}

	r.writePlain("Authentication: ✓ Authenticated\n")
	if tokens.RefreshToken == "" {
		r.writePlain("Refresh token: none stored\n")
	}
	return nil
}

// AuthLogout clears the stored session tokens.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	manager, err := r.requireAuth()
	if err != nil {
		return err
	}

	if err := manager.Logout(); err != nil {
		return err
	}

	r.logger.Info("session cleared")
	return r.writePlain("✓ Logged out\n")
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth() (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL := r.auth.AuthURL(state)
	callbackHandler := server.NewCallbackHandler(r.auth.OAuthConfig(), state, r.config.Server.BasePath)
	router := server.NewBasicRouter()
	router.Use(server.LoggingMiddleware(r.logger))
	router.Handler(callbackHandler)

	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth callback server at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Google authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warn("failed to open browser", "error", err)
		r.writePlain("Open this URL manually:\n%s\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.CallbackResult

	select {
	case result = <-callbackHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("%w (%s): %v", shared.ErrAuthFailed, result.Reason, result.Error())
	}

	return result.Token, nil
}
