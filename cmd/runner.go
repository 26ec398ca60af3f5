package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/leessosso/ytpaste/internal/auth"
	"github.com/leessosso/ytpaste/internal/services"
	"github.com/leessosso/ytpaste/internal/shared"
	"github.com/leessosso/ytpaste/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	auth    *auth.Manager
	youtube services.PlaylistAPI
	engine  *tasks.ReplaceEngine
	logger  *log.Logger
	output  io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Auth    *auth.Manager
	YouTube services.PlaylistAPI
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	var engine *tasks.ReplaceEngine
	if opts.Auth != nil && opts.YouTube != nil {
		engine = tasks.NewReplaceEngine(opts.YouTube, opts.Auth, opts.Logger)
	}

	return &Runner{
		config:  opts.Config,
		auth:    opts.Auth,
		youtube: opts.YouTube,
		engine:  engine,
		logger:  opts.Logger,
		output:  opts.Output,
	}
}

// SetLogger swaps the runner's logger, propagating it to the replace engine.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	if r.auth != nil && r.youtube != nil {
		r.engine = tasks.NewReplaceEngine(r.youtube, r.auth, logger)
	}
}

// requireAuth returns the manager or an error when credentials were never configured.
func (r *Runner) requireAuth() (*auth.Manager, error) {
	if r.auth == nil {
		return nil, fmt.Errorf("%w: Google credentials not configured, run 'ytpaste setup'", shared.ErrMissingCredentials)
	}
	return r.auth, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, extractCommand, playlistsCommand, replaceCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
