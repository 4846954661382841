package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/friendbook/internal/favorites"
	"github.com/desertthunder/friendbook/internal/router"
	"github.com/desertthunder/friendbook/internal/services"
	"github.com/desertthunder/friendbook/internal/session"
	"github.com/desertthunder/friendbook/internal/shared"
	"github.com/desertthunder/friendbook/internal/storage"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	gateway    services.Gateway
	bridge     storage.Bridge
	session    *session.Store
	favorites  *favorites.Store
	guard      *router.Guard
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Gateway    services.Gateway
	Bridge     storage.Bridge
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration and restores the persisted session.
//
// Without a Bridge the runner keeps state in memory only.
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
	if opts.Bridge == nil {
		opts.Bridge = storage.NewMemoryBridge()
	}
	if opts.Gateway == nil {
		client := newHTTPClient(opts.Config.API, opts.HTTPClient)
		api := services.NewAPIService(opts.Config.API.BaseURL, client, services.WithRateLimit(opts.Config.API.RateLimit))
		opts.Gateway = services.NewAuthService(api)
	}

	sessionStore := session.NewStore(opts.Bridge, opts.Logger)
	sessionStore.Initialize(context.Background())

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		gateway:    opts.Gateway,
		bridge:     opts.Bridge,
		session:    sessionStore,
		favorites:  favorites.NewStore(opts.Bridge, opts.Logger),
		guard:      router.NewGuard(sessionStore),
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// newHTTPClient returns client when given, otherwise one honoring the configured timeout.
func newHTTPClient(cfg shared.APIConfig, client *http.Client) *http.Client {
	if client != nil {
		return client
	}
	if cfg.Timeout.Duration > 0 {
		return &http.Client{Timeout: cfg.Timeout.Duration}
	}
	return http.DefaultClient
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, favoritesCommand, routeCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Close releases the storage bridge.
func (r *Runner) Close() error {
	return r.bridge.Close()
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

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
