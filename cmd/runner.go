package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/seven7een/museick-go/internal/auth"
	"github.com/seven7een/museick-go/internal/models"
	"github.com/seven7een/museick-go/internal/repositories"
	"github.com/seven7een/museick-go/internal/services"
	"github.com/seven7een/museick-go/internal/shared"
	"github.com/seven7een/museick-go/internal/shortlist"
	"github.com/urfave/cli/v3"
)

// sessionTokenEnv overrides the stored session token when set, which keeps
// scripted use (CI, curl-style debugging) off the local database.
const sessionTokenEnv = "MUSEICK_SESSION_TOKEN"

// nowFunc is swapped in tests to pin the current month.
var nowFunc = time.Now

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Dependencies that need the database are wired lazily on first use so that
// `setup database` can run before anything exists.
type Runner struct {
	config     *shared.Config
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer

	store      *repositories.CredentialRepository
	cache      *repositories.CatalogItemRepository
	client     *auth.Client
	refresher  *auth.RefreshCoordinator
	selections *services.SelectionAPI
	catalog    *services.CatalogAPI
	backend    *services.BackendAPI
	engine     *shortlist.Engine

	wired   bool
	wireErr error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer

	// Store and Cache override the database-backed repositories, for tests.
	Store *repositories.CredentialRepository
	Cache *repositories.CatalogItemRepository
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
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		store:      opts.Store,
		cache:      opts.Cache,
	}
}

// wire connects the repositories, auth client, services, and shortlist
// engine. Idempotent; the first error is sticky.
func (r *Runner) wire() error {
	if r.wired {
		return r.wireErr
	}
	r.wired = true

	if r.store == nil || r.cache == nil {
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			r.wireErr = fmt.Errorf("opening database (run 'museick setup database' first): %w", err)
			return r.wireErr
		}
		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
		if r.store == nil {
			r.store = repositories.NewCredentialRepository(db)
		}
		if r.cache == nil {
			r.cache = repositories.NewCatalogItemRepository(db)
		}
	}

	session := r.sessionProvider()

	r.refresher = auth.NewRefreshCoordinator(auth.RefreshOpts{
		BaseURL:    r.config.Backend.BaseURL,
		HTTPClient: r.httpClient,
		Session:    session,
		Store:      r.store,
		Logger:     r.logger,
		Timeout:    r.config.Backend.RequestTimeout(),
	})

	r.client = auth.NewClient(auth.ClientOpts{
		BackendURL: r.config.Backend.BaseURL,
		CatalogURL: r.config.Catalog.BaseURL,
		HTTPClient: r.httpClient,
		Session:    session,
		Store:      r.store,
		Refresher:  r.refresher,
		Events:     r.refresher.Events(),
		Logger:     r.logger,

		Timeout:        r.config.Backend.RequestTimeout(),
		CatalogTimeout: r.config.Catalog.RequestTimeout(),
	})

	r.selections = services.NewSelectionAPI(r.client, r.logger)
	r.catalog = services.NewCatalogAPI(r.client, r.logger)
	r.backend = services.NewBackendAPI(r.client, r.logger)

	r.engine = shortlist.NewEngine(shortlist.EngineOpts{
		Selections:     r.selections,
		Catalog:        r.catalog,
		Cache:          r.cache,
		Logger:         r.logger,
		Debounce:       r.config.Shortlist.Debounce(),
		MinQueryLength: r.config.Shortlist.MinQueryLength,
		SearchLimit:    r.config.Shortlist.SearchLimit,
		SearchRate:     r.config.Shortlist.SearchRateLimit,
		DemotePrior:    r.config.Shortlist.DemotePrior,
	})

	return nil
}

// sessionProvider resolves the session token: environment first, then the
// credential store.
func (r *Runner) sessionProvider() auth.SessionTokenProvider {
	return func(ctx context.Context) (string, error) {
		if token := os.Getenv(sessionTokenEnv); token != "" {
			return token, nil
		}
		return r.store.SessionToken()
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, searchCommand, topCommand, museCommand, ickCommand, monthCommand, playlistCommand, cacheCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// monthArg resolves the --month flag, defaulting to the current month.
func (r *Runner) monthArg(cmd *cli.Command) (models.MonthKey, error) {
	raw := cmd.String("month")
	if raw == "" {
		return models.MonthKeyFor(nowFunc()), nil
	}
	month := models.MonthKey(raw)
	if err := month.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	return month, nil
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
