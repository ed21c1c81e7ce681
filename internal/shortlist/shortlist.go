package shortlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/seven7een/museick-go/internal/models"
	"github.com/seven7een/museick-go/internal/repositories"
	"github.com/seven7een/museick-go/internal/shared"
	"golang.org/x/time/rate"
)

// SearchResult is one settled search delivered on [Engine.Results]. A result
// always corresponds to the most recent query the engine accepted; settled
// responses for superseded queries are dropped before they reach the channel.
type SearchResult struct {
	Query string
	Items []models.CatalogItem
	Err   error
}

// SelectionClient is the subset of the selection API the engine uses.
type SelectionClient interface {
	AddCandidate(ctx context.Context, spotifyItemID string, itemType models.ItemType, month models.MonthKey, axis models.Axis) (*models.Selection, error)
	ListForMonth(ctx context.Context, month models.MonthKey) ([]models.Selection, error)
	UpdateRole(ctx context.Context, id string, role models.Role) (*models.Selection, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CatalogClient is the subset of the catalog API the engine uses.
type CatalogClient interface {
	Search(ctx context.Context, query string, types []models.ItemType, limit int) ([]models.CatalogItem, error)
}

// Engine drives the shortlist workflow: debounced catalog search feeding a
// per-month, per-axis candidate pool, with promotion into the month's single
// selected slot.
//
// All exported methods are safe for concurrent use.
type Engine struct {
	selections SelectionClient
	catalog    CatalogClient
	cache      *repositories.CatalogItemRepository
	logger     *log.Logger

	debounce    time.Duration
	minQuery    int
	searchLimit int
	limiter     *rate.Limiter
	demotePrior bool

	mu      sync.Mutex
	gen     uint64
	timer   *time.Timer
	cancel  context.CancelFunc
	closed  bool
	results chan SearchResult
}

// EngineOpts configures an [Engine]. Selections and Catalog are required;
// everything else has a sensible default.
type EngineOpts struct {
	Selections SelectionClient
	Catalog    CatalogClient
	Cache      *repositories.CatalogItemRepository // nil disables result caching
	Logger     *log.Logger

	Debounce       time.Duration // default 500ms
	MinQueryLength int           // default 3
	SearchLimit    int           // default 20
	SearchRate     float64       // searches per second, default 5
	DemotePrior    bool          // demote the displaced pick on promotion
}

// NewEngine builds an Engine from opts.
func NewEngine(opts EngineOpts) *Engine {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	if opts.MinQueryLength <= 0 {
		opts.MinQueryLength = 3
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = 20
	}
	if opts.SearchRate <= 0 {
		opts.SearchRate = 5
	}
	return &Engine{
		selections:  opts.Selections,
		catalog:     opts.Catalog,
		cache:       opts.Cache,
		logger:      opts.Logger,
		debounce:    opts.Debounce,
		minQuery:    opts.MinQueryLength,
		searchLimit: opts.SearchLimit,
		limiter:     rate.NewLimiter(rate.Limit(opts.SearchRate), 1),
		demotePrior: opts.DemotePrior,
		results:     make(chan SearchResult, 16),
	}
}

// Results delivers settled searches. Only results for the engine's current
// query are sent; consumers never see out-of-order or superseded responses.
func (e *Engine) Results() <-chan SearchResult {
	return e.results
}

// SetQuery registers the user's current search text. The network request
// fires only after the debounce window passes with no newer query. Queries
// shorter than the minimum clear the result set immediately and cost no
// network call. Either way any pending or in-flight search for an older
// query is abandoned.
func (e *Engine) SetQuery(query string, kinds []models.ItemType) {
	query = strings.TrimSpace(query)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.gen++
	gen := e.gen
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}

	if len([]rune(query)) < e.minQuery {
		e.mu.Unlock()
		e.deliver(gen, SearchResult{Query: query})
		return
	}

	e.timer = time.AfterFunc(e.debounce, func() {
		e.search(gen, query, kinds)
	})
	e.mu.Unlock()
}

// search runs one settled search for the given generation. It re-checks the
// generation at every point a newer query could have arrived.
func (e *Engine) search(gen uint64, query string, kinds []models.ItemType) {
	e.mu.Lock()
	if e.closed || gen != e.gen {
		e.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.mu.Unlock()

	if err := e.limiter.Wait(ctx); err != nil {
		return
	}

	items, err := e.catalog.Search(ctx, query, kinds, e.searchLimit)
	if err != nil && errors.Is(err, context.Canceled) {
		// Superseded mid-flight; the newer query owns the result channel.
		return
	}

	if err == nil && e.cache != nil {
		for _, item := range items {
			if cerr := e.cache.Remember(item); cerr != nil {
				e.logger.Debug("catalog cache write failed", "id", item.ID, "error", cerr)
			}
		}
	}

	e.deliver(gen, SearchResult{Query: query, Items: items, Err: err})
}

// deliver sends a result unless a newer query has already superseded gen.
// The send never blocks: with a slow consumer intermediate results are
// dropped, which matches latest-wins semantics.
func (e *Engine) deliver(gen uint64, result SearchResult) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || gen != e.gen {
		return
	}
	// The send happens under e.mu so Close cannot close the channel between
	// the staleness check and the send.
	select {
	case e.results <- result:
	default:
		e.logger.Debug("search result dropped, consumer behind", "query", result.Query)
	}
}

// Close stops the debounce timer, cancels any in-flight search, and closes
// the results channel. Further SetQuery calls are no-ops.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.mu.Unlock()
	close(e.results)
}

// AddToShortlist records the item as a candidate for the month and axis. The
// backend de-duplicates, so re-adding an existing candidate is harmless.
func (e *Engine) AddToShortlist(ctx context.Context, item models.CatalogItem, month models.MonthKey, axis models.Axis) (*models.Selection, error) {
	selection, err := e.selections.AddCandidate(ctx, item.ID, item.Kind, month, axis)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		if cerr := e.cache.Remember(item); cerr != nil {
			e.logger.Debug("catalog cache write failed", "id", item.ID, "error", cerr)
		}
	}
	return selection, nil
}

// Promote makes the item the month's pick on its axis. Promotion is two
// steps: the item is first ensured as a candidate, then its role is raised
// to selected. If the second step fails the item stays on the shortlist as a
// candidate, so nothing the user added is lost.
//
// With the demote-prior policy enabled, a previously selected item on the
// same axis is lowered back to candidate before the new pick is raised.
// Without it the backend owns displacement of the old pick.
func (e *Engine) Promote(ctx context.Context, item models.CatalogItem, month models.MonthKey, axis models.Axis) (*models.Selection, error) {
	candidate, err := e.selections.AddCandidate(ctx, item.ID, item.Kind, month, axis)
	if err != nil {
		return nil, err
	}

	if e.demotePrior {
		if err := e.demoteCurrent(ctx, month, axis, candidate.ID); err != nil {
			return nil, fmt.Errorf("demoting prior pick: %w", err)
		}
	}

	if !models.ValidTransition(candidate.Role, axis.Selected()) {
		return nil, fmt.Errorf("%w: cannot promote %q to %q", shared.ErrInvalidArgument, candidate.Role, axis.Selected())
	}

	promoted, err := e.selections.UpdateRole(ctx, candidate.ID, axis.Selected())
	if err != nil {
		e.logger.Warn("promotion failed, item kept as candidate", "id", candidate.ID, "error", err)
		return nil, err
	}

	e.logger.Debug("promoted", "id", promoted.ID, "month", month, "axis", axis)
	return promoted, nil
}

// demoteCurrent lowers any selected item on the axis back to candidate,
// skipping the item about to be promoted.
func (e *Engine) demoteCurrent(ctx context.Context, month models.MonthKey, axis models.Axis, promotingID string) error {
	selections, err := e.selections.ListForMonth(ctx, month)
	if err != nil {
		return err
	}
	for _, sel := range selections {
		if sel.Role != axis.Selected() || sel.ID == promotingID {
			continue
		}
		if _, err := e.selections.UpdateRole(ctx, sel.ID, axis.Candidate()); err != nil {
			return err
		}
	}
	return nil
}

// Demote lowers a selected item back to candidate on its own axis.
func (e *Engine) Demote(ctx context.Context, selection *models.Selection) (*models.Selection, error) {
	if selection == nil {
		return nil, fmt.Errorf("%w: selection is required", shared.ErrInvalidArgument)
	}
	if !selection.Role.IsSelected() {
		return nil, fmt.Errorf("%w: %q is not a selected role", shared.ErrInvalidArgument, selection.Role)
	}
	target := selection.Role.Axis().Candidate()
	if !models.ValidTransition(selection.Role, target) {
		return nil, fmt.Errorf("%w: cannot demote %q to %q", shared.ErrInvalidArgument, selection.Role, target)
	}
	return e.selections.UpdateRole(ctx, selection.ID, target)
}

// Remove deletes a selection record from the shortlist entirely.
func (e *Engine) Remove(ctx context.Context, id string) error {
	_, err := e.selections.Delete(ctx, id)
	return err
}
