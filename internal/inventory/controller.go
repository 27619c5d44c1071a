package inventory

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"catalogadmin/internal/domain/models"
)

// AllCategories selects the global paginated listing.
const AllCategories = "all"

const (
	DefaultPageSize      = 20
	DefaultCategoryLimit = 100
	DefaultSearchLimit   = 100
)

// Catalog is the subset of the remote catalog the inventory view reads.
type Catalog interface {
	ListCategories(ctx context.Context) ([]string, error)
	ListAllProducts(ctx context.Context, skip, limit int) (models.ProductsPage, error)
	ListProductsByCategory(ctx context.Context, category string, limit int) (models.ProductsPage, error)
	SearchProducts(ctx context.Context, query string, limit int) (models.ProductsPage, error)
}

type Options struct {
	PageSize       int
	CategoryLimit  int
	SearchLimit    int
	SearchDebounce time.Duration
	Locale         string

	Logger *slog.Logger
	// Scheduler overrides the search debouncer.
	Scheduler Scheduler
	// OnChange fires after every state change, outside the controller lock.
	// Call Snapshot from it rather than caching anything.
	OnChange func()
}

type stream int

const (
	streamNone stream = iota
	streamPrimary
	streamSearch
	streamLoadMore
)

func (s stream) String() string {
	switch s {
	case streamPrimary:
		return "primary"
	case streamSearch:
		return "search"
	case streamLoadMore:
		return "load_more"
	}
	return "none"
}

type state struct {
	category  string
	search    string
	sortField SortField
	sortDir   SortDirection
	offset    int
	hasMore   bool

	base      []models.Product
	displayed []models.Product
	derived   []models.Product

	loading     bool
	loadingMore bool
	searching   bool
	// searchLost is set while the displayed list is empty because the
	// last executed search failed.
	searchLost bool

	err         error
	failed      stream
	failedQuery string

	categories []string
}

// Controller owns the list state of one inventory view. Every mutation goes
// through a named transition; network results are applied only while the
// generation that requested them is still current.
type Controller struct {
	catalog Catalog
	opts    Options
	log     *slog.Logger
	sorter  *Sorter
	sched   Scheduler

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
	st     state
	gen    struct{ primary, search, loadMore uint64 }
}

func NewController(catalog Catalog, opts Options) *Controller {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.CategoryLimit <= 0 {
		opts.CategoryLimit = DefaultCategoryLimit
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = DefaultSearchLimit
	}
	if opts.Locale == "" {
		opts.Locale = "en"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = NewDebouncer(opts.SearchDebounce)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		catalog: catalog,
		opts:    opts,
		log:     opts.Logger,
		sorter:  NewSorter(opts.Locale),
		sched:   sched,
		ctx:     ctx,
		cancel:  cancel,
		st: state{
			category:  AllCategories,
			sortField: SortNone,
			sortDir:   Ascending,
			hasMore:   true,
		},
	}
}

// Start loads the category selector and performs the initial listing.
func (c *Controller) Start(category string) {
	c.LoadCategories()
	c.SelectCategory(category)
}

// SelectCategory resets pagination and fetches the listing for category.
// Sort preferences survive. Responses for earlier selections are discarded.
func (c *Controller) SelectCategory(category string) {
	category = normalizeCategory(category)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.st.category = category
	c.st.offset = 0
	c.st.hasMore = true
	c.st.loading = true
	c.st.loadingMore = false
	c.clearErrLocked()

	c.gen.primary++
	c.gen.loadMore++
	gen := c.gen.primary

	requested := c.opts.CategoryLimit
	if category == AllCategories {
		requested = c.opts.PageSize
	}

	c.goLocked(func(ctx context.Context) {
		var (
			page models.ProductsPage
			err  error
		)
		if category == AllCategories {
			page, err = c.catalog.ListAllProducts(ctx, 0, requested)
		} else {
			page, err = c.catalog.ListProductsByCategory(ctx, category, requested)
		}
		c.applyPrimary(gen, category, requested, page, err)
	})
	c.mu.Unlock()

	c.notify()
}

func (c *Controller) applyPrimary(gen uint64, category string, requested int, page models.ProductsPage, err error) {
	c.mu.Lock()
	if c.closed || gen != c.gen.primary {
		c.mu.Unlock()
		c.log.Debug("stale response discarded", "stream", streamPrimary, "category", category)
		return
	}

	c.st.loading = false
	if err != nil {
		// the next page is only meaningful after the first one arrived
		c.st.hasMore = false
		c.failLocked(streamPrimary, "", err)
	} else {
		c.st.base = slices.Clone(page.Products)
		c.st.hasMore = moreAvailable(len(page.Products), requested)
		switch {
		case !c.searchActiveLocked():
			c.st.displayed = c.st.base
		case c.st.searchLost && !c.st.searching:
			c.startSearchLocked(strings.TrimSpace(c.st.search))
		}
		c.rederiveLocked()
	}
	c.mu.Unlock()

	c.notify()
}

// SetSearch records the search text. Blank text restores the loaded listing
// at once without a request; anything else is searched after the quiet
// period, and only the last pending search runs.
func (c *Controller) SetSearch(text string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.st.search = text
	q := strings.TrimSpace(text)

	if q == "" {
		c.sched.Cancel()
		c.gen.search++
		c.st.searching = false
		c.st.searchLost = false
		c.st.displayed = c.st.base
		if c.st.failed == streamSearch {
			c.clearErrLocked()
		}
		c.rederiveLocked()
	} else {
		c.sched.Debounce(func() { c.runSearch(q) })
	}
	c.mu.Unlock()

	c.notify()
}

// SubmitSearch is SetSearch without the quiet period: any pending debounced
// search is dropped and text is searched at once.
func (c *Controller) SubmitSearch(text string) {
	q := strings.TrimSpace(text)
	if q == "" {
		c.SetSearch(text)
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.sched.Cancel()
	c.st.search = text
	c.startSearchLocked(q)
	c.mu.Unlock()

	c.notify()
}

func (c *Controller) runSearch(q string) {
	c.mu.Lock()
	if c.closed || strings.TrimSpace(c.st.search) != q {
		c.mu.Unlock()
		return
	}
	c.startSearchLocked(q)
	c.mu.Unlock()

	c.notify()
}

func (c *Controller) startSearchLocked(q string) {
	c.gen.search++
	gen := c.gen.search
	c.st.searching = true
	limit := c.opts.SearchLimit

	c.goLocked(func(ctx context.Context) {
		page, err := c.catalog.SearchProducts(ctx, q, limit)
		c.applySearch(gen, q, page, err)
	})
}

func (c *Controller) applySearch(gen uint64, q string, page models.ProductsPage, err error) {
	c.mu.Lock()
	if c.closed || gen != c.gen.search {
		c.mu.Unlock()
		c.log.Debug("stale response discarded", "stream", streamSearch, "query", q)
		return
	}

	c.st.searching = false
	if err != nil {
		c.st.displayed = nil
		c.st.searchLost = true
		c.failLocked(streamSearch, q, err)
	} else {
		c.st.displayed = slices.Clone(page.Products)
		c.st.searchLost = false
		if c.st.failed == streamSearch {
			c.clearErrLocked()
		}
	}
	c.rederiveLocked()
	c.mu.Unlock()

	c.notify()
}

// LoadMore fetches the next page of the global listing and appends it. It
// reports whether a request was issued; it is a no-op for a specific
// category, during a search, when no more pages exist, or while a listing
// or another page is in flight.
func (c *Controller) LoadMore() bool {
	c.mu.Lock()
	if c.closed || !c.canLoadMoreLocked() {
		c.mu.Unlock()
		return false
	}

	c.st.loadingMore = true
	gen := c.gen.loadMore
	skip := c.st.offset + c.opts.PageSize
	limit := c.opts.PageSize

	c.goLocked(func(ctx context.Context) {
		page, err := c.catalog.ListAllProducts(ctx, skip, limit)
		c.applyLoadMore(gen, skip, limit, page, err)
	})
	c.mu.Unlock()

	c.notify()
	return true
}

func (c *Controller) applyLoadMore(gen uint64, skip, limit int, page models.ProductsPage, err error) {
	c.mu.Lock()
	if c.closed || gen != c.gen.loadMore {
		c.mu.Unlock()
		c.log.Debug("stale response discarded", "stream", streamLoadMore, "skip", skip)
		return
	}

	c.st.loadingMore = false
	if err != nil {
		c.failLocked(streamLoadMore, "", err)
	} else {
		c.st.base = slices.Concat(c.st.base, page.Products)
		if !c.searchActiveLocked() {
			c.st.displayed = c.st.base
		}
		c.st.offset = skip
		c.st.hasMore = moreAvailable(len(page.Products), limit)
		if c.st.failed == streamLoadMore {
			c.clearErrLocked()
		}
		c.rederiveLocked()
	}
	c.mu.Unlock()

	c.notify()
}

func (c *Controller) SetSort(field SortField) {
	c.mu.Lock()
	c.st.sortField = field
	c.rederiveLocked()
	c.mu.Unlock()

	c.notify()
}

func (c *Controller) SetDirection(dir SortDirection) {
	c.mu.Lock()
	c.st.sortDir = dir
	c.rederiveLocked()
	c.mu.Unlock()

	c.notify()
}

// ToggleDirection flips the sort direction. It does nothing while no sort
// field is active.
func (c *Controller) ToggleDirection() bool {
	c.mu.Lock()
	if c.st.sortField == SortNone {
		c.mu.Unlock()
		return false
	}
	c.st.sortDir = c.st.sortDir.Opposite()
	c.rederiveLocked()
	c.mu.Unlock()

	c.notify()
	return true
}

// LoadCategories fills the category selector. Failures are logged only.
func (c *Controller) LoadCategories() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.goLocked(func(ctx context.Context) {
		cats, err := c.catalog.ListCategories(ctx)
		if err != nil {
			c.log.Warn("load categories failed", "err", err)
			return
		}
		if len(cats) == 0 {
			return
		}

		c.mu.Lock()
		c.st.categories = slices.Clone(cats)
		c.mu.Unlock()
		c.notify()
	})
	c.mu.Unlock()
}

// Retry re-runs the request that produced the current error. It reports
// whether anything was issued.
func (c *Controller) Retry() bool {
	c.mu.Lock()
	failed, q, category := c.st.failed, c.st.failedQuery, c.st.category
	c.mu.Unlock()

	switch failed {
	case streamPrimary:
		c.SelectCategory(category)
		return true

	case streamSearch:
		c.mu.Lock()
		if c.closed || strings.TrimSpace(c.st.search) != q {
			c.mu.Unlock()
			return false
		}
		c.clearErrLocked()
		c.startSearchLocked(q)
		c.mu.Unlock()
		c.notify()
		return true

	case streamLoadMore:
		return c.LoadMore()
	}
	return false
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Category:      c.st.category,
		Search:        c.st.search,
		SortField:     c.st.sortField,
		SortDirection: c.st.sortDir,
		Offset:        c.st.offset,
		Products:      slices.Clone(c.st.derived),
		LoadedCount:   len(c.st.base),
		HasMore:       c.st.hasMore,
		CanLoadMore:   c.canLoadMoreLocked(),
		Loading:       c.st.loading,
		LoadingMore:   c.st.loadingMore,
		Searching:     c.st.searching,
		Err:           c.st.err,
		Categories:    slices.Clone(c.st.categories),
	}
	if s.Err != nil {
		s.Severity = ErrorBanner
		if len(c.st.displayed) == 0 {
			s.Severity = ErrorBlocking
		}
	}
	return s
}

// Wait blocks until every dispatched request has been applied or discarded.
// A search still waiting out its quiet period is not dispatched yet and is
// not covered; callers that need it settled use SubmitSearch.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close drops the pending search, cancels in-flight requests and waits for
// them to return. Transitions after Close are no-ops.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.sched.Cancel()
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}

func (c *Controller) goLocked(fn func(ctx context.Context)) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn(c.ctx)
	}()
}

func (c *Controller) canLoadMoreLocked() bool {
	return c.st.category == AllCategories &&
		!c.searchActiveLocked() &&
		c.st.hasMore &&
		!c.st.loading &&
		!c.st.loadingMore
}

func (c *Controller) searchActiveLocked() bool {
	return strings.TrimSpace(c.st.search) != ""
}

func (c *Controller) failLocked(s stream, q string, err error) {
	c.st.err = err
	c.st.failed = s
	c.st.failedQuery = q
	c.log.Warn("inventory fetch failed", "stream", s, "category", c.st.category, "query", q, "err", err)
}

func (c *Controller) clearErrLocked() {
	c.st.err = nil
	c.st.failed = streamNone
	c.st.failedQuery = ""
}

func (c *Controller) rederiveLocked() {
	c.st.derived = c.sorter.Sort(c.st.displayed, c.st.sortField, c.st.sortDir)
}

func (c *Controller) notify() {
	if c.opts.OnChange != nil {
		c.opts.OnChange()
	}
}

func normalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return AllCategories
	}
	return category
}

// moreAvailable is false exactly when a page came back shorter than asked.
func moreAvailable(returned, requested int) bool {
	return returned >= requested
}
