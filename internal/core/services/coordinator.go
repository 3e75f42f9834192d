package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/lookup/internal/core/domain"
	"github.com/custodia-labs/lookup/internal/core/ports/driven"
	"github.com/custodia-labs/lookup/internal/logger"
)

// FetchCoordinator resolves stable queries via the cache or the search
// source. At most one fetch is live per coordinator; issuing a new one
// cancels the previous one, whose completion is then ignored.
//
// FetchCoordinator is not safe for concurrent use. Search, Complete and
// Cancel must be called from the same event loop; only the returned Fetch
// may run elsewhere.
type FetchCoordinator struct {
	source    driven.SearchSource
	cache     *ResultCache
	minLength int
	timeout   time.Duration

	state domain.SearchState

	// token identifies the live fetch; zero means none is outstanding.
	token  uint64
	seq    uint64
	cancel context.CancelFunc
}

// NewFetchCoordinator creates a coordinator.
// A nil cache selects the process-wide SharedCache.
func NewFetchCoordinator(source driven.SearchSource, cache *ResultCache, minLength int) *FetchCoordinator {
	if cache == nil {
		cache = SharedCache()
	}
	if minLength < 1 {
		minLength = 1
	}
	return &FetchCoordinator{
		source:    source,
		cache:     cache,
		minLength: minLength,
	}
}

// WithTimeout bounds every fetch issued by this coordinator.
func (c *FetchCoordinator) WithTimeout(timeout time.Duration) *FetchCoordinator {
	c.timeout = timeout
	return c
}

// Search resolves query within category.
// It returns nil when the query was handled synchronously, otherwise a
// Fetch that must be run and whose Completion must be passed to Complete.
func (c *FetchCoordinator) Search(ctx context.Context, category, query string) domain.Fetch {
	c.state.Category = category
	c.state.Query = query

	if utf8.RuneCountInString(query) < c.minLength {
		logger.Debug("coordinator: query %q below minimum length %d", query, c.minLength)
		c.cancelLive()
		c.state.Items = nil
		c.state.Err = ""
		c.state.Loading = false
		return nil
	}

	if items, ok := c.cache.Get(category, query); ok {
		logger.Debug("coordinator: cache hit %s:%q (%d items)", category, query, len(items))
		c.cancelLive()
		c.state.Items = items
		c.state.Err = ""
		c.state.Loading = false
		return nil
	}

	c.cancelLive()

	if c.source == nil {
		c.state.Items = nil
		c.state.Err = domain.ErrSourceUnavailable.Error()
		c.state.Loading = false
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	var fetchCtx context.Context
	var cancel context.CancelFunc
	if c.timeout > 0 {
		fetchCtx, cancel = context.WithTimeout(ctx, c.timeout)
	} else {
		fetchCtx, cancel = context.WithCancel(ctx)
	}

	c.seq++
	c.token = c.seq
	c.cancel = cancel
	c.state.Loading = true
	c.state.Err = ""

	token := c.token
	source := c.source
	logger.Debug("coordinator: fetch #%d %s:%q", token, category, query)

	return func() domain.Completion {
		items, err := source.Search(fetchCtx, category, query)
		return domain.Completion{
			Token:    token,
			Category: category,
			Query:    query,
			Items:    items,
			Err:      err,
		}
	}
}

// Complete applies the outcome of a fetch. It returns false if the fetch
// was superseded or cancelled. A cancelled live fetch releases its token
// and clears Loading but leaves items and error untouched.
func (c *FetchCoordinator) Complete(done domain.Completion) bool {
	if c.token == 0 || done.Token != c.token {
		logger.Debug("coordinator: dropping stale fetch #%d", done.Token)
		return false
	}
	if errors.Is(done.Err, context.Canceled) {
		logger.Debug("coordinator: fetch #%d cancelled", done.Token)
		c.release()
		c.state.Loading = false
		return false
	}

	c.release()

	if done.Err != nil {
		logger.Warn("coordinator: fetch #%d failed: %v", done.Token, done.Err)
		c.state.Err = errorMessage(done.Err)
		c.state.Items = nil
		c.state.Loading = false
		return true
	}

	items := done.Items
	if items == nil {
		items = []domain.ResultItem{}
	}
	c.cache.Put(done.Category, done.Query, items)
	c.state.Items = items
	c.state.Err = ""
	c.state.Loading = false
	logger.Debug("coordinator: fetch #%d returned %d items", done.Token, len(items))
	return true
}

// Reset cancels any live fetch and clears items and error.
func (c *FetchCoordinator) Reset() {
	c.cancelLive()
	c.state = domain.SearchState{Category: c.state.Category}
}

// Cancel cancels the live fetch, if any. Its completion will be ignored.
func (c *FetchCoordinator) Cancel() {
	c.cancelLive()
}

// InFlight returns true if a fetch is outstanding.
func (c *FetchCoordinator) InFlight() bool {
	return c.token != 0
}

// State returns the current search state.
func (c *FetchCoordinator) State() domain.SearchState {
	return c.state
}

// MinLength returns the minimum query length.
func (c *FetchCoordinator) MinLength() int {
	return c.minLength
}

// cancelLive invalidates the live token and clears the loading flag it owned.
func (c *FetchCoordinator) cancelLive() {
	if c.token == 0 {
		return
	}
	logger.Debug("coordinator: cancelling fetch #%d", c.token)
	c.release()
	c.state.Loading = false
}

func (c *FetchCoordinator) release() {
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = nil
	c.token = 0
}

// errorMessage converts a fetch error into a message for the error panel.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "search timed out"
	case err.Error() == "":
		return "an error occurred"
	default:
		return err.Error()
	}
}
