package lead

import (
	"context"
	"log"
	"sync"
)

// Lister is the slice of the record store the list controller needs.
type Lister interface {
	List(ctx context.Context, search string, limit, offset int) ([]*Lead, int64, error)
}

// ListController combines a free-text filter with a 1-based page index over
// a fixed window of PageSize leads, tracking the current window and the total
// count of the filtered set.
//
// Every Fetch is stamped with a monotonically increasing sequence number;
// a response that arrives after a newer Fetch was issued is discarded, so
// overlapping fetches cannot clobber fresher state. A store failure keeps
// the previously displayed window and is reported through Err.
type ListController struct {
	store Lister

	mu         sync.Mutex
	searchTerm string
	page       int
	seq        uint64

	leads   []*Lead
	total   int64
	lastErr error
}

// NewListController creates a controller positioned on page 1 with no filter.
func NewListController(store Lister) *ListController {
	return &ListController{
		store: store,
		page:  1,
	}
}

// SetSearchTerm replaces the filter. Changing the term resets the
// current page to 1.
func (c *ListController) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if term == c.searchTerm {
		return
	}
	c.searchTerm = term
	c.page = 1
}

// SetPage positions the controller on a 1-based page.
func (c *ListController) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if page < 1 {
		page = 1
	}
	c.page = page
}

// Fetch loads the current window from the store. A page past the end of the
// filtered set yields an empty window without error.
func (c *ListController) Fetch(ctx context.Context) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	term := c.searchTerm
	page := c.page
	c.mu.Unlock()

	offset := (page - 1) * PageSize
	leads, total, err := c.store.List(ctx, term, PageSize, offset)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		// a newer fetch was issued while this one was in flight
		return
	}

	if err != nil {
		log.Printf("lead_list_fetch_failed search=%q page=%d error=%q", term, page, err)
		c.lastErr = err
		return
	}

	c.leads = leads
	c.total = total
	c.lastErr = nil
}

// Leads returns the currently displayed window.
func (c *ListController) Leads() []*Lead {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.leads
}

// TotalCount returns the size of the filtered, unwindowed set.
func (c *ListController) TotalCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// TotalPages returns the page count for the current total.
func (c *ListController) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return TotalPages(c.total)
}

// CurrentPage returns the 1-based page the controller is positioned on.
func (c *ListController) CurrentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// SearchTerm returns the active filter.
func (c *ListController) SearchTerm() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchTerm
}

// Err returns the failure of the most recent completed fetch, if any.
func (c *ListController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
