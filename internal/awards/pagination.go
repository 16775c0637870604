package awards

import (
	"sync"

	"github.com/david/spending-search/internal/models"
)

// PageLimit is the number of rows requested per page.
const PageLimit = 10

// Pagination is the displayed record range and the state of the Prev/Next controls.
type Pagination struct {
	Page        int
	StartRecord int
	EndRecord   int
	PrevEnabled bool
	NextEnabled bool
	PrevVisible bool
	NextVisible bool
}

// ComputePagination derives the record range from the latest page. With no
// total page count, HasNext is the only forward signal.
func ComputePagination(res models.SearchResponse) Pagination {
	page := res.PageMetadata.Page
	if page < 1 {
		page = 1
	}
	hasNext := res.PageMetadata.HasNext

	start := (page-1)*PageLimit + 1
	end := start + len(res.Results) - 1
	if hasNext {
		end = start + PageLimit - 1
	}

	return Pagination{
		Page:        page,
		StartRecord: start,
		EndRecord:   end,
		PrevEnabled: page != 1,
		PrevVisible: page != 1,
		NextEnabled: hasNext,
		NextVisible: hasNext,
	}
}

// Cycle identifies one fetch: the page it asked for and its sequence number.
type Cycle struct {
	Seq  uint64
	Page int
}

// Controller owns the current page of one search session. Every navigation
// issues a new Cycle; only the most recently issued one may be applied, so a
// slow response can never overwrite a newer one.
type Controller struct {
	mu          sync.Mutex
	currentPage int
	issued      uint64
	last        Pagination
}

func NewController() *Controller {
	return &Controller{currentPage: 1}
}

// CurrentPage returns the page of the latest issued cycle.
func (c *Controller) CurrentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentPage
}

// Submit starts a fresh search at page 1.
func (c *Controller) Submit() Cycle {
	return c.SubmitAt(1)
}

// SubmitAt starts a fresh search on an explicit page. Pages past the end come
// back empty from the API rather than failing.
func (c *Controller) SubmitAt(page int) Cycle {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentPage = page
	c.last = Pagination{}
	return c.issue()
}

// Next advances one page. It reports false when the last applied page had no next page.
func (c *Controller) Next() (Cycle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.last.NextEnabled {
		return Cycle{}, false
	}
	c.currentPage++
	return c.issue(), true
}

// Prev goes back one page. It reports false on the first page. It does not
// depend on the last applied page, so an empty page past the end can still be
// left backwards.
func (c *Controller) Prev() (Cycle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentPage <= 1 {
		return Cycle{}, false
	}
	c.currentPage--
	return c.issue(), true
}

// Apply records the pagination of a finished cycle. Stale cycles are dropped
// and reported as false.
func (c *Controller) Apply(cycle Cycle, p Pagination) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cycle.Seq != c.issued {
		return false
	}
	c.last = p
	return true
}

// IsLatest reports whether cycle is the most recently issued one.
func (c *Controller) IsLatest(cycle Cycle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cycle.Seq == c.issued
}

func (c *Controller) issue() Cycle {
	c.issued++
	return Cycle{Seq: c.issued, Page: c.currentPage}
}
