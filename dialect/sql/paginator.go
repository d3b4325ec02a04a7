package sql

import (
	"slices"
)

// Paginator is a read-only page of rows together with the page arithmetic
// derived from the total row count.
type Paginator struct {
	total   int64
	size    int
	current int
	items   []Row
}

// NewPaginator returns a Paginator for page current of size rows out of
// total. items is copied.
func NewPaginator(total int64, size, current int, items []Row) *Paginator {
	return &Paginator{
		total:   total,
		size:    size,
		current: current,
		items:   slices.Clone(items),
	}
}

// TotalCount returns the number of rows matched across all pages.
func (p *Paginator) TotalCount() int64 { return p.total }

// CountInPage returns the page size.
func (p *Paginator) CountInPage() int { return p.size }

// TotalPages returns ceil(TotalCount / CountInPage).
func (p *Paginator) TotalPages() int {
	if p.size <= 0 {
		return 0
	}
	return int((p.total + int64(p.size) - 1) / int64(p.size))
}

// FirstPage always returns 1.
func (p *Paginator) FirstPage() int { return 1 }

// LastPage returns TotalPages.
func (p *Paginator) LastPage() int { return p.TotalPages() }

// CurrentPage returns the 1-based page number.
func (p *Paginator) CurrentPage() int { return p.current }

// Items returns a copy of the rows of the current page.
func (p *Paginator) Items() []Row { return slices.Clone(p.items) }

// PrevPage returns the previous page number, if any.
func (p *Paginator) PrevPage() (int, bool) {
	if p.current > 1 {
		return p.current - 1, true
	}
	return 0, false
}

// NextPage returns the next page number, if any.
func (p *Paginator) NextPage() (int, bool) {
	if p.current < p.TotalPages() {
		return p.current + 1, true
	}
	return 0, false
}
