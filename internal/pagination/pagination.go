// Package pagination slices ordered collections into fixed-size pages.
package pagination

// PostsPerPage is the fixed feed page size.
const PostsPerPage = 10

// Page describes one page of a paginated collection. Number is 1-based and
// always within [1, TotalPages]; requests outside that range are clamped
// rather than rejected.
type Page struct {
	Number     int   `json:"number"`
	Size       int   `json:"size"`
	TotalPages int   `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_previous"`
}

// New computes page metadata for a collection of totalItems, clamping the
// requested 1-based page number to the nearest valid page. An empty
// collection yields a single empty page 1.
func New(totalItems int64, requested int) Page {
	return NewWithSize(totalItems, requested, PostsPerPage)
}

// NewWithSize is New with an explicit page size.
func NewWithSize(totalItems int64, requested, size int) Page {
	if size <= 0 {
		size = PostsPerPage
	}

	totalPages := int((totalItems + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{
		Number:     number,
		Size:       size,
		TotalPages: totalPages,
		TotalItems: totalItems,
		HasNext:    number < totalPages,
		HasPrev:    number > 1,
	}
}

// Offset returns the item offset of the first element of the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Limit returns the maximum number of items on the page.
func (p Page) Limit() int {
	return p.Size
}
