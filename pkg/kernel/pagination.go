package kernel

// PaginationOptions are the page coordinates requested by a caller
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Offset returns the row offset for SQL queries
func (p PaginationOptions) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Page describes the page returned in a Paginated result
type Page struct {
	Number int `json:"number"`
	Size   int `json:"size"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}

// NewPaginated assembles a page from items and the total row count
func NewPaginated[T any](items []T, opts PaginationOptions, total int) *Paginated[T] {
	pages := 0
	if opts.PageSize > 0 {
		pages = (total + opts.PageSize - 1) / opts.PageSize
	}
	if items == nil {
		items = []T{}
	}
	return &Paginated[T]{
		Items: items,
		Page: Page{
			Number: opts.Page,
			Size:   opts.PageSize,
			Total:  total,
			Pages:  pages,
		},
		Empty: len(items) == 0,
	}
}
