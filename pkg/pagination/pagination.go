package pagination

const (
	DefaultPerPage = 20
	// MaxPerPage is high enough for a day of till movements on one page
	MaxPerPage = 200
)

// Pagination describes the page a list response carries
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// PaginationParams is the page requested by the caller
type PaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// New returns normalized params for the requested page
func New(page, perPage int) *PaginationParams {
	p := &PaginationParams{Page: page, PerPage: perPage}
	p.Validate()
	return p
}

// DefaultPagination is the first page at the default size
func DefaultPagination() *PaginationParams {
	return New(1, DefaultPerPage)
}

// Normalize validates p in place, or returns the default page when p is nil
func Normalize(p *PaginationParams) *PaginationParams {
	if p == nil {
		return DefaultPagination()
	}
	p.Validate()
	return p
}

// Validate clamps the page and page size into range
func (p *PaginationParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.PerPage < 1:
		p.PerPage = DefaultPerPage
	case p.PerPage > MaxPerPage:
		p.PerPage = MaxPerPage
	}
}

// Offset is the number of rows to skip
func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PaginatedResult is one page of items plus where it sits in the whole list
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// Result wraps a page of items fetched with params out of total rows
func Result[T any](items []T, params *PaginationParams, total int64) *PaginatedResult[T] {
	params = Normalize(params)
	if items == nil {
		items = []T{}
	}

	perPage := int64(params.PerPage)
	totalPages := int((total + perPage - 1) / perPage)

	return &PaginatedResult[T]{
		Items: items,
		Pagination: &Pagination{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			Total:       total,
			TotalPages:  totalPages,
			HasNext:     params.Page < totalPages,
			HasPrev:     params.Page > 1,
		},
	}
}
