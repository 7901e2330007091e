package domain

// DefaultPageSize is the page size the dashboard order list is served with.
const DefaultPageSize = 10

// Envelope is the common response wrapper of the backend API.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// Err converts an unsuccessful envelope into an *APIError; nil otherwise.
func (e *Envelope[T]) Err() error {
	if e == nil || e.Success {
		return nil
	}
	return &APIError{Message: e.Message}
}

// Page is a paginated result set.
type Page[T any] struct {
	Count      int     `json:"count"`
	Next       *string `json:"next,omitempty"`
	Previous   *string `json:"previous,omitempty"`
	Results    []T     `json:"results"`
	PageSize   int     `json:"page_size,omitempty"`
	PageNumber int     `json:"page_number,omitempty"`
}

// HasMore reports whether the backend advertised a next page.
func (p Page[T]) HasMore() bool {
	return p.Next != nil && *p.Next != ""
}

// PageInfo is the pagination state derived from a Page.
type PageInfo struct {
	TotalCount  int `json:"total_count"`
	PageSize    int `json:"page_size"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

// NewPageInfo computes pagination for count results at page.
// A non-positive pageSize falls back to DefaultPageSize.
func NewPageInfo(count, pageSize, page int) PageInfo {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return PageInfo{
		TotalCount:  count,
		PageSize:    pageSize,
		CurrentPage: page,
		TotalPages:  pages,
	}
}

// HasPrev reports whether a previous page exists.
func (p PageInfo) HasPrev() bool { return p.CurrentPage > 1 }

// HasNext reports whether a following page exists.
func (p PageInfo) HasNext() bool { return p.CurrentPage < p.TotalPages }
