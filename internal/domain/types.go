package domain

// ID is used across domain entities.
type ID int64

// DefaultPageSize applies when a caller passes a non-positive page size.
const DefaultPageSize = 10

// MaxPageSize caps any requested or configured page size.
const MaxPageSize = 500

// Pagination carries paging params. Page is 1-based.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Normalize fills in defaults for missing paging params.
func (p Pagination) Normalize(defaultSize int) Pagination {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultSize
	}
	p.PageSize = min(p.PageSize, MaxPageSize)
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
}
