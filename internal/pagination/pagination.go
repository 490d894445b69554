package pagination

import "gorm.io/gorm"

const (
	// DefaultLimit is used when no limit is supplied.
	DefaultLimit = 50
	// MaxLimit caps the page size.
	MaxLimit = 200
)

// PageRequest holds limit/offset parameters parsed from query strings.
type PageRequest struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// Defaults fills in default values and clamps out-of-range ones.
func (p *PageRequest) Defaults() {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ListResponse wraps a bounded window of items with the total count of rows
// matching the same predicate set, ignoring limit and offset.
type ListResponse[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// NewListResponse creates a ListResponse from the given items and total count.
func NewListResponse[T any](items []T, page PageRequest, total int64) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{
		Items:  items,
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given
// page request.
func Paginate(page PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(page.Offset).Limit(page.Limit)
	}
}
