package pagination

import "math"

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Meta is the pagination block returned next to list data.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Normalize clamps page and limit into their accepted ranges.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func Offset(page, limit int) int {
	page, limit = Normalize(page, limit)
	return (page - 1) * limit
}

func TotalPages(total int64, limit int) int {
	if limit < 1 || total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

func NewMeta(page, limit int, total int64) Meta {
	page, limit = Normalize(page, limit)
	return Meta{Page: page, Limit: limit, Total: total, TotalPages: TotalPages(total, limit)}
}
