package pagination

import (
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the catalog page size.
	DefaultLimit = 15
	// MaxLimit caps how many rows any page query can request.
	MaxLimit = 100
)

// Params holds page-number pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Page describes a window of results returned to clients.
type Page struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizePage clamps page numbers to start at 1.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Normalize applies defaults to both fields.
func (p Params) Normalize() Params {
	return Params{Page: NormalizePage(p.Page), Limit: NormalizeLimit(p.Limit)}
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// ParseParams reads "page" and "limit" query values. Garbage falls back to
// defaults rather than failing the request.
func ParseParams(page, limit string) Params {
	return Params{Page: atoi(page), Limit: atoi(limit)}.Normalize()
}

// NewPage builds the response metadata for a normalized request and total.
func NewPage(p Params, total int64) Page {
	n := p.Normalize()
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(n.Limit) - 1) / int64(n.Limit))
	}
	return Page{
		Page:       n.Page,
		Limit:      n.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    n.Page < totalPages,
		HasPrev:    n.Page > 1,
	}
}

func atoi(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}
