package utils

import (
	"math"
	"strconv"
)

const (
	MaxPageLimit = 100
	MaxPage      = 1_000_000
)

type Pagination struct {
	Page  int
	Limit int
}

// NewPagination parses page and limit query values. Missing, malformed or
// non-positive values fall back to page 1 and defaultLimit. Larger values are
// capped at MaxPage and MaxPageLimit so Offset cannot overflow.
func NewPagination(page, limit string, defaultLimit int) Pagination {
	p := Pagination{Page: 1, Limit: defaultLimit}
	if n, err := strconv.Atoi(page); err == nil && n > 0 {
		p.Page = min(n, MaxPage)
	}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		p.Limit = min(n, MaxPageLimit)
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p Pagination) TotalPages(total int64) int {
	if p.Limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(p.Limit)))
}

func (p Pagination) HasNext(total int64) bool {
	return p.Page < p.TotalPages(total)
}

func (p Pagination) HasPrev() bool {
	return p.Page > 1
}
