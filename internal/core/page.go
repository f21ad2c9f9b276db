// AngelaMos | 2026
// page.go

package core

import (
	"fmt"
	"math"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage keeps Offset from overflowing at any allowed page size.
	MaxPage         = math.MaxInt32 / MaxPageSize
)

// PageRequest carries pagination and sorting exactly as the client sent
// them. Services pass it through untouched; repositories normalize it.
type PageRequest struct {
	Page     int
	PageSize int
	Sort     string
	Desc     bool
}

func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p PageRequest) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

// OrderBy resolves the requested sort key against allowed, a map of public
// sort keys to SQL columns. Unknown keys fall back to fallback.
func (p PageRequest) OrderBy(allowed map[string]string, fallback string) string {
	col, ok := allowed[strings.ToLower(p.Sort)]
	if !ok {
		col = fallback
	}

	dir := "ASC"
	if p.Desc || !ok {
		dir = "DESC"
	}

	return fmt.Sprintf("%s %s", col, dir)
}

type Page[T any] struct {
	Items    []T
	Total    int
	Page     int
	PageSize int
}

func NewPage[T any](items []T, total int, req PageRequest) Page[T] {
	n := req.Normalize()
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:    items,
		Total:    total,
		Page:     n.Page,
		PageSize: n.PageSize,
	}
}

// MapPage converts the items of a page, keeping its metadata.
func MapPage[T, R any](p Page[T], fn func(*T) R) Page[R] {
	out := make([]R, 0, len(p.Items))
	for i := range p.Items {
		out = append(out, fn(&p.Items[i]))
	}
	return Page[R]{
		Items:    out,
		Total:    p.Total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
}
