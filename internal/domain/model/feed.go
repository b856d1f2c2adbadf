package model

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultPageSize is used when the caller does not supply a page size.
	DefaultPageSize = 10
	// MaxPageSize caps the page size of any feed query.
	MaxPageSize = 100
	// MaxPage bounds the page number so Offset cannot overflow.
	MaxPage = math.MaxInt / MaxPageSize
)

// PageRequest holds offset pagination inputs. Page is 1-based.
type PageRequest struct {
	Page     int
	PageSize int
}

// Normalize applies defaults: page is clamped to [1, MaxPage], page size to (0, MaxPageSize].
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Page > MaxPage {
		r.Page = MaxPage
	}
	if r.PageSize <= 0 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}
	return r
}

// Offset returns the number of items to skip: (page-1)*pageSize.
func (r PageRequest) Offset() int {
	n := r.Normalize()
	return (n.Page - 1) * n.PageSize
}

// Limit returns the normalized page size.
func (r PageRequest) Limit() int {
	return r.Normalize().PageSize
}

// Page is one page of a feed. TotalItems and TotalPages are computed from the
// filtered and joined set before paging.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalItems int64
	TotalPages int
}

// NewPage assembles a page. A page beyond TotalPages simply carries no items.
func NewPage[T any](items []T, req PageRequest, totalItems int64) *Page[T] {
	req = req.Normalize()
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if totalItems > 0 {
		totalPages = int((totalItems + int64(req.PageSize) - 1) / int64(req.PageSize))
	}
	return &Page[T]{
		Items:      items,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// SortField names a sortable video column.
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
	SortByViews     SortField = "views"
	SortByDuration  SortField = "duration"
	SortByTitle     SortField = "title"
)

func (f SortField) IsValid() bool {
	switch f {
	case SortByCreatedAt, SortByUpdatedAt, SortByViews, SortByDuration, SortByTitle:
		return true
	default:
		return false
	}
}

// VideoSort is a validated sort field and direction.
type VideoSort struct {
	Field      SortField
	Descending bool
}

// DefaultVideoSort orders newest first.
func DefaultVideoSort() VideoSort {
	return VideoSort{Field: SortByCreatedAt, Descending: true}
}

// ParseVideoSort builds a sort from raw query values. An unknown field falls back
// to the default sort instead of failing; direction is ascending only for "asc".
func ParseVideoSort(field, direction string) VideoSort {
	f := SortField(strings.TrimSpace(field))
	if f == "" || !f.IsValid() {
		return DefaultVideoSort()
	}
	return VideoSort{
		Field:      f,
		Descending: !strings.EqualFold(strings.TrimSpace(direction), "asc"),
	}
}

// VideoFilter selects videos for the catalog and channel feeds.
type VideoFilter struct {
	OwnerID       uuid.UUID
	Query         string
	PublishedOnly bool
}
