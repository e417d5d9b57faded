package entity

import "strings"

// SortField names a video attribute the list operation can order by.
type SortField string

const (
	SortByPublishedAt SortField = "published_at"
	SortByCreatedAt   SortField = "created_at"
	SortByModifiedAt  SortField = "modified_at"
	SortByTitle       SortField = "title"
	SortByLikes       SortField = "likes"
)

// Valid reports whether f is a known sort field.
func (f SortField) Valid() bool {
	switch f {
	case SortByPublishedAt, SortByCreatedAt, SortByModifiedAt, SortByTitle, SortByLikes:
		return true
	default:
		return false
	}
}

// SortDirection is the ordering applied to a SortField.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// Valid reports whether d is a known direction.
func (d SortDirection) Valid() bool {
	return d == Asc || d == Desc
}

// Sort is a single-field ordering.
type Sort struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort orders videos by publication time, newest first.
var DefaultSort = Sort{Field: SortByPublishedAt, Direction: Desc}

var sortFieldAliases = map[string]SortField{
	"publishedat": SortByPublishedAt,
	"createdat":   SortByCreatedAt,
	"modifiedat":  SortByModifiedAt,
	"title":       SortByTitle,
	"likes":       SortByLikes,
	"likecount":   SortByLikes,
}

// ParseSort parses a "field,direction" expression such as "publishedAt,desc".
// Field names are matched case-insensitively in camelCase or snake_case form.
// Unrecognized parts are left empty so the caller can apply its defaults.
func ParseSort(raw string) Sort {
	var s Sort

	field, dir, _ := strings.Cut(strings.TrimSpace(raw), ",")

	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(field), "_", ""))
	if f, ok := sortFieldAliases[key]; ok {
		s.Field = f
	}

	d := SortDirection(strings.ToLower(strings.TrimSpace(dir)))
	if d.Valid() {
		s.Direction = d
	}

	return s
}

// PageRequest selects one page of an ordered listing.
type PageRequest struct {
	Page int  // Page is the zero-based page index.
	Size int  // Size is the maximum number of items in the page.
	Sort Sort // Sort is the requested ordering.
}

// Offset returns the number of items preceding the requested page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// InRange reports whether the requested page holds at least one of total items.
// It never computes Offset for pages past the end, so huge indexes can't overflow.
func (p PageRequest) InRange(total int64) bool {
	if p.Page < 0 || p.Size <= 0 || total <= 0 {
		return false
	}
	return int64(p.Page) <= (total-1)/int64(p.Size)
}

// Page is one slice of an ordered listing together with its position in the whole.
type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalElements int64
	TotalPages    int
}

// NewPage builds a Page for the given request, computing the number of pages from total.
func NewPage[T any](content []T, req PageRequest, total int64) *Page[T] {
	if content == nil {
		content = []T{}
	}

	var totalPages int
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}

	return &Page[T]{
		Content:       content,
		Number:        req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}
