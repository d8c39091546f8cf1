// Package pagination slices ordered sequences into fixed-size pages with
// page-number addressing. The page size is a process-wide constant; every
// timeline kind shares the same clamping rules.
package pagination

import "strconv"

// Window is the slice of a sequence one page covers, expressed as a
// LIMIT/OFFSET pair so counted SQL sources and in-memory slices paginate
// identically.
type Window struct {
	Page   int
	Offset int
	Limit  int
}

// Page is one rendered page of items plus its navigation metadata.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Number     int  `json:"page"`
	Size       int  `json:"page_size"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ParsePage interprets the raw page query parameter. Absent, non-numeric
// or non-positive values all mean page 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// TotalPages is the page count for a sequence of total items. An empty
// sequence still has one (empty) page.
func TotalPages(total, size int) int {
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Clamp resolves a requested page number against the sequence length.
// Requests beyond the last page land on the last page, never on an empty
// or erroring one.
func Clamp(total, page, size int) Window {
	totalPages := TotalPages(total, size)
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Window{
		Page:   page,
		Offset: (page - 1) * size,
		Limit:  size,
	}
}

// NewPage assembles page metadata around one window of items.
func NewPage[T any](items []T, total int, w Window, size int) Page[T] {
	totalPages := TotalPages(total, size)
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Number:     w.Page,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    w.Page < totalPages,
		HasPrev:    w.Page > 1,
	}
}

// Slice paginates an in-memory sequence.
func Slice[T any](items []T, page, size int) Page[T] {
	w := Clamp(len(items), page, size)
	end := w.Offset + w.Limit
	if end > len(items) {
		end = len(items)
	}
	start := w.Offset
	if start > len(items) {
		start = len(items)
	}
	return NewPage(items[start:end], len(items), w, size)
}
