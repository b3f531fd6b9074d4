package service

import "strings"

// defaultPerPageCap bounds per_page when the config does not override it.
const defaultPerPageCap = 100

// PageMeta describes one page of a listing.
type PageMeta struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

// paginate slices items for the requested page. Page numbers start at
// 1; per_page is clamped to 1..limit. The page count uses ceiling
// division and is 1 for an empty listing.
func paginate[T any](items []T, page, perPage, limit int) ([]T, PageMeta) {
	if limit <= 0 {
		limit = defaultPerPageCap
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	if perPage > limit {
		perPage = limit
	}

	total := len(items)
	pages := 1
	if total > 0 {
		pages = (total + perPage - 1) / perPage
	}

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	meta := PageMeta{Page: page, PerPage: perPage, Total: total, Pages: pages}
	return items[start:end], meta
}

// descending reports whether a sort_order value asks for reverse order.
// Anything other than "desc" (case-insensitive) is ascending.
func descending(sortOrder string) bool {
	return strings.EqualFold(sortOrder, "desc")
}

// reverseSlice flips items in place.
func reverseSlice[T any](items []T) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
