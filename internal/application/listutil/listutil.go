// Package listutil provides small helpers for in-memory list filtering.
// Admin list endpoints fetch full result sets ordered by the store and
// apply query-parameter filters here rather than in SQL.
package listutil

import "strings"

// ContainsFold reports whether haystack contains needle, case-insensitively.
// An empty needle matches everything.
func ContainsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Filter returns the items for which keep returns true, preserving order.
func Filter[T any](items []T, keep func(T) bool) []T {
	var out []T
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// All combines predicates with AND semantics. With no predicates it accepts
// every item.
func All[T any](preds ...func(T) bool) func(T) bool {
	return func(item T) bool {
		for _, p := range preds {
			if !p(item) {
				return false
			}
		}
		return true
	}
}

// Paginate returns the page slice [offset, offset+limit). A non-positive
// limit returns everything from offset on.
func Paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
