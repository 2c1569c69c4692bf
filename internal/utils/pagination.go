// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import "strconv"

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// PageParams parses the page and page_size query values into usable
// pagination numbers. Empty or unparsable values fall back to the defaults
// (page 1, size 20). A page below 1 becomes 1; a size outside 1..100 falls
// back to 20 rather than being capped, so an absurd request gets the
// default size rather than the largest one.
func PageParams(pageStr, sizeStr string) (page, size int) {
	page = atoiDefault(pageStr, defaultPage)
	size = atoiDefault(sizeStr, defaultPageSize)
	if page < 1 {
		page = defaultPage
	}
	if size < 1 || size > maxPageSize {
		size = defaultPageSize
	}
	return page, size
}

// atoiDefault converts s to an int, returning def when s is empty or not a
// plain base-10 integer. No trimming is applied.
func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
