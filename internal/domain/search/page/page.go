// Package page normalises pagination input.
package page

import (
	"math"
	"strconv"
	"strings"
)

// Defaults applied to missing or malformed input.
const (
	DefaultNumber = 1
	DefaultSize   = 10
)

// Page is a 1-based page number with a page size. Both are always >= 1.
type Page struct {
	number int
	size   int
}

// New coerces values below 1 to the defaults.
func New(number, size int) Page {
	return NewWithDefault(number, size, DefaultSize)
}

// NewWithDefault is New with a caller-chosen default page size.
func NewWithDefault(number, size, defaultSize int) Page {
	if defaultSize < 1 {
		defaultSize = DefaultSize
	}
	if number < 1 {
		number = DefaultNumber
	}
	if size < 1 {
		size = defaultSize
	}
	return Page{number: number, size: size}
}

// Parse builds a Page from raw query values. Non-numeric values fall back to defaults.
func Parse(number, size string, defaultSize int) Page {
	return NewWithDefault(Atoi(number), Atoi(size), defaultSize)
}

// Atoi parses a leading integer, returning 0 when there is none.
// "3abc" parses as 3, matching lenient form handling.
func Atoi(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && (s[end] == '-' || s[end] == '+')) {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// Number returns the 1-based page number.
func (p Page) Number() int { return p.number }

// Size returns the page size.
func (p Page) Size() int { return p.size }

// Offset returns the number of rows to skip, saturating at math.MaxInt.
func (p Page) Offset() int {
	if p.size <= 0 || p.number <= 1 {
		return 0
	}
	if p.number-1 > math.MaxInt/p.size {
		return math.MaxInt
	}
	return (p.number - 1) * p.size
}

// TotalPages returns ceil(total / size).
func (p Page) TotalPages(total int) int {
	if total <= 0 || p.size <= 0 {
		return 0
	}
	pages := total / p.size
	if total%p.size != 0 {
		pages++
	}
	return pages
}
