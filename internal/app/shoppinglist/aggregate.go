// Package shoppinglist turns the ingredient lines of carted recipes into a printable list.
package shoppinglist

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LinesPerPage is how many numbered lines fit under the title on one page
const LinesPerPage = 30

// Line is an ingredient amount. Before aggregation there is one per recipe line.
type Line struct {
	Name   string
	Unit   string
	Amount int
}

type groupKey struct {
	name string
	unit string
}

// Aggregate sums amounts per (name, unit) and sorts by name, then unit.
// Same name with different units stays separate.
func Aggregate(lines []Line) []Line {
	totals := make(map[groupKey]int, len(lines))
	for _, line := range lines {
		totals[groupKey{line.Name, line.Unit}] += line.Amount
	}

	items := make([]Line, 0, len(totals))
	for key, amount := range totals {
		items = append(items, Line{Name: key.name, Unit: key.unit, Amount: amount})
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := strings.ToLower(items[i].Name), strings.ToLower(items[j].Name)
		if a != b {
			return a < b
		}
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].Unit < items[j].Unit
	})
	return items
}

// Paginate splits items into pages of at most perPage lines. An empty list is one empty page.
func Paginate(items []Line, perPage int) [][]Line {
	if perPage <= 0 {
		perPage = LinesPerPage
	}
	if len(items) == 0 {
		return [][]Line{{}}
	}

	pages := make([][]Line, 0, (len(items)+perPage-1)/perPage)
	for start := 0; start < len(items); start += perPage {
		end := start + perPage
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, items[start:end])
	}
	return pages
}

// Capitalize upper-cases the first letter and lower-cases the rest
func Capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}

// FormatLine renders the index-th (1-based) line of the list
func FormatLine(index int, item Line) string {
	return fmt.Sprintf("%d. %s — %d %s", index, Capitalize(item.Name), item.Amount, item.Unit)
}
