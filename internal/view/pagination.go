package view

import "github.com/hiredesk/hiredesk/internal/candidate"

// PageSize is the fixed number of records shown per page.
const PageSize = 5

// Ellipsis marks a gap in a page-number strip.
const Ellipsis = -1

// Page is one slice of a candidate list.
type Page struct {
	Items      []candidate.Candidate
	Number     int
	TotalPages int
	Total      int
}

// TotalPages returns ceil(count / PageSize), with a minimum of one page so an
// empty list still renders as a single empty page.
func TotalPages(count int) int {
	if count <= 0 {
		return 1
	}
	return (count + PageSize - 1) / PageSize
}

// Paginate slices the list for the given 1-based page number. Out-of-range
// page numbers clamp to the nearest valid page.
func Paginate(cands []candidate.Candidate, page int) Page {
	total := TotalPages(len(cands))
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(cands) {
		start = len(cands)
	}
	if end > len(cands) {
		end = len(cands)
	}
	return Page{
		Items:      cands[start:end],
		Number:     page,
		TotalPages: total,
		Total:      len(cands),
	}
}

// PageNumbers builds the strip of page numbers for page controls. With seven
// or fewer pages every number is listed. Beyond that: always the first and
// last page, up to one neighbor on each side of the current page, and an
// Ellipsis marker wherever more than one number is skipped.
func PageNumbers(current, total int) []int {
	if total <= 7 {
		pages := make([]int, 0, total)
		for i := 1; i <= total; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	pages := []int{1}
	if current > 3 {
		pages = append(pages, Ellipsis)
	}

	start := max(2, current-1)
	end := min(total-1, current+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}

	if current < total-2 {
		pages = append(pages, Ellipsis)
	}
	return append(pages, total)
}
