package pagination

import (
	"slices"

	"github.com/SscSPs/ledger_books/internal/core/domain"
)

// DefaultWindow is how many page buttons the UI shows.
const DefaultWindow = 5

// Page is one slice of a sorted collection.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
	StartIndex int
}

// EndIndex is the exclusive end of the page within the full collection.
func (p Page[T]) EndIndex() int {
	return p.StartIndex + len(p.Items)
}

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }

// HasPrev reports whether an earlier page exists.
func (p Page[T]) HasPrev() bool { return p.Page > 1 }

// Paginate slices items according to state. Pages past the end clamp to the
// last page; an empty collection yields page 1 of 0.
func Paginate[T any](items []T, state domain.ViewState) Page[T] {
	state = state.Normalize()
	total := len(items)
	totalPages := (total + state.PageSize - 1) / state.PageSize

	page := state.Page
	if totalPages == 0 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * state.PageSize
	if start > total {
		start = total
	}
	end := min(start+state.PageSize, total)

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		PageSize:   state.PageSize,
		TotalItems: total,
		TotalPages: totalPages,
		StartIndex: start,
	}
}

// SortByDateDesc returns a copy of items ordered by date, newest first. Ties
// are broken by createdAt, newest first, when both sides carry one; otherwise
// the input order is kept. Unparseable dates sort last.
func SortByDateDesc[T any](items []T, date func(T) string, createdAt func(T) string) []T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		if c := compareDesc(date(a), date(b)); c != 0 {
			return c
		}
		ca, okA := domain.ParseLedgerDate(createdAt(a))
		cb, okB := domain.ParseLedgerDate(createdAt(b))
		if !okA || !okB {
			return 0
		}
		return cb.Compare(ca)
	})
	return sorted
}

func compareDesc(a, b string) int {
	ta, okA := domain.ParseLedgerDate(a)
	tb, okB := domain.ParseLedgerDate(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}
	return tb.Compare(ta)
}

// PageWindow returns the page numbers to show around current: centred when
// possible, shifted left near the last page.
func PageWindow(current, totalPages, size int) []int {
	if totalPages <= 0 || size <= 0 {
		return []int{}
	}
	start := max(1, current-size/2)
	end := min(totalPages, start+size-1)
	if end-start+1 < size && start > 1 {
		start = max(1, end-size+1)
	}

	window := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		window = append(window, i)
	}
	return window
}
