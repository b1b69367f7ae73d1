// Package tabular produces filtered, sorted, paged views over in-memory
// record collections. It holds no state between calls: the caller supplies
// the full record set and column descriptors every time.
package tabular

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/retailcore/backoffice/internal/apperrors"
)

// SortDirection orders a sorted view ascending or descending.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Column describes one viewable field of a record: a stable key for sorting,
// an accessor producing the field value, and whether search should look at it.
type Column[T any] struct {
	Key        string
	Value      func(T) any
	Searchable bool
}

// Params control one view: search term, sort key/direction and 1-based page.
type Params struct {
	SearchTerm    string
	SortKey       string
	SortDirection SortDirection
	Page          int
	PageSize      int
}

// Result is one page of rows plus the pre-pagination match count, which
// callers use to compute page bounds.
type Result[T any] struct {
	Rows       []T
	TotalCount int
}

// View filters, sorts and pages records.
//
// Search is a case-insensitive substring match over the searchable columns;
// an empty term matches everything. Sorting is stable on the named column
// using the natural order of its value type; an empty SortKey preserves input
// order. Pages are 1-based, and a page past the end yields empty rows with
// the correct TotalCount rather than an error.
func View[T any](records []T, columns []Column[T], p Params) (Result[T], error) {
	if p.Page < 1 {
		return Result[T]{}, fmt.Errorf("%w: page must be >= 1, got %d", apperrors.ErrValidation, p.Page)
	}
	if p.PageSize < 1 {
		return Result[T]{}, fmt.Errorf("%w: page size must be >= 1, got %d", apperrors.ErrValidation, p.PageSize)
	}

	var sortColumn *Column[T]
	if p.SortKey != "" {
		for i := range columns {
			if columns[i].Key == p.SortKey {
				sortColumn = &columns[i]
				break
			}
		}
		if sortColumn == nil {
			return Result[T]{}, fmt.Errorf("%w: unknown sort key %q", apperrors.ErrValidation, p.SortKey)
		}
	}
	if p.SortDirection != "" && p.SortDirection != Ascending && p.SortDirection != Descending {
		return Result[T]{}, fmt.Errorf("%w: unknown sort direction %q", apperrors.ErrValidation, p.SortDirection)
	}

	filtered := filter(records, columns, p.SearchTerm)

	if sortColumn != nil {
		descending := p.SortDirection == Descending
		sort.SliceStable(filtered, func(i, j int) bool {
			less := compareValues(sortColumn.Value(filtered[i]), sortColumn.Value(filtered[j])) < 0
			if descending {
				return compareValues(sortColumn.Value(filtered[j]), sortColumn.Value(filtered[i])) < 0
			}
			return less
		})
	}

	totalCount := len(filtered)
	start := (p.Page - 1) * p.PageSize
	if start >= totalCount {
		return Result[T]{Rows: []T{}, TotalCount: totalCount}, nil
	}
	end := start + p.PageSize
	if end > totalCount {
		end = totalCount
	}
	return Result[T]{Rows: filtered[start:end], TotalCount: totalCount}, nil
}

func filter[T any](records []T, columns []Column[T], term string) []T {
	matched := make([]T, 0, len(records))
	if term == "" {
		return append(matched, records...)
	}
	needle := strings.ToLower(term)
	for _, record := range records {
		for _, col := range columns {
			if !col.Searchable {
				continue
			}
			if strings.Contains(strings.ToLower(stringify(col.Value(record))), needle) {
				matched = append(matched, record)
				break
			}
		}
	}
	return matched
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case decimal.Decimal:
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}

// compareValues orders two column values of the same column: numerics
// numerically, times chronologically, everything else lexicographically.
func compareValues(a, b any) int {
	switch av := a.(type) {
	case int:
		return compareInt64(int64(av), toInt64(b))
	case int64:
		return compareInt64(av, toInt64(b))
	case float64:
		bv, _ := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case decimal.Decimal:
		if bv, ok := b.(decimal.Decimal); ok {
			return av.Cmp(bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			switch {
			case av.Before(bv):
				return -1
			case av.After(bv):
				return 1
			}
			return 0
		}
	}
	return strings.Compare(stringify(a), stringify(b))
}

func toInt64(v any) int64 {
	switch val := v.(type) {
	case int:
		return int64(val)
	case int64:
		return val
	}
	return 0
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
