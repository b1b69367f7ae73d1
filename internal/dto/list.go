package dto

import "github.com/retailcore/backoffice/internal/utils/tabular"

// ListParams carries the common search/sort/page query parameters of every
// listing endpoint. Zero page values are filled in by Normalize; the tabular
// engine rejects anything still out of range after that.
type ListParams struct {
	Search   string `form:"search"`
	SortKey  string `form:"sortKey"`
	SortDir  string `form:"sortDir"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// Normalize fills in paging defaults and caps the page size.
func (p *ListParams) Normalize(defaultPageSize, maxPageSize int) {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = defaultPageSize
	}
	if maxPageSize > 0 && p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
}

// ToTabular converts the params into tabular engine parameters.
func (p ListParams) ToTabular() tabular.Params {
	return tabular.Params{
		SearchTerm:    p.Search,
		SortKey:       p.SortKey,
		SortDirection: tabular.SortDirection(p.SortDir),
		Page:          p.Page,
		PageSize:      p.PageSize,
	}
}
