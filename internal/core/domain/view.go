package domain

// Paging defaults shared by every ledger view.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ViewState is the per-ledger paging state the UI sends with each request.
type ViewState struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Normalize fills defaults and clamps the page size.
func (v ViewState) Normalize() ViewState {
	if v.PageSize <= 0 {
		v.PageSize = DefaultPageSize
	}
	if v.PageSize > MaxPageSize {
		v.PageSize = MaxPageSize
	}
	if v.Page < 1 {
		v.Page = 1
	}
	return v
}

// WithPage returns a copy pointing at another page.
func (v ViewState) WithPage(page int) ViewState {
	v.Page = page
	return v
}
