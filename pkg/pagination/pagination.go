package pagination

const (
	// DefaultPerPage is the standard page size when itemsPerPage is not provided.
	DefaultPerPage = 20
	// MaxPerPage caps how many rows any page can request.
	MaxPerPage = 100
)

// Params holds page/offset pagination inputs from controllers or services.
type Params struct {
	Page    int
	PerPage int
}

// Meta describes the page that was returned alongside the full result size.
type Meta struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	From        *int  `json:"from"`
	To          *int  `json:"to"`
}

// NormalizePerPage enforces the configured default and maximum page sizes.
func NormalizePerPage(perPage int) int {
	if perPage <= 0 {
		return DefaultPerPage
	}
	if perPage > MaxPerPage {
		return MaxPerPage
	}
	return perPage
}

// Normalize returns a copy with page >= 1 and a bounded page size.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	p.PerPage = NormalizePerPage(p.PerPage)
	return p
}

// Offset is the number of rows to skip for the normalized page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PerPage
}

// NewMeta builds the metadata for a page holding count rows out of total.
func NewMeta(p Params, total int64, count int) Meta {
	n := p.Normalize()
	lastPage := 1
	if total > 0 {
		lastPage = int((total + int64(n.PerPage) - 1) / int64(n.PerPage))
	}

	meta := Meta{
		Total:       total,
		PerPage:     n.PerPage,
		CurrentPage: n.Page,
		LastPage:    lastPage,
	}
	if count > 0 {
		from := n.Offset() + 1
		to := n.Offset() + count
		meta.From = &from
		meta.To = &to
	}
	return meta
}
