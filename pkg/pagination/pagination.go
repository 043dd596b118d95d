package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 20
	// MaxLimit caps how many rows any paged query can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Meta describes the page returned alongside the rows.
type Meta struct {
	CurrentPage  int   `json:"currentPage"`
	PerPage      int   `json:"perPage"`
	TotalPages   int   `json:"totalPages"`
	TotalRecords int64 `json:"totalRecords"`
}

// Normalize enforces the configured default and maximum limits.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// BuildMeta computes page metadata for a total row count.
func BuildMeta(params Params, total int64) Meta {
	n := params.Normalize()
	pages := int(total) / n.Limit
	if int(total)%n.Limit != 0 {
		pages++
	}
	return Meta{
		CurrentPage:  n.Page,
		PerPage:      n.Limit,
		TotalPages:   pages,
		TotalRecords: total,
	}
}
