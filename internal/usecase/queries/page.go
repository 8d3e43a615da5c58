package queries

const (
	DefaultPageSize = 6
	MaxPageSize     = 100
)

// Page is 1-based page-number pagination.
type Page struct {
	Number int
	Size   int
}

// NormalizePage clamps out-of-range values instead of rejecting them.
func NormalizePage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Limit() int {
	return p.Size
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}
