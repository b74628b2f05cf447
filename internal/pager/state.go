package pager

// Direction is the pagination intent
type Direction int

const (
	Next Direction = iota
	Previous
)

// String returns the direction label used in logs and metrics
func (d Direction) String() string {
	switch d {
	case Next:
		return "next"
	case Previous:
		return "previous"
	default:
		return "unknown"
	}
}

// Phase is the controller state machine position
type Phase int

const (
	Idle Phase = iota
	Fetching
)

// String returns the phase label
func (p Phase) String() string {
	if p == Fetching {
		return "fetching"
	}
	return "idle"
}

// PageState is the pagination state of one mounted list.
// Offset is always a multiple of PageSize; Items is exactly the page of the
// last successfully completed fetch (or the initial page).
type PageState[T any] struct {
	Offset   int
	PageSize int
	Total    int
	Items    []T
	Loading  bool
}

// CurrentPage returns the 1-based page number of Offset
func (s PageState[T]) CurrentPage() int {
	if s.PageSize <= 0 {
		return 1
	}
	return s.Offset/s.PageSize + 1
}

// HasNext reports whether a page exists after the current one
func (s PageState[T]) HasNext() bool {
	return s.Offset+s.PageSize < s.Total
}

// HasPrevious reports whether a page exists before the current one
func (s PageState[T]) HasPrevious() bool {
	return s.Offset > 0
}

// TotalPages returns ceil(total / pageSize)
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
