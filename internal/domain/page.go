package domain

// Page is one batch of a collection together with the collection total
type Page[T any] struct {
	Items []T
	Total int
	Skip  int
	Limit int
}
