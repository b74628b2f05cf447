package catalog

import (
	"fmt"

	"github.com/mmcdole/storefront/internal/domain"
)

// FetchError describes a failed collection request. It matches
// domain.ErrFetchFailed under errors.Is and unwraps to the cause.
type FetchError struct {
	Collection domain.Collection
	StatusCode int // 0 when no response was received
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.Collection, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.Collection, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is domain.ErrFetchFailed.
func (e *FetchError) Is(target error) bool {
	return target == domain.ErrFetchFailed
}
