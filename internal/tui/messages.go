package tui

import (
	"github.com/mmcdole/storefront/internal/domain"
	"github.com/mmcdole/storefront/internal/pager"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ListMountedMsg carries a controller seeded with the host's first page
type ListMountedMsg struct {
	Screen Screen
	Token  uint64 // matches Model.mountToken when still wanted
	List   pagedList
	Err    error
}

// PageFetchedMsg signals that a client-side page fetch finished
type PageFetchedMsg struct {
	Collection domain.Collection
	Request    pager.Request
	Err        error

	page any // domain.Page[T] for the issuing controller
}

// TickMsg drives the loading spinner
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
