// Package pager implements the list controller shared by every paginated
// collection screen.
//
// A Controller owns one PageState per mount. It is seeded once from the
// host's first page (Initialize) and moves one page at a time in response
// to Next/Previous intent. Each move is a two-phase exchange:
//
//	req, ok := ctrl.Begin(pager.Next) // Idle -> Fetching, loading=true
//	page, err := ctrl.Fetch(ctx, req) // may run on another goroutine
//	ctrl.Complete(req, page, err)     // Fetching -> Idle
//
// RequestPage performs all three steps synchronously. Requests that violate
// a boundary, arrive while a fetch is in flight, or target a closed
// controller are no-ops. A failed fetch is logged to the injected logger
// and leaves offset and items untouched; completions for a closed
// controller or a superseded request are discarded.
package pager
