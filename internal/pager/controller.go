package pager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/mmcdole/storefront/internal/domain"
)

var (
	// ErrInvalidPageSize is returned by New for a page size <= 0
	ErrInvalidPageSize = errors.New("page size must be positive")

	// ErrNoFetcher is returned by New when no fetcher is supplied
	ErrNoFetcher = errors.New("fetcher is required")
)

// Fetcher obtains one batch of a collection
type Fetcher[T any] interface {
	FetchPage(ctx context.Context, skip, limit int) (domain.Page[T], error)
}

// FetchFunc adapts a plain function (e.g. catalog.Client.GetPosts) to Fetcher
type FetchFunc[T any] func(ctx context.Context, skip, limit int) (domain.Page[T], error)

// FetchPage calls f
func (f FetchFunc[T]) FetchPage(ctx context.Context, skip, limit int) (domain.Page[T], error) {
	return f(ctx, skip, limit)
}

// Request describes one in-flight page fetch. It is handed out by Begin and
// must be passed back to Complete.
type Request struct {
	Mount     string
	Seq       uint64
	Direction Direction
	Skip      int
	Limit     int
}

// Controller mediates between pagination intent and the collection
// endpoint for a single mounted list. Safe for concurrent use.
type Controller[T any] struct {
	collection string
	fetcher    Fetcher[T]
	logger     *slog.Logger
	mountID    string

	mu         sync.Mutex
	state      PageState[T]
	phase      Phase
	totalPages int
	seq        uint64
	pending    Request
	closed     bool
}

// New creates a controller for one mount. collection labels logs and metrics.
func New[T any](collection string, fetcher Fetcher[T], pageSize int, logger *slog.Logger) (*Controller[T], error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, pageSize)
	}
	if fetcher == nil {
		return nil, ErrNoFetcher
	}
	if logger == nil {
		logger = slog.Default()
	}

	mountID := uuid.NewString()
	return &Controller[T]{
		collection: collection,
		fetcher:    fetcher,
		logger:     logger.With("collection", collection, "mount", mountID),
		mountID:    mountID,
		state:      PageState[T]{PageSize: pageSize},
	}, nil
}

// Initialize seeds the state from the host's first page: offset 0, not
// loading. Any in-flight request is superseded.
func (c *Controller[T]) Initialize(items []T, total int) {
	if total < 0 {
		total = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = PageState[T]{
		Offset:   0,
		PageSize: c.state.PageSize,
		Total:    total,
		Items:    items,
		Loading:  false,
	}
	c.totalPages = TotalPages(total, c.state.PageSize)
	c.phase = Idle
	c.seq++
	c.pending = Request{}
}

// Begin validates a pagination request and, if it is allowed, moves the
// controller to Fetching. ok is false (and nothing changes) when the
// boundary forbids the move, a fetch is already in flight, or the
// controller is closed.
func (c *Controller[T]) Begin(dir Direction) (req Request, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.phase == Fetching {
		pageRequests.WithLabelValues(c.collection, dir.String(), outcomeRejected).Inc()
		return Request{}, false
	}

	var newOffset int
	switch dir {
	case Next:
		if !c.state.HasNext() {
			pageRequests.WithLabelValues(c.collection, dir.String(), outcomeRejected).Inc()
			return Request{}, false
		}
		newOffset = c.state.Offset + c.state.PageSize
	case Previous:
		if !c.state.HasPrevious() {
			pageRequests.WithLabelValues(c.collection, dir.String(), outcomeRejected).Inc()
			return Request{}, false
		}
		newOffset = c.state.Offset - c.state.PageSize
	default:
		pageRequests.WithLabelValues(c.collection, dir.String(), outcomeRejected).Inc()
		return Request{}, false
	}

	c.seq++
	req = Request{
		Mount:     c.mountID,
		Seq:       c.seq,
		Direction: dir,
		Skip:      newOffset,
		Limit:     c.state.PageSize,
	}
	c.pending = req
	c.phase = Fetching
	c.state.Loading = true

	c.logger.Debug("page fetch started", "direction", dir.String(), "skip", req.Skip, "limit", req.Limit)
	return req, true
}

// Fetch performs the fetch described by req. Every error it returns
// matches domain.ErrFetchFailed.
func (c *Controller[T]) Fetch(ctx context.Context, req Request) (domain.Page[T], error) {
	page, err := c.fetcher.FetchPage(ctx, req.Skip, req.Limit)
	if err != nil && !errors.Is(err, domain.ErrFetchFailed) {
		err = fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}
	return page, err
}

// Complete finishes the fetch started by Begin. On success the items and
// offset are replaced together; on failure the error is logged and the
// previous page is kept. Either way the controller returns to Idle.
// Completions for a closed controller, another mount, or a superseded
// request are discarded and Complete returns false.
func (c *Controller[T]) Complete(req Request, page domain.Page[T], err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || req.Mount != c.mountID || c.phase != Fetching || req.Seq != c.pending.Seq {
		pageRequests.WithLabelValues(c.collection, req.Direction.String(), outcomeDiscarded).Inc()
		c.logger.Debug("discarding stale page result", "seq", req.Seq, "closed", c.closed)
		return false
	}

	c.phase = Idle
	c.pending = Request{}
	c.state.Loading = false

	if err != nil {
		pageRequests.WithLabelValues(c.collection, req.Direction.String(), outcomeFailed).Inc()
		c.logger.Error("page fetch failed",
			"direction", req.Direction.String(),
			"skip", req.Skip,
			"limit", req.Limit,
			"error", err,
		)
		return true
	}

	c.state.Items = page.Items
	c.state.Offset = req.Skip
	pageRequests.WithLabelValues(c.collection, req.Direction.String(), outcomeFetched).Inc()
	return true
}

// RequestPage runs Begin, Fetch and Complete synchronously. It reports
// whether a fetch was issued.
func (c *Controller[T]) RequestPage(ctx context.Context, dir Direction) bool {
	req, ok := c.Begin(dir)
	if !ok {
		return false
	}
	page, err := c.Fetch(ctx, req)
	c.Complete(req, page, err)
	return true
}

// Close unmounts the controller. Later requests are rejected and late
// completions discarded.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.phase = Idle
	c.state.Loading = false
}

// State returns a snapshot of the current page state
func (c *Controller[T]) State() PageState[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	if c.state.Items != nil {
		s.Items = make([]T, len(c.state.Items))
		copy(s.Items, c.state.Items)
	}
	return s
}

// Phase returns the state machine position
func (c *Controller[T]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// CurrentPage returns floor(offset / pageSize) + 1
func (c *Controller[T]) CurrentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.CurrentPage()
}

// TotalPages returns ceil(total / pageSize) as computed at Initialize
func (c *Controller[T]) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPages
}

// MountID identifies this mount in logs and requests
func (c *Controller[T]) MountID() string {
	return c.mountID
}

// Collection returns the collection label
func (c *Controller[T]) Collection() string {
	return c.collection
}

// Closed reports whether the controller has been unmounted
func (c *Controller[T]) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
