package pager

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/storefront/internal/domain"
)

// fakeFetcher records every call and serves integer items skip..skip+limit
type fakeFetcher struct {
	mu    sync.Mutex
	calls []fetchCall
	total int
	err   error
}

type fetchCall struct {
	skip  int
	limit int
}

func (f *fakeFetcher) FetchPage(_ context.Context, skip, limit int) (domain.Page[int], error) {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{skip: skip, limit: limit})
	err := f.err
	f.mu.Unlock()

	if err != nil {
		return domain.Page[int]{}, err
	}
	var items []int
	for i := skip; i < skip+limit && i < f.total; i++ {
		items = append(items, i)
	}
	return domain.Page[int]{Items: items, Total: f.total, Skip: skip, Limit: limit}, nil
}

func (f *fakeFetcher) Calls() []fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fetchCall(nil), f.calls...)
}

func firstPage(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func newTestController(t *testing.T, f Fetcher[int], buf *bytes.Buffer) *Controller[int] {
	t.Helper()
	var logger *slog.Logger
	if buf != nil {
		logger = slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	} else {
		logger = slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	}
	c, err := New[int]("posts", f, 8, logger)
	require.NoError(t, err)
	return c
}

// countLogs returns how many records carry the given message
func countLogs(t *testing.T, buf *bytes.Buffer, msg string) int {
	t.Helper()
	n := 0
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		if rec["msg"] == msg {
			n++
		}
	}
	return n
}

func TestNew_RejectsInvalidPageSize(t *testing.T) {
	for _, size := range []int{0, -8} {
		_, err := New[int]("posts", &fakeFetcher{}, size, nil)
		assert.ErrorIs(t, err, ErrInvalidPageSize)
	}

	_, err := New[int]("posts", nil, 8, nil)
	assert.ErrorIs(t, err, ErrNoFetcher)
}

func TestInitialize(t *testing.T) {
	c := newTestController(t, &fakeFetcher{total: 30}, nil)
	c.Initialize(firstPage(8), 30)

	s := c.State()
	assert.Equal(t, 0, s.Offset)
	assert.Equal(t, 8, s.PageSize)
	assert.Equal(t, 30, s.Total)
	assert.Equal(t, firstPage(8), s.Items)
	assert.False(t, s.Loading)
	assert.Equal(t, Idle, c.Phase())
	assert.Equal(t, 1, c.CurrentPage())
	assert.Equal(t, 4, c.TotalPages())

	// idempotent
	c.Initialize(firstPage(8), 30)
	assert.Equal(t, s, c.State())
}

func TestRequestPage_NextFetchesFollowingBatch(t *testing.T) {
	f := &fakeFetcher{total: 30}
	c := newTestController(t, f, nil)
	c.Initialize(firstPage(8), 30)

	issued := c.RequestPage(context.Background(), Next)
	require.True(t, issued)

	calls := f.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, fetchCall{skip: 8, limit: 8}, calls[0])

	s := c.State()
	assert.Equal(t, 8, s.Offset)
	assert.Equal(t, []int{8, 9, 10, 11, 12, 13, 14, 15}, s.Items)
	assert.False(t, s.Loading)
	assert.Equal(t, 2, c.CurrentPage())
	assert.Equal(t, Idle, c.Phase())
}

func TestRequestPage_PreviousAtStartIsNoop(t *testing.T) {
	f := &fakeFetcher{total: 30}
	c := newTestController(t, f, nil)
	c.Initialize(firstPage(8), 30)
	before := c.State()

	assert.False(t, c.RequestPage(context.Background(), Previous))
	assert.Empty(t, f.Calls())
	assert.Equal(t, before, c.State())
	assert.Equal(t, 1, c.CurrentPage())
}

func TestRequestPage_NextAtLastPageIsNoop(t *testing.T) {
	f := &fakeFetcher{total: 17}
	c := newTestController(t, f, nil)
	c.Initialize(firstPage(8), 17)

	require.True(t, c.RequestPage(context.Background(), Next))
	require.True(t, c.RequestPage(context.Background(), Next))
	require.Equal(t, 16, c.State().Offset)
	require.Len(t, f.Calls(), 2)

	before := c.State()
	assert.False(t, c.RequestPage(context.Background(), Next))
	assert.Len(t, f.Calls(), 2)
	assert.Equal(t, before, c.State())
	assert.Equal(t, 3, c.CurrentPage())
}

func TestRequestPage_TotalSeventeen(t *testing.T) {
	f := &fakeFetcher{total: 17}
	c := newTestController(t, f, nil)
	c.Initialize(firstPage(8), 17)

	assert.Equal(t, 3, c.TotalPages())

	require.True(t, c.RequestPage(context.Background(), Next))
	assert.Equal(t, 2, c.CurrentPage())

	require.True(t, c.RequestPage(context.Background(), Next))
	s := c.State()
	assert.Equal(t, 16, s.Offset)
	assert.Equal(t, []int{16}, s.Items)
	assert.False(t, s.HasNext())
	assert.True(t, s.HasPrevious())

	require.True(t, c.RequestPage(context.Background(), Previous))
	assert.Equal(t, 8, c.State().Offset)
	assert.Equal(t, fetchCall{skip: 8, limit: 8}, f.Calls()[2])
}

func TestRequestPage_EmptyCollection(t *testing.T) {
	f := &fakeFetcher{}
	c := newTestController(t, f, nil)
	c.Initialize(nil, 0)

	assert.Equal(t, 0, c.TotalPages())
	assert.Equal(t, 1, c.CurrentPage())
	assert.False(t, c.RequestPage(context.Background(), Next))
	assert.False(t, c.RequestPage(context.Background(), Previous))
	assert.Empty(t, f.Calls())
}

func TestRequestPage_FailureKeepsPriorPage(t *testing.T) {
	var buf bytes.Buffer
	f := &fakeFetcher{total: 30}
	c := newTestController(t, f, &buf)
	c.Initialize(firstPage(8), 30)

	require.True(t, c.RequestPage(context.Background(), Next))
	atEight := c.State()
	require.Equal(t, 8, atEight.Offset)

	f.mu.Lock()
	f.err = errors.New("connection refused")
	f.mu.Unlock()

	issued := c.RequestPage(context.Background(), Next)
	require.True(t, issued)

	calls := f.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, fetchCall{skip: 16, limit: 8}, calls[1])

	s := c.State()
	assert.Equal(t, 8, s.Offset)
	assert.Equal(t, atEight.Items, s.Items)
	assert.False(t, s.Loading)
	assert.Equal(t, Idle, c.Phase())
	assert.Equal(t, 1, countLogs(t, &buf, "page fetch failed"))
}

func TestFetch_WrapsErrors(t *testing.T) {
	f := &fakeFetcher{total: 30, err: errors.New("boom")}
	c := newTestController(t, f, nil)
	c.Initialize(firstPage(8), 30)

	req, ok := c.Begin(Next)
	require.True(t, ok)

	_, err := c.Fetch(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Contains(t, err.Error(), "boom")

	// already-classified errors are passed through untouched
	wrapped := fmt.Errorf("%w: status 500", domain.ErrFetchFailed)
	f.err = wrapped
	_, err = c.Fetch(context.Background(), req)
	assert.Same(t, wrapped, err)
}

func TestBegin_SetsLoadingAndRejectsWhileFetching(t *testing.T) {
	f := &fakeFetcher{total: 30}
	c := newTestController(t, f, nil)
	c.Initialize(firstPage(8), 30)

	req, ok := c.Begin(Next)
	require.True(t, ok)
	assert.Equal(t, 8, req.Skip)
	assert.Equal(t, 8, req.Limit)
	assert.Equal(t, c.MountID(), req.Mount)
	assert.Equal(t, Fetching, c.Phase())
	assert.True(t, c.State().Loading)
	// offset does not move until completion
	assert.Equal(t, 0, c.State().Offset)

	_, ok = c.Begin(Next)
	assert.False(t, ok)
	_, ok = c.Begin(Previous)
	assert.False(t, ok)

	page, err := c.Fetch(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, c.Complete(req, page, err))
	assert.Equal(t, 8, c.State().Offset)
	assert.Len(t, f.Calls(), 1)
}

func TestBegin_UnknownDirection(t *testing.T) {
	c := newTestController(t, &fakeFetcher{total: 30}, nil)
	c.Initialize(firstPage(8), 30)

	_, ok := c.Begin(Direction(42))
	assert.False(t, ok)
	assert.Equal(t, Idle, c.Phase())
}

func TestComplete_DiscardsAfterClose(t *testing.T) {
	f := &fakeFetcher{total: 30}
	c := newTestController(t, f, nil)
	c.Initialize(firstPage(8), 30)

	req, ok := c.Begin(Next)
	require.True(t, ok)
	page, err := c.Fetch(context.Background(), req)
	require.NoError(t, err)

	c.Close()
	assert.True(t, c.Closed())
	assert.False(t, c.Complete(req, page, nil))

	s := c.State()
	assert.Equal(t, 0, s.Offset)
	assert.Equal(t, firstPage(8), s.Items)

	_, ok = c.Begin(Next)
	assert.False(t, ok)
}

func TestComplete_DiscardsStaleRequest(t *testing.T) {
	f := &fakeFetcher{total: 30}
	c := newTestController(t, f, nil)
	c.Initialize(firstPage(8), 30)

	stale, ok := c.Begin(Next)
	require.True(t, ok)

	// a re-seed supersedes the in-flight request
	c.Initialize(firstPage(8), 30)
	page, _ := c.Fetch(context.Background(), stale)
	assert.False(t, c.Complete(stale, page, nil))
	assert.Equal(t, 0, c.State().Offset)

	// a request from another mount is never applied
	other := newTestController(t, f, nil)
	other.Initialize(firstPage(8), 30)
	foreign, ok := other.Begin(Next)
	require.True(t, ok)

	_, ok = c.Begin(Next)
	require.True(t, ok)
	assert.False(t, c.Complete(foreign, page, nil))
	assert.Equal(t, Fetching, c.Phase())
}

func TestCurrentPage_StableAcrossNoops(t *testing.T) {
	c := newTestController(t, &fakeFetcher{total: 8}, nil)
	c.Initialize(firstPage(8), 8)

	for i := 0; i < 5; i++ {
		c.RequestPage(context.Background(), Next)
		c.RequestPage(context.Background(), Previous)
		assert.Equal(t, 1, c.CurrentPage())
	}
}

func TestState_ReturnsCopy(t *testing.T) {
	c := newTestController(t, &fakeFetcher{total: 8}, nil)
	c.Initialize(firstPage(8), 8)

	s := c.State()
	s.Items[0] = 99
	assert.Equal(t, 0, c.State().Items[0])
}

func TestRequestPage_ConcurrentCallersIssueOneFetchAtATime(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	release := make(chan struct{})

	fetch := FetchFunc[int](func(_ context.Context, skip, limit int) (domain.Page[int], error) {
		n := inFlight.Add(1)
		for {
			m := maxInFlight.Load()
			if n <= m || maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		<-release
		inFlight.Add(-1)
		return domain.Page[int]{Items: firstPage(limit), Total: 80, Skip: skip, Limit: limit}, nil
	})

	c, err := New[int]("posts", fetch, 8, slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil)))
	require.NoError(t, err)
	c.Initialize(firstPage(8), 80)

	const callers = 10
	var issued atomic.Int32
	var wg sync.WaitGroup
	started := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-started
			if c.RequestPage(context.Background(), Next) {
				issued.Add(1)
			}
		}()
	}
	close(started)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), maxInFlight.Load())
	assert.GreaterOrEqual(t, issued.Load(), int32(1))
	s := c.State()
	assert.Equal(t, int(issued.Load())*8, s.Offset)
	assert.Zero(t, s.Offset%s.PageSize)
	assert.Equal(t, Idle, c.Phase())
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 8, 0},
		{1, 8, 1},
		{8, 8, 1},
		{9, 8, 2},
		{17, 8, 3},
		{194, 8, 25},
		{10, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestDirectionAndPhaseString(t *testing.T) {
	assert.Equal(t, "next", Next.String())
	assert.Equal(t, "previous", Previous.String())
	assert.Equal(t, "unknown", Direction(7).String())
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "fetching", Fetching.String())
}
