// Package host obtains the first page of a collection and mounts the list
// controller seeded with it. In ssr mode the first page is fetched live; in
// ssg mode it is read from the snapshot written by Build.
package host

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/storefront/internal/config"
	"github.com/mmcdole/storefront/internal/domain"
	"github.com/mmcdole/storefront/internal/pager"
)

// Loader produces first pages and mounted controllers
type Loader struct {
	repo     domain.CatalogRepository
	store    domain.SnapshotStore
	mode     config.HostMode
	pageSize int
	logger   *slog.Logger
}

// NewLoader creates a host loader. store may be nil in ssr mode.
func NewLoader(repo domain.CatalogRepository, store domain.SnapshotStore, mode config.HostMode, pageSize int, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		repo:     repo,
		store:    store,
		mode:     mode,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Mode returns the host mode
func (l *Loader) Mode() config.HostMode {
	return l.mode
}

// PageSize returns the configured batch size
func (l *Loader) PageSize() int {
	return l.pageSize
}

// Repository returns the catalog used for client-side fetches
func (l *Loader) Repository() domain.CatalogRepository {
	return l.repo
}

// FirstPosts returns the first page of posts and its total
func (l *Loader) FirstPosts(ctx context.Context) (domain.Page[*domain.Post], error) {
	if l.mode == config.HostModeSSG {
		if l.store == nil {
			return domain.Page[*domain.Post]{}, fmt.Errorf("%w: %s (no snapshot store)", domain.ErrSnapshotMissing, domain.CollectionPosts)
		}
		return fromSnapshot(l, domain.CollectionPosts, l.store.GetPosts)
	}
	page, err := l.repo.GetPosts(ctx, 0, l.pageSize)
	if err != nil {
		return page, fmt.Errorf("load first page of %s: %w", domain.CollectionPosts, err)
	}
	return page, nil
}

// FirstProducts returns the first page of products and its total
func (l *Loader) FirstProducts(ctx context.Context) (domain.Page[*domain.Product], error) {
	if l.mode == config.HostModeSSG {
		if l.store == nil {
			return domain.Page[*domain.Product]{}, fmt.Errorf("%w: %s (no snapshot store)", domain.ErrSnapshotMissing, domain.CollectionProducts)
		}
		return fromSnapshot(l, domain.CollectionProducts, l.store.GetProducts)
	}
	page, err := l.repo.GetProducts(ctx, 0, l.pageSize)
	if err != nil {
		return page, fmt.Errorf("load first page of %s: %w", domain.CollectionProducts, err)
	}
	return page, nil
}

func fromSnapshot[T any](l *Loader, c domain.Collection, get func() (domain.Page[T], time.Time, bool)) (domain.Page[T], error) {
	page, builtAt, ok := get()
	if !ok {
		return domain.Page[T]{}, fmt.Errorf("%w: %s", domain.ErrSnapshotMissing, c)
	}
	if page.Limit != l.pageSize {
		return domain.Page[T]{}, fmt.Errorf("%w: %s was built with page size %d, want %d",
			domain.ErrSnapshotMissing, c, page.Limit, l.pageSize)
	}
	l.logger.Debug("serving snapshot", "collection", c, "builtAt", builtAt, "total", page.Total)
	return page, nil
}

// MountPosts loads the first page of posts and returns a controller seeded
// with it. Later pages are fetched from the catalog.
func (l *Loader) MountPosts(ctx context.Context) (*pager.Controller[*domain.Post], error) {
	first, err := l.FirstPosts(ctx)
	if err != nil {
		return nil, err
	}
	return mount(domain.CollectionPosts, first, pager.FetchFunc[*domain.Post](l.repo.GetPosts), l.pageSize, l.logger)
}

// MountProducts loads the first page of products and returns a controller
// seeded with it.
func (l *Loader) MountProducts(ctx context.Context) (*pager.Controller[*domain.Product], error) {
	first, err := l.FirstProducts(ctx)
	if err != nil {
		return nil, err
	}
	return mount(domain.CollectionProducts, first, pager.FetchFunc[*domain.Product](l.repo.GetProducts), l.pageSize, l.logger)
}

func mount[T any](c domain.Collection, first domain.Page[T], fetch pager.Fetcher[T], pageSize int, logger *slog.Logger) (*pager.Controller[T], error) {
	ctrl, err := pager.New[T](string(c), fetch, pageSize, logger)
	if err != nil {
		return nil, err
	}
	ctrl.Initialize(first.Items, first.Total)
	return ctrl, nil
}
