package domain

import "time"

// SnapshotStore persists statically generated first pages (the SSG build
// output). Paginated results are never written here.
type SnapshotStore interface {
	GetPosts() (Page[*Post], time.Time, bool)
	SavePosts(page Page[*Post]) error

	GetProducts() (Page[*Product], time.Time, bool)
	SaveProducts(page Page[*Product]) error

	Collections() []Collection
	Clear() error

	Close() error
}
