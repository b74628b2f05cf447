package domain

import "context"

// CatalogRepository provides paginated access to the external collections.
// Implemented by the catalog HTTP client.
type CatalogRepository interface {
	// GetPosts returns the posts batch starting at skip, at most limit long
	GetPosts(ctx context.Context, skip, limit int) (Page[*Post], error)

	// GetProducts returns the products batch starting at skip, at most limit long
	GetProducts(ctx context.Context, skip, limit int) (Page[*Product], error)
}
