package host

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/storefront/internal/domain"
)

// Build fetches the first page of each collection and writes it to the
// snapshot store. It stops at the first failure.
func Build(ctx context.Context, repo domain.CatalogRepository, store domain.SnapshotStore, pageSize int, collections []domain.Collection, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	for _, c := range collections {
		var total int
		switch c {
		case domain.CollectionPosts:
			page, err := repo.GetPosts(ctx, 0, pageSize)
			if err != nil {
				return fmt.Errorf("build %s snapshot: %w", c, err)
			}
			if err := store.SavePosts(page); err != nil {
				return err
			}
			total = page.Total
		case domain.CollectionProducts:
			page, err := repo.GetProducts(ctx, 0, pageSize)
			if err != nil {
				return fmt.Errorf("build %s snapshot: %w", c, err)
			}
			if err := store.SaveProducts(page); err != nil {
				return err
			}
			total = page.Total
		default:
			return fmt.Errorf("%w: %q", domain.ErrUnknownCollection, c)
		}
		logger.Info("snapshot built", "collection", c, "total", total, "pageSize", pageSize)
	}
	return nil
}
