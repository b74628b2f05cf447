package catalog

import "github.com/mmcdole/storefront/internal/domain"

// MapPosts converts API posts to domain posts
func MapPosts(dtos []PostDTO) []*domain.Post {
	posts := make([]*domain.Post, 0, len(dtos))
	for _, d := range dtos {
		posts = append(posts, &domain.Post{
			ID:    d.ID,
			Title: d.Title,
			Body:  d.Body,
			Tags:  d.Tags,
			Reactions: domain.Reactions{
				Likes:    d.Reactions.Likes,
				Dislikes: d.Reactions.Dislikes,
			},
			Views:  d.Views,
			UserID: d.UserID,
		})
	}
	return posts
}

// MapProducts converts API products to domain products
func MapProducts(dtos []ProductDTO) []*domain.Product {
	products := make([]*domain.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, &domain.Product{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			Category:    d.Category,
			Brand:       d.Brand,
			Price:       d.Price,
			Rating:      d.Rating,
			Stock:       d.Stock,
			Thumbnail:   d.Thumbnail,
		})
	}
	return products
}
