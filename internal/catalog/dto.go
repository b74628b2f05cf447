package catalog

import "github.com/shopspring/decimal"

// envelope carries the paging fields common to every collection response
type envelope struct {
	Total int `json:"total"`
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// PostsResponse is the body of GET /posts
type PostsResponse struct {
	envelope
	Posts []PostDTO `json:"posts"`
}

// ProductsResponse is the body of GET /products
type ProductsResponse struct {
	envelope
	Products []ProductDTO `json:"products"`
}

// PostDTO represents a post as returned by the API
type PostDTO struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Tags      []string `json:"tags,omitempty"`
	Reactions struct {
		Likes    int `json:"likes"`
		Dislikes int `json:"dislikes"`
	} `json:"reactions"`
	Views  int `json:"views,omitempty"`
	UserID int `json:"userId,omitempty"`
}

// ProductDTO represents a product as returned by the API
type ProductDTO struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Brand       string          `json:"brand,omitempty"`
	Price       decimal.Decimal `json:"price"` // kept exact, e.g. 9.99
	Rating      float64         `json:"rating,omitempty"`
	Stock       int             `json:"stock,omitempty"`
	Thumbnail   string          `json:"thumbnail,omitempty"`
}
