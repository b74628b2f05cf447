package domain

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Reactions holds the engagement counters of a post
type Reactions struct {
	Likes    int
	Dislikes int
}

// Post represents a blog post from the posts collection
type Post struct {
	ID        int
	Title     string
	Body      string
	Tags      []string
	Reactions Reactions
	Views     int
	UserID    int
}

// Product represents a catalog entry from the products collection
type Product struct {
	ID          int
	Title       string
	Description string
	Category    string
	Brand       string
	Price       decimal.Decimal
	Rating      float64
	Stock       int
	Thumbnail   string
}

// === ListItem implementation for *Post ===

func (p *Post) GetID() string { return strconv.Itoa(p.ID) }
func (p *Post) GetTitle() string { return p.Title }
func (p *Post) GetSummary() string { return p.Body }
func (p *Post) GetThumbnail() string { return "" }

// GetCounters returns the likes/dislikes line shown under a post card
func (p *Post) GetCounters() []Counter {
	return []Counter{
		{Label: "Likes", Value: p.Reactions.Likes},
		{Label: "Dislikes", Value: p.Reactions.Dislikes},
	}
}

// === ListItem implementation for *Product ===

func (p *Product) GetID() string { return strconv.Itoa(p.ID) }
func (p *Product) GetTitle() string { return p.Title }
func (p *Product) GetThumbnail() string { return p.Thumbnail }

// GetSummary returns the price line of the product card
func (p *Product) GetSummary() string {
	return FormatPrice(p.Price)
}

// GetCounters returns nothing; product cards carry no engagement counters
func (p *Product) GetCounters() []Counter {
	return nil
}

// FormatPrice renders a price as received, prefixed with a dollar sign
func FormatPrice(price decimal.Decimal) string {
	return fmt.Sprintf("$%s", price.String())
}
