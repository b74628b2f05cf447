package domain

import (
	"fmt"
	"strings"
)

// Collection names an external collection endpoint
type Collection string

const (
	CollectionPosts    Collection = "posts"
	CollectionProducts Collection = "products"
)

// Collections lists every known collection in navigation order
var Collections = []Collection{CollectionProducts, CollectionPosts}

// ParseCollection converts a user-supplied name into a Collection
func ParseCollection(name string) (Collection, error) {
	switch Collection(strings.ToLower(strings.TrimSpace(name))) {
	case CollectionPosts:
		return CollectionPosts, nil
	case CollectionProducts:
		return CollectionProducts, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
}

// DisplayName returns the navigation label
func (c Collection) DisplayName() string {
	switch c {
	case CollectionPosts:
		return "Posts"
	case CollectionProducts:
		return "Products"
	default:
		return string(c)
	}
}

// Heading returns the list heading shown above the card grid
func (c Collection) Heading() string {
	switch c {
	case CollectionPosts:
		return "Latest Blog Posts"
	case CollectionProducts:
		return "Our Amazing Products"
	default:
		return c.DisplayName()
	}
}

// LoadingText returns the placeholder shown while a page is being fetched
func (c Collection) LoadingText() string {
	return fmt.Sprintf("Loading %s...", string(c))
}
