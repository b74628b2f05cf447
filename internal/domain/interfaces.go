package domain

// ListItem is the polymorphic interface for records rendered as cards.
// *Post and *Product implement it directly; fields are passed through as
// received from the collection endpoint.
type ListItem interface {
	// GetID returns the stable identifier of the record
	GetID() string

	// GetTitle returns the display title
	GetTitle() string

	// GetSummary returns the secondary line (post body or product price)
	GetSummary() string

	// GetThumbnail returns an image URL, empty when the record has none
	GetThumbnail() string

	// GetCounters returns engagement counters (empty for products)
	GetCounters() []Counter
}

// Counter is a labelled engagement number such as "Likes: 12"
type Counter struct {
	Label string
	Value int
}
