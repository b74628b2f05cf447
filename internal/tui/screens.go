package tui

import "github.com/mmcdole/storefront/internal/domain"

// Screen is a header navigation target
type Screen int

const (
	ScreenHome Screen = iota
	ScreenProducts
	ScreenPosts
)

// Screens lists the header tabs in order
var Screens = []Screen{ScreenHome, ScreenProducts, ScreenPosts}

// Collection returns the collection listed on the screen, empty for home
func (s Screen) Collection() domain.Collection {
	switch s {
	case ScreenProducts:
		return domain.CollectionProducts
	case ScreenPosts:
		return domain.CollectionPosts
	default:
		return ""
	}
}

// Title returns the tab label
func (s Screen) Title() string {
	if s == ScreenHome {
		return "Home"
	}
	return s.Collection().DisplayName()
}

// ParseScreen maps a config value such as "posts" to a screen
func ParseScreen(name string) Screen {
	if name == "" || name == "home" {
		return ScreenHome
	}
	c, err := domain.ParseCollection(name)
	if err != nil {
		return ScreenHome
	}
	if c == domain.CollectionPosts {
		return ScreenPosts
	}
	return ScreenProducts
}
