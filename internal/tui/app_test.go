package tui

import (
	"net/http"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/storefront/internal/catalog"
	"github.com/mmcdole/storefront/internal/catalog/catalogtest"
	"github.com/mmcdole/storefront/internal/config"
	"github.com/mmcdole/storefront/internal/host"
	"github.com/mmcdole/storefront/internal/log"
)

func newTestModel(t *testing.T, start Screen) (Model, *catalogtest.Server) {
	t.Helper()
	srv := catalogtest.NewServer(17, 17)
	t.Cleanup(srv.Close)

	client := catalog.NewClient(srv.URL(), 5*time.Second, log.NullLogger())
	loader := host.NewLoader(client, nil, config.HostModeSSR, 8, log.NullLogger())
	m := NewModel(Options{
		Loader:      loader,
		Logger:      log.NullLogger(),
		Timeout:     5 * time.Second,
		GridColumns: 4,
		StartScreen: start,
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, srv
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

// press sends a key and returns the model and the command it produced
func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// mount runs the mount command for the current screen
func mount(t *testing.T, m Model) Model {
	t.Helper()
	msg := MountCmd(m.loader, m.Screen, m.mountToken, m.timeout)()
	mounted, ok := msg.(ListMountedMsg)
	require.True(t, ok)
	require.NoError(t, mounted.Err)
	return update(t, m, mounted)
}

func TestModel_MountsStartScreen(t *testing.T) {
	m, srv := newTestModel(t, ScreenProducts)
	m = mount(t, m)

	require.True(t, m.Mounted())
	props := m.ListView().Props()
	assert.Equal(t, "Our Amazing Products", props.Heading)
	assert.Equal(t, 0, props.Offset)
	assert.Equal(t, 17, props.Total)
	assert.Len(t, props.Items, 8)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, catalogtest.Request{Path: "/products", Skip: 0, Limit: 8}, reqs[0])

	view := m.View()
	assert.Contains(t, view, "Product 1")
	assert.Contains(t, view, "Page 1 of 3")
}

func TestModel_NextPage(t *testing.T) {
	m, srv := newTestModel(t, ScreenPosts)
	m = mount(t, m)

	m, cmd := press(t, m, "n")
	require.NotNil(t, cmd)
	assert.True(t, m.ListView().Props().Loading)
	assert.Contains(t, m.View(), "Loading posts...")

	// a second press while fetching is rejected
	m, again := press(t, m, "n")
	assert.Nil(t, again)

	m = update(t, m, cmd())
	props := m.ListView().Props()
	assert.False(t, props.Loading)
	assert.Equal(t, 8, props.Offset)
	assert.Equal(t, "9", props.Items[0].GetID())
	assert.Contains(t, m.View(), "Page 2 of 3")

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, catalogtest.Request{Path: "/posts", Skip: 8, Limit: 8}, reqs[1])
}

func TestModel_PreviousOnFirstPageIsNoop(t *testing.T) {
	m, srv := newTestModel(t, ScreenPosts)
	m = mount(t, m)

	m, cmd := press(t, m, "p")
	assert.Nil(t, cmd)
	assert.False(t, m.ListView().Props().Loading)
	assert.Equal(t, 1, srv.RequestCount())
}

func TestModel_FetchFailureKeepsPage(t *testing.T) {
	m, srv := newTestModel(t, ScreenProducts)
	m = mount(t, m)

	srv.SetError("/products", http.StatusInternalServerError)
	m, cmd := press(t, m, "n")
	require.NotNil(t, cmd)
	m = update(t, m, cmd())

	props := m.ListView().Props()
	assert.False(t, props.Loading)
	assert.Equal(t, 0, props.Offset)
	assert.Equal(t, "1", props.Items[0].GetID())
	assert.True(t, m.StatusIsErr)
}

func TestModel_LateCompletionAfterSwitchIsDiscarded(t *testing.T) {
	m, _ := newTestModel(t, ScreenProducts)
	m = mount(t, m)

	m, fetch := press(t, m, "n")
	require.NotNil(t, fetch)

	// switch screens while the fetch is in flight
	m, mountCmd := press(t, m, "3")
	require.NotNil(t, mountCmd)
	assert.Equal(t, ScreenPosts, m.Screen)
	assert.False(t, m.Mounted())

	m = update(t, m, fetch())
	assert.False(t, m.Mounted())

	m = update(t, m, mountCmd())
	require.True(t, m.Mounted())
	props := m.ListView().Props()
	assert.Equal(t, "Latest Blog Posts", props.Heading)
	assert.Equal(t, 0, props.Offset)
}

func TestModel_StaleMountIsDropped(t *testing.T) {
	m, _ := newTestModel(t, ScreenHome)

	m, productsMount := press(t, m, "2")
	require.NotNil(t, productsMount)
	m, postsMount := press(t, m, "3")
	require.NotNil(t, postsMount)

	m = update(t, m, productsMount())
	assert.False(t, m.Mounted())

	m = update(t, m, postsMount())
	require.True(t, m.Mounted())
	assert.Equal(t, "Latest Blog Posts", m.ListView().Props().Heading)
}

func TestModel_HomeAndTabs(t *testing.T) {
	m, _ := newTestModel(t, ScreenHome)
	assert.Contains(t, m.View(), "Welcome to My Store")

	m, cmd := press(t, m, "tab")
	assert.Equal(t, ScreenProducts, m.Screen)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Loading products...")

	m, _ = press(t, m, "1")
	assert.Equal(t, ScreenHome, m.Screen)
}

func TestModel_FilterDoesNotFetch(t *testing.T) {
	m, srv := newTestModel(t, ScreenProducts)
	m = mount(t, m)

	m, _ = press(t, m, "/")
	require.True(t, m.ListView().FilterActive())
	m, _ = press(t, m, "n")
	m, _ = press(t, m, "7")

	// "n" went to the filter input, not pagination
	assert.Equal(t, 1, srv.RequestCount())
	assert.Equal(t, "n7", m.ListView().FilterQuery())
	assert.Equal(t, 0, m.ListView().Props().Offset)

	m, _ = press(t, m, "esc")
	assert.False(t, m.ListView().FilterActive())
	assert.Empty(t, m.ListView().FilterQuery())
}

func TestModel_HelpAndQuit(t *testing.T) {
	m, _ := newTestModel(t, ScreenProducts)
	m = mount(t, m)

	m, _ = press(t, m, "?")
	assert.Equal(t, StateHelp, m.State)
	assert.Contains(t, m.View(), "Previous page")
	m, _ = press(t, m, "x")
	assert.Equal(t, StateBrowsing, m.State)

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestParseScreen(t *testing.T) {
	assert.Equal(t, ScreenHome, ParseScreen(""))
	assert.Equal(t, ScreenHome, ParseScreen("home"))
	assert.Equal(t, ScreenPosts, ParseScreen("Posts"))
	assert.Equal(t, ScreenProducts, ParseScreen("products"))
	assert.Equal(t, ScreenHome, ParseScreen("comments"))
}
