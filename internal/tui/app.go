package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/storefront/internal/host"
	"github.com/mmcdole/storefront/internal/pager"
	"github.com/mmcdole/storefront/internal/tui/components"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

const (
	// Header + footer lines
	ChromeHeight = 4

	tickInterval  = 100 * time.Millisecond
	statusTimeout = 4 * time.Second
)

// Options configures the model
type Options struct {
	Loader      *host.Loader
	Logger      *slog.Logger
	Timeout     time.Duration // per fetch
	GridColumns int
	StartScreen Screen
	HostLabel   string // shown in the footer, e.g. "SSR"
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	loader  *host.Loader
	logger  *slog.Logger
	timeout time.Duration
	keys    KeyMap

	// Navigation
	Screen     Screen
	mountToken uint64
	mounting   bool
	list       pagedList // nil on home or while mounting
	listView   components.ListView
	hostLabel  string

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return Model{
		State:     StateBrowsing,
		loader:    opts.Loader,
		logger:    logger,
		timeout:   timeout,
		keys:      DefaultKeyMap(),
		Screen:    opts.StartScreen,
		mounting:  opts.StartScreen != ScreenHome,
		listView:  components.NewListView(opts.GridColumns),
		hostLabel: opts.HostLabel,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd(tickInterval)}
	if m.Screen != ScreenHome {
		cmds = append(cmds, MountCmd(m.loader, m.Screen, m.mountToken, m.timeout))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.listView.SetSize(m.Width, m.Height-ChromeHeight)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.listView.SetSpinnerFrame(m.SpinnerFrame)
		return m, TickCmd(tickInterval)

	case ListMountedMsg:
		if msg.Token != m.mountToken || msg.Screen != m.Screen {
			// user navigated away before the host answered
			if msg.List != nil {
				msg.List.Close()
			}
			return m, nil
		}
		m.mounting = false
		if msg.Err != nil {
			m.logger.Error("mount failed", "screen", msg.Screen.Title(), "error", msg.Err)
			return m.setStatus(msg.Err.Error(), true)
		}
		m.list = msg.List
		m.listView.ClearFilter()
		m.syncListView()
		return m, nil

	case PageFetchedMsg:
		if m.list == nil || msg.Request.Mount != m.list.MountID() {
			return m, nil
		}
		applied := m.list.Complete(msg)
		m.syncListView()
		if applied && msg.Err != nil {
			return m.setStatus("Could not load page", true)
		}
		return m, nil

	case StatusMsg:
		return m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case ErrMsg:
		m.logger.Error(msg.Context, "error", msg.Err)
		return m.setStatus(msg.Error(), true)
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.State == StateHelp {
		m.State = StateBrowsing
		return m, nil
	}

	// Filter input owns the keyboard while focused
	if m.listView.FilterActive() {
		switch {
		case key.Matches(msg, m.keys.Escape):
			m.listView.ClearFilter()
			return m, nil
		case key.Matches(msg, m.keys.Enter):
			m.listView.AcceptFilter()
			return m, nil
		}
		var cmd tea.Cmd
		m.listView, cmd = m.listView.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.unmount()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, m.keys.Home):
		return m.switchScreen(ScreenHome)
	case key.Matches(msg, m.keys.Products):
		return m.switchScreen(ScreenProducts)
	case key.Matches(msg, m.keys.Posts):
		return m.switchScreen(ScreenPosts)
	case key.Matches(msg, m.keys.NextTab):
		return m.switchScreen(Screens[(int(m.Screen)+1)%len(Screens)])
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchScreen(Screens[(int(m.Screen)+len(Screens)-1)%len(Screens)])
	}

	if m.list == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextPage):
		return m.requestPage(pager.Next)
	case key.Matches(msg, m.keys.PrevPage):
		return m.requestPage(pager.Previous)
	case key.Matches(msg, m.keys.Filter):
		return m, m.listView.StartFilter()
	case key.Matches(msg, m.keys.Escape):
		m.listView.ClearFilter()
	case key.Matches(msg, m.keys.Up):
		m.listView.MoveRow(-1)
	case key.Matches(msg, m.keys.Down):
		m.listView.MoveRow(1)
	case key.Matches(msg, m.keys.Left):
		m.listView.MoveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.listView.MoveCursor(1)
	}
	return m, nil
}

// requestPage starts a page change; the controller decides whether it is allowed
func (m Model) requestPage(dir pager.Direction) (tea.Model, tea.Cmd) {
	cmd := m.list.Request(dir)
	m.syncListView()
	return m, cmd
}

// switchScreen unmounts the current list and mounts the target screen's
func (m Model) switchScreen(target Screen) (tea.Model, tea.Cmd) {
	if target == m.Screen {
		return m, nil
	}
	m.unmount()
	m.Screen = target
	m.mountToken++
	m.listView.ClearFilter()

	if target == ScreenHome {
		m.mounting = false
		return m, nil
	}
	m.mounting = true
	return m, MountCmd(m.loader, target, m.mountToken, m.timeout)
}

func (m *Model) unmount() {
	if m.list != nil {
		m.list.Close()
		m.list = nil
	}
}

func (m *Model) syncListView() {
	if m.list != nil {
		m.listView.SetProps(m.list.Props())
	}
}

func (m Model) setStatus(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return m, ClearStatusCmd(statusTimeout)
}

// ListView returns the list component
func (m Model) ListView() components.ListView {
	return m.listView
}

// Mounted reports whether a list is mounted on the current screen
func (m Model) Mounted() bool {
	return m.list != nil
}
