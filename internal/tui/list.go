package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/storefront/internal/domain"
	"github.com/mmcdole/storefront/internal/listview"
	"github.com/mmcdole/storefront/internal/pager"
)

// pagedList hides the item type of a mounted controller from the model
type pagedList interface {
	Collection() domain.Collection
	MountID() string
	Props() listview.Props

	// Request begins a page change and returns the fetch command, or nil
	// when the controller rejects it
	Request(dir pager.Direction) tea.Cmd

	// Complete applies a fetch result; false when it was discarded
	Complete(msg PageFetchedMsg) bool

	Close()
}

type controllerList[T domain.ListItem] struct {
	collection domain.Collection
	ctrl       *pager.Controller[T]
	timeout    time.Duration
}

func newPagedList[T domain.ListItem](c domain.Collection, ctrl *pager.Controller[T], timeout time.Duration) pagedList {
	return &controllerList[T]{collection: c, ctrl: ctrl, timeout: timeout}
}

func (l *controllerList[T]) Collection() domain.Collection { return l.collection }
func (l *controllerList[T]) MountID() string { return l.ctrl.MountID() }
func (l *controllerList[T]) Close() { l.ctrl.Close() }

func (l *controllerList[T]) Props() listview.Props {
	return listview.FromState(l.collection, l.ctrl.State())
}

func (l *controllerList[T]) Request(dir pager.Direction) tea.Cmd {
	req, ok := l.ctrl.Begin(dir)
	if !ok {
		return nil
	}
	return FetchPageCmd(l.collection, l.ctrl, req, l.timeout)
}

func (l *controllerList[T]) Complete(msg PageFetchedMsg) bool {
	page, _ := msg.page.(domain.Page[T])
	return l.ctrl.Complete(msg.Request, page, msg.Err)
}
