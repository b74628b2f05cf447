package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/storefront/internal/domain"
	"github.com/mmcdole/storefront/internal/host"
	"github.com/mmcdole/storefront/internal/pager"
)

// Command factories for async operations

// MountCmd asks the host for the first page of the screen's collection and
// returns a seeded list
func MountCmd(loader *host.Loader, screen Screen, token uint64, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		msg := ListMountedMsg{Screen: screen, Token: token}
		switch screen.Collection() {
		case domain.CollectionPosts:
			ctrl, err := loader.MountPosts(ctx)
			if err != nil {
				msg.Err = err
				return msg
			}
			msg.List = newPagedList(domain.CollectionPosts, ctrl, timeout)
		case domain.CollectionProducts:
			ctrl, err := loader.MountProducts(ctx)
			if err != nil {
				msg.Err = err
				return msg
			}
			msg.List = newPagedList(domain.CollectionProducts, ctrl, timeout)
		}
		return msg
	}
}

// FetchPageCmd performs the fetch for a request handed out by Begin
func FetchPageCmd[T any](collection domain.Collection, ctrl *pager.Controller[T], req pager.Request, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		page, err := ctrl.Fetch(ctx, req)
		return PageFetchedMsg{
			Collection: collection,
			Request:    req,
			Err:        err,
			page:       page,
		}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
