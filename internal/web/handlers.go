package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mmcdole/storefront/internal/domain"
	"github.com/mmcdole/storefront/internal/listview"
	"github.com/mmcdole/storefront/internal/search"
)

func (s *Server) handleHome(c echo.Context) error {
	return c.Render(http.StatusOK, "home.html", page{
		Title:  "Home",
		Active: "home",
		Mode:   s.modeLabel(),
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePosts(c echo.Context) error {
	return renderList(s, c, domain.CollectionPosts, s.loader.FirstPosts, s.loader.Repository().GetPosts)
}

func (s *Server) handleProducts(c echo.Context) error {
	return renderList(s, c, domain.CollectionProducts, s.loader.FirstProducts, s.loader.Repository().GetProducts)
}

// renderList renders the page at ?skip=. The first page comes from the host
// (live or snapshot), later pages from the catalog.
func renderList[T domain.ListItem](
	s *Server,
	c echo.Context,
	coll domain.Collection,
	first func(context.Context) (domain.Page[T], error),
	fetch func(ctx context.Context, skip, limit int) (domain.Page[T], error),
) error {
	pageSize := s.loader.PageSize()
	skip := parseSkip(c.QueryParam("skip"), pageSize)
	query := c.QueryParam("q")

	ctx, cancel := context.WithTimeout(c.Request().Context(), s.timeout)
	defer cancel()

	var (
		pg  domain.Page[T]
		err error
	)
	if skip == 0 {
		pg, err = first(ctx)
	} else {
		pg, err = fetch(ctx, skip, pageSize)
	}

	data := page{
		Title:  coll.DisplayName(),
		Active: string(coll),
		Mode:   s.modeLabel(),
		Query:  query,
		Props: listview.Props{
			Heading:     coll.Heading(),
			LoadingText: coll.LoadingText(),
			Offset:      skip,
			PageSize:    pageSize,
		},
	}

	if err != nil {
		s.logger.Error("page fetch failed",
			"collection", coll,
			"skip", skip,
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"error", err,
		)
		status := http.StatusBadGateway
		if errors.Is(err, domain.ErrSnapshotMissing) {
			status = http.StatusServiceUnavailable
		}
		data.Error = fmt.Sprintf("Could not load %s.", coll)
		data.Controls = data.Props.Controls()
		data.Cards = data.Props.Cards()
		return c.Render(status, "list.html", data)
	}

	if pg.Total > 0 && skip >= pg.Total {
		last := (pg.Total - 1) / pageSize * pageSize
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/%s?skip=%d", coll, last))
	}

	ranked := search.Rank(query, pg.Items)
	items := make([]domain.ListItem, len(ranked))
	for i, it := range ranked {
		items[i] = it
	}
	data.Props.Items = items
	data.Props.Total = pg.Total
	data.Controls = data.Props.Controls()
	data.Cards = data.Props.Cards()

	return c.Render(http.StatusOK, "list.html", data)
}

// parseSkip reads ?skip= and aligns it down to a page boundary
func parseSkip(raw string, pageSize int) int {
	skip, err := strconv.Atoi(raw)
	if err != nil || skip < 0 || pageSize <= 0 {
		return 0
	}
	return skip / pageSize * pageSize
}

func (s *Server) modeLabel() string {
	return string(s.loader.Mode())
}
