package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MintCofee/tabshare/internal/logging"
	"github.com/MintCofee/tabshare/internal/search"
	"github.com/MintCofee/tabshare/internal/util"
)

type SearchHandler struct {
	Svc *search.Service
}

func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q parameter is required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	ctx := c.Request().Context()
	total, tabs, err := h.Svc.Search(ctx, q, from, limit)
	if err != nil {
		logging.FromContext(ctx).Error("search_failed", "query", q, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search unavailable")
	}

	return c.JSON(http.StatusOK, echo.Map{"count": total, "tabs": tabs})
}
