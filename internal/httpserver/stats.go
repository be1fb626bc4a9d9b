package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MintCofee/tabshare/internal/service"
)

type StatsHandler struct {
	Svc *service.StatsService
}

func (h *StatsHandler) Get(c echo.Context) error {
	stats, err := h.Svc.Collect(c.Request().Context())
	if err != nil {
		return respondErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"stats": stats})
}
