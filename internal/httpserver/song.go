package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/MintCofee/tabshare/internal/repo"
	"github.com/MintCofee/tabshare/internal/service"
	"github.com/MintCofee/tabshare/internal/transport"
	"github.com/MintCofee/tabshare/internal/util"
)

type SongHandler struct {
	Svc *service.SongService
}

func (h *SongHandler) List(c echo.Context) error {
	filter := repo.SongFilter{
		Artist: c.QueryParam("artist"),
		Album:  c.QueryParam("album"),
	}
	if y := c.QueryParam("year"); y != "" {
		if year, err := strconv.Atoi(y); err == nil {
			filter.Year = &year
		}
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, songs, err := h.Svc.List(c.Request().Context(), filter, offset, limit)
	if err != nil {
		return respondErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"count": total, "songs": songs})
}

func (h *SongHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	song, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"song": song})
}

func (h *SongHandler) Create(c echo.Context) error {
	var req transport.CreateSongRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	song, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return respondErr(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"song": song})
}

func (h *SongHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req transport.PatchSongRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	song, err := h.Svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return respondErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"song": song})
}

func (h *SongHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	song, err := h.Svc.Delete(c.Request().Context(), id)
	if err != nil {
		return respondErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"song": song})
}
