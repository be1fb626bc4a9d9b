package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	mwauth "github.com/MintCofee/tabshare/internal/middleware/auth"
	"github.com/MintCofee/tabshare/internal/repo"
	"github.com/MintCofee/tabshare/internal/service"
	"github.com/MintCofee/tabshare/internal/transport"
	"github.com/MintCofee/tabshare/internal/util"
)

type TabHandler struct {
	Svc *service.TabService
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "record not found")
	}
	return uint(id), nil
}

func (h *TabHandler) List(c echo.Context) error {
	filter := repo.TabFilter{
		Search:     c.QueryParam("search"),
		Genre:      c.QueryParam("genre"),
		Difficulty: c.QueryParam("difficulty"),
		Artist:     c.QueryParam("artist"),
	}
	sort := repo.TabSort(c.QueryParam("sortBy"))

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, tabs, err := h.Svc.List(c.Request().Context(), filter, sort, offset, limit)
	if err != nil {
		return respondErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"count": total, "tabs": tabs})
}

func (h *TabHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	tab, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"tab": tab})
}

func (h *TabHandler) Create(c echo.Context) error {
	actor, _ := mwauth.IdentityFrom(c)

	var req transport.CreateTabRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	tab, err := h.Svc.Create(c.Request().Context(), actor, req)
	if err != nil {
		return respondErr(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"tab": tab})
}

func (h *TabHandler) Update(c echo.Context) error {
	actor, _ := mwauth.IdentityFrom(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req transport.PatchTabRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	tab, err := h.Svc.Update(c.Request().Context(), actor, id, req)
	if err != nil {
		return respondErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"tab": tab})
}

func (h *TabHandler) Delete(c echo.Context) error {
	actor, _ := mwauth.IdentityFrom(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	tab, err := h.Svc.Delete(c.Request().Context(), actor, id)
	if err != nil {
		return respondErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"tab": tab})
}

func (h *TabHandler) Like(c echo.Context) error {
	actor, _ := mwauth.IdentityFrom(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	likes, err := h.Svc.Like(c.Request().Context(), actor, id)
	if err != nil {
		return respondErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"likes": likes})
}

func (h *TabHandler) Favorite(c echo.Context) error {
	actor, _ := mwauth.IdentityFrom(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	favorites, err := h.Svc.Favorite(c.Request().Context(), actor, id)
	if err != nil {
		return respondErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"favorites": favorites})
}
