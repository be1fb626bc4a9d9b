package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	mwauth "github.com/MintCofee/tabshare/internal/middleware/auth"
	"github.com/MintCofee/tabshare/internal/repo"
	"github.com/MintCofee/tabshare/internal/service"
)

type UserHandler struct {
	Users *repo.UserRepo
	Tabs  *service.TabService
}

func (h *UserHandler) Me(c echo.Context) error {
	actor, _ := mwauth.IdentityFrom(c)

	user, err := h.Users.ByID(c.Request().Context(), actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "record not found")
		}
		return respondErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

func (h *UserHandler) MyFavorites(c echo.Context) error {
	actor, _ := mwauth.IdentityFrom(c)

	tabs, err := h.Tabs.Favorites(c.Request().Context(), actor)
	if err != nil {
		return respondErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"favorites": tabs})
}
