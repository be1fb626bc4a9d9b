package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MintCofee/tabshare/internal/service"
	"github.com/MintCofee/tabshare/internal/transport"
)

type AuthHandler struct {
	Svc *service.AuthService
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, token, err := h.Svc.Register(c.Request().Context(), req)
	if err != nil {
		return respondErr(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"user": user, "token": token})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	user, token, err := h.Svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user, "token": token})
}

// Logout is client-side only: tokens are bearer credentials with no
// server-side revocation, so the server just acknowledges.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}
