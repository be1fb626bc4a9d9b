package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MintCofee/tabshare/internal/service"
)

// ErrorHandler renders every error as a JSON envelope: {"errors": [...]} for
// validation failures, {"error": ...} for everything else, unmatched routes
// included.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var ve *service.ValidationError
	if errors.As(err, &ve) {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"errors": ve.Messages})
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, echo.Map{"error": msg})
}

// respondErr maps service errors onto HTTP statuses. Validation errors pass
// through untouched so ErrorHandler can list every violation.
func respondErr(err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return err
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "record not found")
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
