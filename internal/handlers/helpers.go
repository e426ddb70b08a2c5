package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/campushub/backend/internal/middleware"
	"github.com/campushub/backend/internal/services"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// domainError maps a service-layer error onto the HTTP taxonomy.
func domainError(err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	case errors.Is(err, services.ErrInvalidArgument):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid argument")
	case errors.Is(err, services.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated")
	case errors.Is(err, services.ErrConflict), errors.Is(err, gorm.ErrDuplicatedKey):
		return echo.NewHTTPError(http.StatusConflict, "Conflict")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// currentUserID pulls the authenticated user out of the request context.
func currentUserID(c echo.Context) (uint, error) {
	id := middleware.UserIDFromContext(c)
	if id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return id, nil
}

// paramUint parses a numeric path parameter.
func paramUint(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Not found")
	}
	return uint(v), nil
}

// queryInt parses an integer query parameter with a fallback.
func queryInt(c echo.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
