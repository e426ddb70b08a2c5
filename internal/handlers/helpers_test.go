package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campushub/backend/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDomainError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{services.ErrNotFound, http.StatusNotFound},
		{gorm.ErrRecordNotFound, http.StatusNotFound},
		{services.ErrForbidden, http.StatusForbidden},
		{services.ErrInvalidArgument, http.StatusBadRequest},
		{services.ErrUnauthenticated, http.StatusUnauthorized},
		{services.ErrConflict, http.StatusConflict},
		{gorm.ErrDuplicatedKey, http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		httpErr, ok := domainError(tc.err).(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, tc.code, httpErr.Code, "error %v", tc.err)
	}

	// Wrapped sentinels map the same way.
	wrapped := domainError(errors.Join(errors.New("context"), services.ErrForbidden))
	httpErr, ok := wrapped.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestParamUint(t *testing.T) {
	e := echo.New()

	newCtx := func(value string) echo.Context {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(value)
		return c
	}

	id, err := paramUint(newCtx("17"), "id")
	require.NoError(t, err)
	assert.Equal(t, uint(17), id)

	for _, bad := range []string{"0", "-3", "abc", ""} {
		_, err := paramUint(newCtx(bad), "id")
		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
	}
}

func TestQueryInt(t *testing.T) {
	e := echo.New()

	newCtx := func(query string) echo.Context {
		return e.NewContext(httptest.NewRequest(http.MethodGet, "/?"+query, nil), httptest.NewRecorder())
	}

	assert.Equal(t, 3, queryInt(newCtx("page=3"), "page", 1))
	assert.Equal(t, 1, queryInt(newCtx(""), "page", 1))
	assert.Equal(t, 1, queryInt(newCtx("page=0"), "page", 1))
	assert.Equal(t, 20, queryInt(newCtx("limit=oops"), "limit", 20))
}
