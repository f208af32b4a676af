package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sufiansar/GloryShoppingBackend/internal/apperr"
	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/service"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestIdentityFromClaims(t *testing.T) {
	c, _ := newTestContext(t)
	c.Set("user", &jwt.Token{Claims: &service.Claims{UserID: 7, Role: entity.RoleAdmin}})

	ident := identity(c)
	assert.Equal(t, int64(7), ident.UserID)
	assert.True(t, ident.IsAdmin())
	assert.False(t, ident.IsGuest())
}

func TestIdentityGuestFromHeader(t *testing.T) {
	c, _ := newTestContext(t)
	c.Request().Header.Set(sessionHeader, "guest-1")

	ident := identity(c)
	assert.True(t, ident.IsGuest())
	assert.Equal(t, "guest-1", ident.GuestID)
}

func TestRequireRoles(t *testing.T) {
	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	mw := RequireRoles(entity.RoleAdmin, entity.RoleSuperAdmin)

	c, rec := newTestContext(t)
	c.Set("user", &jwt.Token{Claims: &service.Claims{UserID: 1, Role: entity.RoleAdmin}})
	require.NoError(t, mw(next)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newTestContext(t)
	c.Set("user", &jwt.Token{Claims: &service.Claims{UserID: 2, Role: entity.RoleUser}})
	require.NoError(t, mw(next)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestFailMapsErrorTaxonomy(t *testing.T) {
	c, rec := newTestContext(t)
	require.NoError(t, Fail(c, apperr.NotFound("product %d not found", 9)))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "product 9 not found", env.Message)
}

func TestFailHidesInternalDetail(t *testing.T) {
	c, rec := newTestContext(t)
	require.NoError(t, Fail(c, errors.New("dial tcp: connection refused")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "internal server error", env.Message)
}
