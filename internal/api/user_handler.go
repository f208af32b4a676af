package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sufiansar/GloryShoppingBackend/internal/query"
	"github.com/sufiansar/GloryShoppingBackend/internal/service"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register creates a new account --> POST /users/register
func (h *UserHandler) Register(c echo.Context) error {
	in := service.RegisterInput{}
	if err := c.Bind(&in); err != nil {
		return invalidPayload(c)
	}
	user, err := h.users.Register(c.Request().Context(), in)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusCreated, "user registered", user)
}

// Login issues a bearer token --> POST /users/login
func (h *UserHandler) Login(c echo.Context) error {
	in := service.LoginInput{}
	if err := c.Bind(&in); err != nil {
		return invalidPayload(c)
	}
	token, user, err := h.users.Login(c.Request().Context(), in)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "logged in", map[string]any{"token": token, "user": user})
}

// Logout drops the cached session --> POST /users/logout
func (h *UserHandler) Logout(c echo.Context) error {
	ident := identity(c)
	user, err := h.users.GetByID(c.Request().Context(), ident.UserID)
	if err != nil {
		return Fail(c, err)
	}
	if err := h.users.Logout(c.Request().Context(), user.Email); err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "logged out", nil)
}

// Me returns the caller's profile --> GET /users/me
func (h *UserHandler) Me(c echo.Context) error {
	ident := identity(c)
	user, err := h.users.GetByID(c.Request().Context(), ident.UserID)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "", user)
}

// GetByID retrieves one user --> GET /users/:id
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	user, err := h.users.GetByID(c.Request().Context(), id)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "", user)
}

// List pages through users --> GET /users
func (h *UserHandler) List(c echo.Context) error {
	users, meta, err := h.users.List(c.Request().Context(), query.Params(c.QueryParams()))
	if err != nil {
		return Fail(c, err)
	}
	return OKList(c, "users retrieved", users, meta)
}
