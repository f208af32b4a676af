package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sufiansar/GloryShoppingBackend/internal/apperr"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
)

// Envelope is the uniform response shape. Meta is present only on list
// endpoints.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    any         `json:"data,omitempty"`
	Meta    *query.Meta `json:"meta,omitempty"`
}

func OK(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

func OKList(c echo.Context, message string, data any, meta query.Meta) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data, Meta: &meta})
}

// Fail maps the error taxonomy to a status code. Internal errors are
// logged and returned as an opaque message.
func Fail(c echo.Context, err error) error {
	status := apperr.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		message = "internal server error"
	}
	return c.JSON(status, Envelope{Success: false, Message: message})
}

func invalidPayload(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: "invalid request payload"})
}

func invalidID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: "invalid id"})
}
