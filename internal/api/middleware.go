package api

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/service"
)

// sessionHeader carries the guest cart session id. It is minted on the
// first guest AddToCart and must be echoed back on later requests.
const sessionHeader = "X-Session-Id"

// RequireJWT rejects requests without a valid bearer token.
func RequireJWT(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(jwtConfig(secret))
}

// OptionalJWT parses a bearer token when present but lets anonymous
// requests through, so guests can use carts and checkout.
func OptionalJWT(secret string) echo.MiddlewareFunc {
	cfg := jwtConfig(secret)
	cfg.ContinueOnIgnoredError = true
	cfg.ErrorHandler = func(c echo.Context, err error) error {
		return nil
	}
	return echojwt.WithConfig(cfg)
}

func jwtConfig(secret string) echojwt.Config {
	return echojwt.Config{
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &service.Claims{}
		},
	}
}

// RequireRoles gates a route to the given roles. Must run after
// RequireJWT.
func RequireRoles(roles ...entity.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident := identity(c)
			for _, role := range roles {
				if ident.Role == role {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, Envelope{Success: false, Message: "insufficient permissions"})
		}
	}
}

// identity resolves the request caller: claims from a verified token
// when present, otherwise a guest identified by the session header.
func identity(c echo.Context) entity.Identity {
	if token, ok := c.Get("user").(*jwt.Token); ok {
		if claims, ok := token.Claims.(*service.Claims); ok {
			return entity.Identity{UserID: claims.UserID, Role: claims.Role}
		}
	}
	return entity.Identity{GuestID: c.Request().Header.Get(sessionHeader)}
}
