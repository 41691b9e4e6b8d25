package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	libjwt "stayflow/internal/lib/jwt"
)

const (
	UserIDContextKey = "user_id"
	EmailContextKey  = "user_email"
)

// JWTAuth validates the bearer access token and stores the caller identity
// in the echo context.
func JWTAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization header is missing")
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			meta, err := libjwt.ParseMeta(token, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(UserIDContextKey, meta.UserID)
			c.Set(EmailContextKey, meta.Email)

			return next(c)
		}
	}
}
