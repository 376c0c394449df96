package web

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"taskkeeper/internal/server/auth"
	"taskkeeper/internal/server/models"
)

const claimsContextKey = "claims"

// requireAccessToken verifies the bearer token and stores its claims in the
// request context. Requests without a valid token never reach the handler.
func (s *Server) requireAccessToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		if token == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing access token"})
		}

		claims, err := s.issuer.Verify(token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid or expired token"})
		}

		c.Set(claimsContextKey, claims)
		return next(c)
	}
}

// requireRole gates a route group to the listed roles. Runs after
// requireAccessToken; a wrong role is a 403, unlike ownership misses
// which stay 404.
func requireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := claimsFrom(c)
			if claims == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing access token"})
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, echo.Map{"message": "access forbidden"})
		}
	}
}

func claimsFrom(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsContextKey).(*auth.Claims)
	return claims
}

func isAdmin(claims *auth.Claims) bool {
	return claims != nil && claims.Role == models.RoleAdmin
}
