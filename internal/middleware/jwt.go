package middleware // package middleware contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/academic-records/internal/utils"
)

// claimsKey is the echo context key under which JWTAuth stores the
// decoded token claims for the lifetime of one request.
const claimsKey = "claims"

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the decoded claims into the request context. The
// provided secret must match the one used when issuing tokens. This is
// the first gate of the authorization chain; RequireRole and
// RequirePermission assume it already ran. A missing header, a header
// without a token segment and a token that fails verification all
// short-circuit with 401; the body never says which check failed.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if auth == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"exito":   false,
					"mensaje": "No autorizado",
					"errores": []string{"Token no proporcionado"},
				})
			}
			// The header must be exactly "Bearer <token>".
			raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if !strings.HasPrefix(auth, "Bearer ") || raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"exito":   false,
					"mensaje": "No autorizado",
					"errores": []string{"Formato de token inválido"},
				})
			}

			claims := utils.ParseToken(secret, raw)
			if claims == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"exito":   false,
					"mensaje": "No autorizado",
					"errores": []string{"Token inválido o expirado"},
				})
			}

			// Make the identity available to downstream gates and
			// handlers for the duration of this request only.
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// CurrentClaims returns the claims stored by JWTAuth, or nil when the
// request did not pass authentication.
func CurrentClaims(c echo.Context) *utils.Claims {
	if v := c.Get(claimsKey); v != nil {
		if claims, ok := v.(*utils.Claims); ok {
			return claims
		}
	}
	return nil
}
