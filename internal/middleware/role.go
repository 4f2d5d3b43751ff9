package middleware // middleware provides shared request processing for handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole returns a middleware that enforces that the
// authenticated user's role id is one of the given ids. It assumes
// JWTAuth already ran: a request with no claims in context gets 401,
// an authenticated request with a role outside the allowed set gets
// 403. Roles are matched by id, never by display name, so renaming a
// role cannot widen access.
func RequireRole(roleIDs ...uint64) echo.MiddlewareFunc {
	// Build a set of allowed role ids for constant-time lookups.
	allowed := make(map[uint64]bool, len(roleIDs))
	for _, id := range roleIDs {
		allowed[id] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := CurrentClaims(c)
			if claims == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"exito":   false,
					"mensaje": "No autorizado",
					"errores": []string{"Usuario no autenticado"},
				})
			}
			if !allowed[claims.Rol.ID] {
				return c.JSON(http.StatusForbidden, echo.Map{
					"exito":   false,
					"mensaje": "Acceso prohibido",
					"errores": []string{"No tiene permisos suficientes para esta operación"},
				})
			}
			return next(c)
		}
	}
}
