package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/academic-records/internal/model"
	"github.com/iliyamo/academic-records/internal/repository"
)

// AccessStore resolves the current role (and its accesses) of a user.
// Implemented by repository.RoleRepo.
type AccessStore interface {
	GetByCI(ctx context.Context, ci string) (model.Role, error)
}

// RequirePermission returns a middleware that admits a request only
// when the authenticated user's role currently grants the named
// permission. The accesses are re-read from the store on every request
// rather than taken from the token, so revoking a permission takes
// effect immediately. The gate is fail-closed: when the lookup itself
// fails the request is denied with 500, never allowed through; a
// missing permission is 403. The two cases are never conflated.
func RequirePermission(permiso string, store AccessStore) echo.MiddlewareFunc {
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

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			rol, err := store.GetByCI(ctx, claims.CI)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					// The account vanished after the token was issued.
					return c.JSON(http.StatusForbidden, echo.Map{
						"exito":   false,
						"mensaje": "Acceso prohibido",
						"errores": []string{"No se pudieron verificar los permisos"},
					})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"exito":   false,
					"mensaje": "Error interno del servidor",
					"errores": []string{"Error al verificar permisos"},
				})
			}
			if !rol.HasPermission(permiso) {
				return c.JSON(http.StatusForbidden, echo.Map{
					"exito":   false,
					"mensaje": "Acceso prohibido",
					"errores": []string{fmt.Sprintf("No tiene el permiso requerido: %s", permiso)},
				})
			}
			return next(c)
		}
	}
}
