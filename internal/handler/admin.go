package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/academic-records/internal/model"
)

// Administrador endpoints. The whole group is admin-only; the router
// wraps it in RequireRole(RoleAdministrador).

func (h *UserHandler) RegistrarAdministrador(c echo.Context) error {
	return h.register(c, "ADMINISTRADOR")
}

func (h *UserHandler) ListarAdministradores(c echo.Context) error {
	return h.list(c, model.RoleAdministrador)
}

func (h *UserHandler) ActualizarAdministrador(c echo.Context) error {
	return h.update(c, model.RoleAdministrador)
}

func (h *UserHandler) EliminarAdministrador(c echo.Context) error {
	return h.remove(c, model.RoleAdministrador)
}
