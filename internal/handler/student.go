package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/academic-records/internal/model"
)

// Estudiante endpoints. Registration is public (students sign
// themselves up); the rest run behind the authorization chain as wired
// in the router.

func (h *UserHandler) RegistrarEstudiante(c echo.Context) error {
	return h.register(c, "ESTUDIANTE")
}

func (h *UserHandler) ListarEstudiantes(c echo.Context) error {
	return h.list(c, model.RoleEstudiante)
}

func (h *UserHandler) ObtenerEstudiante(c echo.Context) error {
	return h.get(c, model.RoleEstudiante)
}

func (h *UserHandler) ActualizarEstudiante(c echo.Context) error {
	return h.update(c, model.RoleEstudiante)
}

func (h *UserHandler) EliminarEstudiante(c echo.Context) error {
	return h.remove(c, model.RoleEstudiante)
}
