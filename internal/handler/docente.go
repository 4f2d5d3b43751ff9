package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/academic-records/internal/model"
)

// Docente endpoints. Only administrators can create or modify
// docentes; listing and reading are open to any authenticated user so
// students can browse who teaches what.

func (h *UserHandler) RegistrarDocente(c echo.Context) error {
	return h.register(c, "DOCENTE")
}

func (h *UserHandler) ListarDocentes(c echo.Context) error {
	return h.list(c, model.RoleDocente)
}

func (h *UserHandler) ObtenerDocente(c echo.Context) error {
	return h.get(c, model.RoleDocente)
}

func (h *UserHandler) ActualizarDocente(c echo.Context) error {
	return h.update(c, model.RoleDocente)
}

func (h *UserHandler) EliminarDocente(c echo.Context) error {
	return h.remove(c, model.RoleDocente)
}
