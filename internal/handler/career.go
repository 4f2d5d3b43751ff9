package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/academic-records/internal/model"
	"github.com/iliyamo/academic-records/internal/repository"
	"github.com/iliyamo/academic-records/internal/service"
)

// CareerHandler bundles the carrera repository for the career routes.
type CareerHandler struct {
	Careers *repository.CareerRepo
}

func NewCareerHandler(careers *repository.CareerRepo) *CareerHandler {
	if careers == nil {
		panic("nil repository passed to NewCareerHandler")
	}
	return &CareerHandler{Careers: careers}
}

type careerReq struct {
	Codigo      string `json:"codigo"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Duracion    int    `json:"duracion"`
}

func (r careerReq) validate() []string {
	errores := []string{}
	if strings.TrimSpace(r.Codigo) == "" {
		errores = append(errores, "El código es requerido")
	}
	if strings.TrimSpace(r.Nombre) == "" {
		errores = append(errores, "El nombre es requerido")
	}
	if strings.TrimSpace(r.Descripcion) == "" {
		errores = append(errores, "La descripción es requerida")
	}
	if r.Duracion <= 0 {
		errores = append(errores, "La duración debe ser mayor a cero")
	}
	return errores
}

// CrearCarrera creates a career. Code and name must both be unique.
func (h *CareerHandler) CrearCarrera(c echo.Context) error {
	var req careerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, service.Result{
			Mensaje: "Error de validación",
			Errores: []string{"Cuerpo de la solicitud inválido"},
		})
	}
	if errores := req.validate(); len(errores) > 0 {
		return c.JSON(http.StatusBadRequest, service.Result{
			Mensaje: "Error de validación",
			Errores: errores,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	carrera := model.Career{
		Codigo:      strings.TrimSpace(req.Codigo),
		Nombre:      strings.TrimSpace(req.Nombre),
		Descripcion: strings.TrimSpace(req.Descripcion),
		Duracion:    req.Duracion,
	}
	if err := h.Careers.Create(ctx, carrera); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, service.Result{
				Mensaje: "Error de validación",
				Errores: []string{"Ya existe una carrera con el mismo nombre o código"},
			})
		}
		return internalResult(c)
	}
	return c.JSON(http.StatusCreated, service.Result{
		Exito:   true,
		Mensaje: "Carrera creada exitosamente",
		Data:    carrera,
	})
}

// ListarCarreras returns all careers. Public; the router wraps it in
// the response cache.
func (h *CareerHandler) ListarCarreras(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	carreras, err := h.Careers.List(ctx)
	if err != nil {
		return internalResult(c)
	}
	return c.JSON(http.StatusOK, service.Result{
		Exito:   true,
		Mensaje: "Carreras obtenidas exitosamente",
		Data:    carreras,
	})
}

// ActualizarCarrera rewrites a career by its current code.
func (h *CareerHandler) ActualizarCarrera(c echo.Context) error {
	codigo := c.Param("codigo")
	var req careerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, service.Result{
			Mensaje: "Error de validación",
			Errores: []string{"Cuerpo de la solicitud inválido"},
		})
	}
	if errores := req.validate(); len(errores) > 0 {
		return c.JSON(http.StatusBadRequest, service.Result{
			Mensaje: "Error de validación",
			Errores: errores,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	carrera := model.Career{
		Codigo:      strings.TrimSpace(req.Codigo),
		Nombre:      strings.TrimSpace(req.Nombre),
		Descripcion: strings.TrimSpace(req.Descripcion),
		Duracion:    req.Duracion,
	}
	if err := h.Careers.Update(ctx, codigo, carrera); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, service.Result{
				Mensaje: "Error de validación",
				Errores: []string{"El nombre o código ya pertenece a otra carrera"},
			})
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, service.Result{
				Mensaje: "No encontrado",
				Errores: []string{"Carrera no encontrada"},
			})
		default:
			return internalResult(c)
		}
	}
	return c.JSON(http.StatusOK, service.Result{
		Exito:   true,
		Mensaje: "Carrera actualizada exitosamente",
		Data:    carrera,
	})
}
