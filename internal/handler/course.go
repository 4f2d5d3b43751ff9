package handler

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/academic-records/internal/model"
	"github.com/iliyamo/academic-records/internal/repository"
	"github.com/iliyamo/academic-records/internal/service"
)

// CourseHandler bundles the repositories needed by the curso routes:
// courses themselves plus careers and users for foreign-key checks.
type CourseHandler struct {
	Courses *repository.CourseRepo
	Careers *repository.CareerRepo
	Users   *repository.UserRepo
}

func NewCourseHandler(courses *repository.CourseRepo, careers *repository.CareerRepo, users *repository.UserRepo) *CourseHandler {
	if courses == nil || careers == nil || users == nil {
		panic("nil repository passed to NewCourseHandler")
	}
	return &CourseHandler{Courses: courses, Careers: careers, Users: users}
}

type courseReq struct {
	DocenteCI     string `json:"usuario_ci"`
	CarreraCodigo string `json:"carrera_codigo"`
	Nombre        string `json:"nombre"`
	Tipo          string `json:"tipo"`
	Cupo          int    `json:"cupo"`
	Dia           string `json:"dia"`
	HoraInicio    string `json:"hora_inicio"`
	HoraFin       string `json:"hora_fin"`
	FechaInicio   string `json:"fecha_inicio"`
	FechaFin      string `json:"fecha_fin"`
	Monto         int    `json:"monto"`
	AulaID        uint64 `json:"aula_id_aula"`
}

var (
	horaRe  = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)
	fechaRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

func (r courseReq) validate() []string {
	errores := []string{}
	if strings.TrimSpace(r.Nombre) == "" {
		errores = append(errores, "El nombre es requerido")
	}
	if strings.TrimSpace(r.DocenteCI) == "" {
		errores = append(errores, "El usuario_ci del docente es requerido")
	}
	if strings.TrimSpace(r.CarreraCodigo) == "" {
		errores = append(errores, "El carrera_codigo es requerido")
	}
	if r.Cupo <= 0 {
		errores = append(errores, "El cupo debe ser mayor a cero")
	}
	if !horaRe.MatchString(r.HoraInicio) || !horaRe.MatchString(r.HoraFin) {
		errores = append(errores, "Las horas deben tener formato HH:MM")
	}
	if !fechaRe.MatchString(r.FechaInicio) || !fechaRe.MatchString(r.FechaFin) {
		errores = append(errores, "Las fechas deben tener formato YYYY-MM-DD")
	}
	return errores
}

// checkReferences validates the foreign keys of a course request.
func (h *CourseHandler) checkReferences(ctx context.Context, r courseReq) ([]string, error) {
	errores := []string{}
	okCarrera, err := h.Careers.Exists(ctx, r.CarreraCodigo)
	if err != nil {
		return nil, err
	}
	if !okCarrera {
		errores = append(errores, "La carrera indicada no existe")
	}
	okDocente, err := h.Users.ExistsCI(ctx, r.DocenteCI)
	if err != nil {
		return nil, err
	}
	if !okDocente {
		errores = append(errores, "El docente indicado no existe")
	}
	okAula, err := h.Courses.ClassroomExists(ctx, r.AulaID)
	if err != nil {
		return nil, err
	}
	if !okAula {
		errores = append(errores, "El aula indicada no existe")
	}
	return errores, nil
}

// CrearCurso creates a course after validating formats, foreign keys
// and name uniqueness within the career.
func (h *CourseHandler) CrearCurso(c echo.Context) error {
	var req courseReq
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

	errores, err := h.checkReferences(ctx, req)
	if err != nil {
		return internalResult(c)
	}
	if len(errores) > 0 {
		return c.JSON(http.StatusBadRequest, service.Result{
			Mensaje: "Error de validación",
			Errores: errores,
		})
	}

	taken, err := h.Courses.NameTakenInCareer(ctx, req.Nombre, req.CarreraCodigo, 0)
	if err != nil {
		return internalResult(c)
	}
	if taken {
		return c.JSON(http.StatusConflict, service.Result{
			Mensaje: "Error de validación",
			Errores: []string{"Ya existe un curso con ese nombre en la carrera"},
		})
	}

	curso := courseFromReq(req)
	id, err := h.Courses.Create(ctx, curso)
	if err != nil {
		return internalResult(c)
	}
	curso.ID = id
	return c.JSON(http.StatusCreated, service.Result{
		Exito:   true,
		Mensaje: "Curso creado exitosamente",
		Data:    curso,
	})
}

// ListarCursos returns all courses. Public; cached by the router.
func (h *CourseHandler) ListarCursos(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cursos, err := h.Courses.List(ctx)
	if err != nil {
		return internalResult(c)
	}
	return c.JSON(http.StatusOK, service.Result{
		Exito:   true,
		Mensaje: "Cursos obtenidos exitosamente",
		Data:    cursos,
	})
}

// ObtenerCurso returns one course by id.
func (h *CourseHandler) ObtenerCurso(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, service.Result{
			Mensaje: "Error de validación",
			Errores: []string{"El id debe ser numérico"},
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	curso, err := h.Courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, service.Result{
				Mensaje: "No encontrado",
				Errores: []string{"Curso no encontrado"},
			})
		}
		return internalResult(c)
	}
	return c.JSON(http.StatusOK, service.Result{
		Exito:   true,
		Mensaje: "Curso obtenido exitosamente",
		Data:    curso,
	})
}

// ActualizarCurso rewrites a course by id with the same validation as
// creation.
func (h *CourseHandler) ActualizarCurso(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, service.Result{
			Mensaje: "Error de validación",
			Errores: []string{"El id debe ser numérico"},
		})
	}
	var req courseReq
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

	errores, err := h.checkReferences(ctx, req)
	if err != nil {
		return internalResult(c)
	}
	if len(errores) > 0 {
		return c.JSON(http.StatusBadRequest, service.Result{
			Mensaje: "Error de validación",
			Errores: errores,
		})
	}

	taken, err := h.Courses.NameTakenInCareer(ctx, req.Nombre, req.CarreraCodigo, id)
	if err != nil {
		return internalResult(c)
	}
	if taken {
		return c.JSON(http.StatusConflict, service.Result{
			Mensaje: "Error de validación",
			Errores: []string{"Ya existe un curso con ese nombre en la carrera"},
		})
	}

	curso := courseFromReq(req)
	curso.ID = id
	if err := h.Courses.Update(ctx, curso); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, service.Result{
				Mensaje: "No encontrado",
				Errores: []string{"Curso no encontrado"},
			})
		}
		return internalResult(c)
	}
	return c.JSON(http.StatusOK, service.Result{
		Exito:   true,
		Mensaje: "Curso actualizado exitosamente",
		Data:    curso,
	})
}

// EliminarCurso removes a course by id.
func (h *CourseHandler) EliminarCurso(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, service.Result{
			Mensaje: "Error de validación",
			Errores: []string{"El id debe ser numérico"},
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Courses.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, service.Result{
				Mensaje: "No encontrado",
				Errores: []string{"Curso no encontrado"},
			})
		}
		return internalResult(c)
	}
	return c.JSON(http.StatusOK, service.Result{
		Exito:   true,
		Mensaje: "Curso eliminado exitosamente",
	})
}

func courseFromReq(r courseReq) model.Course {
	return model.Course{
		DocenteCI:     strings.TrimSpace(r.DocenteCI),
		CarreraCodigo: strings.TrimSpace(r.CarreraCodigo),
		Nombre:        strings.TrimSpace(r.Nombre),
		Tipo:          strings.TrimSpace(r.Tipo),
		Cupo:          r.Cupo,
		Dia:           strings.TrimSpace(r.Dia),
		HoraInicio:    r.HoraInicio,
		HoraFin:       r.HoraFin,
		FechaInicio:   r.FechaInicio,
		FechaFin:      r.FechaFin,
		Monto:         r.Monto,
		AulaID:        r.AulaID,
	}
}
