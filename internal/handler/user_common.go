package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/academic-records/internal/model"
	"github.com/iliyamo/academic-records/internal/repository"
	"github.com/iliyamo/academic-records/internal/service"
	"github.com/iliyamo/academic-records/internal/utils"
)

// UserHandler bundles the dependencies shared by the estudiante,
// docente and administrador endpoints. The three resource kinds are
// the same usuario table scoped by role, so one handler serves all of
// them and the routes pick the role.
type UserHandler struct {
	Users *repository.UserRepo
	Roles *repository.RoleRepo
	Cost  int // bcrypt cost for new accounts
}

func NewUserHandler(users *repository.UserRepo, roles *repository.RoleRepo, cost int) *UserHandler {
	if users == nil || roles == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{Users: users, Roles: roles, Cost: cost}
}

type userReq struct {
	CI          string  `json:"ci"`
	Nombre      string  `json:"nombre"`
	Correo      string  `json:"correo"`
	Telefono    *string `json:"telefono"`
	Contrasenia string  `json:"contrasenia"`
	FechaNac    *string `json:"fecha_nac"`
	Direccion   *string `json:"direccion"`
	Experiencia *string `json:"experiencia"`
	Estado      *bool   `json:"estado"`
}

var correoRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// register creates a usuario holding the named role. Validation
// failures are collected and returned together.
func (h *UserHandler) register(c echo.Context, roleName string) error {
	var req userReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, service.Result{
			Mensaje: "Error de validación",
			Errores: []string{"Cuerpo de la solicitud inválido"},
		})
	}

	errores := []string{}
	if strings.TrimSpace(req.CI) == "" {
		errores = append(errores, "El ci es requerido")
	}
	if strings.TrimSpace(req.Nombre) == "" {
		errores = append(errores, "El nombre es requerido")
	}
	if strings.TrimSpace(req.Correo) == "" {
		errores = append(errores, "El correo es requerido")
	} else if !correoRe.MatchString(req.Correo) {
		errores = append(errores, "El correo no tiene un formato válido")
	}
	if ok, violations := utils.CheckPasswordStrength(req.Contrasenia); !ok {
		errores = append(errores, violations...)
	}
	if len(errores) > 0 {
		return c.JSON(http.StatusBadRequest, service.Result{
			Mensaje: "Error de validación",
			Errores: errores,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rol, err := h.Roles.GetByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, service.Result{
				Mensaje: "Error de validación",
				Errores: []string{"No existe el rol '" + roleName + "'"},
			})
		}
		return internalResult(c)
	}

	u := model.User{
		CI:          strings.TrimSpace(req.CI),
		Nombre:      strings.TrimSpace(req.Nombre),
		Correo:      req.Correo,
		Telefono:    req.Telefono,
		FechaNac:    req.FechaNac,
		Direccion:   req.Direccion,
		Experiencia: req.Experiencia,
		RoleID:      rol.ID,
	}
	if err := h.Users.Create(ctx, u, req.Contrasenia, h.Cost); err != nil {
		switch {
		case errors.Is(err, repository.ErrCIExists):
			return c.JSON(http.StatusConflict, service.Result{
				Mensaje: "Error de validación",
				Errores: []string{"Ya existe un usuario con ese ci"},
			})
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusConflict, service.Result{
				Mensaje: "Error de validación",
				Errores: []string{"Ya existe un usuario con ese correo electrónico"},
			})
		default:
			return internalResult(c)
		}
	}

	return c.JSON(http.StatusCreated, service.Result{
		Exito:   true,
		Mensaje: "Usuario registrado exitosamente",
		Data: service.UserInfo{
			CI: u.CI, Nombre: u.Nombre, Correo: strings.ToLower(strings.TrimSpace(u.Correo)),
			Telefono: u.Telefono, FechaNac: u.FechaNac, Direccion: u.Direccion,
			Experiencia: u.Experiencia,
			Rol:         service.RoleInfo{ID: rol.ID, Nombre: rol.Nombre, Accesos: rol.Permissions()},
		},
	})
}

// list returns every usuario with the given role, hashes stripped.
func (h *UserHandler) list(c echo.Context, roleID uint64) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.ListByRole(ctx, roleID)
	if err != nil {
		return internalResult(c)
	}
	out := make([]echo.Map, 0, len(users))
	for _, u := range users {
		out = append(out, sanitizedMap(u))
	}
	return c.JSON(http.StatusOK, service.Result{
		Exito:   true,
		Mensaje: "Usuarios obtenidos exitosamente",
		Data:    out,
	})
}

// get returns one usuario by CI, restricted to the given role so the
// docente endpoints cannot leak estudiantes and vice versa.
func (h *UserHandler) get(c echo.Context, roleID uint64) error {
	ci := c.Param("ci")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, _, err := h.Users.GetByCI(ctx, ci)
	if err != nil || u.RoleID != roleID {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return internalResult(c)
		}
		return notFoundResult(c)
	}
	return c.JSON(http.StatusOK, service.Result{
		Exito:   true,
		Mensaje: "Usuario obtenido exitosamente",
		Data:    sanitizedMap(u),
	})
}

// update edits the profile fields of a usuario by CI.
func (h *UserHandler) update(c echo.Context, roleID uint64) error {
	ci := c.Param("ci")
	var req userReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, service.Result{
			Mensaje: "Error de validación",
			Errores: []string{"Cuerpo de la solicitud inválido"},
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, _, err := h.Users.GetByCI(ctx, ci)
	if err != nil || u.RoleID != roleID {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return internalResult(c)
		}
		return notFoundResult(c)
	}

	if strings.TrimSpace(req.Nombre) != "" {
		u.Nombre = strings.TrimSpace(req.Nombre)
	}
	if strings.TrimSpace(req.Correo) != "" {
		if !correoRe.MatchString(req.Correo) {
			return c.JSON(http.StatusBadRequest, service.Result{
				Mensaje: "Error de validación",
				Errores: []string{"El correo no tiene un formato válido"},
			})
		}
		u.Correo = req.Correo
	}
	if req.Telefono != nil {
		u.Telefono = req.Telefono
	}
	if req.FechaNac != nil {
		u.FechaNac = req.FechaNac
	}
	if req.Direccion != nil {
		u.Direccion = req.Direccion
	}
	if req.Experiencia != nil {
		u.Experiencia = req.Experiencia
	}
	if req.Estado != nil {
		u.Estado = *req.Estado
	}

	if err := h.Users.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusConflict, service.Result{
				Mensaje: "Error de validación",
				Errores: []string{"Ya existe un usuario con ese correo electrónico"},
			})
		case errors.Is(err, repository.ErrNotFound):
			return notFoundResult(c)
		default:
			return internalResult(c)
		}
	}
	return c.JSON(http.StatusOK, service.Result{
		Exito:   true,
		Mensaje: "Usuario actualizado exitosamente",
		Data:    sanitizedMap(u),
	})
}

// remove deletes a usuario by CI.
func (h *UserHandler) remove(c echo.Context, roleID uint64) error {
	ci := c.Param("ci")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, _, err := h.Users.GetByCI(ctx, ci)
	if err != nil || u.RoleID != roleID {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return internalResult(c)
		}
		return notFoundResult(c)
	}
	if err := h.Users.Delete(ctx, ci); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundResult(c)
		}
		return internalResult(c)
	}
	return c.JSON(http.StatusOK, service.Result{
		Exito:   true,
		Mensaje: "Usuario eliminado exitosamente",
	})
}

// VerificarCI reports whether a CI is still free. Used by the
// registration form before submitting.
func (h *UserHandler) VerificarCI(c echo.Context) error {
	ci := c.Param("ci")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	exists, err := h.Users.ExistsCI(ctx, ci)
	if err != nil {
		return internalResult(c)
	}
	return c.JSON(http.StatusOK, service.Result{
		Exito:   true,
		Mensaje: "Verificación realizada",
		Data:    echo.Map{"ci": ci, "disponible": !exists},
	})
}

func sanitizedMap(u model.User) echo.Map {
	return echo.Map{
		"ci":          u.CI,
		"nombre":      u.Nombre,
		"correo":      u.Correo,
		"telefono":    u.Telefono,
		"fecha_nac":   u.FechaNac,
		"direccion":   u.Direccion,
		"experiencia": u.Experiencia,
		"estado":      u.Estado,
	}
}

func internalResult(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, service.Result{
		Mensaje: "Error al procesar la solicitud",
		Errores: []string{"Error interno del servidor"},
	})
}

func notFoundResult(c echo.Context) error {
	return c.JSON(http.StatusNotFound, service.Result{
		Mensaje: "No encontrado",
		Errores: []string{"Usuario no encontrado"},
	})
}
