// Package service contains the authentication core. It is framework
// agnostic: handlers translate echo requests into plain arguments and
// serialize the typed results this package returns. Storage is reached
// through narrow interfaces so tests can substitute in-memory fakes.
package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/iliyamo/academic-records/internal/model"
	"github.com/iliyamo/academic-records/internal/repository"
	"github.com/iliyamo/academic-records/internal/utils"
)

// UserStore is the slice of the user repository the auth flow needs.
type UserStore interface {
	GetByCorreo(ctx context.Context, correo string) (model.User, model.Role, error)
	GetByCI(ctx context.Context, ci string) (model.User, model.Role, error)
}

// RoleStore resolves the current role of a user. Permission reads go
// through here on every privileged call; results are never cached.
type RoleStore interface {
	GetByCI(ctx context.Context, ci string) (model.Role, error)
}

// AuditRecorder receives one entry per login attempt, success or
// failure. Implementations must be best-effort: a recorder that errors
// or blocks must never fail the login itself, so the interface gives
// it no way to report failure.
type AuditRecorder interface {
	Record(ctx context.Context, e AuditEntry)
}

// AuditEntry describes a single login attempt. Detail carries the
// specific internal reason ("contraseña incorrecta", "usuario
// inactivo") which is logged server-side but never returned to the
// caller.
type AuditEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	Identifier string    `json:"identificador"`
	Success    bool      `json:"exitoso"`
	Detail     string    `json:"detalle"`
}

// Result is the uniform service response. Status is the HTTP status
// intent for the boundary layer; it is not serialized. The remaining
// fields mirror the wire contract consumed by the existing frontend:
// exito, mensaje, errores and an operation-specific data payload.
type Result struct {
	Exito   bool        `json:"exito"`
	Mensaje string      `json:"mensaje"`
	Errores []string    `json:"errores,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Status  int         `json:"-"`
}

// RoleInfo is the role summary returned to clients, with accesses
// already split into a list.
type RoleInfo struct {
	ID      uint64   `json:"id"`
	Nombre  string   `json:"nombre"`
	Accesos []string `json:"accesos"`
}

// UserInfo is a user record with the password hash stripped.
type UserInfo struct {
	CI          string   `json:"ci"`
	Nombre      string   `json:"nombre"`
	Correo      string   `json:"correo"`
	Telefono    *string  `json:"telefono"`
	FechaNac    *string  `json:"fecha_nac"`
	Direccion   *string  `json:"direccion"`
	Experiencia *string  `json:"experiencia"`
	Rol         RoleInfo `json:"rol"`
}

// LoginData is the payload of a successful login.
type LoginData struct {
	Usuario  UserInfo `json:"usuario"`
	Token    string   `json:"token"`
	ExpiraEn string   `json:"expira_en"`
}

// AuthService orchestrates credential lookup, password verification,
// token issuance and audit recording.
type AuthService struct {
	Users  UserStore
	Roles  RoleStore
	Secret string
	Audit  AuditRecorder // optional; nil disables audit recording
}

func NewAuthService(users UserStore, roles RoleStore, secret string, audit AuditRecorder) *AuthService {
	return &AuthService{Users: users, Roles: roles, Secret: secret, Audit: audit}
}

// Login authenticates a user by correo and password. Unknown account,
// inactive account and wrong password all produce the same generic
// response so callers cannot enumerate accounts; the specific reason
// goes only to the audit recorder.
func (s *AuthService) Login(ctx context.Context, correo, password string) Result {
	correo = strings.TrimSpace(correo)
	if correo == "" || password == "" {
		return Result{
			Mensaje: "Error de validación",
			Errores: []string{"El correo y la contraseña son requeridos"},
			Status:  http.StatusBadRequest,
		}
	}

	user, rol, err := s.Users.GetByCorreo(ctx, correo)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.record(ctx, correo, false, "usuario no encontrado")
			return s.authFailed()
		}
		s.record(ctx, correo, false, "error de base de datos: "+err.Error())
		return s.internalError()
	}
	if !user.Estado {
		s.record(ctx, correo, false, "usuario inactivo")
		return s.authFailed()
	}
	if !utils.VerifyPassword(user.PasswordHash, password) {
		s.record(ctx, correo, false, "contraseña incorrecta")
		return s.authFailed()
	}

	token, _, err := utils.NewToken(s.Secret, user.CI, user.Correo, user.Nombre,
		utils.RoleClaim{ID: rol.ID, Nombre: rol.Nombre})
	if err != nil {
		s.record(ctx, correo, false, "error al firmar token: "+err.Error())
		return s.internalError()
	}

	s.record(ctx, correo, true, "login exitoso")
	return Result{
		Exito:   true,
		Mensaje: "Login exitoso",
		Data: LoginData{
			Usuario:  sanitize(user, rol),
			Token:    token,
			ExpiraEn: "24 horas",
		},
		Status: http.StatusOK,
	}
}

// VerifySession validates a bearer token and re-resolves the current
// account state. A token that still passes signature and expiry checks
// is rejected when the account was deactivated or deleted after
// issuance: session validity depends on both.
func (s *AuthService) VerifySession(ctx context.Context, rawToken string) Result {
	claims := utils.ParseToken(s.Secret, rawToken)
	if claims == nil {
		return Result{
			Mensaje: "No autorizado",
			Errores: []string{"Token inválido o expirado"},
			Status:  http.StatusUnauthorized,
		}
	}

	user, rol, err := s.Users.GetByCI(ctx, claims.CI)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.sessionRejected()
		}
		return s.internalError()
	}
	if !user.Estado {
		return s.sessionRejected()
	}

	return Result{
		Exito:   true,
		Mensaje: "Token válido",
		Data:    sanitize(user, rol),
		Status:  http.StatusOK,
	}
}

// Permissions re-fetches the role and accesses of the user with the
// given CI. Reading fresh instead of trusting token claims means a
// role edit takes effect without a re-login.
func (s *AuthService) Permissions(ctx context.Context, ci string) Result {
	rol, err := s.Roles.GetByCI(ctx, ci)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Result{
				Mensaje: "Error al obtener permisos",
				Errores: []string{"Usuario no encontrado"},
				Status:  http.StatusNotFound,
			}
		}
		return s.internalError()
	}
	return Result{
		Exito:   true,
		Mensaje: "Permisos obtenidos exitosamente",
		Data: map[string]RoleInfo{"rol": {
			ID:      rol.ID,
			Nombre:  rol.Nombre,
			Accesos: rol.Permissions(),
		}},
		Status: http.StatusOK,
	}
}

// authFailed is the single generic response for every credential
// failure. Byte-identical across the not-found, inactive and
// wrong-password paths.
func (s *AuthService) authFailed() Result {
	return Result{
		Mensaje: "Autenticación fallida",
		Errores: []string{"Credenciales inválidas"},
		Status:  http.StatusUnauthorized,
	}
}

func (s *AuthService) sessionRejected() Result {
	return Result{
		Mensaje: "No autorizado",
		Errores: []string{"Usuario no activo o no encontrado"},
		Status:  http.StatusUnauthorized,
	}
}

func (s *AuthService) internalError() Result {
	return Result{
		Mensaje: "Error al procesar la solicitud",
		Errores: []string{"Error interno del servidor"},
		Status:  http.StatusInternalServerError,
	}
}

func (s *AuthService) record(ctx context.Context, identifier string, success bool, detail string) {
	if s.Audit == nil {
		return
	}
	s.Audit.Record(ctx, AuditEntry{
		Timestamp:  time.Now().UTC(),
		Identifier: identifier,
		Success:    success,
		Detail:     detail,
	})
}

func sanitize(u model.User, rol model.Role) UserInfo {
	return UserInfo{
		CI:          u.CI,
		Nombre:      u.Nombre,
		Correo:      u.Correo,
		Telefono:    u.Telefono,
		FechaNac:    u.FechaNac,
		Direccion:   u.Direccion,
		Experiencia: u.Experiencia,
		Rol: RoleInfo{
			ID:      rol.ID,
			Nombre:  rol.Nombre,
			Accesos: rol.Permissions(),
		},
	}
}
