package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/academic-records/internal/middleware"
	"github.com/iliyamo/academic-records/internal/service"
)

// AuthHandler is the echo boundary of the authentication core. It only
// translates requests into AuthService calls and serializes the typed
// results; every decision lives in the service.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

type loginReq struct {
	Correo   string `json:"correo"`
	Password string `json:"password"`
}

// Login authenticates correo+password and returns the sanitized user,
// a 24-hour token and an expiry description.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, service.Result{
			Mensaje: "Error de validación",
			Errores: []string{"Cuerpo de la solicitud inválido"},
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res := h.Auth.Login(ctx, req.Correo, req.Password)
	return c.JSON(res.Status, res)
}

// Logout always succeeds: tokens are self-contained and never revoked
// server-side, so logging out is the client discarding its token. The
// endpoint exists so clients have something to call.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, service.Result{
		Exito:   true,
		Mensaje: "Sesión cerrada. Elimine el token en el cliente.",
	})
}

// Verify re-validates the presented token against current account
// state. It deliberately runs outside the JWTAuth middleware: the
// service must re-read the user row even when the token itself is
// still cryptographically valid, so it needs the raw token.
func (h *AuthHandler) Verify(c echo.Context) error {
	raw, ok := bearerToken(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, service.Result{
			Mensaje: "No autorizado",
			Errores: []string{"Token no proporcionado"},
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res := h.Auth.VerifySession(ctx, raw)
	return c.JSON(res.Status, res)
}

// Permissions returns the current role and accesses of the
// authenticated user, read fresh from the store. Runs behind JWTAuth.
func (h *AuthHandler) Permissions(c echo.Context) error {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, service.Result{
			Mensaje: "No autorizado",
			Errores: []string{"Usuario no autenticado"},
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res := h.Auth.Permissions(ctx, claims.CI)
	return c.JSON(res.Status, res)
}

// bearerToken extracts the raw token from an "Authorization: Bearer
// <token>" header.
func bearerToken(c echo.Context) (string, bool) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return raw, raw != ""
}
