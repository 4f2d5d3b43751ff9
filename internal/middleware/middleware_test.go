package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/academic-records/internal/model"
	"github.com/iliyamo/academic-records/internal/repository"
	"github.com/iliyamo/academic-records/internal/utils"
)

const secret = "middleware-test-secret"

// okHandler is the terminal handler behind the gates under test.
func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"exito": true})
}

func issueToken(t *testing.T, rolID uint64, rolNombre string) string {
	t.Helper()
	tok, _, err := utils.NewToken(secret, "12345678", "a@b.com", "Ana", utils.RoleClaim{ID: rolID, Nombre: rolNombre})
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	return tok
}

func doRequest(t *testing.T, h echo.HandlerFunc, mws []echo.MiddlewareFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Apply gates in registration order, innermost last.
	wrapped := h
	for i := len(mws) - 1; i >= 0; i-- {
		wrapped = mws[i](wrapped)
	}
	if err := wrapped(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestJWTAuth(t *testing.T) {
	gates := []echo.MiddlewareFunc{JWTAuth(secret)}

	if rec := doRequest(t, okHandler, gates, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: got %d, want 401", rec.Code)
	}
	if rec := doRequest(t, okHandler, gates, "Bearer "); rec.Code != http.StatusUnauthorized {
		t.Fatalf("empty token segment: got %d, want 401", rec.Code)
	}
	if rec := doRequest(t, okHandler, gates, "Token abc"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong scheme: got %d, want 401", rec.Code)
	}
	if rec := doRequest(t, okHandler, gates, "Bearer not.a.jwt"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("invalid token: got %d, want 401", rec.Code)
	}

	// A valid token passes and the handler can read the claims.
	var seen *utils.Claims
	handler := func(c echo.Context) error {
		seen = CurrentClaims(c)
		return okHandler(c)
	}
	rec := doRequest(t, handler, gates, "Bearer "+issueToken(t, 2, "DOCENTE"))
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: got %d, want 200", rec.Code)
	}
	if seen == nil || seen.CI != "12345678" || seen.Rol.ID != 2 {
		t.Fatalf("claims not attached: %+v", seen)
	}
}

func TestRequireRole(t *testing.T) {
	token := issueToken(t, model.RoleEstudiante, "ESTUDIANTE")

	// Unauthenticated: the role gate alone must answer 401, not 403.
	rec := doRequest(t, okHandler, []echo.MiddlewareFunc{RequireRole(model.RoleAdministrador)}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no claims: got %d, want 401", rec.Code)
	}

	gates := []echo.MiddlewareFunc{JWTAuth(secret), RequireRole(model.RoleAdministrador, model.RoleDocente)}
	rec = doRequest(t, okHandler, gates, "Bearer "+token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("role outside allowed set: got %d, want 403", rec.Code)
	}

	gates = []echo.MiddlewareFunc{JWTAuth(secret), RequireRole(model.RoleEstudiante)}
	if rec := doRequest(t, okHandler, gates, "Bearer "+token); rec.Code != http.StatusOK {
		t.Fatalf("allowed role: got %d, want 200", rec.Code)
	}
}

type stubAccessStore struct {
	rol model.Role
	err error
}

func (s stubAccessStore) GetByCI(context.Context, string) (model.Role, error) {
	return s.rol, s.err
}

func TestRequirePermission(t *testing.T) {
	token := issueToken(t, 2, "DOCENTE")
	granted := stubAccessStore{rol: model.Role{ID: 2, Nombre: "DOCENTE", Accesos: "ver cursos, crear carreras"}}

	// Unauthenticated short-circuits before touching the store.
	rec := doRequest(t, okHandler, []echo.MiddlewareFunc{RequirePermission("crear carreras", granted)}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no claims: got %d, want 401", rec.Code)
	}

	gates := []echo.MiddlewareFunc{JWTAuth(secret), RequirePermission("crear carreras", granted)}
	if rec := doRequest(t, okHandler, gates, "Bearer "+token); rec.Code != http.StatusOK {
		t.Fatalf("granted permission: got %d, want 200", rec.Code)
	}

	// The store, not the token, decides: same token, narrower role row.
	revoked := stubAccessStore{rol: model.Role{ID: 2, Nombre: "DOCENTE", Accesos: "ver cursos"}}
	gates = []echo.MiddlewareFunc{JWTAuth(secret), RequirePermission("crear carreras", revoked)}
	if rec := doRequest(t, okHandler, gates, "Bearer "+token); rec.Code != http.StatusForbidden {
		t.Fatalf("revoked permission: got %d, want 403", rec.Code)
	}
}

func TestRequirePermissionFailsClosed(t *testing.T) {
	token := issueToken(t, 2, "DOCENTE")

	broken := stubAccessStore{err: errors.New("connection reset")}
	gates := []echo.MiddlewareFunc{JWTAuth(secret), RequirePermission("crear carreras", broken)}
	rec := doRequest(t, okHandler, gates, "Bearer "+token)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("store failure: got %d, want 500 (fail-closed)", rec.Code)
	}

	gone := stubAccessStore{err: repository.ErrNotFound}
	gates = []echo.MiddlewareFunc{JWTAuth(secret), RequirePermission("crear carreras", gone)}
	rec = doRequest(t, okHandler, gates, "Bearer "+token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("vanished account: got %d, want 403", rec.Code)
	}
}
