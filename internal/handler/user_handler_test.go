package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/academic-records/internal/repository"
	"github.com/iliyamo/academic-records/internal/service"
)

func newMockedUserHandler(t *testing.T) (*UserHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	// bcrypt.MinCost keeps account creation fast in tests.
	return NewUserHandler(repository.NewUserRepo(db), repository.NewRoleRepo(db), 4), mock
}

func callJSON(t *testing.T, h echo.HandlerFunc, method, target, body string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) service.Result {
	t.Helper()
	var res service.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return res
}

func TestRegistrarEstudianteCollectsAllValidationErrors(t *testing.T) {
	h, mock := newMockedUserHandler(t)

	// Missing ci, nombre and correo plus a weak password: every
	// violation must come back in one response, and the database must
	// never be touched.
	rec := callJSON(t, h.RegistrarEstudiante, http.MethodPost, "/api/estudiantes",
		`{"contrasenia":"abc"}`, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	res := decodeResult(t, rec)
	if res.Exito {
		t.Fatal("exito must be false on validation failure")
	}
	if len(res.Errores) < 4 {
		t.Fatalf("expected the full violation list, got %v", res.Errores)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database access: %v", err)
	}
}

func TestRegistrarEstudianteSuccess(t *testing.T) {
	h, mock := newMockedUserHandler(t)

	mock.ExpectQuery("SELECT id_rol, rol, accesos FROM rol WHERE rol=\\?").
		WithArgs("ESTUDIANTE").
		WillReturnRows(sqlmock.NewRows([]string{"id_rol", "rol", "accesos"}).
			AddRow(3, "ESTUDIANTE", "ver cursos"))
	mock.ExpectExec("INSERT INTO usuario").
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := callJSON(t, h.RegistrarEstudiante, http.MethodPost, "/api/estudiantes",
		`{"ci":"12345678","nombre":"Ana","correo":"Ana@Example.com","contrasenia":"Segura1!"}`, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	res := decodeResult(t, rec)
	if !res.Exito {
		t.Fatalf("exito must be true: %s", rec.Body.String())
	}
	data, err := json.Marshal(res.Data)
	if err != nil {
		t.Fatalf("re-marshal data: %v", err)
	}
	var u service.UserInfo
	if err := json.Unmarshal(data, &u); err != nil {
		t.Fatalf("decode usuario: %v", err)
	}
	if u.Correo != "ana@example.com" {
		t.Fatalf("correo must be normalized, got %q", u.Correo)
	}
	if u.Rol.ID != 3 || len(u.Rol.Accesos) != 1 {
		t.Fatalf("unexpected rol in response: %+v", u.Rol)
	}
	if strings.Contains(rec.Body.String(), "contrasenia") {
		t.Fatal("response must not carry the password hash")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegistrarEstudianteDuplicateCI(t *testing.T) {
	h, mock := newMockedUserHandler(t)

	mock.ExpectQuery("SELECT id_rol, rol, accesos FROM rol WHERE rol=\\?").
		WithArgs("ESTUDIANTE").
		WillReturnRows(sqlmock.NewRows([]string{"id_rol", "rol", "accesos"}).
			AddRow(3, "ESTUDIANTE", ""))
	mock.ExpectExec("INSERT INTO usuario").
		WillReturnError(errMySQLDupCI)

	rec := callJSON(t, h.RegistrarEstudiante, http.MethodPost, "/api/estudiantes",
		`{"ci":"12345678","nombre":"Ana","correo":"ana@example.com","contrasenia":"Segura1!"}`, nil)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
}

// errMySQLDupCI mimics the driver's duplicate-key message for the
// primary key on usuario.ci.
var errMySQLDupCI = &mysqlError{"Error 1062 (23000): Duplicate entry '12345678' for key 'usuario.PRIMARY'"}

type mysqlError struct{ msg string }

func (e *mysqlError) Error() string { return e.msg }

func TestVerificarCI(t *testing.T) {
	h, mock := newMockedUserHandler(t)

	mock.ExpectQuery("SELECT 1 FROM usuario WHERE ci=\\?").
		WithArgs("11111111").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT 1 FROM usuario WHERE ci=\\?").
		WithArgs("22222222").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	rec := callJSON(t, h.VerificarCI, http.MethodGet, "/api/usuarios/verificar-ci/11111111", "",
		map[string]string{"ci": "11111111"})
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"disponible":false`) {
		t.Fatalf("taken CI: status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = callJSON(t, h.VerificarCI, http.MethodGet, "/api/usuarios/verificar-ci/22222222", "",
		map[string]string{"ci": "22222222"})
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"disponible":true`) {
		t.Fatalf("free CI: status=%d body=%s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoginRejectsBlankCredentials(t *testing.T) {
	// Stores are never reached when the request carries no credentials,
	// so nil stores are fine here.
	a := NewAuthHandler(service.NewAuthService(nil, nil, "secret", nil))

	rec := callJSON(t, a.Login, http.MethodPost, "/api/auth/login", `{"correo":"","password":""}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	res := decodeResult(t, rec)
	if res.Exito || len(res.Errores) == 0 {
		t.Fatalf("expected validation failure, got %s", rec.Body.String())
	}
}

func TestLogoutIsStateless(t *testing.T) {
	a := NewAuthHandler(service.NewAuthService(nil, nil, "secret", nil))

	rec := callJSON(t, a.Logout, http.MethodPost, "/api/auth/logout", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if res := decodeResult(t, rec); !res.Exito {
		t.Fatalf("logout must always succeed: %s", rec.Body.String())
	}
}
