package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/iliyamo/academic-records/internal/model"
)

func userFixture() model.User {
	return model.User{
		CI:     "12345678",
		Nombre: "Ana",
		Correo: "a@b.com",
		RoleID: model.RoleEstudiante,
	}
}

func TestRoleRepoGetByCI(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT r.id_rol, r.rol, r.accesos FROM rol r JOIN usuario u .* WHERE u.ci=\\?").
		WithArgs("12345678").
		WillReturnRows(sqlmock.NewRows([]string{"id_rol", "rol", "accesos"}).
			AddRow(2, "DOCENTE", "ver cursos, crear carreras"))

	repo := NewRoleRepo(db)
	rol, err := repo.GetByCI(context.Background(), "12345678")
	if err != nil {
		t.Fatalf("GetByCI: %v", err)
	}
	if !rol.HasPermission("crear carreras") {
		t.Fatalf("expected permission from joined row, got %q", rol.Accesos)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRoleRepoGetByNameNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id_rol, rol, accesos FROM rol WHERE rol=\\?").
		WithArgs("INVITADO").
		WillReturnRows(sqlmock.NewRows([]string{"id_rol", "rol", "accesos"}))

	repo := NewRoleRepo(db)
	if _, err := repo.GetByName(context.Background(), "INVITADO"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCareerRepoCreateConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// Pre-check finds an existing career with the same code or name.
	mock.ExpectQuery("SELECT 1 FROM carrera WHERE codigo=\\? OR nombre=\\?").
		WithArgs("INF-187", "Informática").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	repo := NewCareerRepo(db)
	err = repo.Create(context.Background(), model.Career{Codigo: "INF-187", Nombre: "Informática", Duracion: 10})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
