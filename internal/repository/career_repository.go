package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/academic-records/internal/model"
)

// CareerRepo provides access to the `carrera` table.
type CareerRepo struct{ DB *sql.DB }

func NewCareerRepo(db *sql.DB) *CareerRepo { return &CareerRepo{DB: db} }

// Create inserts a career. Both codigo and nombre are unique; a
// duplicate of either maps to ErrConflict.
func (r *CareerRepo) Create(ctx context.Context, c model.Career) error {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM carrera WHERE codigo=? OR nombre=? LIMIT 1", c.Codigo, c.Nombre).Scan(&one)
	if err == nil {
		return ErrConflict
	}
	if err != sql.ErrNoRows {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO carrera (codigo, nombre, descripcion, duracion) VALUES (?,?,?,?)",
		c.Codigo, c.Nombre, c.Descripcion, c.Duracion)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrConflict
	}
	return err
}

// List returns all careers ordered by name.
func (r *CareerRepo) List(ctx context.Context) ([]model.Career, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT codigo, nombre, descripcion, duracion FROM carrera ORDER BY nombre")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Career
	for rows.Next() {
		var c model.Career
		if err := rows.Scan(&c.Codigo, &c.Nombre, &c.Descripcion, &c.Duracion); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByCodigo fetches a career by its code.
func (r *CareerRepo) GetByCodigo(ctx context.Context, codigo string) (model.Career, error) {
	var c model.Career
	err := r.DB.QueryRowContext(ctx,
		"SELECT codigo, nombre, descripcion, duracion FROM carrera WHERE codigo=? LIMIT 1", codigo).
		Scan(&c.Codigo, &c.Nombre, &c.Descripcion, &c.Duracion)
	if err == sql.ErrNoRows {
		return model.Career{}, ErrNotFound
	}
	return c, err
}

// Exists reports whether a career with the given code exists. Used by
// the course handlers to validate foreign keys before inserting.
func (r *CareerRepo) Exists(ctx context.Context, codigo string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM carrera WHERE codigo=? LIMIT 1", codigo).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Update rewrites a career identified by its current code. The new
// code or name must not belong to another career.
func (r *CareerRepo) Update(ctx context.Context, codigo string, c model.Career) error {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM carrera WHERE (codigo=? OR nombre=?) AND codigo<>? LIMIT 1",
		c.Codigo, c.Nombre, codigo).Scan(&one)
	if err == nil {
		return ErrConflict
	}
	if err != sql.ErrNoRows {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE carrera SET codigo=?, nombre=?, descripcion=?, duracion=? WHERE codigo=?",
		c.Codigo, c.Nombre, c.Descripcion, c.Duracion, codigo)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
