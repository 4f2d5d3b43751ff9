package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/academic-records/internal/model"
)

// RoleRepo provides access to the `rol` table. The permission
// middleware re-reads accesses through this repo on every protected
// request, so lookups stay single-row and indexed.
type RoleRepo struct{ DB *sql.DB }

func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{DB: db} }

// GetByID fetches a role by its numeric id.
func (r *RoleRepo) GetByID(ctx context.Context, id uint64) (model.Role, error) {
	var rol model.Role
	err := r.DB.QueryRowContext(ctx,
		"SELECT id_rol, rol, accesos FROM rol WHERE id_rol=? LIMIT 1", id).
		Scan(&rol.ID, &rol.Nombre, &rol.Accesos)
	if err == sql.ErrNoRows {
		return model.Role{}, ErrNotFound
	}
	return rol, err
}

// GetByName fetches a role by its name (case-insensitive, matching the
// collation of the rol column).
func (r *RoleRepo) GetByName(ctx context.Context, nombre string) (model.Role, error) {
	var rol model.Role
	err := r.DB.QueryRowContext(ctx,
		"SELECT id_rol, rol, accesos FROM rol WHERE rol=? LIMIT 1", nombre).
		Scan(&rol.ID, &rol.Nombre, &rol.Accesos)
	if err == sql.ErrNoRows {
		return model.Role{}, ErrNotFound
	}
	return rol, err
}

// GetByCI resolves the current role of the user with the given CI.
// This is the fresh, uncached read behind permission checks: a role or
// accesses change takes effect on the next call, not at next login.
func (r *RoleRepo) GetByCI(ctx context.Context, ci string) (model.Role, error) {
	var rol model.Role
	err := r.DB.QueryRowContext(ctx,
		"SELECT r.id_rol, r.rol, r.accesos FROM rol r JOIN usuario u ON u.rol_id_rol = r.id_rol WHERE u.ci=? LIMIT 1", ci).
		Scan(&rol.ID, &rol.Nombre, &rol.Accesos)
	if err == sql.ErrNoRows {
		return model.Role{}, ErrNotFound
	}
	return rol, err
}
