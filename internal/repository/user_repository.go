package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/academic-records/internal/model"
	"github.com/iliyamo/academic-records/internal/utils"
)

// UserRepo provides access to the `usuario` table and its joined role
// row. Lookups used by the authentication flow return the user and the
// role together so login needs a single round trip.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "u.ci, u.nombre, u.correo, u.telefono, u.contrasenia, u.fecha_nac, u.direccion, u.experiencia, u.estado, u.rol_id_rol"
const roleColumns = "r.id_rol, r.rol, r.accesos"

// Create inserts a user, hashing the plaintext password with the given
// bcrypt cost. Duplicate CI or correo map to the matching sentinel.
func (r *UserRepo) Create(ctx context.Context, u model.User, plain string, cost int) error {
	hash, err := utils.HashPassword(plain, cost)
	if err != nil {
		return err
	}
	u.Correo = strings.ToLower(strings.TrimSpace(u.Correo))
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO usuario (ci, nombre, correo, telefono, contrasenia, fecha_nac, direccion, experiencia, estado, rol_id_rol) VALUES (?,?,?,?,?,?,?,?,?,?)",
		u.CI, u.Nombre, u.Correo, u.Telefono, hash, u.FechaNac, u.Direccion, u.Experiencia, true, u.RoleID)
	if err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "1062") {
			if strings.Contains(low, "correo") {
				return ErrEmailExists
			}
			return ErrCIExists
		}
		return err
	}
	return nil
}

// GetByCorreo fetches a user and its role by normalized email.
// Returns ErrNotFound when no such user exists.
func (r *UserRepo) GetByCorreo(ctx context.Context, correo string) (model.User, model.Role, error) {
	correo = strings.ToLower(strings.TrimSpace(correo))
	return r.getJoined(ctx,
		"SELECT "+userColumns+", "+roleColumns+" FROM usuario u JOIN rol r ON r.id_rol = u.rol_id_rol WHERE u.correo=? LIMIT 1",
		correo)
}

// GetByCI fetches a user and its role by CI.
func (r *UserRepo) GetByCI(ctx context.Context, ci string) (model.User, model.Role, error) {
	return r.getJoined(ctx,
		"SELECT "+userColumns+", "+roleColumns+" FROM usuario u JOIN rol r ON r.id_rol = u.rol_id_rol WHERE u.ci=? LIMIT 1",
		ci)
}

func (r *UserRepo) getJoined(ctx context.Context, query string, arg interface{}) (model.User, model.Role, error) {
	var u model.User
	var rol model.Role
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.CI, &u.Nombre, &u.Correo, &u.Telefono, &u.PasswordHash,
		&u.FechaNac, &u.Direccion, &u.Experiencia, &u.Estado, &u.RoleID,
		&rol.ID, &rol.Nombre, &rol.Accesos)
	if err == sql.ErrNoRows {
		return model.User{}, model.Role{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, model.Role{}, err
	}
	return u, rol, nil
}

// ExistsCI reports whether a user with the given CI already exists.
func (r *UserRepo) ExistsCI(ctx context.Context, ci string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM usuario WHERE ci=? LIMIT 1", ci).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByRole returns all users holding the given role, ordered by name.
// Password hashes are included; handlers must sanitize before replying.
func (r *UserRepo) ListByRole(ctx context.Context, roleID uint64) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT ci, nombre, correo, telefono, contrasenia, fecha_nac, direccion, experiencia, estado, rol_id_rol FROM usuario WHERE rol_id_rol=? ORDER BY nombre",
		roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.CI, &u.Nombre, &u.Correo, &u.Telefono, &u.PasswordHash,
			&u.FechaNac, &u.Direccion, &u.Experiencia, &u.Estado, &u.RoleID); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update rewrites the mutable profile fields of a user identified by
// CI. Correo changes hit the unique index and map to ErrEmailExists.
func (r *UserRepo) Update(ctx context.Context, u model.User) error {
	u.Correo = strings.ToLower(strings.TrimSpace(u.Correo))
	res, err := r.DB.ExecContext(ctx,
		"UPDATE usuario SET nombre=?, correo=?, telefono=?, fecha_nac=?, direccion=?, experiencia=?, estado=? WHERE ci=?",
		u.Nombre, u.Correo, u.Telefono, u.FechaNac, u.Direccion, u.Experiencia, u.Estado, u.CI)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
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

// Delete removes a user by CI.
func (r *UserRepo) Delete(ctx context.Context, ci string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM usuario WHERE ci=?", ci)
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
