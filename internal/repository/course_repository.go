package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/academic-records/internal/model"
)

// CourseRepo provides access to the `materia` and `aula` tables.
type CourseRepo struct{ DB *sql.DB }

func NewCourseRepo(db *sql.DB) *CourseRepo { return &CourseRepo{DB: db} }

const courseColumns = "id_materia, usuario_ci, carrera_codigo, nombre, tipo, cupo, dia, hora_inicio, hora_fin, fecha_inicio, fecha_fin, monto, aula_id_aula"

// Create inserts a course and returns its generated id.
func (r *CourseRepo) Create(ctx context.Context, c model.Course) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO materia (usuario_ci, carrera_codigo, nombre, tipo, cupo, dia, hora_inicio, hora_fin, fecha_inicio, fecha_fin, monto, aula_id_aula) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)",
		c.DocenteCI, c.CarreraCodigo, c.Nombre, c.Tipo, c.Cupo, c.Dia,
		c.HoraInicio, c.HoraFin, c.FechaInicio, c.FechaFin, c.Monto, c.AulaID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// List returns all courses ordered by career then name.
func (r *CourseRepo) List(ctx context.Context) ([]model.Course, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+courseColumns+" FROM materia ORDER BY carrera_codigo, nombre")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Course
	for rows.Next() {
		var c model.Course
		if err := scanCourse(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID fetches a course by id.
func (r *CourseRepo) GetByID(ctx context.Context, id uint64) (model.Course, error) {
	var c model.Course
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+courseColumns+" FROM materia WHERE id_materia=? LIMIT 1", id).
		Scan(&c.ID, &c.DocenteCI, &c.CarreraCodigo, &c.Nombre, &c.Tipo, &c.Cupo, &c.Dia,
			&c.HoraInicio, &c.HoraFin, &c.FechaInicio, &c.FechaFin, &c.Monto, &c.AulaID)
	if err == sql.ErrNoRows {
		return model.Course{}, ErrNotFound
	}
	return c, err
}

// NameTakenInCareer reports whether another course in the same career
// already uses the given name. exceptID skips the course being updated;
// pass 0 on create.
func (r *CourseRepo) NameTakenInCareer(ctx context.Context, nombre, carreraCodigo string, exceptID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM materia WHERE carrera_codigo=? AND LOWER(nombre)=LOWER(?) AND id_materia<>? LIMIT 1",
		carreraCodigo, nombre, exceptID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Update rewrites a course by id.
func (r *CourseRepo) Update(ctx context.Context, c model.Course) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE materia SET usuario_ci=?, carrera_codigo=?, nombre=?, tipo=?, cupo=?, dia=?, hora_inicio=?, hora_fin=?, fecha_inicio=?, fecha_fin=?, monto=?, aula_id_aula=? WHERE id_materia=?",
		c.DocenteCI, c.CarreraCodigo, c.Nombre, c.Tipo, c.Cupo, c.Dia,
		c.HoraInicio, c.HoraFin, c.FechaInicio, c.FechaFin, c.Monto, c.AulaID, c.ID)
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

// Delete removes a course by id.
func (r *CourseRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM materia WHERE id_materia=?", id)
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

// ClassroomExists reports whether the aula with the given id exists.
func (r *CourseRepo) ClassroomExists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM aula WHERE id_aula=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func scanCourse(rows *sql.Rows, c *model.Course) error {
	return rows.Scan(&c.ID, &c.DocenteCI, &c.CarreraCodigo, &c.Nombre, &c.Tipo, &c.Cupo, &c.Dia,
		&c.HoraInicio, &c.HoraFin, &c.FechaInicio, &c.FechaFin, &c.Monto, &c.AulaID)
}
