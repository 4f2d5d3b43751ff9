package model

import "strings"

// Well-known role identifiers matching the seeded rows of the `rol`
// table. Authorization middleware refers to roles by ID, never by
// display name, so renaming a role does not change who may do what.
const (
	RoleAdministrador uint64 = 1
	RoleDocente       uint64 = 2
	RoleEstudiante    uint64 = 3
)

// Role represents a row in the `rol` table. Accesos is stored as a
// comma-delimited string of permission names (e.g. "ver cursos,
// crear carreras"); semantically it is an unordered set. Use
// Permissions or HasPermission rather than reading Accesos directly.
//
// Fields:
//  ID      – rol.id_rol.
//  Nombre  – rol.rol (e.g. ADMINISTRADOR, DOCENTE, ESTUDIANTE).
//  Accesos – rol.accesos (comma-delimited permission names).
type Role struct {
	ID      uint64 // rol.id_rol
	Nombre  string // rol.rol
	Accesos string // rol.accesos
}

// Permissions splits the delimited accesses string into a slice of
// permission names. Each segment is trimmed and empty segments are
// dropped, so an empty or absent string yields an empty slice and a
// role that grants nothing.
func (r Role) Permissions() []string {
	if strings.TrimSpace(r.Accesos) == "" {
		return []string{}
	}
	parts := strings.Split(r.Accesos, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// HasPermission reports whether the role grants the named permission.
// Comparison is exact and case-sensitive after trimming; duplicates in
// the stored string are harmless.
func (r Role) HasPermission(permiso string) bool {
	permiso = strings.TrimSpace(permiso)
	for _, p := range r.Permissions() {
		if p == permiso {
			return true
		}
	}
	return false
}
