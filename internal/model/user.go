package model

import "time"

// User represents a row in the `usuario` table. The natural primary
// key is the CI (cédula de identidad), a national ID string. Every
// user references exactly one role via RoleID. The password is only
// ever stored as a bcrypt hash in the `contrasenia` column.
//
// Fields:
//  CI           – usuario.ci (natural primary key, national ID string).
//  Nombre       – usuario.nombre (display name).
//  Correo       – usuario.correo (unique email).
//  Telefono     – usuario.telefono (nullable phone number).
//  PasswordHash – usuario.contrasenia (bcrypt hash).
//  FechaNac     – usuario.fecha_nac (nullable date of birth, YYYY-MM-DD).
//  Direccion    – usuario.direccion (nullable address).
//  Experiencia  – usuario.experiencia (nullable, teaching experience notes).
//  Estado       – usuario.estado (active flag; inactive users cannot log in).
//  RoleID       – usuario.rol_id_rol (references rol.id_rol).
//  CreatedAt    – usuario.created_at.
//  UpdatedAt    – usuario.updated_at.
type User struct {
	CI           string    // usuario.ci
	Nombre       string    // usuario.nombre
	Correo       string    // usuario.correo
	Telefono     *string   // usuario.telefono (nullable)
	PasswordHash string    // usuario.contrasenia
	FechaNac     *string   // usuario.fecha_nac (nullable)
	Direccion    *string   // usuario.direccion (nullable)
	Experiencia  *string   // usuario.experiencia (nullable)
	Estado       bool      // usuario.estado
	RoleID       uint64    // usuario.rol_id_rol
	CreatedAt    time.Time // usuario.created_at
	UpdatedAt    time.Time // usuario.updated_at
}
