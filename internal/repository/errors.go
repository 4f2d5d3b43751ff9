// Package repository defines error values shared across repositories.
// These sentinels let handlers map failure scenarios onto HTTP status
// codes without inspecting driver-specific errors: uniqueness
// violations become 409, missing rows become 404.
package repository

import "errors"

// ErrCIExists is returned when an insert would duplicate a CI, the
// natural primary key of the usuario table.
var ErrCIExists = errors.New("ci already exists")

// ErrEmailExists is returned when an insert or update would duplicate
// a correo.
var ErrEmailExists = errors.New("correo already exists")

// ErrNotFound is returned when a row expected to exist is missing.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state, such as creating a career whose code or name is
// already taken. Handlers should translate this into HTTP 409.
var ErrConflict = errors.New("conflict")
