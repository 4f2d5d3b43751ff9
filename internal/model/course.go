package model

// Course represents a row in the `materia` table. A course belongs to
// one career, is taught by one user (the docente, referenced by CI)
// and takes place in one classroom. Times are stored as HH:MM strings
// and dates as YYYY-MM-DD strings, matching the column types.
//
// Fields:
//  ID            – materia.id_materia.
//  DocenteCI     – materia.usuario_ci (CI of the teaching docente).
//  CarreraCodigo – materia.carrera_codigo.
//  Nombre        – materia.nombre (unique within a career).
//  Tipo          – materia.tipo (e.g. "obligatoria", "electiva").
//  Cupo          – materia.cupo (seat capacity).
//  Dia           – materia.dia (weekday name).
//  HoraInicio    – materia.hora_inicio (HH:MM).
//  HoraFin       – materia.hora_fin (HH:MM).
//  FechaInicio   – materia.fecha_inicio (YYYY-MM-DD).
//  FechaFin      – materia.fecha_fin (YYYY-MM-DD).
//  Monto         – materia.monto (fee, in whole currency units).
//  AulaID        – materia.aula_id_aula.
type Course struct {
	ID            uint64 `json:"id_materia"`     // materia.id_materia
	DocenteCI     string `json:"usuario_ci"`     // materia.usuario_ci
	CarreraCodigo string `json:"carrera_codigo"` // materia.carrera_codigo
	Nombre        string `json:"nombre"`         // materia.nombre
	Tipo          string `json:"tipo"`           // materia.tipo
	Cupo          int    `json:"cupo"`           // materia.cupo
	Dia           string `json:"dia"`            // materia.dia
	HoraInicio    string `json:"hora_inicio"`    // materia.hora_inicio
	HoraFin       string `json:"hora_fin"`       // materia.hora_fin
	FechaInicio   string `json:"fecha_inicio"`   // materia.fecha_inicio
	FechaFin      string `json:"fecha_fin"`      // materia.fecha_fin
	Monto         int    `json:"monto"`          // materia.monto
	AulaID        uint64 `json:"aula_id_aula"`   // materia.aula_id_aula
}

// Classroom represents a row in the `aula` table.
type Classroom struct {
	ID     uint64 `json:"id_aula"` // aula.id_aula
	Nombre string `json:"nombre"`  // aula.nombre
}
