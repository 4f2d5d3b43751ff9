package model

// Career represents a row in the `carrera` table. Careers are keyed
// by a short unique code (e.g. "INF-187"); both the code and the name
// must be unique across the table.
//
// Fields:
//  Codigo      – carrera.codigo (unique short code, primary key).
//  Nombre      – carrera.nombre (unique display name).
//  Descripcion – carrera.descripcion.
//  Duracion    – carrera.duracion (length of the programme in semesters).
type Career struct {
	Codigo      string `json:"codigo"`      // carrera.codigo
	Nombre      string `json:"nombre"`      // carrera.nombre
	Descripcion string `json:"descripcion"` // carrera.descripcion
	Duracion    int    `json:"duracion"`    // carrera.duracion
}
