package model

import (
	"reflect"
	"testing"
)

func TestRolePermissionsSplitsAndTrims(t *testing.T) {
	r := Role{ID: 2, Nombre: "DOCENTE", Accesos: "ver cursos, crear carreras ,editar cursos"}
	got := r.Permissions()
	want := []string{"ver cursos", "crear carreras", "editar cursos"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Permissions() = %v, want %v", got, want)
	}
}

func TestRolePermissionsEmpty(t *testing.T) {
	for _, accesos := range []string{"", "   ", ",", " , , "} {
		r := Role{Accesos: accesos}
		if got := r.Permissions(); len(got) != 0 {
			t.Fatalf("Permissions(%q) = %v, want empty", accesos, got)
		}
	}
}

func TestRoleHasPermission(t *testing.T) {
	r := Role{Accesos: "a, b ,c"}
	if !r.HasPermission("b") {
		t.Fatal(`expected "b" to be granted`)
	}
	if !r.HasPermission(" b ") {
		t.Fatal("expected lookup to trim its argument")
	}
	if r.HasPermission("B") {
		t.Fatal("permission comparison must be case-sensitive")
	}
	if (Role{}).HasPermission("a") {
		t.Fatal("empty accesses must grant nothing")
	}
}
