package utils

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Secr3t!", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Secr3t!" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !VerifyPassword(hash, "Secr3t!") {
		t.Fatal("expected matching password to verify")
	}
	if VerifyPassword(hash, "Secr3t?") {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestHashPasswordEmpty(t *testing.T) {
	if _, err := HashPassword("", bcrypt.MinCost); err != ErrEmptyPassword {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestVerifyPasswordNeverPanics(t *testing.T) {
	if VerifyPassword("", "whatever") {
		t.Fatal("empty hash must not verify")
	}
	if VerifyPassword("not-a-bcrypt-hash", "whatever") {
		t.Fatal("garbage hash must not verify")
	}
	if VerifyPassword("$2a$10$abcdefghijklmnopqrstuv", "") {
		t.Fatal("empty password must not verify")
	}
}

func TestCheckPasswordStrength(t *testing.T) {
	ok, violations := CheckPasswordStrength("Abc1!x")
	if !ok || len(violations) != 0 {
		t.Fatalf("expected strong password, got violations %v", violations)
	}

	// A weak password must report every violated rule at once, not
	// just the first one.
	ok, violations = CheckPasswordStrength("abc")
	if ok {
		t.Fatal("expected weak password to fail")
	}
	if len(violations) != 4 {
		t.Fatalf("expected 4 violations (length, upper, digit, symbol), got %d: %v", len(violations), violations)
	}

	ok, violations = CheckPasswordStrength("")
	if ok || len(violations) != 1 || !strings.Contains(violations[0], "requerida") {
		t.Fatalf("unexpected result for empty password: %v", violations)
	}
}
