package utils

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned by HashPassword when given an empty string.
var ErrEmptyPassword = errors.New("password is required")

// passwordSymbols is the punctuation set accepted by the strength check.
const passwordSymbols = "!@#$%^&*"

// HashPassword returns a bcrypt hash of plain using the given cost.
// An empty password is rejected before any hashing work is done.
func HashPassword(plain string, cost int) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares a bcrypt hash and a plain password.
// It never returns an error: any failure, including missing arguments,
// reads as a mismatch.
func VerifyPassword(hash, plain string) bool {
	if hash == "" || plain == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// CheckPasswordStrength validates a plaintext password against the
// account policy: at least 6 characters, one uppercase letter, one
// lowercase letter, one digit and one symbol from passwordSymbols.
// Every violated rule is reported so the client can show the complete
// list instead of fixing one rule per round trip.
func CheckPasswordStrength(plain string) (bool, []string) {
	violations := []string{}
	if plain == "" {
		return false, []string{"La contraseña es requerida"}
	}
	if len(plain) < 6 {
		violations = append(violations, "La contraseña debe tener al menos 6 caracteres")
	}
	var upper, lower, digit, symbol bool
	for _, r := range plain {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	if !upper {
		violations = append(violations, "La contraseña debe contener al menos una letra mayúscula")
	}
	if !lower {
		violations = append(violations, "La contraseña debe contener al menos una letra minúscula")
	}
	if !digit {
		violations = append(violations, "La contraseña debe contener al menos un número")
	}
	if !symbol {
		violations = append(violations, "La contraseña debe contener al menos un carácter especial (!@#$%^&*)")
	}
	return len(violations) == 0, violations
}
