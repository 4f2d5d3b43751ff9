package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "unit-test-secret"

func TestNewTokenRoundTrip(t *testing.T) {
	signed, exp, err := NewToken(testSecret, "12345678", "a@b.com", "Ana", RoleClaim{ID: 2, Nombre: "DOCENTE"})
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	if until := time.Until(exp); until < 23*time.Hour || until > 24*time.Hour {
		t.Fatalf("expected ~24h lifetime, got %v", until)
	}

	claims := ParseToken(testSecret, signed)
	if claims == nil {
		t.Fatal("expected freshly issued token to parse")
	}
	if claims.CI != "12345678" || claims.Correo != "a@b.com" || claims.Nombre != "Ana" {
		t.Fatalf("identity claims not preserved: %+v", claims)
	}
	if claims.Rol.ID != 2 || claims.Rol.Nombre != "DOCENTE" {
		t.Fatalf("role claims not preserved: %+v", claims.Rol)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatal("registered timestamps missing")
	}
}

func TestNewTokenRequiresSecret(t *testing.T) {
	if _, _, err := NewToken("", "12345678", "a@b.com", "Ana", RoleClaim{}); err != ErrNoSecret {
		t.Fatalf("expected ErrNoSecret, got %v", err)
	}
}

func TestParseTokenFailuresAreUniform(t *testing.T) {
	signed, _, err := NewToken(testSecret, "12345678", "a@b.com", "Ana", RoleClaim{ID: 3, Nombre: "ESTUDIANTE"})
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	if ParseToken(testSecret, "") != nil {
		t.Fatal("empty token must not parse")
	}
	if ParseToken(testSecret, "not.a.jwt") != nil {
		t.Fatal("malformed token must not parse")
	}
	if ParseToken("other-secret", signed) != nil {
		t.Fatal("token signed with a different secret must not parse")
	}
	if ParseToken(testSecret, signed+"x") != nil {
		t.Fatal("tampered token must not parse")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	// Hand-build a token whose expiry is already in the past; NewToken
	// cannot produce one.
	now := time.Now().UTC()
	claims := Claims{
		CI:     "12345678",
		Correo: "a@b.com",
		Nombre: "Ana",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-25 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if ParseToken(testSecret, signed) != nil {
		t.Fatal("expired token must not parse")
	}
}

func TestParseTokenRejectsWrongAlgorithm(t *testing.T) {
	// "none" algorithm tokens must be rejected even with a valid shape.
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{CI: "12345678"})
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if ParseToken(testSecret, signed) != nil {
		t.Fatal("unsigned token must not parse")
	}
}
