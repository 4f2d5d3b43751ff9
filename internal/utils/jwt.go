package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// TokenTTL is the fixed lifetime of an access token. Sessions are not
// backed by any server-side table; a token simply stops validating 24
// hours after issuance and the client must log in again.
const TokenTTL = 24 * time.Hour

// ErrNoSecret is returned when a token is requested but no signing
// secret was configured.
var ErrNoSecret = errors.New("jwt signing secret is not configured")

// RoleClaim is the role summary embedded in a token: just the id and
// display name, never the permission list. Permissions are always
// re-read from the database at check time so that a role edit takes
// effect without forcing a re-login.
type RoleClaim struct {
	ID     uint64 `json:"id"`
	Nombre string `json:"nombre"`
}

// Claims is the JWT payload for an authenticated user. It carries the
// identity snapshot taken at login: CI (the natural primary key),
// email, display name and role summary, plus the registered issued-at
// and expiry fields. A later change to the user record is not
// reflected in an already-issued token.
type Claims struct {
	CI     string    `json:"ci"`
	Correo string    `json:"correo"`
	Nombre string    `json:"nombre"`
	Rol    RoleClaim `json:"rol"`
	jwt.RegisteredClaims
}

// NewToken builds and signs an HS256 JWT for a user. Expiry is fixed
// at TokenTTL from now. It returns the serialized token together with
// its expiration time.
func NewToken(secret, ci, correo, nombre string, rol RoleClaim) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, ErrNoSecret
	}
	now := time.Now().UTC()
	exp := now.Add(TokenTTL)
	claims := Claims{
		CI:     ci,
		Correo: correo,
		Nombre: nombre,
		Rol:    rol,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseToken validates a serialized token's signature and expiry and
// returns its claims. It returns nil on any failure: malformed input,
// wrong signing algorithm, bad signature or expired token. Callers
// must treat nil uniformly as "unauthenticated"; the reason is
// deliberately not surfaced so clients cannot probe which check
// failed.
func ParseToken(secret, raw string) *Claims {
	raw = strings.TrimSpace(raw)
	if secret == "" || raw == "" {
		return nil
	}
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything other than HMAC so a
		// crafted "alg" header cannot bypass verification.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || claims.CI == "" {
		return nil
	}
	return claims
}
