// Package token implements the token codec: issuing, verifying and hashing
// the signed bearer tokens that carry a session.
//
// Two token kinds exist:
//   - access: short-lived (minutes), presented on every API request
//   - refresh: long-lived (days), exchanged for a fresh pair without
//     re-entering credentials
//
// Each kind is signed with its own HS256 secret, so an access token can
// never be replayed as a refresh token or vice versa.
//
// The codec is pure: no I/O, no shared mutable state. The process-wide
// secrets are captured once at construction.
package token

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/irisedu/iris/pkg"
)

// Kind distinguishes access tokens from refresh tokens.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Claims is the JWT payload: the subject user plus the token kind.
// RegisteredClaims carries iat/exp, which jwt/v5 validates on parse.
type Claims struct {
	UserID string `json:"user_id"`
	Kind   Kind   `json:"kind"`
	jwt.RegisteredClaims
}

// Codec issues and verifies signed tokens. Construct once at startup and
// share freely — all fields are read-only after construction.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewCodec builds a Codec.
// accessExpMinutes / refreshExpDays are the default TTL per kind.
func NewCodec(accessSecret, refreshSecret string, accessExpMinutes, refreshExpDays int) *Codec {
	return &Codec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     time.Duration(accessExpMinutes) * time.Minute,
		refreshTTL:    time.Duration(refreshExpDays) * 24 * time.Hour,
	}
}

// Issue creates a signed token of the given kind with its default TTL.
func (c *Codec) Issue(userID string, kind Kind) (string, error) {
	return c.IssueWithTTL(userID, kind, c.ttl(kind))
}

// IssueWithTTL creates a signed token with an explicit TTL.
// Expiry is now + ttl; a non-positive ttl produces an already-expired token.
func (c *Codec) IssueWithTTL(userID string, kind Kind, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			// The jti makes every token unique even when two are issued
			// for the same user within the same second. Sessions are
			// keyed by the token's hash, so uniqueness here is what keeps
			// concurrent logins from colliding on the same session row.
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
			Issuer:    "iris",
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret(kind))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify checks signature and expiry for a token of the expected kind.
//
// Every failure mode — bad signature, expired, wrong kind, garbage input —
// collapses into the same "invalid token" error so a caller (or attacker)
// cannot tell which check rejected the token.
//
// Expiry is strict: a token whose exp equals the current second is already
// expired (jwt/v5 validates now < exp with zero leeway).
func (c *Codec) Verify(raw string, kind Kind) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret(kind), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Kind != kind {
		return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}

	return claims, nil
}

// Hash returns the SHA-256 hex digest of a raw token.
// Sessions are stored under this digest so the database never holds a
// usable credential; the digest only serves as a lookup key.
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (c *Codec) secret(kind Kind) []byte {
	if kind == KindRefresh {
		return c.refreshSecret
	}
	return c.accessSecret
}

func (c *Codec) ttl(kind Kind) time.Duration {
	if kind == KindRefresh {
		return c.refreshTTL
	}
	return c.accessTTL
}
