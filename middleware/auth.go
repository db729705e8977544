// Package middleware holds the layers a request passes through before
// reaching its handler.
//
// A middleware in Go is a function:
//
//	func(next http.Handler) http.Handler
//
// It does its own work (verify a token, check a role), then calls next.
// On failure it writes the error and never calls next — the request
// stops there.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/irisedu/iris/handlers"
	"github.com/irisedu/iris/pkg"
	"github.com/irisedu/iris/services"
)

// accessTokenCookie is the cookie the web client keeps the access token
// in. The Authorization header wins when both are present.
const accessTokenCookie = "accessToken"

// AuthMiddleware verifies access tokens and hangs the caller's user ID
// on the request context.
type AuthMiddleware struct {
	authService services.AuthService
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Require rejects requests without a valid access token.
//
// The token is taken from `Authorization: Bearer <token>` or, failing
// that, from the accessToken cookie. A missing header and a malformed
// one are treated identically — same status, same body, and neither
// touches the database — so a probing client cannot tell which rule it
// tripped.
//
// Verification is pure JWT work (signature + expiry). No user row is
// loaded here: handlers get the user ID from the context and fetch the
// profile only when they actually need it.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractToken(r)
		if raw == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		claims, err := m.authService.Verify(raw)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), handlers.UserIDContextKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken pulls the raw token out of the request. Returns "" when
// nothing usable is present, including a malformed Authorization header.
func extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return ""
		}
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	if cookie, err := r.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}
