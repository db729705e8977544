package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/irisedu/iris/handlers"
	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/pkg"
	"github.com/irisedu/iris/pkg/token"
	"github.com/irisedu/iris/services"
)

// fakeAuthService counts Verify calls so tests can assert that rejected
// requests never reach verification at all.
type fakeAuthService struct {
	verifyCalls atomic.Int64
	validToken  string
	userID      string
}

func (f *fakeAuthService) Verify(raw string) (*token.Claims, error) {
	f.verifyCalls.Add(1)
	if raw == f.validToken {
		return &token.Claims{UserID: f.userID, Kind: token.KindAccess}, nil
	}
	return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
}

func (f *fakeAuthService) Login(ctx context.Context, req *models.LoginRequest) (*services.AuthTokens, error) {
	return nil, nil
}
func (f *fakeAuthService) Logout(ctx context.Context, accessToken string) error { return nil }
func (f *fakeAuthService) Refresh(ctx context.Context, refreshToken string) (*services.AuthTokens, error) {
	return nil, nil
}
func (f *fakeAuthService) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error {
	return nil
}
func (f *fakeAuthService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	return nil
}

// echoUserID is the downstream handler: it writes whatever user ID the
// middleware put in the context.
func echoUserID(t *testing.T) (http.Handler, *string) {
	t.Helper()
	var captured string
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = r.Context().Value(handlers.UserIDContextKey).(string)
		w.WriteHeader(http.StatusOK)
	}), &captured
}

func TestRequireRejectsWithoutVerifying(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no header, no cookie", ""},
		{"malformed: no Bearer prefix", "tok123"},
		{"malformed: wrong scheme", "Basic dXNlcjpwYXNz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthService{validToken: "good", userID: "user-1"}
			mw := NewAuthMiddleware(fake)
			next, captured := echoUserID(t)

			req := httptest.NewRequest(http.MethodGet, "/api/workspaces", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			mw.Require(next).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			var body pkg.ErrorBody
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error != "unauthorized" {
				t.Errorf("body = %q, want the uniform unauthorized message", body.Error)
			}
			// Rejection happens before verification: missing and
			// malformed are indistinguishable and cost nothing.
			if n := fake.verifyCalls.Load(); n != 0 {
				t.Errorf("Verify called %d times, want 0", n)
			}
			if *captured != "" {
				t.Error("next handler ran on a rejected request")
			}
		})
	}
}

func TestRequireInvalidToken(t *testing.T) {
	fake := &fakeAuthService{validToken: "good", userID: "user-1"}
	mw := NewAuthMiddleware(fake)
	next, _ := echoUserID(t)

	req := httptest.NewRequest(http.MethodGet, "/api/workspaces", nil)
	req.Header.Set("Authorization", "Bearer tampered")
	rec := httptest.NewRecorder()

	mw.Require(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if fake.verifyCalls.Load() != 1 {
		t.Error("a well-formed Bearer token should reach Verify")
	}
}

func TestRequireAcceptsHeaderToken(t *testing.T) {
	fake := &fakeAuthService{validToken: "good", userID: "user-1"}
	mw := NewAuthMiddleware(fake)
	next, captured := echoUserID(t)

	req := httptest.NewRequest(http.MethodGet, "/api/workspaces", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()

	mw.Require(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if *captured != "user-1" {
		t.Errorf("context user = %q, want user-1", *captured)
	}
}

func TestRequireFallsBackToCookie(t *testing.T) {
	fake := &fakeAuthService{validToken: "good", userID: "user-1"}
	mw := NewAuthMiddleware(fake)
	next, captured := echoUserID(t)

	req := httptest.NewRequest(http.MethodGet, "/api/workspaces", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "good"})
	rec := httptest.NewRecorder()

	mw.Require(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if *captured != "user-1" {
		t.Errorf("context user = %q, want user-1", *captured)
	}
}

// The header wins over the cookie — a malformed header is a rejection
// even when a perfectly good cookie is present.
func TestRequireHeaderTakesPrecedence(t *testing.T) {
	fake := &fakeAuthService{validToken: "good", userID: "user-1"}
	mw := NewAuthMiddleware(fake)
	next, _ := echoUserID(t)

	req := httptest.NewRequest(http.MethodGet, "/api/workspaces", nil)
	req.Header.Set("Authorization", "malformed")
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "good"})
	rec := httptest.NewRecorder()

	mw.Require(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if fake.verifyCalls.Load() != 0 {
		t.Error("malformed header with valid cookie must not reach Verify")
	}
}
