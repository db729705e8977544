package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/pkg"
	"github.com/irisedu/iris/pkg/ratelimit"
	"github.com/irisedu/iris/services"
)

// accessTokenCookie mirrors the cookie name the auth middleware reads.
const accessTokenCookie = "accessToken"

// AuthHandler serves the auth endpoints.
type AuthHandler struct {
	authService  services.AuthService
	userService  services.UserService
	loginLimiter *ratelimit.LoginRateLimiter
}

// NewAuthHandler, constructor.
// loginLimiter guards Login against brute force; nil disables limiting.
func NewAuthHandler(authService services.AuthService, userService services.UserService, loginLimiter *ratelimit.LoginRateLimiter) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		userService:  userService,
		loginLimiter: loginLimiter,
	}
}

// Login godoc
// POST /api/auth/login
//
// Rate limiting is per IP: too many attempts inside the window → 429
// with a Retry-After header. A successful login resets the counter so a
// legitimate user is never locked out by their own typos.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if h.loginLimiter != nil && !h.loginLimiter.Allow(ip) {
		retryAfter := h.loginLimiter.RetryAfterSeconds(ip)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
			fmt.Sprintf("demasiados intentos, intenta de nuevo en %s",
				ratelimit.FormatRetryMessage(retryAfter)))
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if h.loginLimiter != nil {
		h.loginLimiter.Reset(ip)
	}

	setAccessCookie(w, tokens.AccessToken)
	pkg.JSON(w, http.StatusOK, tokens)
}

// Refresh godoc
// POST /api/auth/refresh
// Body: { "refreshToken": "..." }
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	setAccessCookie(w, tokens.AccessToken)
	pkg.JSON(w, http.StatusOK, tokens)
}

// Logout godoc
// POST /api/auth/logout
//
// Always answers {success:true} and clears the cookie. Whether the
// token matched a live session, a revoked one, or nothing is invisible
// to the client — and a second logout with the same token behaves
// identically to the first. Revocation errors are logged server-side;
// from the client's perspective logging out cannot fail.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if raw := requestToken(r); raw != "" {
		if err := h.authService.Logout(r.Context(), raw); err != nil {
			log.Printf("[auth] logout revocation failed: %v", err)
		}
	}

	clearAccessCookie(w)
	pkg.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Me godoc
// GET /api/users/me
// The auth middleware only puts the user ID in the context; the profile
// is loaded here, on the one endpoint that needs it.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDContextKey).(string)
	if !ok || userID == "" {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, user)
}

// ForgotPassword godoc
// POST /api/auth/forgot-password
// The answer is the same whether or not the address has an account.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.ForgotPassword(r.Context(), &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{
		"message": "Si el correo existe, recibirás un enlace para restablecer tu contraseña",
	})
}

// ResetPassword godoc
// POST /api/auth/reset-password
// Body: { "token": "...", "newPassword": "..." }
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.ResetPassword(r.Context(), &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{
		"message": "Contraseña actualizada",
	})
}

// ─── Cookie Helpers ───

func setAccessCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearAccessCookie overwrites the cookie with an empty value and
// MaxAge -1, which tells the browser to drop it immediately.
func clearAccessCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// requestToken mirrors the middleware's extraction: Authorization
// header first, accessToken cookie second.
func requestToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		const prefix = "Bearer "
		if len(authHeader) > len(prefix) && authHeader[:len(prefix)] == prefix {
			return authHeader[len(prefix):]
		}
		return ""
	}
	if cookie, err := r.Cookie(accessTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}
