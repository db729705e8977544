// Package services holds the business logic layer.
//
// The Service Layer sits between the handlers (HTTP) and the
// repositories (DB). Every business rule lives here:
//   - password hashing
//   - token issuing and verification
//   - permission checks
//
// A service NEVER touches http.Request/Response — it takes and returns
// domain models only. A service NEVER runs SQL directly — it goes
// through the repository interfaces.
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/pkg"
	"github.com/irisedu/iris/pkg/cache"
	"github.com/irisedu/iris/pkg/email"
	"github.com/irisedu/iris/pkg/token"
	"github.com/irisedu/iris/repository"
)

// resetTokenTTL bounds how long a password reset link stays usable.
const resetTokenTTL = 30 * time.Minute

// forgotCooldown throttles repeated reset emails to one address.
const forgotCooldown = 2 * time.Minute

// AuthService is the public API of the auth layer. Handlers depend on
// this interface, not on the concrete struct.
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*AuthTokens, error)

	// Verify checks an access token and returns its claims. It is pure
	// signature-and-expiry verification — no database involved — so the
	// hot path (every authenticated request) costs no I/O.
	Verify(raw string) (*token.Claims, error)

	// Logout revokes the session of the given access token. It never
	// reports whether a session actually matched.
	Logout(ctx context.Context, accessToken string) error

	// Refresh exchanges a valid refresh token for a fresh token pair.
	Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error)

	// ForgotPassword emails a reset link. It gives no indication of
	// whether the address belongs to an account.
	ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error

	// ResetPassword consumes a reset token, sets the new password, and
	// revokes every active session of the user.
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error
}

// AuthTokens is the pair returned after a successful login or refresh.
type AuthTokens struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         models.User `json:"user"`
}

// authService implements AuthService.
type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	resetRepo   repository.ResetTokenRepository
	codec       *token.Codec
	mailer      email.EmailSender

	// forgotCooldowns remembers addresses that were recently sent a reset
	// email, so a stuck retry button does not drain the email quota.
	forgotCooldowns *cache.TTLCache[string, time.Time]
}

// NewAuthService wires the auth service. mailer may be nil, in which
// case ForgotPassword logs instead of sending (local development).
func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	resetRepo repository.ResetTokenRepository,
	codec *token.Codec,
	mailer email.EmailSender,
) AuthService {
	return &authService{
		userRepo:        userRepo,
		sessionRepo:     sessionRepo,
		resetRepo:       resetRepo,
		codec:           codec,
		mailer:          mailer,
		forgotCooldowns: cache.New[string, time.Time](forgotCooldown, time.Minute),
	}
}

// Login checks the credentials and issues a token pair.
//
// Wrong email and wrong password produce the same error on purpose:
// distinguishing them would let an attacker probe which addresses have
// accounts.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*AuthTokens, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: credenciales inválidas", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: credenciales inválidas", pkg.ErrUnauthorized)
	}

	return s.issueTokens(ctx, user)
}

// Verify validates an access token. Every failure mode — bad signature,
// expired, wrong kind, garbage input — collapses into the same error so
// callers (and clients) learn nothing beyond "not valid".
func (s *authService) Verify(raw string) (*token.Claims, error) {
	return s.codec.Verify(raw, token.KindAccess)
}

// Logout revokes the session matching the access token.
//
// The revocation is best-effort and deliberately silent: whether the
// token matched a live session, an already-revoked one, or nothing at
// all, the caller gets nil. Logout must always succeed from the client's
// point of view, and the response must not leak session state.
func (s *authService) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}

	n, err := s.sessionRepo.Revoke(ctx, token.Hash(accessToken), "logout")
	if err != nil {
		return err
	}
	if n == 0 {
		log.Printf("[auth] logout with no matching active session")
	}
	return nil
}

// Refresh exchanges a refresh token for a new pair. The refresh token is
// a signed stateless JWT under its own secret; the new access token gets
// its own session row, so the old access token can still be revoked
// independently.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	claims, err := s.codec.Verify(refreshToken, token.KindRefresh)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			// Account deleted after the token was issued.
			return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// ForgotPassword starts the email reset flow.
//
// The response is identical whether or not the address has an account —
// enumeration through this endpoint must not be possible. Unknown
// addresses are only logged server-side.
func (s *authService) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if _, recently := s.forgotCooldowns.Get(req.Email); recently {
		// Silently skip: the earlier email is still on its way.
		return nil
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			log.Printf("[auth] password reset requested for unknown address")
			return nil
		}
		return err
	}

	// One outstanding token per user: a new request invalidates the old
	// link.
	if err := s.resetRepo.DeleteByUserID(ctx, user.ID); err != nil {
		return err
	}

	raw, err := randomToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	reset := &models.PasswordResetToken{
		TokenHash: token.Hash(raw),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(resetTokenTTL),
		CreatedAt: time.Now(),
	}
	if err := s.resetRepo.Create(ctx, reset); err != nil {
		return err
	}

	s.forgotCooldowns.Set(req.Email, time.Now())

	if s.mailer == nil {
		log.Printf("[auth] no mailer configured, reset token for %s: %s", user.Email, raw)
		return nil
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, raw); err != nil {
		// The token row exists; the user can retry after the cooldown.
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token and sets the new password.
// Every active session of the user is revoked — whoever triggered the
// reset is the only one left with a way in.
func (s *authService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	reset, err := s.resetRepo.GetByTokenHash(ctx, token.Hash(req.Token))
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return fmt.Errorf("%w: enlace inválido o expirado", pkg.ErrUnauthorized)
		}
		return err
	}

	if time.Now().After(reset.ExpiresAt) {
		if delErr := s.resetRepo.Delete(ctx, reset.TokenHash); delErr != nil {
			return delErr
		}
		return fmt.Errorf("%w: enlace inválido o expirado", pkg.ErrUnauthorized)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, reset.UserID, string(hash)); err != nil {
		return err
	}

	// Consume the token; a reset link works once.
	if err := s.resetRepo.Delete(ctx, reset.TokenHash); err != nil {
		return err
	}

	return s.sessionRepo.RevokeAllForUser(ctx, reset.UserID, "password_reset")
}

// ─── Private Helpers ───

// issueTokens creates a token pair and records the access token's
// session row. Only the SHA-256 digest of the access token is stored.
func (s *authService) issueTokens(ctx context.Context, user *models.User) (*AuthTokens, error) {
	access, err := s.codec.Issue(user.ID, token.KindAccess)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := s.codec.Issue(user.ID, token.KindRefresh)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	session := &models.Session{
		TokenHash: token.Hash(access),
		UserID:    user.ID,
		IsActive:  true,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         *user,
	}, nil
}

// randomToken returns 32 bytes of crypto randomness, hex-encoded.
func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
