// Package email provides the outbound email abstraction.
//
// Services depend on the EmailSender interface, not on the concrete Resend
// implementation — swapping providers later means one new constructor.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// EmailSender sends transactional mail.
type EmailSender interface {
	// SendPasswordReset emails a reset link to toEmail.
	// token is the plaintext reset token embedded in the link; only its
	// SHA-256 digest is stored server-side.
	SendPasswordReset(ctx context.Context, toEmail, token string) error
}

// resendSender is the Resend-backed EmailSender.
type resendSender struct {
	client    *resend.Client
	fromEmail string // sender address, must live under a verified Resend domain
	appURL    string // public frontend URL, used to build reset links
}

// NewResendSender builds an EmailSender over the Resend API.
func NewResendSender(apiKey, fromEmail, appURL string) EmailSender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		appURL:    appURL,
	}
}

// SendPasswordReset sends the reset email.
// Link format: {appURL}/reset-password?token={token}; the frontend reads the
// token from the URL and posts it to /api/auth/reset-password.
func (s *resendSender) SendPasswordReset(ctx context.Context, toEmail, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.appURL, token)
	html := resetEmailHTML(resetLink)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("IRIS <%s>", s.fromEmail),
		To:      []string{toEmail},
		Subject: "Restablece tu contraseña — IRIS",
		Html:    html,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

// resetEmailHTML renders the reset email body. The expiry copy must
// match the server-side reset token TTL (30 minutes).
func resetEmailHTML(resetLink string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f4f5f7;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#f4f5f7;padding:40px 0;">
    <tr>
      <td align="center">
        <table width="480" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="color:#1f2937;font-size:24px;margin:0 0 8px 0;">IRIS</h1>
              <h2 style="color:#1f2937;font-size:18px;margin:0 0 24px 0;">Restablecer contraseña</h2>
              <p style="color:#4b5563;font-size:15px;line-height:1.6;margin:0 0 24px 0;">
                Recibimos una solicitud para restablecer tu contraseña. Haz clic en el botón para elegir una nueva.
              </p>
              <table cellpadding="0" cellspacing="0" style="margin:0 0 24px 0;">
                <tr>
                  <td style="background-color:#6366f1;border-radius:6px;padding:12px 32px;">
                    <a href="%s" style="color:#ffffff;text-decoration:none;font-size:15px;font-weight:600;">
                      Restablecer contraseña
                    </a>
                  </td>
                </tr>
              </table>
              <p style="color:#6b7280;font-size:13px;line-height:1.6;margin:0 0 16px 0;">
                Este enlace expira en 30 minutos. Si no solicitaste el cambio, puedes ignorar este correo.
              </p>
              <p style="color:#9ca3af;font-size:13px;line-height:1.6;margin:0;word-break:break-all;">
                Si el botón no funciona, copia y pega este enlace:<br>
                <a href="%s" style="color:#6366f1;">%s</a>
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, resetLink, resetLink, resetLink)
}
