package di

import (
	"log/slog"

	"whisper_backend/internal/feature/auth/usecase"
	"whisper_backend/internal/platform/mail"
)

// NewMailer creates a VerificationMailer implementation.
// If no SMTP relay is configured, verification codes are logged instead
// so that local development does not require a mail server.
func NewMailer() usecase.VerificationMailer {
	m, err := mail.NewSMTPMailerFromEnv()
	if err != nil {
		slog.Warn("SMTP unavailable, logging verification codes instead", "error", err)
		return mail.LogMailer{}
	}
	return m
}
