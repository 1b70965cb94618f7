package mail

import (
	"context"
	"log/slog"
)

// LogMailer logs verification codes instead of sending email.
// It is used when no SMTP relay is configured (local development).
type LogMailer struct{}

// SendVerificationEmail logs the code that would have been mailed.
func (LogMailer) SendVerificationEmail(ctx context.Context, email, username, code string) error {
	slog.Info("verification email (not sent, SMTP unconfigured)",
		"email", email, "username", username, "code", code)
	return nil
}
