// Package mail provides outbound transactional email delivery.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"os"
)

// SMTPMailer sends verification emails through a plain SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// NewSMTPMailerFromEnv builds an SMTPMailer from environment variables.
// It returns an error if the relay is not configured.
func NewSMTPMailerFromEnv() (*SMTPMailer, error) {
	m := &SMTPMailer{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		User:     os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
	if m.Host == "" || m.User == "" {
		return nil, fmt.Errorf("smtp not configured")
	}
	if m.Port == "" {
		m.Port = "587"
	}
	if m.From == "" {
		m.From = m.User
	}
	return m, nil
}

// SendVerificationEmail sends the verification code to the given address.
// Delivery is a single fire-and-forget SMTP exchange; failures surface
// directly to the caller.
func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, email, username, code string) error {
	subject := "Whisper | Verification Code"
	body := fmt.Sprintf("Hello %s,\r\n\r\nYour verification code is: %s\r\n\r\nThe code expires in one hour.\r\n", username, code)

	addr := fmt.Sprintf("%s:%s", m.Host, m.Port)
	auth := smtp.PlainAuth("", m.User, m.Password, m.Host)
	msg := []byte("To: " + email + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" + body + "\r\n")
	return smtp.SendMail(addr, auth, m.From, []string{email}, msg)
}
