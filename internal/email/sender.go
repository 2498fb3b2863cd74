// Package email delivers transactional mail for the directory.
package email

import (
	"context"

	"bootcamp_directory_backend/platform/config"
)

// Sender delivers transactional emails.
type Sender interface {
	SendPasswordReset(ctx context.Context, toEmail, resetURL string) error
}

// NoopSender discards all mail. Used in development and tests when no
// SMTP server is configured.
type NoopSender struct{}

func (NoopSender) SendPasswordReset(ctx context.Context, toEmail, resetURL string) error {
	return nil
}

// NewSender returns an SMTP-backed sender, or a NoopSender when no
// SMTP host is configured.
func NewSender(cfg config.SMTPConfig) Sender {
	if cfg.GetSMTPHost() == "" {
		return NoopSender{}
	}
	return NewSMTPSender(cfg)
}
