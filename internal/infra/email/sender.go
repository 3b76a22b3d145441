package email

import (
	"context"
	"log/slog"

	"roombook/internal/pkg/config"
	"roombook/internal/pkg/errs"

	gomail "gopkg.in/gomail.v2"
)

// Sender delivers HTML mail. NewSender picks the SMTP implementation when
// credentials are configured and a log-only no-op otherwise, so missing mail
// configuration never fails a booking or cancellation request outright.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

func NewSender(cfg config.SMTPConfig, logger *slog.Logger) Sender {
	if cfg.Host == "" {
		logger.Warn("SMTP host not configured, emails will only be logged")
		return &LogSender{logger: logger}
	}
	return &SMTPSender{cfg: cfg, logger: logger}
}

type SMTPSender struct {
	cfg    config.SMTPConfig
	logger *slog.Logger
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	dialer := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	done := make(chan error, 1)
	go func() {
		done <- dialer.DialAndSend(msg)
	}()

	select {
	case <-ctx.Done():
		return errs.Wrap(ctx.Err(), "email send canceled")
	case err := <-done:
		if err != nil {
			return errs.Wrap(err, "failed to send email")
		}
	}

	s.logger.Info("email sent", "to", to, "subject", subject)
	return nil
}

// LogSender mirrors the mock-mail fallback used in development environments:
// the message is logged instead of delivered.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) Send(_ context.Context, to, subject, _ string) error {
	s.logger.Info("[mock email]", "to", to, "subject", subject)
	return nil
}
