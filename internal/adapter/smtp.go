// Package adapter holds outbound integrations. The only one today is the
// SMTP sender used for password-reset and expiration-notice mail.
package adapter

import (
	"context"
	"fmt"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/survey-auth/internal/config"
	"github.com/MKhiriev/survey-auth/internal/logger"
)

// SMTPSender delivers notification email through a plain SMTP relay.
// It implements the service layer's EmailSender interface.
//
// Auth is optional: when no credentials are configured the relay is used
// unauthenticated, which is the common setup for an internal mail host.
type SMTPSender struct {
	addr     string
	auth     smtp.Auth
	from     string
	resetURL string

	logger *logger.Logger
}

// NewSMTPSender builds an [SMTPSender] from the mail configuration.
func NewSMTPSender(cfg config.Mail, logger *logger.Logger) *SMTPSender {
	var auth smtp.Auth
	if cfg.User != "" || cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Password, smtpHost(cfg.SMTPAddress))
	}

	return &SMTPSender{
		addr:     cfg.SMTPAddress,
		auth:     auth,
		from:     cfg.From,
		resetURL: cfg.ResetURL,
		logger:   logger,
	}
}

// SendPasswordResetEmail mails the reset link for an initiated handshake.
// The opaque token is appended to the configured reset page URL as a query
// parameter; the recipient completes the handshake through that page.
func (s *SMTPSender) SendPasswordResetEmail(ctx context.Context, recipient, token string) error {
	log := logger.FromContext(ctx)

	link := s.resetURL + "?token=" + url.QueryEscape(token)
	body := "A password reset was requested for your account.\r\n" +
		"Follow the link below within 60 minutes to choose a new password:\r\n\r\n" +
		link + "\r\n\r\n" +
		"If you did not request this, you can ignore this message."

	if err := s.send(recipient, "Password reset requested", body); err != nil {
		log.Err(err).Str("smtp_addr", s.addr).Msg("sending reset email failed")
		return err
	}

	log.Info().Str("smtp_addr", s.addr).Msg("reset email sent")
	return nil
}

// SendPasswordExpirationNotice warns the recipient that their password is
// about to expire and must be changed to keep logging in.
func (s *SMTPSender) SendPasswordExpirationNotice(ctx context.Context, recipient string, expiresOn time.Time) error {
	log := logger.FromContext(ctx)

	body := fmt.Sprintf(
		"The password of your account expires on %s.\r\n"+
			"Please change it before that date; expired passwords cannot be used to log in.",
		expiresOn.Format("2006-01-02"))

	if err := s.send(recipient, "Your password is about to expire", body); err != nil {
		log.Err(err).Str("smtp_addr", s.addr).Msg("sending expiration notice failed")
		return err
	}

	log.Info().Str("smtp_addr", s.addr).Msg("expiration notice sent")
	return nil
}

func (s *SMTPSender) send(recipient, subject, body string) error {
	msg := buildMessage(s.from, recipient, subject, body)
	return smtp.SendMail(s.addr, s.auth, s.from, []string{recipient}, msg)
}

func buildMessage(from, to, subject, body string) []byte {
	return []byte(
		"From: " + from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"Content-Type: text/plain; charset=utf-8\r\n" +
			"\r\n" + body + "\r\n")
}

func smtpHost(addr string) string {
	if i := strings.Index(addr, ":"); i >= 0 {
		return addr[:i]
	}
	return addr
}
