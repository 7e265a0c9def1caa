package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/AYOGRAM01/Jollyshop/pkg/config"
	"github.com/AYOGRAM01/Jollyshop/pkg/logger"
)

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers email messages. Delivery is always best effort at the call
// sites; a failed send must never fail the operation that requested it.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender delivers mail through a configured SMTP relay.
type SMTPSender struct {
	cfg  config.SMTPConfig
	logg *logger.Logger
	send func(addr string, auth smtp.Auth, from string, to []string, body []byte) error
}

// NewSMTPSender constructs a sender from SMTP configuration.
func NewSMTPSender(cfg config.SMTPConfig, logg *logger.Logger) (*SMTPSender, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.DefaultFrom == "" {
		return nil, fmt.Errorf("smtp from address is required")
	}
	return &SMTPSender{cfg: cfg, logg: logg, send: smtp.SendMail}, nil
}

// Send delivers a single message synchronously.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	to := strings.TrimSpace(msg.To)
	if to == "" {
		return fmt.Errorf("recipient is required")
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	payload := buildPayload(s.cfg.DefaultFrom, to, msg.Subject, msg.Body)

	if err := s.send(addr, auth, s.cfg.DefaultFrom, []string{to}, payload); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{"to": to, "subject": msg.Subject})
		s.logg.Info(logCtx, "email delivered")
	}
	return nil
}

func buildPayload(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}

// NoopSender drops messages, used when SMTP is not configured.
type NoopSender struct {
	logg *logger.Logger
}

// NewNoopSender constructs a sender that only logs.
func NewNoopSender(logg *logger.Logger) *NoopSender {
	return &NoopSender{logg: logg}
}

// Send logs the message and returns nil.
func (s *NoopSender) Send(ctx context.Context, msg Message) error {
	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{"to": msg.To, "subject": msg.Subject})
		s.logg.Warn(logCtx, "smtp not configured, dropping email")
	}
	return nil
}
