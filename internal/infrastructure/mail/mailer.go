// Package mail provides outbound email delivery for transactional messages.
package mail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Message is a single outbound email with an optional attachment
type Message struct {
	To             string
	Subject        string
	Body           string
	AttachmentName string
	Attachment     []byte
	AttachmentMIME string
}

// Sender delivers messages to their recipients
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// SMTPConfig contains SMTP server settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// From is the sender address; falls back to Username when empty
	From string
}

// SMTPSender delivers messages over SMTP
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewSMTPSender creates an SMTP-backed sender from configuration
func NewSMTPSender(cfg *SMTPConfig, logger *zap.Logger) (*SMTPSender, error) {
	if cfg == nil {
		return nil, errors.New("mail configuration is required")
	}
	if cfg.Host == "" {
		return nil, errors.New("mail host is required")
	}

	port := cfg.Port
	if port == 0 {
		port = 587
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	if from == "" {
		return nil, errors.New("mail sender address is required")
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, port, cfg.Username, cfg.Password),
		from:   from,
		logger: logger,
	}, nil
}

// Send delivers a message over SMTP, honoring context cancellation
// before the dial. gomail does not support mid-send cancellation.
func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	if err := validate(msg); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	if len(msg.Attachment) > 0 {
		name := msg.AttachmentName
		if name == "" {
			name = "attachment"
		}
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(msg.Attachment)
				return err
			}),
		}
		if msg.AttachmentMIME != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {msg.AttachmentMIME},
			}))
		}
		m.Attach(name, settings...)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}

	s.logger.Info("email sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Bool("has_attachment", len(msg.Attachment) > 0))

	return nil
}

// LogSender logs messages instead of delivering them.
// Used in development when no SMTP server is configured.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a sender that only logs
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

// Send logs the message and reports success
func (s *LogSender) Send(ctx context.Context, msg *Message) error {
	if err := validate(msg); err != nil {
		return err
	}
	s.logger.Info("email suppressed (log sender)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("body_bytes", len(msg.Body)),
		zap.String("attachment", msg.AttachmentName))
	return nil
}

func validate(msg *Message) error {
	if msg == nil {
		return errors.New("message is nil")
	}
	if strings.TrimSpace(msg.To) == "" {
		return errors.New("recipient address is required")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return errors.New("subject is required")
	}
	return nil
}

var (
	_ Sender = (*SMTPSender)(nil)
	_ Sender = (*LogSender)(nil)
)
