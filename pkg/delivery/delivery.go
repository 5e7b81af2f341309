// Package delivery sends rendered guides by email over SMTP.
package delivery

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

// Attachment is a single file attached to an outgoing message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is one outbound delivery.
type Message struct {
	To         string
	Subject    string
	HTMLBody   string
	Attachment *Attachment
}

// System dispatches messages and returns a delivery id per accepted send.
type System interface {
	Send(ctx context.Context, msg Message) (string, error)
}

type smtp struct {
	client *mail.Client
	from   string
	logger *slog.Logger
}

// New creates an SMTP-backed delivery system. Returns ErrNotConfigured when
// the config carries no host; callers decide whether that is fatal.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(cfg.TimeoutDuration()),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create mail client: %w", err)
	}

	return &smtp{
		client: client,
		from:   cfg.From,
		logger: logger.With("system", "delivery"),
	}, nil
}

// Send validates, composes, and dispatches the message. The SMTP transport
// assigns no provider id, so an accepted send is identified by a minted uuid.
func (s *smtp) Send(ctx context.Context, msg Message) (string, error) {
	if msg.To == "" || msg.Subject == "" || msg.HTMLBody == "" {
		return "", ErrInvalidMessage
	}

	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return "", fmt.Errorf("%w: from %s: %w", ErrInvalidMessage, s.from, err)
	}
	if err := m.To(msg.To); err != nil {
		return "", fmt.Errorf("%w: to %s: %w", ErrInvalidMessage, msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)

	if att := msg.Attachment; att != nil {
		err := m.AttachReader(
			att.Filename,
			bytes.NewReader(att.Data),
			mail.WithFileContentType(mail.ContentType(att.ContentType)),
		)
		if err != nil {
			return "", fmt.Errorf("%w: attach %s: %w", ErrInvalidMessage, att.Filename, err)
		}
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	id := uuid.NewString()
	s.logger.Info("message delivered", "delivery_id", id, "to", msg.To)
	return id, nil
}
