package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/job-board/internal/core/ports"
)

// mailgunClient is the subset of the Mailgun SDK used for sending.
type mailgunClient interface {
	NewMessage(from, subject, text string, to ...string) *mailgun.Message
	Send(ctx context.Context, m *mailgun.Message) (string, string, error)
}

// MailgunSender delivers email through the Mailgun API.
type MailgunSender struct {
	client mailgunClient
	from   string
	log    zerolog.Logger
}

// NewMailgunSender creates a sender for domain using apiKey.
func NewMailgunSender(cfg Config, log zerolog.Logger) (*MailgunSender, error) {
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
		return nil, errors.New("mailgun: domain and api key are required")
	}
	if cfg.FromAddress == "" {
		return nil, errors.New("mailgun: from address is required")
	}
	return &MailgunSender{
		client: mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey),
		from:   formatAddress(cfg.FromName, cfg.FromAddress),
		log:    log.With().Str("component", "mail.mailgun").Logger(),
	}, nil
}

// Send submits msg and returns the Mailgun message id.
func (s *MailgunSender) Send(ctx context.Context, msg ports.EmailMessage) (string, error) {
	if msg.To == "" {
		return "", errors.New("mailgun: recipient is required")
	}

	message := s.client.NewMessage(s.from, msg.Subject, msg.Text, formatAddress(msg.ToName, msg.To))
	if msg.HTML != "" {
		message.SetHtml(msg.HTML)
	}

	_, id, err := s.client.Send(ctx, message)
	if err != nil {
		return "", fmt.Errorf("mailgun send: %w", err)
	}

	s.log.Debug().Str("to", msg.To).Str("message_id", id).Msg("email accepted by mailgun")
	return id, nil
}

func formatAddress(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}
