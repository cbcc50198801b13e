package mail

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/99minutos/job-board/internal/core/ports"
)

// Config selects and configures the outbound transport.
type Config struct {
	Enabled       bool
	MailgunDomain string
	MailgunAPIKey string
	FromAddress   string
	FromName      string
}

// NewSender returns the Mailgun sender when mail is enabled and a LogSender
// otherwise.
func NewSender(cfg Config, log zerolog.Logger) (ports.Mailer, error) {
	if !cfg.Enabled {
		log.Warn().Msg("mail delivery disabled, notifications are only logged")
		return NewLogSender(log), nil
	}
	return NewMailgunSender(cfg, log)
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	log zerolog.Logger
	seq atomic.Uint64
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log.With().Str("component", "mail.log").Logger()}
}

func (s *LogSender) Send(_ context.Context, msg ports.EmailMessage) (string, error) {
	id := fmt.Sprintf("log-%d", s.seq.Add(1))
	s.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("message_id", id).
		Msg("email not delivered (mail disabled)")
	return id, nil
}
