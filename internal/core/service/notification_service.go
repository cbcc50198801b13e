package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/job-board/internal/api/metrics"
	"github.com/99minutos/job-board/internal/core/domain"
	"github.com/99minutos/job-board/internal/core/ports"
)

const (
	JobCreatedTemplate = "job_created"
	notSpecified       = "Not specified"
	defaultSendTimeout = 30 * time.Second
)

// DedupChecker abstracts the idempotency store (Redis) keyed by job and recipient.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, jobID, email string) (bool, error)
	Mark(ctx context.Context, jobID, email string) error
}

// NotificationConfig selects who is notified and how long a single send may take.
type NotificationConfig struct {
	RecipientRole string
	SendTimeout   time.Duration
}

// NotificationService renders and sends the "new job" email to every
// recipient. It is the processor behind the notification dispatcher.
type NotificationService struct {
	users    ports.AuthRepository
	renderer ports.TemplateRenderer
	mailer   ports.Mailer
	dedup    DedupChecker
	cfg      NotificationConfig
	log      zerolog.Logger
}

// NewNotificationService returns a NotificationService. dedup may be nil.
func NewNotificationService(
	users ports.AuthRepository,
	renderer ports.TemplateRenderer,
	mailer ports.Mailer,
	dedup DedupChecker,
	cfg NotificationConfig,
	log zerolog.Logger,
) *NotificationService {
	if !domain.ValidRole(cfg.RecipientRole) {
		cfg.RecipientRole = domain.RoleUser
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}
	return &NotificationService{
		users:    users,
		renderer: renderer,
		mailer:   mailer,
		dedup:    dedup,
		cfg:      cfg,
		log:      log,
	}
}

// Process runs the fan-out for one task and reports failed recipients as a
// single joined error.
func (s *NotificationService) Process(ctx context.Context, task ports.NotificationTask) error {
	outcomes, err := s.Deliver(ctx, &task.Job)
	if err != nil {
		return err
	}

	var errs []error
	for email, sendErr := range outcomes {
		if sendErr != nil {
			errs = append(errs, fmt.Errorf("%s: %w", email, sendErr))
		}
	}
	return errors.Join(errs...)
}

// Deliver sends one email per recipient and returns recipient → outcome.
// A failing recipient never stops the loop. The returned error is only set
// when the recipient set cannot be resolved.
func (s *NotificationService) Deliver(ctx context.Context, job *domain.Job) (map[string]error, error) {
	start := time.Now()
	defer func() { metrics.NotificationFanoutDuration.Observe(time.Since(start).Seconds()) }()

	recipients, err := s.users.FindByRole(ctx, s.cfg.RecipientRole)
	if err != nil {
		return nil, fmt.Errorf("notify job %s: resolve recipients: %w", job.ID, err)
	}

	outcomes := make(map[string]error, len(recipients))
	for _, r := range recipients {
		if r.Email == "" {
			continue
		}
		outcomes[r.Email] = s.sendOne(ctx, job, r)
	}

	s.log.Info().
		Str("job_id", job.ID).
		Int("recipients", len(outcomes)).
		Dur("took", time.Since(start)).
		Msg("job notification fan-out finished")

	return outcomes, nil
}

func (s *NotificationService) sendOne(ctx context.Context, job *domain.Job, r *domain.User) error {
	if s.dedup != nil {
		dup, err := s.dedup.IsDuplicate(ctx, job.ID, r.Email)
		if err != nil {
			s.log.Warn().Err(err).Str("job_id", job.ID).Msg("dedup check failed, sending anyway")
		} else if dup {
			metrics.NotificationsTotal.WithLabelValues("skipped").Inc()
			return nil
		}
	}

	rendered, err := s.renderer.Render(JobCreatedTemplate, JobTemplateData(job, r))
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("render: %w", err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.cfg.SendTimeout)
	defer cancel()

	msgID, err := s.mailer.Send(sendCtx, ports.EmailMessage{
		To:      r.Email,
		ToName:  r.Name,
		Subject: rendered.Subject,
		Text:    rendered.Text,
		HTML:    rendered.HTML,
	})
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues("failed").Inc()
		s.log.Warn().Err(err).Str("job_id", job.ID).Str("to", r.Email).Msg("notification send failed")
		return fmt.Errorf("send: %w", err)
	}

	if s.dedup != nil {
		if markErr := s.dedup.Mark(ctx, job.ID, r.Email); markErr != nil {
			s.log.Warn().Err(markErr).Str("job_id", job.ID).Msg("failed to set dedup key")
		}
	}

	metrics.NotificationsTotal.WithLabelValues("sent").Inc()
	s.log.Debug().Str("job_id", job.ID).Str("to", r.Email).Str("message_id", msgID).Msg("notification sent")
	return nil
}

// JobTemplateData builds the placeholder values for the job_created
// template. Missing optional fields read "Not specified".
func JobTemplateData(job *domain.Job, recipient *domain.User) map[string]any {
	salary := notSpecified
	if job.Salary != nil {
		salary = strconv.FormatFloat(*job.Salary, 'f', -1, 64)
	}

	recipientName := recipient.Name
	if recipientName == "" {
		recipientName = recipient.Email
	}

	return map[string]any{
		"recipientName": recipientName,
		"title":         job.Title,
		"company":       orDefault(job.Company),
		"location":      orDefault(job.Location),
		"salary":        salary,
		"description":   orDefault(job.Description),
		"jobId":         job.ID,
	}
}

func orDefault(v string) string {
	if v == "" {
		return notSpecified
	}
	return v
}
