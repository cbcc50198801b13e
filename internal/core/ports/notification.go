package ports

import (
	"context"

	"github.com/99minutos/job-board/internal/core/domain"
)

// EmailMessage is a single outbound email.
type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers one email and returns the transport's message id.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) (string, error)
}

// RenderedEmail is the output of a template render.
type RenderedEmail struct {
	Subject string
	Text    string
	HTML    string
}

// TemplateRenderer renders a named email template with a context map.
type TemplateRenderer interface {
	Render(name string, data map[string]any) (*RenderedEmail, error)
}

// NotificationTask is the unit of work queued after a job is created.
type NotificationTask struct {
	Job domain.Job
}

// JobNotifier is called by the job service once a job has been stored.
// Implementations must not block on delivery.
type JobNotifier interface {
	NotifyJobCreated(ctx context.Context, job *domain.Job)
}

// NotificationProcessor performs the fan-out for one task.
type NotificationProcessor interface {
	Process(ctx context.Context, task NotificationTask) error
}
