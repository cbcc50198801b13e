package ports

import (
	"context"

	"github.com/99minutos/job-board/internal/core/domain"
)

// ListJobsInput carries the raw listing parameters after HTTP parsing.
// Zero values select the defaults.
type ListJobsInput struct {
	Location string
	Search   string
	Sort     string
	Page     int
	Limit    int
}

// ListJobsResult is one page of jobs plus pagination metadata.
type ListJobsResult struct {
	Items []*domain.Job
	Total int64
	Page  int
	Limit int
	Skip  int
}

// CreateJobInput carries the client-settable fields of a new job.
type CreateJobInput struct {
	Title       string
	Company     string
	Location    string
	Salary      *float64
	Description string
}

// JobService defines use-case operations for job postings.
type JobService interface {
	ListJobs(ctx context.Context, input ListJobsInput) (*ListJobsResult, error)
	GetJob(ctx context.Context, id string) (*domain.Job, error)
	CreateJob(ctx context.Context, input CreateJobInput) (*domain.Job, error)
	UpdateJob(ctx context.Context, id string, patch JobPatch) (*domain.Job, error)
	DeleteJob(ctx context.Context, id string) error
}
