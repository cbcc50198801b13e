package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/job-board/internal/api/metrics"
	"github.com/99minutos/job-board/internal/core/domain"
	"github.com/99minutos/job-board/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 3
	maxLimit     = 100
)

type JobService struct {
	repo     ports.JobRepository
	notifier ports.JobNotifier
	logger   zerolog.Logger
	now      func() time.Time
}

// NewJobService wires the job use cases. notifier may be nil, in which case
// no notifications are sent.
func NewJobService(repo ports.JobRepository, notifier ports.JobNotifier, logger zerolog.Logger) *JobService {
	return &JobService{repo: repo, notifier: notifier, logger: logger, now: time.Now}
}

// ListJobs builds one filtered, sorted page. Total always reflects the same
// filter as the page query.
func (s *JobService) ListJobs(ctx context.Context, input ports.ListJobsInput) (*ports.ListJobsResult, error) {
	page := input.Page
	if page < 1 {
		page = defaultPage
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	// Past this page the skip would overflow; every such page is empty anyway.
	if lastPage := math.MaxInt/limit + 1; page > lastPage {
		page = lastPage
	}
	skip := (page - 1) * limit

	filter := ports.ListJobsFilter{
		Location: strings.TrimSpace(input.Location),
		Search:   strings.TrimSpace(input.Search),
		Sort:     domain.ParseJobSort(input.Sort),
		Skip:     skip,
		Limit:    limit,
	}

	start := time.Now()
	jobs, total, err := s.repo.List(ctx, filter)
	metrics.JobListQueryDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []*domain.Job{}
	}

	s.logger.Debug().
		Str("sort", filter.Sort.String()).
		Int("page", page).
		Int("limit", limit).
		Int64("total", total).
		Msg("jobs listed")

	return &ports.ListJobsResult{
		Items: jobs,
		Total: total,
		Page:  page,
		Limit: limit,
		Skip:  skip,
	}, nil
}

func (s *JobService) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateJob stores a new job and hands it to the notifier. Notification
// problems never fail the creation.
func (s *JobService) CreateJob(ctx context.Context, input ports.CreateJobInput) (*domain.Job, error) {
	job := &domain.Job{
		Title:       strings.TrimSpace(input.Title),
		Company:     strings.TrimSpace(input.Company),
		Location:    strings.TrimSpace(input.Location),
		Salary:      input.Salary,
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
	}
	if err := validateJob(job.Title, job.Company, job.Salary); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, job); err != nil {
		s.logger.Error().Err(err).Msg("failed to create job")
		return nil, err
	}

	metrics.JobsCreatedTotal.Inc()
	s.logger.Info().Str("job_id", job.ID).Str("title", job.Title).Msg("job created")

	if s.notifier != nil {
		s.notifier.NotifyJobCreated(ctx, job)
	}
	return job, nil
}

// UpdateJob merges the provided fields into the stored job.
func (s *JobService) UpdateJob(ctx context.Context, id string, patch ports.JobPatch) (*domain.Job, error) {
	patch = trimPatch(patch)

	var msgs []string
	if patch.Title != nil && *patch.Title == "" {
		msgs = append(msgs, "title must not be empty")
	}
	if patch.Company != nil && *patch.Company == "" {
		msgs = append(msgs, "company must not be empty")
	}
	if patch.Salary != nil && *patch.Salary < 0 {
		msgs = append(msgs, "salary must be greater than or equal to 0")
	}
	if len(msgs) > 0 {
		return nil, domain.NewValidationError(strings.Join(msgs, "; "))
	}

	if patch.Empty() {
		return s.repo.FindByID(ctx, id)
	}

	job, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("job_id", id).Msg("job updated")
	return job, nil
}

func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("job_id", id).Msg("job deleted")
	return nil
}

func validateJob(title, company string, salary *float64) error {
	var msgs []string
	if title == "" {
		msgs = append(msgs, "title is required")
	}
	if company == "" {
		msgs = append(msgs, "company is required")
	}
	if salary != nil && *salary < 0 {
		msgs = append(msgs, "salary must be greater than or equal to 0")
	}
	if len(msgs) > 0 {
		return domain.NewValidationError(strings.Join(msgs, "; "))
	}
	return nil
}

func trimPatch(p ports.JobPatch) ports.JobPatch {
	trim := func(v *string) *string {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		return &t
	}
	p.Title = trim(p.Title)
	p.Company = trim(p.Company)
	p.Location = trim(p.Location)
	p.Description = trim(p.Description)
	return p
}
