package ports

import (
	"context"

	"github.com/99minutos/job-board/internal/core/domain"
)

// ListJobsFilter is the normalized query handed to the repository.
// Empty strings mean "no constraint".
type ListJobsFilter struct {
	Location string         // exact match
	Search   string         // case-insensitive substring of title
	Sort     domain.JobSort // tie-broken by id in the same direction
	Skip     int
	Limit    int
}

// JobPatch holds the fields of a partial update; nil means "leave as is".
// ClearSalary removes a stored salary and is ignored when Salary is set.
type JobPatch struct {
	Title       *string
	Company     *string
	Location    *string
	Salary      *float64
	ClearSalary bool
	Description *string
}

// Empty reports whether the patch changes nothing.
func (p JobPatch) Empty() bool {
	return p.Title == nil && p.Company == nil && p.Location == nil &&
		p.Salary == nil && !p.ClearSalary && p.Description == nil
}

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// List returns one page of jobs matching filter and the count of all
	// jobs matching the same filter.
	List(ctx context.Context, filter ListJobsFilter) ([]*domain.Job, int64, error)
	Update(ctx context.Context, id string, patch JobPatch) (*domain.Job, error)
	Delete(ctx context.Context, id string) error
}
