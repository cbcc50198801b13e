package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrJobNotFound = errors.New("job not found")

// Job is a job posting. CreatedAt is assigned once at insert time.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	Salary      *float64  `json:"salary,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// JobSortField is a sortable job attribute, named as it appears in the API.
type JobSortField string

const (
	SortByCreatedAt JobSortField = "createdAt"
	SortByTitle     JobSortField = "title"
	SortByCompany   JobSortField = "company"
	SortByLocation  JobSortField = "location"
	SortBySalary    JobSortField = "salary"
)

var sortAliases = map[string]JobSortField{
	"createdAt":  SortByCreatedAt,
	"created_at": SortByCreatedAt,
	"title":      SortByTitle,
	"company":    SortByCompany,
	"location":   SortByLocation,
	"salary":     SortBySalary,
}

// JobSort is a parsed sort expression.
type JobSort struct {
	Field      JobSortField
	Descending bool
}

// DefaultJobSort lists newest postings first.
var DefaultJobSort = JobSort{Field: SortByCreatedAt, Descending: true}

// ParseJobSort parses "field" (ascending) or "-field" (descending).
// Empty or unknown fields fall back to DefaultJobSort.
func ParseJobSort(raw string) JobSort {
	raw = strings.TrimSpace(raw)
	desc := strings.HasPrefix(raw, "-")
	if desc {
		raw = raw[1:]
	}

	field, ok := sortAliases[raw]
	if !ok {
		return DefaultJobSort
	}
	return JobSort{Field: field, Descending: desc}
}

func (s JobSort) String() string {
	if s.Descending {
		return "-" + string(s.Field)
	}
	return string(s.Field)
}
