package contract

import (
	"context"

	"github.com/socialjobs/workmatch/internal/domain/entity"
)

// IJobRepository provides methods for managing job postings.
type IJobRepository interface {
	CreateJob(ctx context.Context, job *entity.Job) error
	GetJobByID(ctx context.Context, jobID string) (*entity.Job, error)
	// GetJobsByIDs keeps the order of ids and skips the ones that no longer exist.
	GetJobsByIDs(ctx context.Context, ids []string) ([]*entity.Job, error)
	ListJobs(ctx context.Context, opts *JobFilterOptions) ([]*entity.Job, int64, error)
	ListJobsByEmployer(ctx context.Context, employerID string) ([]*entity.Job, error)
	// CompareAndUpdateJob applies updates only if every field in expect still
	// holds the given value, and reports whether the job matched.
	CompareAndUpdateJob(ctx context.Context, jobID string, expect, updates map[string]interface{}) (bool, error)
}

// JobFilterOptions encapsulates filtering and pagination for the job board.
type JobFilterOptions struct {
	Page          int
	PageSize      int
	Query         string
	Location      string
	MinSalary     *float64
	MaxSalary     *float64
	EmployerID    string
	IncludeClosed bool
}
