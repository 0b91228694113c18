package contract

import (
	"context"

	"github.com/socialjobs/workmatch/internal/domain/entity"
)

// CachedJobsPage is the cached payload for the job board list.
type CachedJobsPage struct {
	Jobs  []entity.Job `json:"jobs"`
	Total int64        `json:"total"`
}

// IJobCache defines caching operations for jobs.
type IJobCache interface {
	GetJob(ctx context.Context, jobID string) (*entity.Job, bool, error)
	SetJob(ctx context.Context, job *entity.Job) error
	InvalidateJob(ctx context.Context, jobID string) error

	// List pages (key built by usecase)
	GetJobsPage(ctx context.Context, key string) (*CachedJobsPage, bool, error)
	SetJobsPage(ctx context.Context, key string, page *CachedJobsPage) error
	InvalidateJobLists(ctx context.Context) error
}
