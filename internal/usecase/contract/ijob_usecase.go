package usecasecontract

import (
	"context"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
)

// CreateJobInput carries the fields of a new posting.
type CreateJobInput struct {
	Title         string
	Description   string
	Location      string
	Salary        float64
	WorkersNeeded int
}

type IJobUseCase interface {
	CreateJob(ctx context.Context, employerID string, in CreateJobInput) (*entity.Job, error)
	GetJob(ctx context.Context, jobID string) (*entity.JobWithProgress, error)
	ListOpenJobs(ctx context.Context, opts *contract.JobFilterOptions) ([]entity.Job, int64, error)
	ListEmployerJobs(ctx context.Context, employerID string) ([]*entity.JobWithProgress, error)
	ListSavedJobs(ctx context.Context, userID string) ([]*entity.Job, error)
	ListAppliedJobs(ctx context.Context, userID string) ([]*entity.Job, error)
	ListAcceptedJobs(ctx context.Context, userID string) ([]*entity.Job, error)
	ListWorkedJobs(ctx context.Context, userID string) ([]*entity.Job, error)
}
