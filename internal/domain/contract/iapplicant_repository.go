package contract

import (
	"context"

	"github.com/socialjobs/workmatch/internal/domain/entity"
)

// IApplicantRepository stores the per-job applicant records.
type IApplicantRepository interface {
	// CreateApplicant returns ErrDuplicate if the pair already exists.
	CreateApplicant(ctx context.Context, applicant *entity.Applicant) error
	GetApplicant(ctx context.Context, jobID, applicantID string) (*entity.Applicant, error)
	// ListApplicantsByJob returns applicants in arrival order.
	ListApplicantsByJob(ctx context.Context, jobID string) ([]*entity.Applicant, error)
	CountHired(ctx context.Context, jobID string) (int, error)
	ListHiredApplicantIDs(ctx context.Context, jobID string) ([]string, error)
	// SetHired is a compare-and-set on the hired flag. It reports whether the record changed.
	SetHired(ctx context.Context, jobID, applicantID string, from, to bool) (bool, error)
	// DeleteApplicant removes a non-hired applicant and reports whether one was removed.
	DeleteApplicant(ctx context.Context, jobID, applicantID string) (bool, error)
}

// IApplicationRepository stores the user-side mirror of a pending application.
type IApplicationRepository interface {
	CreateApplication(ctx context.Context, application *entity.Application) error
	DeleteApplication(ctx context.Context, userID, jobID string) error
	ListJobIDsByUser(ctx context.Context, userID string) ([]string, error)
}

// IAcceptedJobRepository stores the user-side mirror of a hire.
type IAcceptedJobRepository interface {
	// AddAcceptedJob is an upsert.
	AddAcceptedJob(ctx context.Context, accepted *entity.AcceptedJob) error
	RemoveAcceptedJob(ctx context.Context, userID, jobID string) error
	ListJobIDsByUser(ctx context.Context, userID string) ([]string, error)
}
