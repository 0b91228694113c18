package usecasecontract

import (
	"context"

	"github.com/socialjobs/workmatch/internal/domain/entity"
)

// ApplyResult tells a caller whether a new application was recorded.
type ApplyResult string

const (
	ApplyResultApplied        ApplyResult = "applied"
	ApplyResultAlreadyApplied ApplyResult = "already_applied"
)

// HireResult is returned by SetHired. Changed is false for same-value calls.
type HireResult struct {
	JobID           string `json:"job_id"`
	ApplicantID     string `json:"applicant_id"`
	Hired           bool   `json:"hired"`
	Changed         bool   `json:"changed"`
	HiredCount      int    `json:"hired_count"`
	Progress        int    `json:"progress"`
	ProgressDisplay int    `json:"progress_display"`
}

// IJobLifecycleUseCase owns the transitions of a worker's relationship to a
// job and of a job's staffing state.
type IJobLifecycleUseCase interface {
	SaveJob(ctx context.Context, userID, jobID string) error
	UnsaveJob(ctx context.Context, userID, jobID string) error
	ToggleSavedJob(ctx context.Context, userID, jobID string, currentlySaved bool) (bool, error)
	ApplyToJob(ctx context.Context, userID, jobID string) (ApplyResult, error)
	WithdrawApplication(ctx context.Context, userID, jobID string) error
	SetHired(ctx context.Context, employerID, jobID, applicantID string, hired bool) (*HireResult, error)
	ToggleFullyStaffed(ctx context.Context, employerID, jobID string) (*entity.StaffingState, error)
	MarkCompleted(ctx context.Context, employerID, jobID string) (*entity.Job, error)
	JobProgress(ctx context.Context, jobID string) (*entity.JobWithProgress, error)
}
