package contract

import (
	"context"

	"github.com/socialjobs/workmatch/internal/domain/entity"
)

type IUserRepository interface {
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetUsersByIDs fetches users in chunks; missing ids are skipped.
	GetUsersByIDs(ctx context.Context, ids []string) ([]*entity.User, error)
	// ListUserIDs skips accounts whose deletion was approved.
	ListUserIDs(ctx context.Context) ([]string, error)
	// UpdateUser applies a $set of the given fields and returns the updated user.
	UpdateUser(ctx context.Context, id string, updates map[string]interface{}) (*entity.User, error)
	AddSavedJob(ctx context.Context, userID, jobID string) error
	RemoveSavedJob(ctx context.Context, userID, jobID string) error
	// PullSavedJobs removes the job ids from every user's saved_jobs.
	PullSavedJobs(ctx context.Context, jobIDs []string) (int64, error)
	// AppendWorkedJob adds jobID to the worked_jobs of every user, skipping users that already have it.
	AppendWorkedJob(ctx context.Context, userIDs []string, jobID string) error
	// SetDeletionState applies updates only when pending_deletion equals expectPending.
	// It reports whether the user matched.
	SetDeletionState(ctx context.Context, userID string, expectPending bool, updates map[string]interface{}) (bool, error)
	ListPendingDeletions(ctx context.Context) ([]*entity.User, error)
	ListPendingEmployers(ctx context.Context) ([]*entity.User, error)
}
