package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
)

// Errors surfaced to callers. Handlers map them to status codes with errors.Is.
var (
	ErrAuthRequired       = errors.New("authentication required")
	ErrNotFound           = errors.New("not found")
	ErrInvalidState       = errors.New("invalid state")
	ErrForbidden          = errors.New("forbidden")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var domainErrors = []error{
	ErrAuthRequired, ErrNotFound, ErrInvalidState, ErrForbidden,
	ErrBackendUnavailable, ErrInvalidInput, ErrInvalidCredentials,
}

// storeErr maps a repository error onto the use case errors. Errors that
// already belong to this package pass through unchanged.
func storeErr(err error, what string) error {
	if err == nil {
		return nil
	}
	for _, d := range domainErrors {
		if errors.Is(err, d) {
			return err
		}
	}
	if errors.Is(err, contract.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
}

func loadUser(ctx context.Context, repo contract.IUserRepository, userID string) (*entity.User, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	user, err := repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "user")
	}
	return user, nil
}

func requireAdmin(ctx context.Context, repo contract.IUserRepository, adminID string) (*entity.User, error) {
	admin, err := loadUser(ctx, repo, adminID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if !admin.IsAdmin() {
		return nil, ErrForbidden
	}
	return admin, nil
}

func loadJob(ctx context.Context, repo contract.IJobRepository, jobID string) (*entity.Job, error) {
	if jobID == "" {
		return nil, fmt.Errorf("job id is required: %w", ErrInvalidInput)
	}
	job, err := repo.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, storeErr(err, "job")
	}
	return job, nil
}

func ignoreNotFound(err error) error {
	if errors.Is(err, contract.ErrNotFound) {
		return nil
	}
	return err
}

type noopMetrics struct{}

func (noopMetrics) RecordTransition(string, string)   {}
func (noopMetrics) RecordBroadcastFanout(int)         {}
func (noopMetrics) RecordDeletionStep(string, string) {}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
