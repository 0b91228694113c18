package usecasecontract

import (
	"context"
	"time"

	"github.com/socialjobs/workmatch/internal/domain/entity"
)

type IDeletionUseCase interface {
	RequestDeletion(ctx context.Context, userID, reason string) error
	RejectDeletion(ctx context.Context, adminID, userID string) error
	ApproveDeletion(ctx context.Context, adminID, userID string) (*entity.DeletionWorkflow, error)
	// ResumeIncomplete drives every unfinished workflow not touched since olderThan ago.
	ResumeIncomplete(ctx context.Context, olderThan time.Duration) (int, error)
	ListPendingDeletions(ctx context.Context, adminID string) ([]*entity.User, error)
	GetArchive(ctx context.Context, adminID, userID string) (*entity.ArchivedUser, error)
}
