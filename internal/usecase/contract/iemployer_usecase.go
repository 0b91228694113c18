package usecasecontract

import (
	"context"

	"github.com/socialjobs/workmatch/internal/domain/entity"
)

type IEmployerUseCase interface {
	RequestEmployerRole(ctx context.Context, userID string) (*entity.User, error)
	ApproveEmployer(ctx context.Context, adminID, userID string) (*entity.User, error)
	RejectEmployer(ctx context.Context, adminID, userID string) (*entity.User, error)
	ListPendingEmployers(ctx context.Context, adminID string) ([]*entity.User, error)
}
