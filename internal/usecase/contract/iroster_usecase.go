package usecasecontract

import (
	"context"

	"github.com/socialjobs/workmatch/internal/domain/entity"
)

type IRosterUseCase interface {
	ListApplicants(ctx context.Context, callerID, jobID string) ([]*entity.RosterEntry, error)
	HiredCount(ctx context.Context, jobID string) (int, error)
	CoWorkers(ctx context.Context, callerID, jobID string) ([]*entity.RosterEntry, error)
}
