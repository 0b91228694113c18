package mocks

import (
	"context"

	"github.com/socialjobs/workmatch/internal/domain/entity"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

type MockRosterUsecase struct {
	Err     error
	Entries []*entity.RosterEntry
	Hired   int
}

var _ usecasecontract.IRosterUseCase = (*MockRosterUsecase)(nil)

func (m *MockRosterUsecase) ListApplicants(ctx context.Context, callerID, jobID string) ([]*entity.RosterEntry, error) {
	return m.Entries, m.Err
}

func (m *MockRosterUsecase) HiredCount(ctx context.Context, jobID string) (int, error) {
	return m.Hired, m.Err
}

func (m *MockRosterUsecase) CoWorkers(ctx context.Context, callerID, jobID string) ([]*entity.RosterEntry, error) {
	return m.Entries, m.Err
}
