package mocks

import (
	"context"
	"time"

	"github.com/socialjobs/workmatch/internal/domain/entity"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

// MockDeletionUsecase fails every call with Err when set.
type MockDeletionUsecase struct {
	Err        error
	Pending    []*entity.User
	LastReason string
	LastUserID string
}

var _ usecasecontract.IDeletionUseCase = (*MockDeletionUsecase)(nil)

func (m *MockDeletionUsecase) RequestDeletion(ctx context.Context, userID, reason string) error {
	m.LastUserID, m.LastReason = userID, reason
	return m.Err
}

func (m *MockDeletionUsecase) RejectDeletion(ctx context.Context, adminID, userID string) error {
	m.LastUserID = userID
	return m.Err
}

func (m *MockDeletionUsecase) ApproveDeletion(ctx context.Context, adminID, userID string) (*entity.DeletionWorkflow, error) {
	m.LastUserID = userID
	if m.Err != nil {
		return nil, m.Err
	}
	return &entity.DeletionWorkflow{ID: userID, AdminID: adminID, Step: entity.DeletionStepDone, UpdatedAt: time.Now()}, nil
}

func (m *MockDeletionUsecase) ResumeIncomplete(ctx context.Context, olderThan time.Duration) (int, error) {
	return 0, m.Err
}

func (m *MockDeletionUsecase) ListPendingDeletions(ctx context.Context, adminID string) ([]*entity.User, error) {
	return m.Pending, m.Err
}

func (m *MockDeletionUsecase) GetArchive(ctx context.Context, adminID, userID string) (*entity.ArchivedUser, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &entity.ArchivedUser{ID: userID}, nil
}

type MockEmployerUsecase struct {
	Err     error
	User    entity.User
	Pending []*entity.User
}

var _ usecasecontract.IEmployerUseCase = (*MockEmployerUsecase)(nil)

func (m *MockEmployerUsecase) RequestEmployerRole(ctx context.Context, userID string) (*entity.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	u := m.User
	u.ID, u.PendingEmployer, u.Role = userID, true, entity.UserRolePendingEmployer
	return &u, nil
}

func (m *MockEmployerUsecase) ApproveEmployer(ctx context.Context, adminID, userID string) (*entity.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	u := m.User
	u.ID, u.IsEmployer, u.Role = userID, true, entity.UserRoleEmployer
	return &u, nil
}

func (m *MockEmployerUsecase) RejectEmployer(ctx context.Context, adminID, userID string) (*entity.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	u := m.User
	u.ID, u.Role = userID, entity.UserRoleUser
	return &u, nil
}

func (m *MockEmployerUsecase) ListPendingEmployers(ctx context.Context, adminID string) ([]*entity.User, error) {
	return m.Pending, m.Err
}
