package mocks

import (
	"context"

	"github.com/socialjobs/workmatch/internal/domain/entity"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

// MockLifecycleUsecase records the last call and fails with Err when set.
type MockLifecycleUsecase struct {
	Err         error
	ApplyResult usecasecontract.ApplyResult
	FullyStaff  bool

	LastUserID      string
	LastJobID       string
	LastApplicantID string
	LastHired       bool
}

var _ usecasecontract.IJobLifecycleUseCase = (*MockLifecycleUsecase)(nil)

func NewMockLifecycleUsecase() *MockLifecycleUsecase {
	return &MockLifecycleUsecase{ApplyResult: usecasecontract.ApplyResultApplied}
}

func (m *MockLifecycleUsecase) record(userID, jobID string) error {
	m.LastUserID, m.LastJobID = userID, jobID
	return m.Err
}

func (m *MockLifecycleUsecase) SaveJob(ctx context.Context, userID, jobID string) error {
	return m.record(userID, jobID)
}

func (m *MockLifecycleUsecase) UnsaveJob(ctx context.Context, userID, jobID string) error {
	return m.record(userID, jobID)
}

func (m *MockLifecycleUsecase) ToggleSavedJob(ctx context.Context, userID, jobID string, currentlySaved bool) (bool, error) {
	if err := m.record(userID, jobID); err != nil {
		return currentlySaved, err
	}
	return !currentlySaved, nil
}

func (m *MockLifecycleUsecase) ApplyToJob(ctx context.Context, userID, jobID string) (usecasecontract.ApplyResult, error) {
	if err := m.record(userID, jobID); err != nil {
		return "", err
	}
	return m.ApplyResult, nil
}

func (m *MockLifecycleUsecase) WithdrawApplication(ctx context.Context, userID, jobID string) error {
	return m.record(userID, jobID)
}

func (m *MockLifecycleUsecase) SetHired(ctx context.Context, employerID, jobID, applicantID string, hired bool) (*usecasecontract.HireResult, error) {
	m.LastApplicantID, m.LastHired = applicantID, hired
	if err := m.record(employerID, jobID); err != nil {
		return nil, err
	}
	count := 0
	if hired {
		count = 1
	}
	return &usecasecontract.HireResult{
		JobID:       jobID,
		ApplicantID: applicantID,
		Hired:       hired,
		Changed:     true,
		HiredCount:  count,
		Progress:    count * 50,
	}, nil
}

func (m *MockLifecycleUsecase) ToggleFullyStaffed(ctx context.Context, employerID, jobID string) (*entity.StaffingState, error) {
	if err := m.record(employerID, jobID); err != nil {
		return nil, err
	}
	m.FullyStaff = !m.FullyStaff
	return &entity.StaffingState{JobID: jobID, IsFullyStaffed: m.FullyStaff, HiredCount: 1, WorkersNeeded: 2, Progress: 50}, nil
}

func (m *MockLifecycleUsecase) MarkCompleted(ctx context.Context, employerID, jobID string) (*entity.Job, error) {
	if err := m.record(employerID, jobID); err != nil {
		return nil, err
	}
	return &entity.Job{ID: jobID, EmployerID: employerID, IsCompleted: true}, nil
}

func (m *MockLifecycleUsecase) JobProgress(ctx context.Context, jobID string) (*entity.JobWithProgress, error) {
	if err := m.record("", jobID); err != nil {
		return nil, err
	}
	return &entity.JobWithProgress{Job: &entity.Job{ID: jobID, WorkersNeeded: 2}, HiredCount: 1, Progress: 50}, nil
}
