package mocks

import (
	"context"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

// MockJobUsecase returns Jobs for every listing and Err when set.
type MockJobUsecase struct {
	Err   error
	Jobs  []entity.Job
	Total int64

	LastFilter *contract.JobFilterOptions
	LastInput  usecasecontract.CreateJobInput
}

var _ usecasecontract.IJobUseCase = (*MockJobUsecase)(nil)

func NewMockJobUsecase() *MockJobUsecase {
	return &MockJobUsecase{
		Jobs: []entity.Job{
			{ID: "job-1", EmployerID: "employer-1", Title: "Warehouse shift", WorkersNeeded: 3},
		},
		Total: 1,
	}
}

func (m *MockJobUsecase) CreateJob(ctx context.Context, employerID string, in usecasecontract.CreateJobInput) (*entity.Job, error) {
	m.LastInput = in
	if m.Err != nil {
		return nil, m.Err
	}
	return &entity.Job{ID: "new-job", EmployerID: employerID, Title: in.Title, WorkersNeeded: in.WorkersNeeded}, nil
}

func (m *MockJobUsecase) GetJob(ctx context.Context, jobID string) (*entity.JobWithProgress, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	job := m.Jobs[0]
	job.ID = jobID
	return &entity.JobWithProgress{Job: &job}, nil
}

func (m *MockJobUsecase) ListOpenJobs(ctx context.Context, opts *contract.JobFilterOptions) ([]entity.Job, int64, error) {
	m.LastFilter = opts
	if m.Err != nil {
		return nil, 0, m.Err
	}
	return m.Jobs, m.Total, nil
}

func (m *MockJobUsecase) ListEmployerJobs(ctx context.Context, employerID string) ([]*entity.JobWithProgress, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*entity.JobWithProgress, 0, len(m.Jobs))
	for i := range m.Jobs {
		out = append(out, &entity.JobWithProgress{Job: &m.Jobs[i]})
	}
	return out, nil
}

func (m *MockJobUsecase) ListSavedJobs(ctx context.Context, userID string) ([]*entity.Job, error) {
	return m.list()
}

func (m *MockJobUsecase) ListAppliedJobs(ctx context.Context, userID string) ([]*entity.Job, error) {
	return m.list()
}

func (m *MockJobUsecase) ListAcceptedJobs(ctx context.Context, userID string) ([]*entity.Job, error) {
	return m.list()
}

func (m *MockJobUsecase) ListWorkedJobs(ctx context.Context, userID string) ([]*entity.Job, error) {
	return m.list()
}

func (m *MockJobUsecase) list() ([]*entity.Job, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*entity.Job, 0, len(m.Jobs))
	for i := range m.Jobs {
		out = append(out, &m.Jobs[i])
	}
	return out, nil
}
