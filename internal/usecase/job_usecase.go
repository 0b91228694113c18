package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
	"github.com/socialjobs/workmatch/internal/domain/lifecycle"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

const (
	defaultJobsPageSize = 20
	maxJobsPageSize     = 100
)

// JobUsecase serves the job board and the per-user job lists.
type JobUsecase struct {
	jobRepo         contract.IJobRepository
	applicantRepo   contract.IApplicantRepository
	applicationRepo contract.IApplicationRepository
	acceptedJobRepo contract.IAcceptedJobRepository
	userRepo        contract.IUserRepository
	jobCache        contract.IJobCache
	uuidGenerator   contract.IUUIDGenerator
	logger          usecasecontract.IAppLogger
}

func NewJobUsecase(
	jobRepo contract.IJobRepository,
	applicantRepo contract.IApplicantRepository,
	applicationRepo contract.IApplicationRepository,
	acceptedJobRepo contract.IAcceptedJobRepository,
	userRepo contract.IUserRepository,
	jobCache contract.IJobCache,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *JobUsecase {
	return &JobUsecase{
		jobRepo:         jobRepo,
		applicantRepo:   applicantRepo,
		applicationRepo: applicationRepo,
		acceptedJobRepo: acceptedJobRepo,
		userRepo:        userRepo,
		jobCache:        jobCache,
		uuidGenerator:   uuidGenerator,
		logger:          logger,
	}
}

var _ usecasecontract.IJobUseCase = (*JobUsecase)(nil)

// CreateJob posts a job for an approved employer.
func (uc *JobUsecase) CreateJob(ctx context.Context, employerID string, in usecasecontract.CreateJobInput) (*entity.Job, error) {
	employer, err := loadUser(ctx, uc.userRepo, employerID)
	if err != nil {
		return nil, err
	}
	if !employer.CanPostJobs() {
		return nil, fmt.Errorf("user %s is not an approved employer: %w", employerID, ErrForbidden)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("title is required: %w", ErrInvalidInput)
	}
	if in.WorkersNeeded < 1 {
		return nil, fmt.Errorf("workers_needed must be at least 1: %w", ErrInvalidInput)
	}
	if in.Salary < 0 {
		return nil, fmt.Errorf("salary cannot be negative: %w", ErrInvalidInput)
	}

	now := time.Now().UTC()
	public := true
	job := &entity.Job{
		ID:            uc.uuidGenerator.NewUUID(),
		EmployerID:    employerID,
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		Location:      in.Location,
		Salary:        in.Salary,
		WorkersNeeded: in.WorkersNeeded,
		IsPublic:      &public,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.jobRepo.CreateJob(ctx, job); err != nil {
		return nil, storeErr(err, "job")
	}
	if uc.jobCache != nil {
		if err := uc.jobCache.InvalidateJobLists(ctx); err != nil {
			uc.logger.Warnf("failed to invalidate job lists: %v", err)
		}
	}
	return job, nil
}

// GetJob returns a job with its live hire numbers. The job document is
// served from cache when possible; the counts never are.
func (uc *JobUsecase) GetJob(ctx context.Context, jobID string) (*entity.JobWithProgress, error) {
	job, err := uc.cachedJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	count, err := uc.applicantRepo.CountHired(ctx, jobID)
	if err != nil {
		return nil, storeErr(err, "applicants")
	}
	return newJobWithProgress(job, count), nil
}

func (uc *JobUsecase) cachedJob(ctx context.Context, jobID string) (*entity.Job, error) {
	if uc.jobCache != nil {
		if job, ok, err := uc.jobCache.GetJob(ctx, jobID); err == nil && ok {
			return job, nil
		}
	}
	job, err := loadJob(ctx, uc.jobRepo, jobID)
	if err != nil {
		return nil, err
	}
	if uc.jobCache != nil {
		if err := uc.jobCache.SetJob(ctx, job); err != nil {
			uc.logger.Warnf("failed to cache job %s: %v", jobID, err)
		}
	}
	return job, nil
}

// ListOpenJobs lists jobs that accept applications.
func (uc *JobUsecase) ListOpenJobs(ctx context.Context, opts *contract.JobFilterOptions) ([]entity.Job, int64, error) {
	if opts == nil {
		opts = &contract.JobFilterOptions{}
	}
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 {
		opts.PageSize = defaultJobsPageSize
	}
	if opts.PageSize > maxJobsPageSize {
		opts.PageSize = maxJobsPageSize
	}
	opts.IncludeClosed = false

	key := jobsPageKey(opts)
	if uc.jobCache != nil {
		if page, ok, err := uc.jobCache.GetJobsPage(ctx, key); err == nil && ok {
			return page.Jobs, page.Total, nil
		}
	}

	jobs, total, err := uc.jobRepo.ListJobs(ctx, opts)
	if err != nil {
		return nil, 0, storeErr(err, "jobs")
	}
	list := make([]entity.Job, 0, len(jobs))
	for _, j := range jobs {
		list = append(list, *j)
	}
	if uc.jobCache != nil {
		if err := uc.jobCache.SetJobsPage(ctx, key, &contract.CachedJobsPage{Jobs: list, Total: total}); err != nil {
			uc.logger.Warnf("failed to cache jobs page %s: %v", key, err)
		}
	}
	return list, total, nil
}

func jobsPageKey(o *contract.JobFilterOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "p=%d:s=%d:q=%s:l=%s:e=%s", o.Page, o.PageSize, strings.ToLower(o.Query), strings.ToLower(o.Location), o.EmployerID)
	if o.MinSalary != nil {
		fmt.Fprintf(&b, ":min=%g", *o.MinSalary)
	}
	if o.MaxSalary != nil {
		fmt.Fprintf(&b, ":max=%g", *o.MaxSalary)
	}
	return b.String()
}

// ListEmployerJobs lists every job of an employer with its hire numbers.
func (uc *JobUsecase) ListEmployerJobs(ctx context.Context, employerID string) ([]*entity.JobWithProgress, error) {
	if employerID == "" {
		return nil, ErrAuthRequired
	}
	jobs, err := uc.jobRepo.ListJobsByEmployer(ctx, employerID)
	if err != nil {
		return nil, storeErr(err, "jobs")
	}
	out := make([]*entity.JobWithProgress, 0, len(jobs))
	for _, j := range jobs {
		count, err := uc.applicantRepo.CountHired(ctx, j.ID)
		if err != nil {
			return nil, storeErr(err, "applicants")
		}
		out = append(out, newJobWithProgress(j, count))
	}
	return out, nil
}

func (uc *JobUsecase) ListSavedJobs(ctx context.Context, userID string) ([]*entity.Job, error) {
	user, err := loadUser(ctx, uc.userRepo, userID)
	if err != nil {
		return nil, err
	}
	return uc.jobsByIDs(ctx, user.SavedJobs)
}

func (uc *JobUsecase) ListAppliedJobs(ctx context.Context, userID string) ([]*entity.Job, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	ids, err := uc.applicationRepo.ListJobIDsByUser(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "applications")
	}
	return uc.jobsByIDs(ctx, ids)
}

func (uc *JobUsecase) ListAcceptedJobs(ctx context.Context, userID string) ([]*entity.Job, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	ids, err := uc.acceptedJobRepo.ListJobIDsByUser(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "accepted jobs")
	}
	return uc.jobsByIDs(ctx, ids)
}

func (uc *JobUsecase) ListWorkedJobs(ctx context.Context, userID string) ([]*entity.Job, error) {
	user, err := loadUser(ctx, uc.userRepo, userID)
	if err != nil {
		return nil, err
	}
	return uc.jobsByIDs(ctx, user.WorkedJobs)
}

func (uc *JobUsecase) jobsByIDs(ctx context.Context, ids []string) ([]*entity.Job, error) {
	if len(ids) == 0 {
		return []*entity.Job{}, nil
	}
	jobs, err := uc.jobRepo.GetJobsByIDs(ctx, ids)
	if err != nil {
		return nil, storeErr(err, "jobs")
	}
	return jobs, nil
}

func newJobWithProgress(job *entity.Job, hiredCount int) *entity.JobWithProgress {
	progress := lifecycle.ComputeProgress(hiredCount, job.WorkersNeeded)
	return &entity.JobWithProgress{
		Job:             job,
		HiredCount:      hiredCount,
		Progress:        progress,
		ProgressDisplay: lifecycle.ClampProgress(progress),
	}
}
