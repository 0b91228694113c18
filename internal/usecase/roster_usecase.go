package usecase

import (
	"context"
	"fmt"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

// RosterUsecase answers read-only questions about a job's applicants.
type RosterUsecase struct {
	jobRepo       contract.IJobRepository
	applicantRepo contract.IApplicantRepository
	userRepo      contract.IUserRepository
	logger        usecasecontract.IAppLogger
}

func NewRosterUsecase(
	jobRepo contract.IJobRepository,
	applicantRepo contract.IApplicantRepository,
	userRepo contract.IUserRepository,
	logger usecasecontract.IAppLogger,
) *RosterUsecase {
	return &RosterUsecase{
		jobRepo:       jobRepo,
		applicantRepo: applicantRepo,
		userRepo:      userRepo,
		logger:        logger,
	}
}

var _ usecasecontract.IRosterUseCase = (*RosterUsecase)(nil)

// ListApplicants returns the job's applicants in arrival order. Only the
// job's employer and admins may read it.
func (uc *RosterUsecase) ListApplicants(ctx context.Context, callerID, jobID string) ([]*entity.RosterEntry, error) {
	caller, err := loadUser(ctx, uc.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	job, err := loadJob(ctx, uc.jobRepo, jobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != callerID && !caller.IsAdmin() {
		return nil, fmt.Errorf("roster of job %s: %w", jobID, ErrForbidden)
	}
	return uc.roster(ctx, jobID)
}

func (uc *RosterUsecase) HiredCount(ctx context.Context, jobID string) (int, error) {
	if _, err := loadJob(ctx, uc.jobRepo, jobID); err != nil {
		return 0, err
	}
	n, err := uc.applicantRepo.CountHired(ctx, jobID)
	if err != nil {
		return 0, storeErr(err, "applicants")
	}
	return n, nil
}

// CoWorkers shows a hired worker everyone else on the job's roster.
func (uc *RosterUsecase) CoWorkers(ctx context.Context, callerID, jobID string) ([]*entity.RosterEntry, error) {
	if callerID == "" {
		return nil, ErrAuthRequired
	}
	if _, err := loadJob(ctx, uc.jobRepo, jobID); err != nil {
		return nil, err
	}
	self, err := uc.applicantRepo.GetApplicant(ctx, jobID, callerID)
	if err != nil {
		err = storeErr(err, "applicant")
		if isNotFound(err) {
			return nil, fmt.Errorf("not on the roster of job %s: %w", jobID, ErrForbidden)
		}
		return nil, err
	}
	if !self.Hired {
		return nil, fmt.Errorf("not hired for job %s: %w", jobID, ErrForbidden)
	}

	entries, err := uc.roster(ctx, jobID)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.RosterEntry, 0, len(entries))
	for _, e := range entries {
		if e.ApplicantID != callerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (uc *RosterUsecase) roster(ctx context.Context, jobID string) ([]*entity.RosterEntry, error) {
	applicants, err := uc.applicantRepo.ListApplicantsByJob(ctx, jobID)
	if err != nil {
		return nil, storeErr(err, "applicants")
	}
	if len(applicants) == 0 {
		return []*entity.RosterEntry{}, nil
	}

	ids := make([]string, 0, len(applicants))
	for _, a := range applicants {
		ids = append(ids, a.ApplicantID)
	}
	users, err := uc.userRepo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, storeErr(err, "users")
	}
	byID := make(map[string]*entity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	entries := make([]*entity.RosterEntry, 0, len(applicants))
	for _, a := range applicants {
		e := &entity.RosterEntry{Applicant: *a}
		if u, ok := byID[a.ApplicantID]; ok {
			e.Name = u.Name
			e.PhotoURL = u.PhotoURL
			e.Rating = u.Rating
		} else {
			uc.logger.Debugf("applicant %s of job %s has no user record", a.ApplicantID, jobID)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
