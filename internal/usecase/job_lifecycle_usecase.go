package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
	"github.com/socialjobs/workmatch/internal/domain/lifecycle"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

// JobLifecycleUsecase owns saving, applying, withdrawing and hiring, and the
// staffing state of a job. Every transition that touches more than one
// document runs inside one transaction.
type JobLifecycleUsecase struct {
	jobRepo          contract.IJobRepository
	applicantRepo    contract.IApplicantRepository
	applicationRepo  contract.IApplicationRepository
	acceptedJobRepo  contract.IAcceptedJobRepository
	userRepo         contract.IUserRepository
	notificationRepo contract.INotificationRepository
	notifier         usecasecontract.INotifier
	transactor       contract.ITransactor
	eventBus         contract.IEventBus
	jobCache         contract.IJobCache
	logger           usecasecontract.IAppLogger
	metrics          usecasecontract.IMetrics
}

func NewJobLifecycleUsecase(
	jobRepo contract.IJobRepository,
	applicantRepo contract.IApplicantRepository,
	applicationRepo contract.IApplicationRepository,
	acceptedJobRepo contract.IAcceptedJobRepository,
	userRepo contract.IUserRepository,
	notificationRepo contract.INotificationRepository,
	notifier usecasecontract.INotifier,
	transactor contract.ITransactor,
	eventBus contract.IEventBus,
	jobCache contract.IJobCache,
	logger usecasecontract.IAppLogger,
	metrics usecasecontract.IMetrics,
) *JobLifecycleUsecase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &JobLifecycleUsecase{
		jobRepo:          jobRepo,
		applicantRepo:    applicantRepo,
		applicationRepo:  applicationRepo,
		acceptedJobRepo:  acceptedJobRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
		transactor:       transactor,
		eventBus:         eventBus,
		jobCache:         jobCache,
		logger:           logger,
		metrics:          metrics,
	}
}

var _ usecasecontract.IJobLifecycleUseCase = (*JobLifecycleUsecase)(nil)

func (uc *JobLifecycleUsecase) SaveJob(ctx context.Context, userID, jobID string) error {
	if userID == "" {
		return ErrAuthRequired
	}
	if err := uc.userRepo.AddSavedJob(ctx, userID, jobID); err != nil {
		return storeErr(err, "user")
	}
	return nil
}

func (uc *JobLifecycleUsecase) UnsaveJob(ctx context.Context, userID, jobID string) error {
	if userID == "" {
		return ErrAuthRequired
	}
	if err := uc.userRepo.RemoveSavedJob(ctx, userID, jobID); err != nil {
		return storeErr(err, "user")
	}
	return nil
}

// ToggleSavedJob flips membership based on the caller's view of it and
// returns the new membership.
func (uc *JobLifecycleUsecase) ToggleSavedJob(ctx context.Context, userID, jobID string, currentlySaved bool) (bool, error) {
	if currentlySaved {
		return false, uc.UnsaveJob(ctx, userID, jobID)
	}
	return true, uc.SaveJob(ctx, userID, jobID)
}

// ApplyToJob records an Applicant under the job and its Application mirror
// under the user. The employer is notified after commit on a best-effort basis.
func (uc *JobLifecycleUsecase) ApplyToJob(ctx context.Context, userID, jobID string) (usecasecontract.ApplyResult, error) {
	if userID == "" {
		return "", ErrAuthRequired
	}
	job, err := loadJob(ctx, uc.jobRepo, jobID)
	if err != nil {
		return "", err
	}
	if !job.AcceptsApplications() {
		return "", fmt.Errorf("job %s is not accepting applications: %w", jobID, ErrInvalidState)
	}

	from, err := uc.participation(ctx, jobID, userID)
	if err != nil {
		return "", err
	}
	if !lifecycle.CanParticipate(from, lifecycle.ParticipationApplied) {
		return usecasecontract.ApplyResultAlreadyApplied, nil
	}

	now := time.Now().UTC()
	err = uc.transactor.WithinTransaction(ctx, func(tx context.Context) error {
		// the write on the job conflicts with a concurrent close of the job
		open, err := uc.jobRepo.CompareAndUpdateJob(tx, jobID,
			map[string]interface{}{"is_completed": false, "is_fully_staffed": false},
			map[string]interface{}{"updated_at": now})
		if err != nil {
			return err
		}
		if !open {
			return fmt.Errorf("job %s closed while applying: %w", jobID, ErrInvalidState)
		}
		if err := uc.applicantRepo.CreateApplicant(tx, &entity.Applicant{
			ID:          entity.ApplicantDocID(jobID, userID),
			JobID:       jobID,
			ApplicantID: userID,
			Hired:       false,
			Timestamp:   now,
		}); err != nil {
			return err
		}
		return uc.applicationRepo.CreateApplication(tx, &entity.Application{
			ID:        entity.ApplicationDocID(userID, jobID),
			UserID:    userID,
			JobID:     jobID,
			Status:    entity.ApplicationStatusApplied,
			Timestamp: now,
		})
	})
	if errors.Is(err, contract.ErrDuplicate) {
		return usecasecontract.ApplyResultAlreadyApplied, nil
	}
	if err != nil {
		uc.metrics.RecordTransition("apply", "error")
		return "", storeErr(err, "application")
	}
	uc.metrics.RecordTransition("apply", "ok")

	uc.notifyNewApplicant(ctx, job, userID)
	return usecasecontract.ApplyResultApplied, nil
}

func (uc *JobLifecycleUsecase) notifyNewApplicant(ctx context.Context, job *entity.Job, applicantID string) {
	name := "A worker"
	if u, err := uc.userRepo.GetUserByID(ctx, applicantID); err == nil && u.Name != "" {
		name = u.Name
	}
	msg := fmt.Sprintf("%s applied to %q", name, job.Title)
	n, err := uc.notifier.Notify(ctx, job.EmployerID, entity.NotificationTypeNewApplication, msg, entity.NotificationRefs{
		JobID:       job.ID,
		ApplicantID: applicantID,
	})
	if err != nil {
		uc.logger.Warnf("failed to notify employer %s of applicant %s: %v", job.EmployerID, applicantID, err)
		return
	}
	uc.notifier.Deliver(ctx, n)
}

// WithdrawApplication removes a pending application together with its mirror
// and the employer's new_application notifications for it.
func (uc *JobLifecycleUsecase) WithdrawApplication(ctx context.Context, userID, jobID string) error {
	if userID == "" {
		return ErrAuthRequired
	}
	from, err := uc.participation(ctx, jobID, userID)
	if err != nil {
		return err
	}
	if from == lifecycle.ParticipationNone {
		return fmt.Errorf("application: %w", ErrNotFound)
	}
	if !lifecycle.CanParticipate(from, lifecycle.ParticipationNone) {
		return fmt.Errorf("a hired worker cannot withdraw: %w", ErrInvalidState)
	}

	err = uc.transactor.WithinTransaction(ctx, func(tx context.Context) error {
		removed, err := uc.applicantRepo.DeleteApplicant(tx, jobID, userID)
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("applicant changed concurrently: %w", ErrInvalidState)
		}
		if err := ignoreNotFound(uc.applicationRepo.DeleteApplication(tx, userID, jobID)); err != nil {
			return err
		}
		_, err = uc.notificationRepo.DeleteByJobApplicantType(tx, jobID, userID, entity.NotificationTypeNewApplication)
		return err
	})
	if err != nil {
		uc.metrics.RecordTransition("withdraw", "error")
		return storeErr(err, "application")
	}
	uc.metrics.RecordTransition("withdraw", "ok")
	return nil
}

// SetHired hires or revokes an applicant. Calls that would not change the
// hired flag return Changed=false and emit nothing.
func (uc *JobLifecycleUsecase) SetHired(ctx context.Context, employerID, jobID, applicantID string, hired bool) (*usecasecontract.HireResult, error) {
	job, err := uc.ownedJob(ctx, employerID, jobID)
	if err != nil {
		return nil, err
	}
	applicant, err := uc.applicantRepo.GetApplicant(ctx, jobID, applicantID)
	if err != nil {
		return nil, storeErr(err, "applicant")
	}

	from := lifecycle.ParticipationOf(true, applicant.Hired)
	to := lifecycle.ParticipationApplied
	if hired {
		to = lifecycle.ParticipationHired
	}
	result := &usecasecontract.HireResult{JobID: jobID, ApplicantID: applicantID, Hired: hired}

	if from != to {
		if !lifecycle.CanParticipate(from, to) {
			return nil, fmt.Errorf("cannot move applicant from %s to %s: %w", from, to, ErrInvalidState)
		}
		n, err := uc.applyHire(ctx, job, applicantID, hired)
		if err != nil {
			uc.metrics.RecordTransition(hireTransition(hired), "error")
			return nil, storeErr(err, "applicant")
		}
		uc.metrics.RecordTransition(hireTransition(hired), "ok")
		uc.notifier.Deliver(ctx, n)
		result.Changed = true
	}

	count, err := uc.applicantRepo.CountHired(ctx, jobID)
	if err != nil {
		return nil, storeErr(err, "applicants")
	}
	result.HiredCount = count
	result.Progress = lifecycle.ComputeProgress(count, job.WorkersNeeded)
	result.ProgressDisplay = lifecycle.ClampProgress(result.Progress)
	return result, nil
}

func (uc *JobLifecycleUsecase) applyHire(ctx context.Context, job *entity.Job, applicantID string, hired bool) (*entity.Notification, error) {
	var n *entity.Notification
	now := time.Now().UTC()
	err := uc.transactor.WithinTransaction(ctx, func(tx context.Context) error {
		changed, err := uc.applicantRepo.SetHired(tx, job.ID, applicantID, !hired, hired)
		if err != nil {
			return err
		}
		if !changed {
			return fmt.Errorf("applicant changed concurrently: %w", ErrInvalidState)
		}

		refs := entity.NotificationRefs{JobID: job.ID, ApplicantID: applicantID}
		if hired {
			if err := ignoreNotFound(uc.applicationRepo.DeleteApplication(tx, applicantID, job.ID)); err != nil {
				return err
			}
			if err := uc.acceptedJobRepo.AddAcceptedJob(tx, &entity.AcceptedJob{
				ID:        entity.AcceptedJobDocID(applicantID, job.ID),
				UserID:    applicantID,
				JobID:     job.ID,
				Timestamp: now,
			}); err != nil {
				return err
			}
			n, err = uc.notifier.Notify(tx, applicantID, entity.NotificationTypeHiredStatusUpdated,
				fmt.Sprintf("You were hired for %q", job.Title), refs)
			return err
		}

		if err := ignoreNotFound(uc.acceptedJobRepo.RemoveAcceptedJob(tx, applicantID, job.ID)); err != nil {
			return err
		}
		err = uc.applicationRepo.CreateApplication(tx, &entity.Application{
			ID:        entity.ApplicationDocID(applicantID, job.ID),
			UserID:    applicantID,
			JobID:     job.ID,
			Status:    entity.ApplicationStatusApplied,
			Timestamp: now,
		})
		if err != nil && !errors.Is(err, contract.ErrDuplicate) {
			return err
		}
		n, err = uc.notifier.Notify(tx, applicantID, entity.NotificationTypeHiredStatusRevoked,
			fmt.Sprintf("Your hire for %q was revoked", job.Title), refs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

func hireTransition(hired bool) string {
	if hired {
		return "hire"
	}
	return "revoke"
}

// ToggleFullyStaffed flips the manual fully-staffed flag and mirrors it into
// is_public when the job carries that field. The hire numbers are reported
// next to the flag; they do not drive it.
func (uc *JobLifecycleUsecase) ToggleFullyStaffed(ctx context.Context, employerID, jobID string) (*entity.StaffingState, error) {
	job, err := uc.ownedJob(ctx, employerID, jobID)
	if err != nil {
		return nil, err
	}

	next := !job.IsFullyStaffed
	updates := map[string]interface{}{
		"is_fully_staffed": next,
		"updated_at":       time.Now().UTC(),
	}
	var public *bool
	if job.IsPublic != nil {
		p := !next
		public = &p
		updates["is_public"] = p
	}
	ok, err := uc.jobRepo.CompareAndUpdateJob(ctx, jobID, map[string]interface{}{"is_fully_staffed": job.IsFullyStaffed}, updates)
	if err != nil {
		return nil, storeErr(err, "job")
	}
	if !ok {
		return nil, fmt.Errorf("job %s changed concurrently: %w", jobID, ErrInvalidState)
	}
	uc.metrics.RecordTransition("toggle_fully_staffed", "ok")
	uc.invalidate(ctx, jobID)

	count, err := uc.applicantRepo.CountHired(ctx, jobID)
	if err != nil {
		return nil, storeErr(err, "applicants")
	}
	progress := lifecycle.ComputeProgress(count, job.WorkersNeeded)
	return &entity.StaffingState{
		JobID:           jobID,
		IsFullyStaffed:  next,
		IsPublic:        public,
		HiredCount:      count,
		WorkersNeeded:   job.WorkersNeeded,
		Progress:        progress,
		ProgressDisplay: lifecycle.ClampProgress(progress),
	}, nil
}

// MarkCompleted closes the job, appends it to every hired worker's history and
// hands it to the rating service through a job_completed event.
func (uc *JobLifecycleUsecase) MarkCompleted(ctx context.Context, employerID, jobID string) (*entity.Job, error) {
	job, err := uc.ownedJob(ctx, employerID, jobID)
	if err != nil {
		return nil, err
	}
	if job.IsCompleted {
		return nil, fmt.Errorf("job %s is already completed: %w", jobID, ErrInvalidState)
	}

	now := time.Now().UTC()
	var hiredIDs []string
	err = uc.transactor.WithinTransaction(ctx, func(tx context.Context) error {
		ok, err := uc.jobRepo.CompareAndUpdateJob(tx, jobID,
			map[string]interface{}{"is_completed": false},
			map[string]interface{}{"is_completed": true, "completed_at": now, "updated_at": now})
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("job %s is already completed: %w", jobID, ErrInvalidState)
		}
		hiredIDs, err = uc.applicantRepo.ListHiredApplicantIDs(tx, jobID)
		if err != nil {
			return err
		}
		return uc.userRepo.AppendWorkedJob(tx, hiredIDs, jobID)
	})
	if err != nil {
		uc.metrics.RecordTransition("complete", "error")
		return nil, storeErr(err, "job")
	}
	uc.metrics.RecordTransition("complete", "ok")
	uc.invalidate(ctx, jobID)

	event := entity.NewEvent(entity.EventJobCompleted, map[string]interface{}{
		"job_id":      jobID,
		"employer_id": job.EmployerID,
		"hired":       hiredIDs,
	})
	if err := uc.eventBus.Publish(ctx, entity.TopicJobs, event); err != nil {
		uc.logger.Warnf("failed to publish completion of job %s: %v", jobID, err)
	}

	job.IsCompleted = true
	job.CompletedAt = &now
	job.UpdatedAt = now
	return job, nil
}

func (uc *JobLifecycleUsecase) JobProgress(ctx context.Context, jobID string) (*entity.JobWithProgress, error) {
	job, err := loadJob(ctx, uc.jobRepo, jobID)
	if err != nil {
		return nil, err
	}
	count, err := uc.applicantRepo.CountHired(ctx, jobID)
	if err != nil {
		return nil, storeErr(err, "applicants")
	}
	return newJobWithProgress(job, count), nil
}

func (uc *JobLifecycleUsecase) ownedJob(ctx context.Context, employerID, jobID string) (*entity.Job, error) {
	if employerID == "" {
		return nil, ErrAuthRequired
	}
	job, err := loadJob(ctx, uc.jobRepo, jobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != employerID {
		return nil, fmt.Errorf("job %s belongs to another employer: %w", jobID, ErrForbidden)
	}
	return job, nil
}

func (uc *JobLifecycleUsecase) participation(ctx context.Context, jobID, userID string) (lifecycle.Participation, error) {
	applicant, err := uc.applicantRepo.GetApplicant(ctx, jobID, userID)
	if errors.Is(err, contract.ErrNotFound) {
		return lifecycle.ParticipationNone, nil
	}
	if err != nil {
		return "", storeErr(err, "applicant")
	}
	return lifecycle.ParticipationOf(true, applicant.Hired), nil
}

func (uc *JobLifecycleUsecase) invalidate(ctx context.Context, jobID string) {
	if uc.jobCache == nil {
		return
	}
	if err := uc.jobCache.InvalidateJob(ctx, jobID); err != nil {
		uc.logger.Warnf("failed to invalidate cached job %s: %v", jobID, err)
	}
	if err := uc.jobCache.InvalidateJobLists(ctx); err != nil {
		uc.logger.Warnf("failed to invalidate job lists: %v", err)
	}
}
