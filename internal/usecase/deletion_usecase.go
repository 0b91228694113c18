package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
	"github.com/socialjobs/workmatch/internal/domain/lifecycle"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

// DeletionUsecase runs the account-deletion approval as a saga. The workflow
// record is saved after every step, so a failed or interrupted approval is
// resumed from its cursor instead of starting over.
type DeletionUsecase struct {
	userRepo     contract.IUserRepository
	records      contract.IRecordStore
	batchWriter  contract.IBatchWriter
	archiveRepo  contract.IArchiveRepository
	workflowRepo contract.IDeletionWorkflowRepository
	exporter     contract.IArchiveExporter
	notifier     usecasecontract.INotifier
	transactor   contract.ITransactor
	eventBus     contract.IEventBus
	logger       usecasecontract.IAppLogger
	metrics      usecasecontract.IMetrics
}

func NewDeletionUsecase(
	userRepo contract.IUserRepository,
	records contract.IRecordStore,
	batchWriter contract.IBatchWriter,
	archiveRepo contract.IArchiveRepository,
	workflowRepo contract.IDeletionWorkflowRepository,
	exporter contract.IArchiveExporter,
	notifier usecasecontract.INotifier,
	transactor contract.ITransactor,
	eventBus contract.IEventBus,
	logger usecasecontract.IAppLogger,
	metrics usecasecontract.IMetrics,
) *DeletionUsecase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &DeletionUsecase{
		userRepo:     userRepo,
		records:      records,
		batchWriter:  batchWriter,
		archiveRepo:  archiveRepo,
		workflowRepo: workflowRepo,
		exporter:     exporter,
		notifier:     notifier,
		transactor:   transactor,
		eventBus:     eventBus,
		logger:       logger,
		metrics:      metrics,
	}
}

var _ usecasecontract.IDeletionUseCase = (*DeletionUsecase)(nil)

// RequestDeletion puts the user's account into the admin review queue.
func (uc *DeletionUsecase) RequestDeletion(ctx context.Context, userID, reason string) error {
	user, err := loadUser(ctx, uc.userRepo, userID)
	if err != nil {
		return err
	}
	from := lifecycle.DeletionOf(user.PendingDeletion, string(user.DeletionStatus))
	if !lifecycle.CanMoveDeletion(from, lifecycle.DeletionPending) {
		return fmt.Errorf("deletion is %s: %w", from, ErrInvalidState)
	}

	now := time.Now().UTC()
	ok, err := uc.userRepo.SetDeletionState(ctx, userID, false, map[string]interface{}{
		"pending_deletion":      true,
		"deletion_status":       entity.DeletionStatusPending,
		"deletion_reason":       reason,
		"deletion_requested_at": now,
		"updated_at":            now,
	})
	if err != nil {
		return storeErr(err, "user")
	}
	if !ok {
		return fmt.Errorf("deletion already requested: %w", ErrInvalidState)
	}

	uc.publish(ctx, entity.NewEvent(entity.EventDeletionRequested, map[string]interface{}{
		"user_id": userID,
		"name":    user.Name,
		"email":   user.Email,
		"reason":  reason,
	}))
	return nil
}

// RejectDeletion clears the pending flag and tells the user. A second call
// fails with ErrInvalidState and sends nothing.
func (uc *DeletionUsecase) RejectDeletion(ctx context.Context, adminID, userID string) error {
	if _, err := requireAdmin(ctx, uc.userRepo, adminID); err != nil {
		return err
	}
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return storeErr(err, "user")
	}
	if !user.PendingDeletion {
		return fmt.Errorf("no pending deletion for user %s: %w", userID, ErrInvalidState)
	}

	var n *entity.Notification
	err = uc.transactor.WithinTransaction(ctx, func(tx context.Context) error {
		ok, err := uc.userRepo.SetDeletionState(tx, userID, true, map[string]interface{}{
			"pending_deletion": false,
			"deletion_status":  entity.DeletionStatusRejected,
			"updated_at":       time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no pending deletion for user %s: %w", userID, ErrInvalidState)
		}
		n, err = uc.notifier.Notify(tx, userID, entity.NotificationTypeDeletionRejected,
			"Your account deletion request was rejected", entity.NotificationRefs{})
		return err
	})
	if err != nil {
		return storeErr(err, "user")
	}
	uc.notifier.Deliver(ctx, n)
	uc.publish(ctx, entity.NewEvent(entity.EventDeletionResolved, map[string]interface{}{
		"user_id": userID,
		"status":  string(entity.DeletionStatusRejected),
	}))
	return nil
}

// ApproveDeletion starts the saga for a pending user, or resumes an unfinished
// one from its saved step.
func (uc *DeletionUsecase) ApproveDeletion(ctx context.Context, adminID, userID string) (*entity.DeletionWorkflow, error) {
	if _, err := requireAdmin(ctx, uc.userRepo, adminID); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "user")
	}

	wf, err := uc.workflowRepo.GetWorkflow(ctx, userID)
	switch {
	case err == nil && !wf.Done():
		uc.logger.Infof("resuming deletion of user %s at step %s", userID, wf.Step)
	case err == nil || errors.Is(err, contract.ErrNotFound):
		if !user.PendingDeletion {
			return nil, fmt.Errorf("no pending deletion for user %s: %w", userID, ErrInvalidState)
		}
		now := time.Now().UTC()
		wf = &entity.DeletionWorkflow{
			ID:        userID,
			AdminID:   adminID,
			Step:      entity.DeletionStepCollect,
			StartedAt: now,
			UpdatedAt: now,
		}
		if err := uc.workflowRepo.SaveWorkflow(ctx, wf); err != nil {
			return nil, storeErr(err, "deletion workflow")
		}
	default:
		return nil, storeErr(err, "deletion workflow")
	}

	if err := uc.run(ctx, wf); err != nil {
		return wf, err
	}
	return wf, nil
}

// ResumeIncomplete drives every unfinished workflow that has not been updated
// for olderThan. It returns how many reached done.
func (uc *DeletionUsecase) ResumeIncomplete(ctx context.Context, olderThan time.Duration) (int, error) {
	stale, err := uc.workflowRepo.ListIncomplete(ctx, time.Now().UTC().Add(-olderThan))
	if err != nil {
		return 0, storeErr(err, "deletion workflows")
	}
	var (
		done int
		errs []error
	)
	for _, wf := range stale {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		uc.logger.Infof("resuming deletion of user %s at step %s (attempt %d)", wf.ID, wf.Step, wf.Attempts+1)
		if err := uc.run(ctx, wf); err != nil {
			uc.logger.Errorf("deletion of user %s stopped at %s: %v", wf.ID, wf.Step, err)
			errs = append(errs, fmt.Errorf("user %s: %w", wf.ID, err))
			continue
		}
		done++
	}
	return done, errors.Join(errs...)
}

func (uc *DeletionUsecase) ListPendingDeletions(ctx context.Context, adminID string) ([]*entity.User, error) {
	if _, err := requireAdmin(ctx, uc.userRepo, adminID); err != nil {
		return nil, err
	}
	users, err := uc.userRepo.ListPendingDeletions(ctx)
	if err != nil {
		return nil, storeErr(err, "users")
	}
	return users, nil
}

func (uc *DeletionUsecase) GetArchive(ctx context.Context, adminID, userID string) (*entity.ArchivedUser, error) {
	if _, err := requireAdmin(ctx, uc.userRepo, adminID); err != nil {
		return nil, err
	}
	archived, err := uc.archiveRepo.GetArchive(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "archive")
	}
	return archived, nil
}

func (uc *DeletionUsecase) run(ctx context.Context, wf *entity.DeletionWorkflow) error {
	for !wf.Done() {
		step := wf.Step
		if err := uc.step(ctx, wf); err != nil {
			uc.metrics.RecordDeletionStep(string(step), "error")
			wf.Attempts++
			wf.LastError = err.Error()
			wf.UpdatedAt = time.Now().UTC()
			if saveErr := uc.workflowRepo.SaveWorkflow(ctx, wf); saveErr != nil {
				uc.logger.Errorf("failed to record error of deletion workflow %s: %v", wf.ID, saveErr)
			}
			return fmt.Errorf("deletion step %s: %w", step, storeErr(err, "deletion"))
		}
		uc.metrics.RecordDeletionStep(string(step), "ok")
		wf.LastError = ""
		wf.UpdatedAt = time.Now().UTC()
		if err := uc.workflowRepo.SaveWorkflow(ctx, wf); err != nil {
			return fmt.Errorf("deletion step %s: %w", step, storeErr(err, "deletion workflow"))
		}
	}
	return nil
}

// step executes the current step and advances the cursor on success.
func (uc *DeletionUsecase) step(ctx context.Context, wf *entity.DeletionWorkflow) error {
	switch wf.Step {
	case entity.DeletionStepCollect:
		snapshot, err := uc.collect(ctx, wf.ID)
		if err != nil {
			return err
		}
		wf.Snapshot = snapshot
		wf.Step = entity.DeletionStepPurge

	case entity.DeletionStepPurge:
		if err := uc.purge(ctx, wf.Snapshot); err != nil {
			return err
		}
		wf.Step = entity.DeletionStepArchive

	case entity.DeletionStepArchive:
		archived := &entity.ArchivedUser{
			ID:           wf.ID,
			DeletedAt:    time.Now().UTC(),
			ApprovedBy:   wf.AdminID,
			ArchivedData: wf.Snapshot,
		}
		err := uc.archiveRepo.InsertArchive(ctx, archived)
		if err != nil && !errors.Is(err, contract.ErrDuplicate) {
			return err
		}
		if err == nil && uc.exporter != nil {
			key, err := uc.exporter.Export(ctx, archived)
			if err != nil {
				uc.logger.Warnf("archive of user %s was not exported: %v", wf.ID, err)
			} else {
				uc.logger.Infof("archive of user %s exported to %s", wf.ID, key)
			}
		}
		wf.Step = entity.DeletionStepMarkApproved

	case entity.DeletionStepMarkApproved:
		ok, err := uc.userRepo.SetDeletionState(ctx, wf.ID, true, map[string]interface{}{
			"pending_deletion": false,
			"deletion_status":  entity.DeletionStatusApproved,
			"updated_at":       time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		if !ok {
			user, err := uc.userRepo.GetUserByID(ctx, wf.ID)
			if err != nil && !errors.Is(err, contract.ErrNotFound) {
				return err
			}
			if user != nil && user.DeletionStatus != entity.DeletionStatusApproved {
				return fmt.Errorf("user %s is no longer pending deletion: %w", wf.ID, ErrInvalidState)
			}
		}
		wf.Step = entity.DeletionStepNotify

	case entity.DeletionStepNotify:
		n, err := uc.notifier.Notify(ctx, wf.ID, entity.NotificationTypeDeletionApproved,
			"Your account deletion request was approved", entity.NotificationRefs{})
		if err != nil {
			return err
		}
		uc.notifier.Deliver(ctx, n)
		uc.publish(ctx, entity.NewEvent(entity.EventDeletionResolved, map[string]interface{}{
			"user_id": wf.ID,
			"status":  string(entity.DeletionStatusApproved),
		}))
		now := time.Now().UTC()
		wf.CompletedAt = &now
		wf.Step = entity.DeletionStepDone

	default:
		return fmt.Errorf("unknown deletion step %q: %w", wf.Step, ErrInvalidState)
	}
	return nil
}

// collect reads every record linked to the user, plus the applicants and
// user-side mirrors of the user's jobs.
func (uc *DeletionUsecase) collect(ctx context.Context, userID string) (entity.ArchiveSnapshot, error) {
	snapshot := entity.ArchiveSnapshot{}
	for _, t := range contract.UserPurgeTargets {
		recs, err := uc.records.FindByField(ctx, t.Collection, t.Field, userID)
		if err != nil {
			return nil, fmt.Errorf("collect %s: %w", t.Collection, err)
		}
		snapshot[t.Collection] = recs
	}

	jobIDs := recordIDs(snapshot[contract.CollectionJobs])
	if len(jobIDs) == 0 {
		return snapshot, nil
	}
	for _, c := range contract.JobCascadeCollections {
		recs, err := uc.records.FindByFieldIn(ctx, c, "job_id", jobIDs)
		if err != nil {
			return nil, fmt.Errorf("collect %s: %w", c, err)
		}
		snapshot[c] = recs
	}
	return snapshot, nil
}

func (uc *DeletionUsecase) purge(ctx context.Context, snapshot entity.ArchiveSnapshot) error {
	collections := make([]string, 0, len(snapshot))
	for c := range snapshot {
		collections = append(collections, c)
	}
	sort.Strings(collections)

	for _, c := range collections {
		ids := recordIDs(snapshot[c])
		if len(ids) == 0 {
			continue
		}
		if _, err := uc.batchWriter.DeleteByIDs(ctx, c, ids); err != nil {
			return fmt.Errorf("purge %s: %w", c, err)
		}
	}

	jobIDs := recordIDs(snapshot[contract.CollectionJobs])
	if len(jobIDs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(jobIDs))
	for _, id := range jobIDs {
		ids = append(ids, fmt.Sprint(id))
	}
	if _, err := uc.userRepo.PullSavedJobs(ctx, ids); err != nil {
		return fmt.Errorf("purge saved jobs: %w", err)
	}
	return nil
}

func recordIDs(records []entity.Record) []interface{} {
	ids := make([]interface{}, 0, len(records))
	for _, r := range records {
		if id, ok := r["_id"]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (uc *DeletionUsecase) publish(ctx context.Context, event entity.Event) {
	if err := uc.eventBus.Publish(ctx, entity.TopicDeletionRequests, event); err != nil {
		uc.logger.Warnf("failed to publish %s: %v", event.Type, err)
	}
}
