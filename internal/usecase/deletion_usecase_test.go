package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
	"github.com/socialjobs/workmatch/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deletionWorld seeds an employer with three jobs, an applicant on one of
// them, five ratings and one unrelated rating.
func deletionWorld(t *testing.T) *world {
	t.Helper()
	w := newWorld(t)
	ctx := context.Background()
	w.addUser(t, "admin", entity.UserRoleAdmin)
	w.addUser(t, "emp", entity.UserRoleEmployer)
	w.addUser(t, "worker", entity.UserRoleUser)
	for i := 1; i <= 3; i++ {
		w.addJob(t, fmt.Sprintf("j%d", i), "emp", 1)
	}
	_, err := w.lifecycle.ApplyToJob(ctx, "worker", "j1")
	require.NoError(t, err)

	w.db.mu.Lock()
	for i := 1; i <= 5; i++ {
		w.db.raw[contract.CollectionRatings] = append(w.db.raw[contract.CollectionRatings],
			entity.Record{"_id": fmt.Sprintf("r%d", i), "rated_user": "emp", "score": i})
	}
	w.db.raw[contract.CollectionRatings] = append(w.db.raw[contract.CollectionRatings],
		entity.Record{"_id": "r-other", "rated_user": "worker", "score": 4})
	w.db.mu.Unlock()

	require.NoError(t, w.deletion.RequestDeletion(ctx, "emp", "closing shop"))
	return w
}

func TestRequestDeletion(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	w.addUser(t, "u1", entity.UserRoleUser)

	require.NoError(t, w.deletion.RequestDeletion(ctx, "u1", "bye"))
	u, _ := w.users.GetUserByID(ctx, "u1")
	assert.True(t, u.PendingDeletion)
	assert.Equal(t, entity.DeletionStatusPending, u.DeletionStatus)
	assert.Equal(t, "bye", u.DeletionReason)
	assert.Equal(t, 1, w.bus.count(entity.TopicDeletionRequests, entity.EventDeletionRequested))

	err := w.deletion.RequestDeletion(ctx, "u1", "again")
	assert.ErrorIs(t, err, usecase.ErrInvalidState)
	assert.ErrorIs(t, w.deletion.RequestDeletion(ctx, "", "x"), usecase.ErrAuthRequired)
}

func TestRejectDeletion_SecondCallFails(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	w.addUser(t, "admin", entity.UserRoleAdmin)
	w.addUser(t, "u1", entity.UserRoleUser)
	require.NoError(t, w.deletion.RequestDeletion(ctx, "u1", "bye"))

	require.NoError(t, w.deletion.RejectDeletion(ctx, "admin", "u1"))
	u, _ := w.users.GetUserByID(ctx, "u1")
	assert.False(t, u.PendingDeletion)
	assert.Equal(t, entity.DeletionStatusRejected, u.DeletionStatus)

	err := w.deletion.RejectDeletion(ctx, "admin", "u1")
	assert.ErrorIs(t, err, usecase.ErrInvalidState)
	assert.Len(t, w.notificationsFor("u1", entity.NotificationTypeDeletionRejected), 1)

	// a rejected user may ask again
	require.NoError(t, w.deletion.RequestDeletion(ctx, "u1", "really"))
}

func TestRejectDeletion_RequiresAdmin(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	w.addUser(t, "u1", entity.UserRoleUser)
	w.addUser(t, "u2", entity.UserRoleUser)
	require.NoError(t, w.deletion.RequestDeletion(ctx, "u1", "bye"))

	assert.ErrorIs(t, w.deletion.RejectDeletion(ctx, "u2", "u1"), usecase.ErrForbidden)
	_, err := w.deletion.ApproveDeletion(ctx, "u2", "u1")
	assert.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestApproveDeletion_ArchivesAndPurges(t *testing.T) {
	w := deletionWorld(t)
	ctx := context.Background()
	w.addUser(t, "hired", entity.UserRoleUser)
	_, err := w.lifecycle.ApplyToJob(ctx, "hired", "j2")
	require.NoError(t, err)
	_, err = w.lifecycle.SetHired(ctx, "emp", "j2", "hired", true)
	require.NoError(t, err)
	require.NoError(t, w.lifecycle.SaveJob(ctx, "worker", "j3"))
	w.addJob(t, "other", "someone-else", 1)
	require.NoError(t, w.lifecycle.SaveJob(ctx, "worker", "other"))

	wf, err := w.deletion.ApproveDeletion(ctx, "admin", "emp")
	require.NoError(t, err)
	assert.True(t, wf.Done())
	require.NotNil(t, wf.CompletedAt)

	archived, err := w.deletion.GetArchive(ctx, "admin", "emp")
	require.NoError(t, err)
	assert.Equal(t, "admin", archived.ApprovedBy)
	assert.Equal(t, 3, archived.ArchivedData.Count(contract.CollectionJobs))
	assert.Equal(t, 5, archived.ArchivedData.Count(contract.CollectionRatings))
	assert.Equal(t, 2, archived.ArchivedData.Count(contract.CollectionApplicants))
	assert.Equal(t, 1, archived.ArchivedData.Count(contract.CollectionApplications))
	assert.Equal(t, 1, archived.ArchivedData.Count(contract.CollectionAcceptedJobs))

	jobs, err := w.jobs.ListJobsByEmployer(ctx, "emp")
	require.NoError(t, err)
	assert.Empty(t, jobs)
	applicants, _ := w.applicants.ListApplicantsByJob(ctx, "j1")
	assert.Empty(t, applicants)
	assert.Len(t, w.db.raw[contract.CollectionRatings], 1)

	// workers of the purged jobs keep no dangling mirrors or saved entries
	applied, err := w.applications.ListJobIDsByUser(ctx, "worker")
	require.NoError(t, err)
	assert.Empty(t, applied)
	accepted, err := w.accepted.ListJobIDsByUser(ctx, "hired")
	require.NoError(t, err)
	assert.Empty(t, accepted)
	worker, _ := w.users.GetUserByID(ctx, "worker")
	assert.Equal(t, []string{"other"}, worker.SavedJobs)

	u, _ := w.users.GetUserByID(ctx, "emp")
	assert.False(t, u.PendingDeletion)
	assert.Equal(t, entity.DeletionStatusApproved, u.DeletionStatus)
	assert.Len(t, w.notificationsFor("emp", entity.NotificationTypeDeletionApproved), 1)
	assert.Equal(t, 1, w.bus.count(entity.TopicDeletionRequests, entity.EventDeletionResolved))

	_, err = w.deletion.ApproveDeletion(ctx, "admin", "emp")
	assert.ErrorIs(t, err, usecase.ErrInvalidState)
	assert.Equal(t, 1, w.archives.inserts)
}

func TestApproveDeletion_ResumesFromSavedStep(t *testing.T) {
	w := deletionWorld(t)
	ctx := context.Background()
	w.batch.failNext = 1

	wf, err := w.deletion.ApproveDeletion(ctx, "admin", "emp")
	assert.ErrorIs(t, err, usecase.ErrBackendUnavailable)
	assert.Equal(t, entity.DeletionStepPurge, wf.Step)
	assert.Equal(t, 1, wf.Attempts)
	assert.NotEmpty(t, wf.LastError)
	assert.Zero(t, w.archives.inserts)

	stored, err := w.workflows.GetWorkflow(ctx, "emp")
	require.NoError(t, err)
	assert.Equal(t, entity.DeletionStepPurge, stored.Step)
	assert.Equal(t, 3, stored.Snapshot.Count(contract.CollectionJobs))

	done, err := w.deletion.ResumeIncomplete(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, done)
	assert.Equal(t, 1, w.archives.inserts)

	stored, _ = w.workflows.GetWorkflow(ctx, "emp")
	assert.True(t, stored.Done())
	assert.Empty(t, stored.LastError)

	done, err = w.deletion.ResumeIncomplete(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, done)
}

func TestApproveDeletion_ToleratesExistingArchive(t *testing.T) {
	w := deletionWorld(t)
	ctx := context.Background()
	require.NoError(t, w.archives.InsertArchive(ctx, &entity.ArchivedUser{ID: "emp", ApprovedBy: "earlier"}))

	wf, err := w.deletion.ApproveDeletion(ctx, "admin", "emp")
	require.NoError(t, err)
	assert.True(t, wf.Done())

	archived, _ := w.archives.GetArchive(ctx, "emp")
	assert.Equal(t, "earlier", archived.ApprovedBy)
}

func TestApproveDeletion_NotPending(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	w.addUser(t, "admin", entity.UserRoleAdmin)
	w.addUser(t, "u1", entity.UserRoleUser)

	_, err := w.deletion.ApproveDeletion(ctx, "admin", "u1")
	assert.ErrorIs(t, err, usecase.ErrInvalidState)
	_, err = w.deletion.ApproveDeletion(ctx, "admin", "missing")
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestListPendingDeletions(t *testing.T) {
	w := deletionWorld(t)
	users, err := w.deletion.ListPendingDeletions(context.Background(), "admin")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "emp", users[0].ID)
}
