package usecase_test

import (
	"context"
	"testing"

	"github.com/socialjobs/workmatch/internal/domain/entity"
	"github.com/socialjobs/workmatch/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployerApproval(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	w.addUser(t, "admin", entity.UserRoleAdmin)
	w.addUser(t, "u1", entity.UserRoleUser)

	u, err := w.employer.RequestEmployerRole(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, u.PendingEmployer)
	_, err = w.employer.RequestEmployerRole(ctx, "u1")
	assert.ErrorIs(t, err, usecase.ErrInvalidState)

	pending, err := w.employer.ListPendingEmployers(ctx, "admin")
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = w.employer.ApproveEmployer(ctx, "u1", "u1")
	assert.ErrorIs(t, err, usecase.ErrForbidden)

	u, err = w.employer.ApproveEmployer(ctx, "admin", "u1")
	require.NoError(t, err)
	assert.True(t, u.IsEmployer)
	assert.Equal(t, entity.UserRoleEmployer, u.Role)
	assert.True(t, u.CanPostJobs())

	e, err := w.employers.byUser("u1")
	require.NoError(t, err)
	assert.Equal(t, "admin", e.ApprovedBy)
	assert.Len(t, w.notificationsFor("u1", entity.NotificationTypeEmployerApproved), 1)

	_, err = w.employer.ApproveEmployer(ctx, "admin", "u1")
	assert.ErrorIs(t, err, usecase.ErrInvalidState)
}

func TestEmployerRejection(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	w.addUser(t, "admin", entity.UserRoleAdmin)
	w.addUser(t, "u1", entity.UserRoleUser)
	_, err := w.employer.RequestEmployerRole(ctx, "u1")
	require.NoError(t, err)

	u, err := w.employer.RejectEmployer(ctx, "admin", "u1")
	require.NoError(t, err)
	assert.False(t, u.PendingEmployer)
	assert.False(t, u.CanPostJobs())
	assert.Len(t, w.notificationsFor("u1", entity.NotificationTypeEmployerRejected), 1)

	// may ask again after a rejection
	_, err = w.employer.RequestEmployerRole(ctx, "u1")
	require.NoError(t, err)
}
