package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/socialjobs/workmatch/internal/domain/entity"
	"github.com/socialjobs/workmatch/internal/usecase"
	"github.com/stretchr/testify/require"
)

// world wires every use case over one in-memory database.
type world struct {
	db            *memDB
	users         *fakeUserRepo
	jobs          *fakeJobRepo
	applicants    *fakeApplicantRepo
	applications  *fakeApplicationRepo
	accepted      *fakeAcceptedJobRepo
	notifications *fakeNotificationRepo
	broadcasts    *fakeBroadcastRepo
	archives      *fakeArchiveRepo
	workflows     *fakeWorkflowRepo
	employers     *fakeEmployerRepo
	batch         *fakeBatchWriter
	tx            *passThroughTransactor
	bus           *recordingBus
	push          *recordingPush

	notifier  *usecase.NotificationUsecase
	lifecycle *usecase.JobLifecycleUsecase
	roster    *usecase.RosterUsecase
	deletion  *usecase.DeletionUsecase
	jobBoard  *usecase.JobUsecase
	employer  *usecase.EmployerUsecase
}

func newWorld(t *testing.T) *world {
	t.Helper()
	db := newMemDB()
	w := &world{
		db:            db,
		users:         &fakeUserRepo{db: db},
		jobs:          &fakeJobRepo{db: db},
		applicants:    &fakeApplicantRepo{db: db},
		applications:  &fakeApplicationRepo{db: db},
		accepted:      &fakeAcceptedJobRepo{db: db},
		notifications: &fakeNotificationRepo{db: db},
		broadcasts:    &fakeBroadcastRepo{db: db},
		archives:      &fakeArchiveRepo{db: db},
		workflows:     &fakeWorkflowRepo{db: db},
		employers:     &fakeEmployerRepo{db: db},
		batch:         &fakeBatchWriter{db: db, chunkSize: 500},
		tx:            &passThroughTransactor{},
		bus:           newRecordingBus(),
		push:          &recordingPush{},
	}
	ids := &seqUUID{}
	w.notifier = usecase.NewNotificationUsecase(w.notifications, w.broadcasts, w.users, w.batch,
		w.bus, w.push, ids, nopLogger{}, staticConfig{}, nil)
	w.lifecycle = usecase.NewJobLifecycleUsecase(w.jobs, w.applicants, w.applications, w.accepted,
		w.users, w.notifications, w.notifier, w.tx, w.bus, nil, nopLogger{}, nil)
	w.roster = usecase.NewRosterUsecase(w.jobs, w.applicants, w.users, nopLogger{})
	w.deletion = usecase.NewDeletionUsecase(w.users, &fakeRecordStore{db: db}, w.batch, w.archives,
		w.workflows, nil, w.notifier, w.tx, w.bus, nopLogger{}, nil)
	w.jobBoard = usecase.NewJobUsecase(w.jobs, w.applicants, w.applications, w.accepted, w.users, nil, ids, nopLogger{})
	w.employer = usecase.NewEmployerUsecase(w.users, w.employers, w.notifier, w.tx, ids, nopLogger{})
	return w
}

func (w *world) addUser(t *testing.T, id string, role entity.UserRole) *entity.User {
	t.Helper()
	u := &entity.User{
		ID:             id,
		Name:           "user " + id,
		Email:          id + "@example.com",
		Role:           role,
		IsEmployer:     role == entity.UserRoleEmployer,
		DeletionStatus: entity.DeletionStatusNone,
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, w.users.CreateUser(context.Background(), u))
	return u
}

func (w *world) addJob(t *testing.T, id, employerID string, workersNeeded int) *entity.Job {
	t.Helper()
	public := true
	j := &entity.Job{
		ID:            id,
		EmployerID:    employerID,
		Title:         "job " + id,
		WorkersNeeded: workersNeeded,
		IsPublic:      &public,
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, w.jobs.CreateJob(context.Background(), j))
	return j
}

// notificationsFor returns the notifications of one user with the given type.
func (w *world) notificationsFor(userID string, t entity.NotificationType) []*entity.Notification {
	w.db.mu.Lock()
	defer w.db.mu.Unlock()
	var out []*entity.Notification
	for _, n := range w.db.notifications {
		if n.UserID == userID && n.Type == t {
			c := *n
			out = append(out, &c)
		}
	}
	return out
}
