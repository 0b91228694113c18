package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
)

// memDB backs every fake repository so that typed repositories, the record
// store and the batch writer all see the same data.
type memDB struct {
	mu            sync.Mutex
	seq           int
	order         map[string]int
	users         map[string]*entity.User
	jobs          map[string]*entity.Job
	applicants    map[string]*entity.Applicant
	applications  map[string]*entity.Application
	accepted      map[string]*entity.AcceptedJob
	notifications map[string]*entity.Notification
	broadcasts    map[string]*entity.Broadcast
	archives      map[string]*entity.ArchivedUser
	workflows     map[string]*entity.DeletionWorkflow
	employers     map[string]*entity.Employer
	tokens        map[string]*entity.Token
	raw           map[string][]entity.Record
}

func newMemDB() *memDB {
	return &memDB{
		order:         map[string]int{},
		users:         map[string]*entity.User{},
		jobs:          map[string]*entity.Job{},
		applicants:    map[string]*entity.Applicant{},
		applications:  map[string]*entity.Application{},
		accepted:      map[string]*entity.AcceptedJob{},
		notifications: map[string]*entity.Notification{},
		broadcasts:    map[string]*entity.Broadcast{},
		archives:      map[string]*entity.ArchivedUser{},
		workflows:     map[string]*entity.DeletionWorkflow{},
		employers:     map[string]*entity.Employer{},
		tokens:        map[string]*entity.Token{},
		raw:           map[string][]entity.Record{},
	}
}

func (db *memDB) stamp(key string) {
	db.seq++
	db.order[key] = db.seq
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	c.SavedJobs = append([]string(nil), u.SavedJobs...)
	c.WorkedJobs = append([]string(nil), u.WorkedJobs...)
	return &c
}

func copyJob(j *entity.Job) *entity.Job {
	c := *j
	if j.IsPublic != nil {
		p := *j.IsPublic
		c.IsPublic = &p
	}
	return &c
}

// ── users ────────────────────────────────────────────────────────────────

type fakeUserRepo struct{ db *memDB }

var _ contract.IUserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) CreateUser(_ context.Context, user *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == user.Email {
			return contract.ErrDuplicate
		}
	}
	r.db.users[user.ID] = copyUser(user)
	r.db.stamp("users/" + user.ID)
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, contract.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, contract.ErrNotFound
}

func (r *fakeUserRepo) GetUsersByIDs(_ context.Context, ids []string) ([]*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.User
	for _, id := range ids {
		if u, ok := r.db.users[id]; ok {
			out = append(out, copyUser(u))
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListUserIDs(_ context.Context) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	ids := make([]string, 0, len(r.db.users))
	for id, u := range r.db.users {
		if u.DeletionStatus == entity.DeletionStatusApproved {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, id string, updates map[string]interface{}) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, contract.ErrNotFound
	}
	applyUserUpdates(u, updates)
	return copyUser(u), nil
}

func applyUserUpdates(u *entity.User, updates map[string]interface{}) {
	for k, v := range updates {
		switch k {
		case "name":
			u.Name = v.(string)
		case "phone":
			s := v.(string)
			u.Phone = &s
		case "photo_url":
			s := v.(string)
			u.PhotoURL = &s
		case "profile_complete":
			u.ProfileComplete = v.(bool)
		case "role":
			u.Role = v.(entity.UserRole)
		case "is_employer":
			u.IsEmployer = v.(bool)
		case "pending_employer":
			u.PendingEmployer = v.(bool)
		case "pending_deletion":
			u.PendingDeletion = v.(bool)
		case "deletion_status":
			u.DeletionStatus = v.(entity.DeletionStatus)
		case "deletion_reason":
			u.DeletionReason = v.(string)
		case "deletion_requested_at":
			t := v.(time.Time)
			u.DeletionRequestedAt = &t
		case "updated_at":
			u.UpdatedAt = v.(time.Time)
		}
	}
}

func (r *fakeUserRepo) AddSavedJob(_ context.Context, userID, jobID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[userID]
	if !ok {
		return contract.ErrNotFound
	}
	if !u.HasSavedJob(jobID) {
		u.SavedJobs = append(u.SavedJobs, jobID)
	}
	return nil
}

func (r *fakeUserRepo) RemoveSavedJob(_ context.Context, userID, jobID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[userID]
	if !ok {
		return contract.ErrNotFound
	}
	kept := u.SavedJobs[:0]
	for _, id := range u.SavedJobs {
		if id != jobID {
			kept = append(kept, id)
		}
	}
	u.SavedJobs = kept
	return nil
}

func (r *fakeUserRepo) PullSavedJobs(_ context.Context, jobIDs []string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	drop := map[string]bool{}
	for _, id := range jobIDs {
		drop[id] = true
	}
	var modified int64
	for _, u := range r.db.users {
		kept := make([]string, 0, len(u.SavedJobs))
		for _, id := range u.SavedJobs {
			if !drop[id] {
				kept = append(kept, id)
			}
		}
		if len(kept) != len(u.SavedJobs) {
			u.SavedJobs = kept
			modified++
		}
	}
	return modified, nil
}

func (r *fakeUserRepo) AppendWorkedJob(_ context.Context, userIDs []string, jobID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, id := range userIDs {
		u, ok := r.db.users[id]
		if !ok {
			continue
		}
		seen := false
		for _, j := range u.WorkedJobs {
			if j == jobID {
				seen = true
			}
		}
		if !seen {
			u.WorkedJobs = append(u.WorkedJobs, jobID)
		}
	}
	return nil
}

func (r *fakeUserRepo) SetDeletionState(_ context.Context, userID string, expectPending bool, updates map[string]interface{}) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[userID]
	if !ok || u.PendingDeletion != expectPending {
		return false, nil
	}
	applyUserUpdates(u, updates)
	return true, nil
}

func (r *fakeUserRepo) ListPendingDeletions(_ context.Context) ([]*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.User
	for _, u := range r.db.users {
		if u.PendingDeletion {
			out = append(out, copyUser(u))
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListPendingEmployers(_ context.Context) ([]*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.User
	for _, u := range r.db.users {
		if u.PendingEmployer {
			out = append(out, copyUser(u))
		}
	}
	return out, nil
}

// ── jobs ─────────────────────────────────────────────────────────────────

type fakeJobRepo struct{ db *memDB }

var _ contract.IJobRepository = (*fakeJobRepo)(nil)

func (r *fakeJobRepo) CreateJob(_ context.Context, job *entity.Job) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.jobs[job.ID] = copyJob(job)
	r.db.stamp("jobs/" + job.ID)
	return nil
}

func (r *fakeJobRepo) GetJobByID(_ context.Context, jobID string) (*entity.Job, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	j, ok := r.db.jobs[jobID]
	if !ok {
		return nil, contract.ErrNotFound
	}
	return copyJob(j), nil
}

func (r *fakeJobRepo) GetJobsByIDs(_ context.Context, ids []string) ([]*entity.Job, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*entity.Job{}
	for _, id := range ids {
		if j, ok := r.db.jobs[id]; ok {
			out = append(out, copyJob(j))
		}
	}
	return out, nil
}

func (r *fakeJobRepo) ListJobs(_ context.Context, opts *contract.JobFilterOptions) ([]*entity.Job, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Job
	for _, j := range r.db.jobs {
		if !opts.IncludeClosed && !j.AcceptsApplications() {
			continue
		}
		out = append(out, copyJob(j))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, int64(len(out)), nil
}

func (r *fakeJobRepo) ListJobsByEmployer(_ context.Context, employerID string) ([]*entity.Job, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*entity.Job{}
	for _, j := range r.db.jobs {
		if j.EmployerID == employerID {
			out = append(out, copyJob(j))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (r *fakeJobRepo) CompareAndUpdateJob(_ context.Context, jobID string, expect, updates map[string]interface{}) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	j, ok := r.db.jobs[jobID]
	if !ok {
		return false, nil
	}
	for k, v := range expect {
		switch k {
		case "is_completed":
			if j.IsCompleted != v.(bool) {
				return false, nil
			}
		case "is_fully_staffed":
			if j.IsFullyStaffed != v.(bool) {
				return false, nil
			}
		}
	}
	for k, v := range updates {
		switch k {
		case "is_completed":
			j.IsCompleted = v.(bool)
		case "is_fully_staffed":
			j.IsFullyStaffed = v.(bool)
		case "is_public":
			p := v.(bool)
			j.IsPublic = &p
		case "completed_at":
			t := v.(time.Time)
			j.CompletedAt = &t
		case "updated_at":
			j.UpdatedAt = v.(time.Time)
		}
	}
	return true, nil
}

// ── applicants and mirrors ───────────────────────────────────────────────

type fakeApplicantRepo struct{ db *memDB }

var _ contract.IApplicantRepository = (*fakeApplicantRepo)(nil)

func (r *fakeApplicantRepo) CreateApplicant(_ context.Context, a *entity.Applicant) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.applicants[a.ID]; ok {
		return contract.ErrDuplicate
	}
	c := *a
	r.db.applicants[a.ID] = &c
	r.db.stamp("applicants/" + a.ID)
	return nil
}

func (r *fakeApplicantRepo) GetApplicant(_ context.Context, jobID, applicantID string) (*entity.Applicant, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.applicants[entity.ApplicantDocID(jobID, applicantID)]
	if !ok {
		return nil, contract.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (r *fakeApplicantRepo) ListApplicantsByJob(_ context.Context, jobID string) ([]*entity.Applicant, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Applicant
	for _, a := range r.db.applicants {
		if a.JobID == jobID {
			c := *a
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return r.db.order["applicants/"+out[i].ID] < r.db.order["applicants/"+out[j].ID]
	})
	return out, nil
}

func (r *fakeApplicantRepo) CountHired(_ context.Context, jobID string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n := 0
	for _, a := range r.db.applicants {
		if a.JobID == jobID && a.Hired {
			n++
		}
	}
	return n, nil
}

func (r *fakeApplicantRepo) ListHiredApplicantIDs(_ context.Context, jobID string) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var ids []string
	for _, a := range r.db.applicants {
		if a.JobID == jobID && a.Hired {
			ids = append(ids, a.ApplicantID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *fakeApplicantRepo) SetHired(_ context.Context, jobID, applicantID string, from, to bool) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.applicants[entity.ApplicantDocID(jobID, applicantID)]
	if !ok || a.Hired != from {
		return false, nil
	}
	a.Hired = to
	return true, nil
}

func (r *fakeApplicantRepo) DeleteApplicant(_ context.Context, jobID, applicantID string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	id := entity.ApplicantDocID(jobID, applicantID)
	a, ok := r.db.applicants[id]
	if !ok || a.Hired {
		return false, nil
	}
	delete(r.db.applicants, id)
	return true, nil
}

type fakeApplicationRepo struct{ db *memDB }

var _ contract.IApplicationRepository = (*fakeApplicationRepo)(nil)

func (r *fakeApplicationRepo) CreateApplication(_ context.Context, a *entity.Application) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.applications[a.ID]; ok {
		return contract.ErrDuplicate
	}
	c := *a
	r.db.applications[a.ID] = &c
	return nil
}

func (r *fakeApplicationRepo) DeleteApplication(_ context.Context, userID, jobID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	id := entity.ApplicationDocID(userID, jobID)
	if _, ok := r.db.applications[id]; !ok {
		return contract.ErrNotFound
	}
	delete(r.db.applications, id)
	return nil
}

func (r *fakeApplicationRepo) ListJobIDsByUser(_ context.Context, userID string) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var ids []string
	for _, a := range r.db.applications {
		if a.UserID == userID {
			ids = append(ids, a.JobID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type fakeAcceptedJobRepo struct{ db *memDB }

var _ contract.IAcceptedJobRepository = (*fakeAcceptedJobRepo)(nil)

func (r *fakeAcceptedJobRepo) AddAcceptedJob(_ context.Context, a *entity.AcceptedJob) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c := *a
	r.db.accepted[a.ID] = &c
	return nil
}

func (r *fakeAcceptedJobRepo) RemoveAcceptedJob(_ context.Context, userID, jobID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	id := entity.AcceptedJobDocID(userID, jobID)
	if _, ok := r.db.accepted[id]; !ok {
		return contract.ErrNotFound
	}
	delete(r.db.accepted, id)
	return nil
}

func (r *fakeAcceptedJobRepo) ListJobIDsByUser(_ context.Context, userID string) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var ids []string
	for _, a := range r.db.accepted {
		if a.UserID == userID {
			ids = append(ids, a.JobID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// ── notifications and broadcasts ─────────────────────────────────────────

type fakeNotificationRepo struct {
	db      *memDB
	failErr error
}

var _ contract.INotificationRepository = (*fakeNotificationRepo)(nil)

func (r *fakeNotificationRepo) CreateNotification(_ context.Context, n *entity.Notification) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c := *n
	r.db.notifications[n.ID] = &c
	r.db.stamp("notifications/" + n.ID)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID string, limit int) ([]*entity.Notification, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Notification
	for _, n := range r.db.notifications {
		if n.UserID == userID {
			c := *n
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return r.db.order["notifications/"+out[i].ID] > r.db.order["notifications/"+out[j].ID]
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, userID, notificationID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n, ok := r.db.notifications[notificationID]
	if !ok || n.UserID != userID {
		return contract.ErrNotFound
	}
	n.IsRead = true
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, x := range r.db.notifications {
		if x.UserID == userID && !x.IsRead {
			x.IsRead = true
			n++
		}
	}
	return n, nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, x := range r.db.notifications {
		if x.UserID == userID && !x.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *fakeNotificationRepo) DeleteByJobApplicantType(_ context.Context, jobID, applicantID string, t entity.NotificationType) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for id, x := range r.db.notifications {
		if x.JobID == jobID && x.ApplicantID == applicantID && x.Type == t {
			delete(r.db.notifications, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeNotificationRepo) DeleteByBroadcastIDs(_ context.Context, ids []string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	set := map[string]bool{}
	for _, id := range ids {
		set[id] = true
	}
	var n int64
	for id, x := range r.db.notifications {
		if x.BroadcastID != "" && set[x.BroadcastID] {
			delete(r.db.notifications, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeNotificationRepo) UpdateMessageByBroadcastID(_ context.Context, broadcastID, message string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, x := range r.db.notifications {
		if x.BroadcastID == broadcastID {
			x.Message = message
			n++
		}
	}
	return n, nil
}

type fakeBroadcastRepo struct{ db *memDB }

var _ contract.IBroadcastRepository = (*fakeBroadcastRepo)(nil)

func (r *fakeBroadcastRepo) CreateBroadcast(_ context.Context, b *entity.Broadcast) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c := *b
	r.db.broadcasts[b.ID] = &c
	r.db.stamp("broadcasts/" + b.ID)
	return nil
}

func (r *fakeBroadcastRepo) GetBroadcastByID(_ context.Context, id string) (*entity.Broadcast, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	b, ok := r.db.broadcasts[id]
	if !ok {
		return nil, contract.ErrNotFound
	}
	c := *b
	return &c, nil
}

func (r *fakeBroadcastRepo) ListBroadcasts(_ context.Context, limit int) ([]*entity.Broadcast, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Broadcast
	for _, b := range r.db.broadcasts {
		c := *b
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		return r.db.order["broadcasts/"+out[i].ID] > r.db.order["broadcasts/"+out[j].ID]
	})
	return out, nil
}

func (r *fakeBroadcastRepo) UpdateContent(_ context.Context, id, content string, updatedAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	b, ok := r.db.broadcasts[id]
	if !ok {
		return contract.ErrNotFound
	}
	b.Content = content
	b.UpdatedAt = updatedAt
	return nil
}

func (r *fakeBroadcastRepo) DeleteBroadcasts(_ context.Context, ids []string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := r.db.broadcasts[id]; ok {
			delete(r.db.broadcasts, id)
			n++
		}
	}
	return n, nil
}

// ── deletion support ─────────────────────────────────────────────────────

type fakeRecordStore struct{ db *memDB }

var _ contract.IRecordStore = (*fakeRecordStore)(nil)

func (s *fakeRecordStore) records(collection string) []entity.Record {
	var out []entity.Record
	switch collection {
	case contract.CollectionJobs:
		for _, j := range s.db.jobs {
			out = append(out, entity.Record{"_id": j.ID, "employer_id": j.EmployerID, "title": j.Title})
		}
	case contract.CollectionNotifications:
		for _, n := range s.db.notifications {
			out = append(out, entity.Record{"_id": n.ID, "user_id": n.UserID, "message": n.Message})
		}
	case contract.CollectionApplicants:
		for _, a := range s.db.applicants {
			out = append(out, entity.Record{"_id": a.ID, "job_id": a.JobID, "applicant_id": a.ApplicantID, "hired": a.Hired})
		}
	case contract.CollectionApplications:
		for _, a := range s.db.applications {
			out = append(out, entity.Record{"_id": a.ID, "user_id": a.UserID, "job_id": a.JobID})
		}
	case contract.CollectionAcceptedJobs:
		for _, a := range s.db.accepted {
			out = append(out, entity.Record{"_id": a.ID, "user_id": a.UserID, "job_id": a.JobID})
		}
	case contract.CollectionEmployers:
		for _, e := range s.db.employers {
			out = append(out, entity.Record{"_id": e.ID, "user_id": e.UserID})
		}
	default:
		out = append(out, s.db.raw[collection]...)
	}
	sort.Slice(out, func(i, j int) bool { return fmt.Sprint(out[i]["_id"]) < fmt.Sprint(out[j]["_id"]) })
	return out
}

func (s *fakeRecordStore) FindByField(_ context.Context, collection, field string, value interface{}) ([]entity.Record, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []entity.Record{}
	for _, r := range s.records(collection) {
		if r[field] == value {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeRecordStore) FindByFieldIn(_ context.Context, collection, field string, values []interface{}) ([]entity.Record, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []entity.Record{}
	for _, r := range s.records(collection) {
		for _, v := range values {
			if r[field] == v {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

// fakeBatchWriter mimics the chunked writer: it records the size of every
// chunk and can be told to fail a number of calls.
type fakeBatchWriter struct {
	db        *memDB
	chunkSize int
	chunks    []int
	failNext  int
}

var _ contract.IBatchWriter = (*fakeBatchWriter)(nil)

var errBatchDown = errors.New("batch commit failed")

func (w *fakeBatchWriter) InsertMany(_ context.Context, collection string, docs []interface{}) (int, error) {
	if w.failNext > 0 {
		w.failNext--
		return 0, errBatchDown
	}
	w.db.mu.Lock()
	defer w.db.mu.Unlock()
	written := 0
	for start := 0; start < len(docs); start += w.chunkSize {
		end := start + w.chunkSize
		if end > len(docs) {
			end = len(docs)
		}
		w.chunks = append(w.chunks, end-start)
		for _, d := range docs[start:end] {
			if n, ok := d.(*entity.Notification); ok && collection == contract.CollectionNotifications {
				c := *n
				w.db.notifications[n.ID] = &c
				w.db.stamp("notifications/" + n.ID)
			}
			written++
		}
	}
	return written, nil
}

func (w *fakeBatchWriter) DeleteByIDs(_ context.Context, collection string, ids []interface{}) (int, error) {
	if w.failNext > 0 {
		w.failNext--
		return 0, errBatchDown
	}
	w.db.mu.Lock()
	defer w.db.mu.Unlock()
	deleted := 0
	for _, raw := range ids {
		id := fmt.Sprint(raw)
		switch collection {
		case contract.CollectionJobs:
			if _, ok := w.db.jobs[id]; ok {
				delete(w.db.jobs, id)
				deleted++
			}
		case contract.CollectionNotifications:
			if _, ok := w.db.notifications[id]; ok {
				delete(w.db.notifications, id)
				deleted++
			}
		case contract.CollectionApplicants:
			if _, ok := w.db.applicants[id]; ok {
				delete(w.db.applicants, id)
				deleted++
			}
		case contract.CollectionApplications:
			if _, ok := w.db.applications[id]; ok {
				delete(w.db.applications, id)
				deleted++
			}
		case contract.CollectionAcceptedJobs:
			if _, ok := w.db.accepted[id]; ok {
				delete(w.db.accepted, id)
				deleted++
			}
		case contract.CollectionEmployers:
			if _, ok := w.db.employers[id]; ok {
				delete(w.db.employers, id)
				deleted++
			}
		default:
			kept := w.db.raw[collection][:0]
			for _, r := range w.db.raw[collection] {
				if fmt.Sprint(r["_id"]) == id {
					deleted++
					continue
				}
				kept = append(kept, r)
			}
			w.db.raw[collection] = kept
		}
	}
	return deleted, nil
}

type fakeArchiveRepo struct {
	db      *memDB
	inserts int
}

var _ contract.IArchiveRepository = (*fakeArchiveRepo)(nil)

func (r *fakeArchiveRepo) InsertArchive(_ context.Context, a *entity.ArchivedUser) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.archives[a.ID]; ok {
		return contract.ErrDuplicate
	}
	r.inserts++
	c := *a
	r.db.archives[a.ID] = &c
	return nil
}

func (r *fakeArchiveRepo) GetArchive(_ context.Context, userID string) (*entity.ArchivedUser, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.archives[userID]
	if !ok {
		return nil, contract.ErrNotFound
	}
	c := *a
	return &c, nil
}

type fakeWorkflowRepo struct{ db *memDB }

var _ contract.IDeletionWorkflowRepository = (*fakeWorkflowRepo)(nil)

func (r *fakeWorkflowRepo) SaveWorkflow(_ context.Context, wf *entity.DeletionWorkflow) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c := *wf
	r.db.workflows[wf.ID] = &c
	return nil
}

func (r *fakeWorkflowRepo) GetWorkflow(_ context.Context, userID string) (*entity.DeletionWorkflow, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	wf, ok := r.db.workflows[userID]
	if !ok {
		return nil, contract.ErrNotFound
	}
	c := *wf
	return &c, nil
}

func (r *fakeWorkflowRepo) ListIncomplete(_ context.Context, updatedBefore time.Time) ([]*entity.DeletionWorkflow, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.DeletionWorkflow
	for _, wf := range r.db.workflows {
		if !wf.Done() && !wf.UpdatedAt.After(updatedBefore) {
			c := *wf
			out = append(out, &c)
		}
	}
	return out, nil
}

type fakeEmployerRepo struct{ db *memDB }

var _ contract.IEmployerRepository = (*fakeEmployerRepo)(nil)

func (r *fakeEmployerRepo) CreateEmployer(_ context.Context, e *entity.Employer) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, x := range r.db.employers {
		if x.UserID == e.UserID {
			return contract.ErrDuplicate
		}
	}
	c := *e
	r.db.employers[e.ID] = &c
	return nil
}

func (r *fakeEmployerRepo) byUser(userID string) (*entity.Employer, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, x := range r.db.employers {
		if x.UserID == userID {
			c := *x
			return &c, nil
		}
	}
	return nil, contract.ErrNotFound
}

type fakeTokenRepo struct{ db *memDB }

var _ contract.ITokenRepository = (*fakeTokenRepo)(nil)

func (r *fakeTokenRepo) CreateToken(_ context.Context, t *entity.Token) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c := *t
	r.db.tokens[t.ID] = &c
	r.db.stamp("tokens/" + t.ID)
	return nil
}

func (r *fakeTokenRepo) GetTokenByUserID(_ context.Context, userID string) (*entity.Token, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var best *entity.Token
	for _, t := range r.db.tokens {
		if t.UserID != userID || t.Revoke {
			continue
		}
		if best == nil || r.db.order["tokens/"+t.ID] > r.db.order["tokens/"+best.ID] {
			best = t
		}
	}
	if best == nil {
		return nil, contract.ErrNotFound
	}
	c := *best
	return &c, nil
}

func (r *fakeTokenRepo) UpdateToken(_ context.Context, tokenID, tokenHash string, expiry time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.tokens[tokenID]
	if !ok {
		return contract.ErrNotFound
	}
	t.TokenHash = tokenHash
	t.ExpiresAt = expiry
	return nil
}

func (r *fakeTokenRepo) RevokeToken(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.tokens[id]
	if !ok {
		return contract.ErrNotFound
	}
	t.Revoke = true
	return nil
}

func (r *fakeTokenRepo) RevokeAllTokensForUser(_ context.Context, userID string, tokenType entity.TokenType) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, t := range r.db.tokens {
		if t.UserID == userID && t.TokenType == tokenType {
			t.Revoke = true
		}
	}
	return nil
}

// ── collaborators ────────────────────────────────────────────────────────

// passThroughTransactor runs fn directly. beforeNext, when set, runs once
// ahead of the next transaction to stand in for a concurrent writer.
type passThroughTransactor struct {
	calls      int
	beforeNext func()
}

func (t *passThroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	if hook := t.beforeNext; hook != nil {
		t.beforeNext = nil
		hook()
	}
	return fn(ctx)
}

type recordingBus struct {
	mu     sync.Mutex
	events map[string][]entity.Event
}

func newRecordingBus() *recordingBus {
	return &recordingBus{events: map[string][]entity.Event{}}
}

func (b *recordingBus) Publish(_ context.Context, topic string, e entity.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events[topic] = append(b.events[topic], e)
	return nil
}

func (b *recordingBus) Subscribe(ctx context.Context, _ string) (<-chan entity.Event, error) {
	ch := make(chan entity.Event)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (b *recordingBus) count(topic, eventType string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.events[topic] {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

type pushCall struct{ UserID, Title, Body string }

type recordingPush struct {
	mu    sync.Mutex
	calls []pushCall
	err   error
}

var _ contract.IPushDispatcher = (*recordingPush)(nil)

func (p *recordingPush) Dispatch(_ context.Context, userIDs []string, title, body string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, userID := range userIDs {
		p.calls = append(p.calls, pushCall{userID, title, body})
	}
	return p.err
}

type seqUUID struct {
	mu sync.Mutex
	n  int
}

func (g *seqUUID) NewUUID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%04d", g.n)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{})   {}
func (nopLogger) Infof(string, ...interface{})    {}
func (nopLogger) Warnf(string, ...interface{})    {}
func (nopLogger) Warningf(string, ...interface{}) {}
func (nopLogger) Errorf(string, ...interface{})   {}
func (nopLogger) Fatalf(string, ...interface{})   {}

type staticConfig struct{}

func (staticConfig) GetAppBaseURL() string                { return "http://localhost:8080" }
func (staticConfig) GetRefreshTokenExpiry() time.Duration { return 24 * time.Hour }
func (staticConfig) GetInboxLimit() int                   { return 100 }
func (staticConfig) GetDeletionStaleAfter() time.Duration { return time.Minute }
