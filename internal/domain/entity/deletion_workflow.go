package entity

import "time"

// DeletionStep is the cursor of an approval saga.
type DeletionStep string

const (
	DeletionStepCollect      DeletionStep = "collect"
	DeletionStepPurge        DeletionStep = "purge"
	DeletionStepArchive      DeletionStep = "archive"
	DeletionStepMarkApproved DeletionStep = "mark_approved"
	DeletionStepNotify       DeletionStep = "notify"
	DeletionStepDone         DeletionStep = "done"
)

// DeletionWorkflow persists the progress of one approval so a crash between
// steps can be resumed from Step instead of leaving purged data unarchived.
type DeletionWorkflow struct {
	ID          string          `bson:"_id" json:"id"` // user id
	AdminID     string          `bson:"admin_id" json:"admin_id"`
	Step        DeletionStep    `bson:"step" json:"step"`
	Snapshot    ArchiveSnapshot `bson:"snapshot" json:"snapshot"`
	Attempts    int             `bson:"attempts" json:"attempts"`
	LastError   string          `bson:"last_error,omitempty" json:"last_error,omitempty"`
	StartedAt   time.Time       `bson:"started_at" json:"started_at"`
	UpdatedAt   time.Time       `bson:"updated_at" json:"updated_at"`
	CompletedAt *time.Time      `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

func (w *DeletionWorkflow) Done() bool {
	return w.Step == DeletionStepDone
}
