package entity

import "time"

// Job is a posted gig with a worker quota.
type Job struct {
	ID             string     `bson:"_id,omitempty" json:"id"`
	EmployerID     string     `bson:"employer_id" json:"employer_id"`
	Title          string     `bson:"title" json:"title"`
	Description    string     `bson:"description" json:"description"`
	Location       string     `bson:"location" json:"location"`
	Salary         float64    `bson:"salary" json:"salary"`
	WorkersNeeded  int        `bson:"workers_needed" json:"workers_needed"`
	IsCompleted    bool       `bson:"is_completed" json:"is_completed"`
	IsFullyStaffed bool       `bson:"is_fully_staffed" json:"is_fully_staffed"`
	IsPublic       *bool      `bson:"is_public,omitempty" json:"is_public,omitempty"`
	CompletedAt    *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at" json:"updated_at"`
}

// AcceptsApplications is true while the job is neither completed nor fully staffed.
func (j *Job) AcceptsApplications() bool {
	return !j.IsCompleted && !j.IsFullyStaffed
}

// JobWithProgress pairs a job with its current hire numbers.
type JobWithProgress struct {
	Job        *Job `json:"job"`
	HiredCount int  `json:"hired_count"`
	Progress   int  `json:"progress"`
	// ProgressDisplay is Progress bounded to [0, 100].
	ProgressDisplay int `json:"progress_display"`
}

// StaffingState is returned by the fully-staffed toggle. The flag is a manual
// override, so the computed hire numbers are reported next to it.
type StaffingState struct {
	JobID           string `json:"job_id"`
	IsFullyStaffed  bool   `json:"is_fully_staffed"`
	IsPublic        *bool  `json:"is_public,omitempty"`
	HiredCount      int    `json:"hired_count"`
	WorkersNeeded   int    `json:"workers_needed"`
	Progress        int    `json:"progress"`
	ProgressDisplay int    `json:"progress_display"`
}
