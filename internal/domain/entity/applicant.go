package entity

import "time"

// Applicant is a user who applied to a specific job, tracked per job.
// Its ID is derived from (job, applicant) so there is at most one per pair.
type Applicant struct {
	ID          string    `bson:"_id" json:"id"`
	JobID       string    `bson:"job_id" json:"job_id"`
	ApplicantID string    `bson:"applicant_id" json:"applicant_id"`
	Hired       bool      `bson:"hired" json:"hired"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
}

// ApplicationStatus is the status stored on a user's application mirror.
type ApplicationStatus string

const ApplicationStatusApplied ApplicationStatus = "applied"

// Application mirrors a non-hired Applicant under the user.
type Application struct {
	ID        string            `bson:"_id" json:"id"`
	UserID    string            `bson:"user_id" json:"user_id"`
	JobID     string            `bson:"job_id" json:"job_id"`
	Status    ApplicationStatus `bson:"status" json:"status"`
	Timestamp time.Time         `bson:"timestamp" json:"timestamp"`
}

// AcceptedJob mirrors a hired Applicant under the user.
type AcceptedJob struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	JobID     string    `bson:"job_id" json:"job_id"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// RosterEntry is an applicant joined with the display fields of its user.
type RosterEntry struct {
	Applicant
	Name     string  `json:"name"`
	PhotoURL *string `json:"photo_url,omitempty"`
	Rating   float64 `json:"rating"`
}

func ApplicantDocID(jobID, applicantID string) string {
	return jobID + ":" + applicantID
}

func ApplicationDocID(userID, jobID string) string {
	return userID + ":" + jobID
}

func AcceptedJobDocID(userID, jobID string) string {
	return userID + ":" + jobID
}
