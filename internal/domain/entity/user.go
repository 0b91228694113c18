package entity

import (
	"time"
)

// User represents a registered user in the system
type User struct {
	ID                  string         `bson:"_id,omitempty" json:"id"`
	Name                string         `bson:"name" json:"name"`
	Email               string         `bson:"email" json:"email"`
	PasswordHash        string         `bson:"password_hash" json:"-"`
	Role                UserRole       `bson:"role" json:"role"`
	IsEmployer          bool           `bson:"is_employer" json:"is_employer"`
	PendingEmployer     bool           `bson:"pending_employer" json:"pending_employer"`
	SavedJobs           []string       `bson:"saved_jobs" json:"saved_jobs"`
	WorkedJobs          []string       `bson:"worked_jobs" json:"worked_jobs"`
	PendingDeletion     bool           `bson:"pending_deletion" json:"pending_deletion"`
	DeletionStatus      DeletionStatus `bson:"deletion_status" json:"deletion_status"`
	DeletionReason      string         `bson:"deletion_reason,omitempty" json:"deletion_reason,omitempty"`
	DeletionRequestedAt *time.Time     `bson:"deletion_requested_at,omitempty" json:"deletion_requested_at,omitempty"`
	Phone               *string        `bson:"phone,omitempty" json:"phone,omitempty"`
	PhotoURL            *string        `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	Rating              float64        `bson:"rating" json:"rating"`
	ProfileComplete     bool           `bson:"profile_complete" json:"profile_complete"`
	CreatedAt           time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time      `bson:"updated_at" json:"updated_at"`
}

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleAdmin           UserRole = "admin"
	UserRoleUser            UserRole = "user"
	UserRoleEmployer        UserRole = "employer"
	UserRolePendingEmployer UserRole = "pending_employer"
)

func DefaultRole() UserRole {
	return UserRoleUser
}

// DeletionStatus tracks where a user is in the account-deletion workflow.
type DeletionStatus string

const (
	DeletionStatusNone     DeletionStatus = "none"
	DeletionStatusPending  DeletionStatus = "pending"
	DeletionStatusApproved DeletionStatus = "approved"
	DeletionStatusRejected DeletionStatus = "rejected"
)

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// CanPostJobs reports whether the user has been approved as an employer.
func (u *User) CanPostJobs() bool {
	return u.IsEmployer || u.Role == UserRoleEmployer || u.Role == UserRoleAdmin
}

// HasSavedJob reports whether jobID is in the user's saved set.
func (u *User) HasSavedJob(jobID string) bool {
	for _, id := range u.SavedJobs {
		if id == jobID {
			return true
		}
	}
	return false
}
