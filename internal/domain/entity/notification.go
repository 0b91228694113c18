package entity

import "time"

// NotificationType identifies why a notification was emitted.
type NotificationType string

const (
	NotificationTypeNewApplication     NotificationType = "new_application"
	NotificationTypeHiredStatusUpdated NotificationType = "hired_status_updated"
	NotificationTypeHiredStatusRevoked NotificationType = "hired_status_revoked"
	NotificationTypeBroadcast          NotificationType = "broadcast"
	NotificationTypeDeletionApproved   NotificationType = "deletion_approved"
	NotificationTypeDeletionRejected   NotificationType = "deletion_rejected"
	NotificationTypeEmployerApproved   NotificationType = "employer_approved"
	NotificationTypeEmployerRejected   NotificationType = "employer_rejected"
)

// Notification is a single inbox record for one user.
type Notification struct {
	ID          string           `bson:"_id" json:"id"`
	UserID      string           `bson:"user_id" json:"user_id"`
	BroadcastID string           `bson:"broadcast_id,omitempty" json:"broadcast_id,omitempty"`
	JobID       string           `bson:"job_id,omitempty" json:"job_id,omitempty"`
	ApplicantID string           `bson:"applicant_id,omitempty" json:"applicant_id,omitempty"`
	Message     string           `bson:"message" json:"message"`
	Type        NotificationType `bson:"type" json:"type"`
	IsRead      bool             `bson:"is_read" json:"is_read"`
	Timestamp   time.Time        `bson:"timestamp" json:"timestamp"`
}

// NotificationRefs carries the optional references stored on a notification.
type NotificationRefs struct {
	BroadcastID string
	JobID       string
	ApplicantID string
}

// Broadcast is an admin-authored message fanned out to every user's inbox.
type Broadcast struct {
	ID         string    `bson:"_id" json:"id"`
	AuthorID   string    `bson:"author_id" json:"author_id"`
	Content    string    `bson:"content" json:"content"`
	Recipients int       `bson:"recipients" json:"recipients"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}
