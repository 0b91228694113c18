package entity

import "time"

// Event types published on the event bus.
const (
	EventDeletionRequested = "deletion_requested"
	EventDeletionResolved  = "deletion_resolved"
	EventBroadcastCreated  = "broadcast_created"
	EventBroadcastUpdated  = "broadcast_updated"
	EventBroadcastDeleted  = "broadcast_deleted"
	EventNotification      = "notification"
	EventPush              = "push"
	EventJobCompleted      = "job_completed"
)

// Event topics.
const (
	TopicDeletionRequests = "deletion_requests"
	TopicBroadcasts       = "broadcasts"
	TopicJobs             = "jobs"
)

// UserTopic is the per-user topic used for inbox and push delivery.
func UserTopic(userID string) string {
	return "user:" + userID
}

// Event is a message delivered to live subscribers.
type Event struct {
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func NewEvent(eventType string, data map[string]interface{}) Event {
	return Event{Type: eventType, Data: data, Timestamp: time.Now().UTC()}
}
