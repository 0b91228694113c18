package contract

import (
	"context"
	"time"

	"github.com/socialjobs/workmatch/internal/domain/entity"
)

type INotificationRepository interface {
	CreateNotification(ctx context.Context, n *entity.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Notification, error)
	// MarkRead returns ErrNotFound when the notification is not in the user's inbox.
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	DeleteByJobApplicantType(ctx context.Context, jobID, applicantID string, notificationType entity.NotificationType) (int64, error)
	DeleteByBroadcastIDs(ctx context.Context, broadcastIDs []string) (int64, error)
	UpdateMessageByBroadcastID(ctx context.Context, broadcastID, message string) (int64, error)
}

type IBroadcastRepository interface {
	CreateBroadcast(ctx context.Context, b *entity.Broadcast) error
	GetBroadcastByID(ctx context.Context, id string) (*entity.Broadcast, error)
	ListBroadcasts(ctx context.Context, limit int) ([]*entity.Broadcast, error)
	UpdateContent(ctx context.Context, id, content string, updatedAt time.Time) error
	DeleteBroadcasts(ctx context.Context, ids []string) (int64, error)
}
