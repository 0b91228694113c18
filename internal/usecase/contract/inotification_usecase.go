package usecasecontract

import (
	"context"

	"github.com/socialjobs/workmatch/internal/domain/entity"
)

// INotifier records single-user notifications and delivers them. Notify only
// writes the inbox record, so it can run inside a transaction; Deliver pushes
// it out and is called after commit.
type INotifier interface {
	Notify(ctx context.Context, userID string, notificationType entity.NotificationType, message string, refs entity.NotificationRefs) (*entity.Notification, error)
	Deliver(ctx context.Context, n *entity.Notification)
}

type INotificationUseCase interface {
	INotifier
	Broadcast(ctx context.Context, adminID, content string) (*entity.Broadcast, error)
	DeleteNotification(ctx context.Context, adminID, broadcastID string) error
	EditNotification(ctx context.Context, adminID, broadcastID, content string) (*entity.Broadcast, error)
	ClearHistory(ctx context.Context, adminID string, broadcastIDs []string) (int64, error)
	ListBroadcasts(ctx context.Context, adminID string) ([]*entity.Broadcast, error)
	ListForUser(ctx context.Context, userID string) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
}
