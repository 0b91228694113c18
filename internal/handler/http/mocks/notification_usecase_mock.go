package mocks

import (
	"context"
	"time"

	"github.com/socialjobs/workmatch/internal/domain/entity"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

type MockNotificationUsecase struct {
	Err           error
	Notifications []*entity.Notification
	Broadcasts    []*entity.Broadcast
	Unread        int64

	LastBroadcastIDs []string
	LastContent      string
}

var _ usecasecontract.INotificationUseCase = (*MockNotificationUsecase)(nil)

func (m *MockNotificationUsecase) Notify(ctx context.Context, userID string, notificationType entity.NotificationType, message string, refs entity.NotificationRefs) (*entity.Notification, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &entity.Notification{ID: "n-1", UserID: userID, Type: notificationType, Message: message}, nil
}

func (m *MockNotificationUsecase) Deliver(ctx context.Context, n *entity.Notification) {}

func (m *MockNotificationUsecase) Broadcast(ctx context.Context, adminID, content string) (*entity.Broadcast, error) {
	m.LastContent = content
	if m.Err != nil {
		return nil, m.Err
	}
	return &entity.Broadcast{ID: "b-1", AuthorID: adminID, Content: content, Recipients: 3, Timestamp: time.Now()}, nil
}

func (m *MockNotificationUsecase) DeleteNotification(ctx context.Context, adminID, broadcastID string) error {
	return m.Err
}

func (m *MockNotificationUsecase) EditNotification(ctx context.Context, adminID, broadcastID, content string) (*entity.Broadcast, error) {
	m.LastContent = content
	if m.Err != nil {
		return nil, m.Err
	}
	return &entity.Broadcast{ID: broadcastID, AuthorID: adminID, Content: content}, nil
}

func (m *MockNotificationUsecase) ClearHistory(ctx context.Context, adminID string, broadcastIDs []string) (int64, error) {
	m.LastBroadcastIDs = broadcastIDs
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(broadcastIDs)), nil
}

func (m *MockNotificationUsecase) ListBroadcasts(ctx context.Context, adminID string) ([]*entity.Broadcast, error) {
	return m.Broadcasts, m.Err
}

func (m *MockNotificationUsecase) ListForUser(ctx context.Context, userID string) ([]*entity.Notification, error) {
	return m.Notifications, m.Err
}

func (m *MockNotificationUsecase) MarkRead(ctx context.Context, userID, notificationID string) error {
	return m.Err
}

func (m *MockNotificationUsecase) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return m.Unread, m.Err
}

func (m *MockNotificationUsecase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return m.Unread, m.Err
}
