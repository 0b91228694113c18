package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

const broadcastTitle = "WorkMatch"

// NotificationUsecase fans broadcasts out to every inbox and records and
// delivers single-user notifications for the other use cases.
type NotificationUsecase struct {
	notificationRepo contract.INotificationRepository
	broadcastRepo    contract.IBroadcastRepository
	userRepo         contract.IUserRepository
	batchWriter      contract.IBatchWriter
	eventBus         contract.IEventBus
	push             contract.IPushDispatcher
	uuidGenerator    contract.IUUIDGenerator
	logger           usecasecontract.IAppLogger
	config           usecasecontract.IConfigProvider
	metrics          usecasecontract.IMetrics
}

func NewNotificationUsecase(
	notificationRepo contract.INotificationRepository,
	broadcastRepo contract.IBroadcastRepository,
	userRepo contract.IUserRepository,
	batchWriter contract.IBatchWriter,
	eventBus contract.IEventBus,
	push contract.IPushDispatcher,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
	metrics usecasecontract.IMetrics,
) *NotificationUsecase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &NotificationUsecase{
		notificationRepo: notificationRepo,
		broadcastRepo:    broadcastRepo,
		userRepo:         userRepo,
		batchWriter:      batchWriter,
		eventBus:         eventBus,
		push:             push,
		uuidGenerator:    uuidGenerator,
		logger:           logger,
		config:           cfg,
		metrics:          metrics,
	}
}

var _ usecasecontract.INotificationUseCase = (*NotificationUsecase)(nil)

// Notify writes one inbox record. It does not deliver it.
func (uc *NotificationUsecase) Notify(ctx context.Context, userID string, notificationType entity.NotificationType, message string, refs entity.NotificationRefs) (*entity.Notification, error) {
	n := &entity.Notification{
		ID:          uc.uuidGenerator.NewUUID(),
		UserID:      userID,
		BroadcastID: refs.BroadcastID,
		JobID:       refs.JobID,
		ApplicantID: refs.ApplicantID,
		Message:     message,
		Type:        notificationType,
		IsRead:      false,
		Timestamp:   time.Now().UTC(),
	}
	if err := uc.notificationRepo.CreateNotification(ctx, n); err != nil {
		return nil, storeErr(err, "notification")
	}
	return n, nil
}

// Deliver publishes a recorded notification to the user's live feed and
// queues its push delivery. Failures are logged and otherwise ignored.
func (uc *NotificationUsecase) Deliver(ctx context.Context, n *entity.Notification) {
	if n == nil {
		return
	}
	event := entity.NewEvent(entity.EventNotification, map[string]interface{}{
		"id":      n.ID,
		"type":    string(n.Type),
		"message": n.Message,
		"job_id":  n.JobID,
	})
	if err := uc.eventBus.Publish(ctx, entity.UserTopic(n.UserID), event); err != nil {
		uc.logger.Warnf("failed to publish notification %s to user %s: %v", n.ID, n.UserID, err)
	}
	if err := uc.push.Dispatch(ctx, []string{n.UserID}, broadcastTitle, n.Message); err != nil {
		uc.logger.Warnf("push delivery to user %s not queued: %v", n.UserID, err)
	}
}

// Broadcast stores the message and writes one unread notification per user
// whose account is not deleted. Push delivery is queued, not awaited.
func (uc *NotificationUsecase) Broadcast(ctx context.Context, adminID, content string) (*entity.Broadcast, error) {
	if _, err := requireAdmin(ctx, uc.userRepo, adminID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("broadcast content is empty: %w", ErrInvalidInput)
	}

	userIDs, err := uc.userRepo.ListUserIDs(ctx)
	if err != nil {
		return nil, storeErr(err, "users")
	}

	now := time.Now().UTC()
	b := &entity.Broadcast{
		ID:         uc.uuidGenerator.NewUUID(),
		AuthorID:   adminID,
		Content:    content,
		Recipients: len(userIDs),
		Timestamp:  now,
		UpdatedAt:  now,
	}
	if err := uc.broadcastRepo.CreateBroadcast(ctx, b); err != nil {
		return nil, storeErr(err, "broadcast")
	}

	docs := make([]interface{}, 0, len(userIDs))
	for _, userID := range userIDs {
		docs = append(docs, &entity.Notification{
			ID:          uc.uuidGenerator.NewUUID(),
			UserID:      userID,
			BroadcastID: b.ID,
			Message:     content,
			Type:        entity.NotificationTypeBroadcast,
			IsRead:      false,
			Timestamp:   now,
		})
	}
	written, err := uc.batchWriter.InsertMany(ctx, contract.CollectionNotifications, docs)
	uc.metrics.RecordBroadcastFanout(written)
	if err != nil {
		uc.logger.Errorf("broadcast %s reached %d of %d inboxes: %v", b.ID, written, len(docs), err)
		return nil, storeErr(err, "notifications")
	}

	uc.publish(ctx, entity.TopicBroadcasts, entity.NewEvent(entity.EventBroadcastCreated, map[string]interface{}{
		"id":         b.ID,
		"content":    b.Content,
		"recipients": b.Recipients,
	}))

	if err := uc.push.Dispatch(ctx, userIDs, broadcastTitle, content); err != nil {
		uc.logger.Warnf("push delivery of broadcast %s not fully queued: %v", b.ID, err)
	}
	return b, nil
}

// DeleteNotification removes a broadcast from history together with the
// notifications it fanned out.
func (uc *NotificationUsecase) DeleteNotification(ctx context.Context, adminID, broadcastID string) error {
	if _, err := requireAdmin(ctx, uc.userRepo, adminID); err != nil {
		return err
	}
	if _, err := uc.broadcastRepo.GetBroadcastByID(ctx, broadcastID); err != nil {
		return storeErr(err, "broadcast")
	}
	_, err := uc.removeBroadcasts(ctx, []string{broadcastID})
	return err
}

// EditNotification rewrites a broadcast and the inbox copies of it.
func (uc *NotificationUsecase) EditNotification(ctx context.Context, adminID, broadcastID, content string) (*entity.Broadcast, error) {
	if _, err := requireAdmin(ctx, uc.userRepo, adminID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("broadcast content is empty: %w", ErrInvalidInput)
	}
	b, err := uc.broadcastRepo.GetBroadcastByID(ctx, broadcastID)
	if err != nil {
		return nil, storeErr(err, "broadcast")
	}

	now := time.Now().UTC()
	if err := uc.broadcastRepo.UpdateContent(ctx, broadcastID, content, now); err != nil {
		return nil, storeErr(err, "broadcast")
	}
	if _, err := uc.notificationRepo.UpdateMessageByBroadcastID(ctx, broadcastID, content); err != nil {
		return nil, storeErr(err, "notifications")
	}
	b.Content = content
	b.UpdatedAt = now

	uc.publish(ctx, entity.TopicBroadcasts, entity.NewEvent(entity.EventBroadcastUpdated, map[string]interface{}{
		"id":      b.ID,
		"content": b.Content,
	}))
	return b, nil
}

// ClearHistory removes the given broadcasts. Unknown ids are skipped.
func (uc *NotificationUsecase) ClearHistory(ctx context.Context, adminID string, broadcastIDs []string) (int64, error) {
	if _, err := requireAdmin(ctx, uc.userRepo, adminID); err != nil {
		return 0, err
	}
	if len(broadcastIDs) == 0 {
		return 0, nil
	}
	return uc.removeBroadcasts(ctx, broadcastIDs)
}

// removeBroadcasts deletes the fanned-out notifications first so a failure
// leaves the broadcast in history and the call can be repeated.
func (uc *NotificationUsecase) removeBroadcasts(ctx context.Context, ids []string) (int64, error) {
	if _, err := uc.notificationRepo.DeleteByBroadcastIDs(ctx, ids); err != nil {
		return 0, storeErr(err, "notifications")
	}
	deleted, err := uc.broadcastRepo.DeleteBroadcasts(ctx, ids)
	if err != nil {
		return 0, storeErr(err, "broadcasts")
	}
	uc.publish(ctx, entity.TopicBroadcasts, entity.NewEvent(entity.EventBroadcastDeleted, map[string]interface{}{
		"ids": ids,
	}))
	return deleted, nil
}

func (uc *NotificationUsecase) ListBroadcasts(ctx context.Context, adminID string) ([]*entity.Broadcast, error) {
	if _, err := requireAdmin(ctx, uc.userRepo, adminID); err != nil {
		return nil, err
	}
	list, err := uc.broadcastRepo.ListBroadcasts(ctx, 0)
	if err != nil {
		return nil, storeErr(err, "broadcasts")
	}
	return list, nil
}

func (uc *NotificationUsecase) ListForUser(ctx context.Context, userID string) ([]*entity.Notification, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	list, err := uc.notificationRepo.ListByUser(ctx, userID, uc.config.GetInboxLimit())
	if err != nil {
		return nil, storeErr(err, "notifications")
	}
	return list, nil
}

func (uc *NotificationUsecase) MarkRead(ctx context.Context, userID, notificationID string) error {
	if userID == "" {
		return ErrAuthRequired
	}
	if err := uc.notificationRepo.MarkRead(ctx, userID, notificationID); err != nil {
		return storeErr(err, "notification")
	}
	return nil
}

func (uc *NotificationUsecase) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, ErrAuthRequired
	}
	n, err := uc.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, storeErr(err, "notifications")
	}
	return n, nil
}

func (uc *NotificationUsecase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, ErrAuthRequired
	}
	n, err := uc.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, storeErr(err, "notifications")
	}
	return n, nil
}

func (uc *NotificationUsecase) publish(ctx context.Context, topic string, event entity.Event) {
	if err := uc.eventBus.Publish(ctx, topic, event); err != nil && !errors.Is(err, context.Canceled) {
		uc.logger.Warnf("failed to publish %s on %s: %v", event.Type, topic, err)
	}
}
