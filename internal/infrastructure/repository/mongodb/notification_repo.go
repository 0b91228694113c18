package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
)

var newestFirst = bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}

type NotificationRepository struct {
	collection *mongo.Collection
}

var _ contract.INotificationRepository = (*NotificationRepository)(nil)

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{collection: db.Collection(contract.CollectionNotifications)}
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, n *entity.Notification) error {
	_, err := r.collection.InsertOne(ctx, n)
	return mapErr(err)
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Notification, error) {
	opts := options.Find().SetSort(newestFirst)
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []*entity.Notification{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": notificationID, "user_id": userID},
		bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return contract.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res, err := r.collection.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"user_id": userID, "is_read": false})
}

func (r *NotificationRepository) DeleteByJobApplicantType(ctx context.Context, jobID, applicantID string, notificationType entity.NotificationType) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{
		"job_id":       jobID,
		"applicant_id": applicantID,
		"type":         notificationType,
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *NotificationRepository) DeleteByBroadcastIDs(ctx context.Context, broadcastIDs []string) (int64, error) {
	var total int64
	for _, chunk := range Chunk(broadcastIDs, inQueryLimit) {
		res, err := r.collection.DeleteMany(ctx, bson.M{"broadcast_id": bson.M{"$in": chunk}})
		if err != nil {
			return total, err
		}
		total += res.DeletedCount
	}
	return total, nil
}

func (r *NotificationRepository) UpdateMessageByBroadcastID(ctx context.Context, broadcastID, message string) (int64, error) {
	res, err := r.collection.UpdateMany(ctx,
		bson.M{"broadcast_id": broadcastID},
		bson.M{"$set": bson.M{"message": message}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

type BroadcastRepository struct {
	collection *mongo.Collection
}

var _ contract.IBroadcastRepository = (*BroadcastRepository)(nil)

func NewBroadcastRepository(db *mongo.Database) *BroadcastRepository {
	return &BroadcastRepository{collection: db.Collection(contract.CollectionBroadcasts)}
}

func (r *BroadcastRepository) CreateBroadcast(ctx context.Context, b *entity.Broadcast) error {
	_, err := r.collection.InsertOne(ctx, b)
	return mapErr(err)
}

func (r *BroadcastRepository) GetBroadcastByID(ctx context.Context, id string) (*entity.Broadcast, error) {
	var b entity.Broadcast
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (r *BroadcastRepository) ListBroadcasts(ctx context.Context, limit int) ([]*entity.Broadcast, error) {
	opts := options.Find().SetSort(newestFirst)
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []*entity.Broadcast{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BroadcastRepository) UpdateContent(ctx context.Context, id, content string, updatedAt time.Time) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"content": content, "updated_at": updatedAt}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return contract.ErrNotFound
	}
	return nil
}

func (r *BroadcastRepository) DeleteBroadcasts(ctx context.Context, ids []string) (int64, error) {
	var total int64
	for _, chunk := range Chunk(ids, inQueryLimit) {
		res, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": chunk}})
		if err != nil {
			return total, err
		}
		total += res.DeletedCount
	}
	return total, nil
}
