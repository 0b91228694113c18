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

type MongoUserRepository struct {
	collection *mongo.Collection
}

var _ contract.IUserRepository = (*MongoUserRepository)(nil)

func NewMongoUserRepository(collection *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{collection: collection}
}

func (r *MongoUserRepository) CreateUser(ctx context.Context, user *entity.User) error {
	if user.SavedJobs == nil {
		user.SavedJobs = []string{}
	}
	if user.WorkedJobs == nil {
		user.WorkedJobs = []string{}
	}
	_, err := r.collection.InsertOne(ctx, user)
	return mapErr(err)
}

func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var user entity.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (r *MongoUserRepository) GetUsersByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(ids))
	for _, chunk := range Chunk(ids, inQueryLimit) {
		found, err := r.find(ctx, bson.M{"_id": bson.M{"$in": chunk}})
		if err != nil {
			return nil, err
		}
		users = append(users, found...)
	}
	return users, nil
}

// activeUsersFilter matches every account whose deletion was not approved.
func activeUsersFilter() bson.M {
	return bson.M{"deletion_status": bson.M{"$ne": entity.DeletionStatusApproved}}
}

// ListUserIDs returns the ids of every active account.
func (r *MongoUserRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, activeUsersFilter(), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cursor.Err()
}

// UpdateUser updates an existing user and returns the updated user
func (r *MongoUserRepository) UpdateUser(ctx context.Context, id string, updates map[string]interface{}) (*entity.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range updates {
		set[k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user entity.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (r *MongoUserRepository) AddSavedJob(ctx context.Context, userID, jobID string) error {
	return r.updateOne(ctx, userID, bson.M{"$addToSet": bson.M{"saved_jobs": jobID}})
}

func (r *MongoUserRepository) RemoveSavedJob(ctx context.Context, userID, jobID string) error {
	return r.updateOne(ctx, userID, bson.M{"$pull": bson.M{"saved_jobs": jobID}})
}

func (r *MongoUserRepository) PullSavedJobs(ctx context.Context, jobIDs []string) (int64, error) {
	var modified int64
	for _, chunk := range Chunk(jobIDs, inQueryLimit) {
		filter, update := pullSavedJobs(chunk)
		res, err := r.collection.UpdateMany(ctx, filter, update)
		if err != nil {
			return modified, err
		}
		modified += res.ModifiedCount
	}
	return modified, nil
}

func pullSavedJobs(jobIDs []string) (filter, update bson.M) {
	in := bson.M{"$in": jobIDs}
	return bson.M{"saved_jobs": in}, bson.M{"$pull": bson.M{"saved_jobs": in}}
}

func (r *MongoUserRepository) updateOne(ctx context.Context, userID string, update bson.M) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return contract.ErrNotFound
	}
	return nil
}

// AppendWorkedJob pushes instead of using $addToSet so worked_jobs keeps
// completion order.
func (r *MongoUserRepository) AppendWorkedJob(ctx context.Context, userIDs []string, jobID string) error {
	for _, chunk := range Chunk(userIDs, inQueryLimit) {
		filter := bson.M{"_id": bson.M{"$in": chunk}, "worked_jobs": bson.M{"$ne": jobID}}
		if _, err := r.collection.UpdateMany(ctx, filter, bson.M{"$push": bson.M{"worked_jobs": jobID}}); err != nil {
			return err
		}
	}
	return nil
}

func (r *MongoUserRepository) SetDeletionState(ctx context.Context, userID string, expectPending bool, updates map[string]interface{}) (bool, error) {
	filter := bson.M{"_id": userID, "pending_deletion": expectPending}
	if !expectPending {
		// documents written before the field existed count as not pending
		filter = bson.M{"_id": userID, "pending_deletion": bson.M{"$ne": true}}
	}
	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range updates {
		set[k] = v
	}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (r *MongoUserRepository) ListPendingDeletions(ctx context.Context) ([]*entity.User, error) {
	return r.find(ctx, bson.M{"pending_deletion": true}, options.Find().SetSort(bson.D{{Key: "deletion_requested_at", Value: 1}}))
}

func (r *MongoUserRepository) ListPendingEmployers(ctx context.Context) ([]*entity.User, error) {
	return r.find(ctx, bson.M{"pending_employer": true}, options.Find().SetSort(bson.D{{Key: "updated_at", Value: 1}}))
}

func (r *MongoUserRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*entity.User, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []*entity.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
