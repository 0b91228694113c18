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

// ArchiveRepository stores one archived snapshot per deleted user, keyed by
// the user id.
type ArchiveRepository struct {
	collection *mongo.Collection
}

var _ contract.IArchiveRepository = (*ArchiveRepository)(nil)

func NewArchiveRepository(db *mongo.Database) *ArchiveRepository {
	return &ArchiveRepository{collection: db.Collection(contract.CollectionArchivedUsers)}
}

func (r *ArchiveRepository) InsertArchive(ctx context.Context, archived *entity.ArchivedUser) error {
	_, err := r.collection.InsertOne(ctx, archived)
	return mapErr(err)
}

func (r *ArchiveRepository) GetArchive(ctx context.Context, userID string) (*entity.ArchivedUser, error) {
	var a entity.ArchivedUser
	if err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&a); err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

// DeletionWorkflowRepository persists the step cursor of approval sagas.
type DeletionWorkflowRepository struct {
	collection *mongo.Collection
}

var _ contract.IDeletionWorkflowRepository = (*DeletionWorkflowRepository)(nil)

func NewDeletionWorkflowRepository(db *mongo.Database) *DeletionWorkflowRepository {
	return &DeletionWorkflowRepository{collection: db.Collection(contract.CollectionDeletionWorkflows)}
}

func (r *DeletionWorkflowRepository) SaveWorkflow(ctx context.Context, wf *entity.DeletionWorkflow) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": wf.ID}, wf, options.Replace().SetUpsert(true))
	return err
}

func (r *DeletionWorkflowRepository) GetWorkflow(ctx context.Context, userID string) (*entity.DeletionWorkflow, error) {
	var wf entity.DeletionWorkflow
	if err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&wf); err != nil {
		return nil, mapErr(err)
	}
	return &wf, nil
}

func (r *DeletionWorkflowRepository) ListIncomplete(ctx context.Context, updatedBefore time.Time) ([]*entity.DeletionWorkflow, error) {
	filter := bson.M{
		"step":       bson.M{"$ne": entity.DeletionStepDone},
		"updated_at": bson.M{"$lte": updatedBefore},
	}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "updated_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []*entity.DeletionWorkflow{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
