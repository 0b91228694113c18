package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
)

// RecordStore reads raw documents from any collection, for the deletion
// workflow's snapshot.
type RecordStore struct {
	db *mongo.Database
}

var _ contract.IRecordStore = (*RecordStore)(nil)

func NewRecordStore(db *mongo.Database) *RecordStore {
	return &RecordStore{db: db}
}

func (s *RecordStore) FindByField(ctx context.Context, collection, field string, value interface{}) ([]entity.Record, error) {
	return s.find(ctx, collection, bson.M{field: value})
}

// FindByFieldIn matches field against values, querying at most inQueryLimit
// values at a time.
func (s *RecordStore) FindByFieldIn(ctx context.Context, collection, field string, values []interface{}) ([]entity.Record, error) {
	out := []entity.Record{}
	for _, chunk := range Chunk(values, inQueryLimit) {
		recs, err := s.find(ctx, collection, bson.M{field: bson.M{"$in": chunk}})
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	return out, nil
}

func (s *RecordStore) find(ctx context.Context, collection string, filter bson.M) ([]entity.Record, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []map[string]interface{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]entity.Record, 0, len(docs))
	for _, d := range docs {
		out = append(out, d)
	}
	return out, nil
}
