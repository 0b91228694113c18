package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

const (
	DefaultBatchSize    = 500
	DefaultBatchRetries = 3
)

// BatchWriter writes and deletes documents in chunks of at most size. Each
// chunk is retried on its own, so a failure never re-sends chunks that were
// already committed.
type BatchWriter struct {
	db      *mongo.Database
	size    int
	retries int
	backoff time.Duration
	logger  usecasecontract.IAppLogger
}

var _ contract.IBatchWriter = (*BatchWriter)(nil)

func NewBatchWriter(db *mongo.Database, size, retries int, logger usecasecontract.IAppLogger) *BatchWriter {
	if size < 1 || size > DefaultBatchSize {
		size = DefaultBatchSize
	}
	if retries < 1 {
		retries = DefaultBatchRetries
	}
	return &BatchWriter{db: db, size: size, retries: retries, backoff: 200 * time.Millisecond, logger: logger}
}

// InsertMany inserts docs and returns how many are stored. Documents that
// already exist count as stored, which makes a retried chunk idempotent.
func (w *BatchWriter) InsertMany(ctx context.Context, collection string, docs []interface{}) (int, error) {
	col := w.db.Collection(collection)
	written := 0
	for i, chunk := range Chunk(docs, w.size) {
		err := w.retry(ctx, collection, i, func() error {
			_, err := col.InsertMany(ctx, chunk, options.InsertMany().SetOrdered(false))
			if err != nil && onlyDuplicateKeys(err) {
				return nil
			}
			return err
		})
		if err != nil {
			return written, fmt.Errorf("insert chunk %d of %s: %w", i, collection, err)
		}
		written += len(chunk)
	}
	return written, nil
}

// DeleteByIDs removes the documents with the given _id values and returns how
// many were deleted. Ids that are already gone are not an error.
func (w *BatchWriter) DeleteByIDs(ctx context.Context, collection string, ids []interface{}) (int, error) {
	col := w.db.Collection(collection)
	deleted := 0
	for i, chunk := range Chunk(ids, w.size) {
		err := w.retry(ctx, collection, i, func() error {
			res, err := col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": chunk}})
			if err != nil {
				return err
			}
			deleted += int(res.DeletedCount)
			return nil
		})
		if err != nil {
			return deleted, fmt.Errorf("delete chunk %d of %s: %w", i, collection, err)
		}
	}
	return deleted, nil
}

func (w *BatchWriter) retry(ctx context.Context, collection string, chunk int, op func() error) error {
	var err error
	for attempt := 1; attempt <= w.retries; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.logger.Warnf("batch %s chunk %d attempt %d/%d failed: %v", collection, chunk, attempt, w.retries, err)
		if attempt == w.retries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.backoff * time.Duration(attempt)):
		}
	}
	return err
}
