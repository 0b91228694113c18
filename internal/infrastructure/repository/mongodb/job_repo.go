package mongodb

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
)

// JobRepository is the MongoDB implementation of contract.IJobRepository.
type JobRepository struct {
	collection *mongo.Collection
}

var _ contract.IJobRepository = (*JobRepository)(nil)

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{collection: db.Collection(contract.CollectionJobs)}
}

// buildJobFilter creates a BSON filter from JobFilterOptions.
func buildJobFilter(opts *contract.JobFilterOptions) bson.M {
	filter := bson.M{}
	if !opts.IncludeClosed {
		filter["is_completed"] = bson.M{"$ne": true}
		filter["is_fully_staffed"] = bson.M{"$ne": true}
	}
	if opts.EmployerID != "" {
		filter["employer_id"] = opts.EmployerID
	}
	if opts.Query != "" {
		pattern := containsIgnoreCase(opts.Query)
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}
	if opts.Location != "" {
		filter["location"] = containsIgnoreCase(opts.Location)
	}

	salary := bson.M{}
	if opts.MinSalary != nil {
		salary["$gte"] = *opts.MinSalary
	}
	if opts.MaxSalary != nil {
		salary["$lte"] = *opts.MaxSalary
	}
	if len(salary) > 0 {
		filter["salary"] = salary
	}
	return filter
}

func containsIgnoreCase(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

func (r *JobRepository) CreateJob(ctx context.Context, job *entity.Job) error {
	if _, err := r.collection.InsertOne(ctx, job); err != nil {
		return fmt.Errorf("failed to create job: %w", mapErr(err))
	}
	return nil
}

func (r *JobRepository) GetJobByID(ctx context.Context, jobID string) (*entity.Job, error) {
	var job entity.Job
	if err := r.collection.FindOne(ctx, bson.M{"_id": jobID}).Decode(&job); err != nil {
		return nil, mapErr(err)
	}
	return &job, nil
}

func (r *JobRepository) GetJobsByIDs(ctx context.Context, ids []string) ([]*entity.Job, error) {
	byID := make(map[string]*entity.Job, len(ids))
	for _, chunk := range Chunk(ids, inQueryLimit) {
		jobs, err := r.find(ctx, bson.M{"_id": bson.M{"$in": chunk}})
		if err != nil {
			return nil, err
		}
		for _, j := range jobs {
			byID[j.ID] = j
		}
	}

	out := make([]*entity.Job, 0, len(byID))
	for _, id := range ids {
		if j, ok := byID[id]; ok {
			out = append(out, j)
			delete(byID, id)
		}
	}
	return out, nil
}

// ListJobs returns one page of jobs, newest first, and the total match count.
func (r *JobRepository) ListJobs(ctx context.Context, opts *contract.JobFilterOptions) ([]*entity.Job, int64, error) {
	filter := buildJobFilter(opts)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	page, size := opts.Page, opts.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size))

	jobs, err := r.find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *JobRepository) ListJobsByEmployer(ctx context.Context, employerID string) ([]*entity.Job, error) {
	return r.find(ctx, bson.M{"employer_id": employerID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// CompareAndUpdateJob folds expect into the update filter, so the check and
// the write are one atomic document operation.
func (r *JobRepository) CompareAndUpdateJob(ctx context.Context, jobID string, expect, updates map[string]interface{}) (bool, error) {
	filter := bson.M{"_id": jobID}
	for k, v := range expect {
		if b, ok := v.(bool); ok && !b {
			filter[k] = bson.M{"$ne": true}
			continue
		}
		filter[k] = v
	}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": updates})
	if err != nil {
		return false, fmt.Errorf("failed to update job: %w", err)
	}
	if res.MatchedCount == 1 {
		return true, nil
	}

	// tell a missing job apart from a lost race
	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": jobID})
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, contract.ErrNotFound
	}
	return false, nil
}

func (r *JobRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*entity.Job, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to find jobs: %w", err)
	}
	defer cursor.Close(ctx)

	jobs := []*entity.Job{}
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode jobs: %w", err)
	}
	return jobs, nil
}
