package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
)

// ApplicantRepository stores applicants keyed by (job, applicant), so a second
// apply hits the _id unique index.
type ApplicantRepository struct {
	collection *mongo.Collection
}

var _ contract.IApplicantRepository = (*ApplicantRepository)(nil)

func NewApplicantRepository(db *mongo.Database) *ApplicantRepository {
	return &ApplicantRepository{collection: db.Collection(contract.CollectionApplicants)}
}

func (r *ApplicantRepository) CreateApplicant(ctx context.Context, applicant *entity.Applicant) error {
	applicant.ID = entity.ApplicantDocID(applicant.JobID, applicant.ApplicantID)
	_, err := r.collection.InsertOne(ctx, applicant)
	return mapErr(err)
}

func (r *ApplicantRepository) GetApplicant(ctx context.Context, jobID, applicantID string) (*entity.Applicant, error) {
	var a entity.Applicant
	err := r.collection.FindOne(ctx, bson.M{"_id": entity.ApplicantDocID(jobID, applicantID)}).Decode(&a)
	if err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

func (r *ApplicantRepository) ListApplicantsByJob(ctx context.Context, jobID string) ([]*entity.Applicant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"job_id": jobID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	applicants := []*entity.Applicant{}
	if err := cursor.All(ctx, &applicants); err != nil {
		return nil, err
	}
	return applicants, nil
}

func (r *ApplicantRepository) CountHired(ctx context.Context, jobID string) (int, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"job_id": jobID, "hired": true})
	return int(n), err
}

func (r *ApplicantRepository) ListHiredApplicantIDs(ctx context.Context, jobID string) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"applicant_id": 1}).
		SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"job_id": jobID, "hired": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ids := []string{}
	for cursor.Next(ctx) {
		var doc struct {
			ApplicantID string `bson:"applicant_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ApplicantID)
	}
	return ids, cursor.Err()
}

func (r *ApplicantRepository) SetHired(ctx context.Context, jobID, applicantID string, from, to bool) (bool, error) {
	filter := bson.M{"_id": entity.ApplicantDocID(jobID, applicantID), "hired": from}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"hired": to}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (r *ApplicantRepository) DeleteApplicant(ctx context.Context, jobID, applicantID string) (bool, error) {
	filter := bson.M{"_id": entity.ApplicantDocID(jobID, applicantID), "hired": bson.M{"$ne": true}}
	res, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}

// ApplicationRepository stores the user-side mirror of pending applications.
type ApplicationRepository struct {
	collection *mongo.Collection
}

var _ contract.IApplicationRepository = (*ApplicationRepository)(nil)

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{collection: db.Collection(contract.CollectionApplications)}
}

func (r *ApplicationRepository) CreateApplication(ctx context.Context, application *entity.Application) error {
	application.ID = entity.ApplicationDocID(application.UserID, application.JobID)
	_, err := r.collection.InsertOne(ctx, application)
	return mapErr(err)
}

func (r *ApplicationRepository) DeleteApplication(ctx context.Context, userID, jobID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": entity.ApplicationDocID(userID, jobID)})
	return err
}

func (r *ApplicationRepository) ListJobIDsByUser(ctx context.Context, userID string) ([]string, error) {
	return listJobIDs(ctx, r.collection, userID)
}

// AcceptedJobRepository stores the user-side mirror of hires.
type AcceptedJobRepository struct {
	collection *mongo.Collection
}

var _ contract.IAcceptedJobRepository = (*AcceptedJobRepository)(nil)

func NewAcceptedJobRepository(db *mongo.Database) *AcceptedJobRepository {
	return &AcceptedJobRepository{collection: db.Collection(contract.CollectionAcceptedJobs)}
}

func (r *AcceptedJobRepository) AddAcceptedJob(ctx context.Context, accepted *entity.AcceptedJob) error {
	accepted.ID = entity.AcceptedJobDocID(accepted.UserID, accepted.JobID)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": accepted.ID}, accepted, options.Replace().SetUpsert(true))
	return err
}

func (r *AcceptedJobRepository) RemoveAcceptedJob(ctx context.Context, userID, jobID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": entity.AcceptedJobDocID(userID, jobID)})
	return err
}

func (r *AcceptedJobRepository) ListJobIDsByUser(ctx context.Context, userID string) ([]string, error) {
	return listJobIDs(ctx, r.collection, userID)
}

func listJobIDs(ctx context.Context, col *mongo.Collection, userID string) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"job_id": 1}).
		SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ids := []string{}
	for cursor.Next(ctx) {
		var doc struct {
			JobID string `bson:"job_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.JobID)
	}
	return ids, cursor.Err()
}
