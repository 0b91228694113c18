package database

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

// MongoDBClient wraps the driver client and the application database.
type MongoDBClient struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewMongoDBClient connects, pings and returns a client bound to dbName.
// Transactions need a replica set, so the URI should name one.
func NewMongoDBClient(ctx context.Context, uri, dbName string) (*MongoDBClient, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// untyped nested documents decode as bson.M so archived records stay plain maps
	opts := options.Client().ApplyURI(uri).SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect failed: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}
	return &MongoDBClient{Client: client, DB: client.Database(dbName)}, nil
}

// Disconnect closes the connection pool.
func (m *MongoDBClient) Disconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}

// Ping reports whether the server is reachable, used by the health endpoint.
func (m *MongoDBClient) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, nil)
}

type indexDef struct {
	collection string
	keys       bson.D
	unique     bool
}

var indexes = []indexDef{
	{contract.CollectionUsers, bson.D{{Key: "email", Value: 1}}, true},
	{contract.CollectionUsers, bson.D{{Key: "pending_deletion", Value: 1}}, false},
	{contract.CollectionUsers, bson.D{{Key: "pending_employer", Value: 1}}, false},

	{contract.CollectionJobs, bson.D{{Key: "employer_id", Value: 1}}, false},
	{contract.CollectionJobs, bson.D{{Key: "is_completed", Value: 1}, {Key: "is_fully_staffed", Value: 1}, {Key: "created_at", Value: -1}}, false},

	{contract.CollectionApplicants, bson.D{{Key: "job_id", Value: 1}, {Key: "timestamp", Value: 1}}, false},
	{contract.CollectionApplicants, bson.D{{Key: "applicant_id", Value: 1}}, false},
	{contract.CollectionApplications, bson.D{{Key: "user_id", Value: 1}}, false},
	{contract.CollectionAcceptedJobs, bson.D{{Key: "user_id", Value: 1}}, false},

	{contract.CollectionNotifications, bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}, false},
	{contract.CollectionNotifications, bson.D{{Key: "broadcast_id", Value: 1}}, false},
	{contract.CollectionNotifications, bson.D{{Key: "job_id", Value: 1}, {Key: "applicant_id", Value: 1}, {Key: "type", Value: 1}}, false},
	{contract.CollectionBroadcasts, bson.D{{Key: "timestamp", Value: -1}}, false},

	{contract.CollectionDeletionWorkflows, bson.D{{Key: "step", Value: 1}, {Key: "updated_at", Value: 1}}, false},
	{contract.CollectionEmployers, bson.D{{Key: "user_id", Value: 1}}, true},
	{contract.CollectionTokens, bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}, false},

	{contract.CollectionFeedback, bson.D{{Key: "user_id", Value: 1}}, false},
	{contract.CollectionJobChats, bson.D{{Key: "applicant_id", Value: 1}}, false},
	{contract.CollectionRatings, bson.D{{Key: "rated_user", Value: 1}}, false},
}

// EnsureIndexes creates the indexes the repositories rely on. Failures are
// logged; the service still starts.
func (m *MongoDBClient) EnsureIndexes(ctx context.Context, logger usecasecontract.IAppLogger) {
	for _, idx := range indexes {
		model := mongo.IndexModel{Keys: idx.keys}
		if idx.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := m.DB.Collection(idx.collection).Indexes().CreateOne(ctx, model); err != nil {
			logger.Warnf("failed to create index on %s: %v", idx.collection, err)
		}
	}
}
