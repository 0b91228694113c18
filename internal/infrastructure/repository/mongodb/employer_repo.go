package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
)

type EmployerRepository struct {
	collection *mongo.Collection
}

var _ contract.IEmployerRepository = (*EmployerRepository)(nil)

func NewEmployerRepository(db *mongo.Database) *EmployerRepository {
	return &EmployerRepository{collection: db.Collection(contract.CollectionEmployers)}
}

// CreateEmployer relies on the unique user_id index to reject a second record.
func (r *EmployerRepository) CreateEmployer(ctx context.Context, employer *entity.Employer) error {
	_, err := r.collection.InsertOne(ctx, employer)
	return mapErr(err)
}
