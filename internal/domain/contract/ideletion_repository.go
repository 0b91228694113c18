package contract

import (
	"context"
	"time"

	"github.com/socialjobs/workmatch/internal/domain/entity"
)

// IRecordStore reads raw documents from collections this service does not own
// a typed repository for.
type IRecordStore interface {
	FindByField(ctx context.Context, collection, field string, value interface{}) ([]entity.Record, error)
	// FindByFieldIn splits values into IN queries of bounded size.
	FindByFieldIn(ctx context.Context, collection, field string, values []interface{}) ([]entity.Record, error)
}

// IBatchWriter performs bulk writes in chunks no larger than the store's batch
// cap, retrying each failed chunk independently.
type IBatchWriter interface {
	InsertMany(ctx context.Context, collection string, docs []interface{}) (int, error)
	DeleteByIDs(ctx context.Context, collection string, ids []interface{}) (int, error)
}

type IArchiveRepository interface {
	// InsertArchive writes the snapshot once; a second insert returns ErrDuplicate.
	InsertArchive(ctx context.Context, archived *entity.ArchivedUser) error
	GetArchive(ctx context.Context, userID string) (*entity.ArchivedUser, error)
}

type IDeletionWorkflowRepository interface {
	SaveWorkflow(ctx context.Context, wf *entity.DeletionWorkflow) error
	GetWorkflow(ctx context.Context, userID string) (*entity.DeletionWorkflow, error)
	ListIncomplete(ctx context.Context, updatedBefore time.Time) ([]*entity.DeletionWorkflow, error)
}

// IArchiveExporter copies an archived snapshot to long-term object storage.
type IArchiveExporter interface {
	Export(ctx context.Context, archived *entity.ArchivedUser) (string, error)
}
