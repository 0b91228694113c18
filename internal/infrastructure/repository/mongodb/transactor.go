package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/socialjobs/workmatch/internal/domain/contract"
)

// Transactor runs use case callbacks inside a multi-document transaction.
// The session context handed to the callback carries the transaction, so
// repository calls made with it join it.
type Transactor struct {
	client *mongo.Client
}

var _ contract.ITransactor = (*Transactor)(nil)

func NewTransactor(client *mongo.Client) *Transactor {
	return &Transactor{client: client}
}

// WithinTransaction commits when fn returns nil. The driver retries the whole
// callback on transient transaction errors, so fn must be safe to re-run.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// already inside a transaction: join it
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
