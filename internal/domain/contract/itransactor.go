package contract

import "context"

// ITransactor runs fn inside one store transaction. Repository calls made with
// the context passed to fn join the transaction; returning an error aborts it.
type ITransactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
