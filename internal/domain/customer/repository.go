package customer

import (
	"context"
)

type Repository interface {
	Save(ctx context.Context, customer *Customer) error

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	FindByIDIncludingDeleted(ctx context.Context, customerID int64) (*Customer, error)

	List(ctx context.Context, filter ListFilter) ([]*Customer, int, error)

	// SoftDelete marks the customer and its contacts as deleted.
	SoftDelete(ctx context.Context, customerID int64) error

	Restore(ctx context.Context, customerID int64) error

	FindDuplicateCandidates(ctx context.Context, excludeID int64) ([]DuplicateCandidate, error)

	Stats(ctx context.Context) (*Stats, error)
}

// Transactor runs fn inside a database transaction carried by the context.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
