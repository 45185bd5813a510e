package offer

import (
	"context"
	"time"
)

type Repository interface {
	Save(ctx context.Context, offer *Offer) error

	FindByID(ctx context.Context, offerID int64) (*Offer, error)

	List(ctx context.Context, filter ListFilter) ([]*Offer, int, error)

	// UpdateStatus persists a transition only if the stored status still equals from.
	UpdateStatus(ctx context.Context, offer *Offer, from Status) error

	SoftDelete(ctx context.Context, offerID int64) error

	FindOverdueIDs(ctx context.Context, now time.Time) ([]int64, error)

	CountByStatus(ctx context.Context, customerID *int64) (map[Status]int, error)
}
