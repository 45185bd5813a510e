package formlink

import (
	"context"
	"crm-admin/internal/domain/contact"
	"crm-admin/internal/domain/customer"
	"time"
)

type Repository interface {
	Create(ctx context.Context, link *FormLink) error

	FindByID(ctx context.Context, linkID int64) (*FormLink, error)

	FindByToken(ctx context.Context, token string) (*FormLink, error)

	// FindByTokenForUpdate locks the row until the surrounding transaction ends.
	FindByTokenForUpdate(ctx context.Context, token string) (*FormLink, error)

	List(ctx context.Context, filter ListFilter) ([]*FormLink, int, error)

	MarkSubmitted(ctx context.Context, linkID, customerID int64, at time.Time) error

	// UpdateStatus changes the status of a pending link; any other current status yields ErrConflict.
	UpdateStatus(ctx context.Context, linkID int64, status Status) error

	ExpirePending(ctx context.Context, now time.Time) (int64, error)
}

// Cache holds links by token. A miss is reported as (nil, nil).
type Cache interface {
	Get(ctx context.Context, token string) (*FormLink, error)
	Set(ctx context.Context, link *FormLink, ttl time.Duration) error
	Evict(ctx context.Context, token string) error
}

// CustomerStore is the part of the customer repository a submission writes through.
type CustomerStore interface {
	FindByID(ctx context.Context, customerID int64) (*customer.Customer, error)
	Save(ctx context.Context, c *customer.Customer) error
}

// ContactStore is the part of the contact repository a submission writes through.
type ContactStore interface {
	CountByCustomer(ctx context.Context, customerID int64) (int, error)
	ClearPrimary(ctx context.Context, customerID int64) error
	Create(ctx context.Context, c *contact.Contact) error
}

type DuplicateChecker interface {
	CheckDuplicates(ctx context.Context, probe customer.DuplicateProbe, excludeID int64) ([]customer.DuplicateMatch, error)
}
