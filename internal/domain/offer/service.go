package offer

import (
	"context"
	"crm-admin/internal/domain/customer"
	"crm-admin/internal/event"
	"crm-admin/internal/infrastructure/monitoring"
	"crm-admin/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
)

const offerNotFound = "Offer not found by repository"

type Service interface {
	CreateOffer(ctx context.Context, customerID int64, details Details) (*Offer, error)
	GetOffer(ctx context.Context, offerID int64) (*Offer, error)
	ListOffers(ctx context.Context, filter ListFilter) (*Page, error)
	UpdateOffer(ctx context.Context, offerID int64, details Details) (*Offer, error)
	ChangeStatus(ctx context.Context, offerID int64, to Status, actor string) (*Offer, error)
	DeleteOffer(ctx context.Context, offerID int64) error
	ListOverdueIDs(ctx context.Context, now time.Time) ([]int64, error)
	CountByStatus(ctx context.Context, customerID *int64) (map[Status]int, error)
}

// CustomerFinder is the part of the customer repository offers depend on.
type CustomerFinder interface {
	FindByID(ctx context.Context, customerID int64) (*customer.Customer, error)
}

var _ Service = (*offerService)(nil)

type offerService struct {
	repo      Repository
	customers CustomerFinder
	pub       event.EventPublisher
	now       func() time.Time
	logger    *slog.Logger
}

func NewOfferService(repo Repository, customers CustomerFinder, pub event.EventPublisher, logger *slog.Logger) Service {
	if repo == nil {
		panic("offer repository cannot be nil")
	}
	if customers == nil {
		panic("customer finder cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewOfferService, using default stderr handler")
	}
	if pub == nil {
		pub = event.NopPublisher{}
	}
	return &offerService{
		repo:      repo,
		customers: customers,
		pub:       pub,
		now:       time.Now,
		logger:    logger.With(slog.String("component", "offerService")),
	}
}

func (s *offerService) mapNotFound(ctx context.Context, log *slog.Logger, err error, action string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		log.WarnContext(ctx, offerNotFound)
		return apperrors.ErrNotFound
	}
	log.ErrorContext(ctx, "Repository error while trying to "+action, slog.Any("error", err))
	return fmt.Errorf("failed to %s: %w", action, err)
}

func (s *offerService) CreateOffer(ctx context.Context, customerID int64, details Details) (*Offer, error) {
	log := s.logger.With(slog.Int64("customerID", customerID))
	log.InfoContext(ctx, "Attempting to create offer")

	o := NewOffer(customerID, details)
	if err := o.Validate(); err != nil {
		log.WarnContext(ctx, "Validation failed for new offer", slog.Any("error", err))
		return nil, err
	}

	cust, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.WarnContext(ctx, "Customer not found for new offer")
			return nil, apperrors.ErrNotFound
		}
		log.ErrorContext(ctx, "Repository error finding customer for offer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to check customer %d: %w", customerID, err)
	}
	o.CustomerName = cust.CompanyName

	if err := s.repo.Save(ctx, o); err != nil {
		log.ErrorContext(ctx, "Repository failed to save new offer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new offer: %w", err)
	}

	log.InfoContext(ctx, "Successfully created offer", slog.Int64("offerID", o.ID), slog.String("total", o.Total().StringFixed(2)))
	return o, nil
}

func (s *offerService) GetOffer(ctx context.Context, offerID int64) (*Offer, error) {
	log := s.logger.With(slog.Int64("offerID", offerID))
	o, err := s.repo.FindByID(ctx, offerID)
	if err != nil {
		return nil, s.mapNotFound(ctx, log, err, fmt.Sprintf("get offer %d", offerID))
	}
	return o, nil
}

func (s *offerService) ListOffers(ctx context.Context, filter ListFilter) (*Page, error) {
	filter = filter.Sanitize()
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing offers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	s.logger.DebugContext(ctx, "Listed offers", slog.Int("count", len(items)), slog.Int("total", total))
	return &Page{Items: items, Total: total}, nil
}

func (s *offerService) UpdateOffer(ctx context.Context, offerID int64, details Details) (*Offer, error) {
	log := s.logger.With(slog.Int64("offerID", offerID))
	log.InfoContext(ctx, "Attempting to update offer")

	details = details.Normalize()
	if err := details.Validate(); err != nil {
		log.WarnContext(ctx, "Validation failed for offer update", slog.Any("error", err))
		return nil, err
	}

	o, err := s.repo.FindByID(ctx, offerID)
	if err != nil {
		return nil, s.mapNotFound(ctx, log, err, fmt.Sprintf("find offer %d for update", offerID))
	}
	if o.Status != StatusDraft {
		log.WarnContext(ctx, "Business rule failed: offer is not a draft", slog.String("status", string(o.Status)))
		return nil, ErrNotEditable
	}

	o.Details = details
	o.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, o); err != nil {
		return nil, s.mapNotFound(ctx, log, err, fmt.Sprintf("save offer %d", offerID))
	}

	log.InfoContext(ctx, "Successfully updated offer")
	return o, nil
}

func (s *offerService) ChangeStatus(ctx context.Context, offerID int64, to Status, actor string) (*Offer, error) {
	log := s.logger.With(slog.Int64("offerID", offerID), slog.String("to", string(to)))
	log.InfoContext(ctx, "Attempting to change offer status")

	o, err := s.repo.FindByID(ctx, offerID)
	if err != nil {
		return nil, s.mapNotFound(ctx, log, err, fmt.Sprintf("find offer %d for status change", offerID))
	}

	now := s.now()
	if to == StatusSent && o.ValidUntil != nil && o.ValidUntil.Before(now) {
		log.WarnContext(ctx, "Business rule failed: offer validity already passed")
		return nil, apperrors.NewValidationError("validUntil", "offer validity date has already passed")
	}

	from := o.Status
	if err := o.TransitionTo(to, now); err != nil {
		log.WarnContext(ctx, "Business rule failed: invalid status transition", slog.String("from", string(from)))
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, o, from); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			log.WarnContext(ctx, "Offer status changed concurrently", slog.Any("error", err))
			return nil, fmt.Errorf("%w: offer %d is no longer %s", ErrInvalidTransition, offerID, from)
		}
		return nil, s.mapNotFound(ctx, log, err, fmt.Sprintf("update status of offer %d", offerID))
	}
	monitoring.RecordOfferStatusChange(string(to))

	evt := event.OfferStatusChangedEvent{
		Timestamp:    now,
		OfferID:      o.ID,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		Title:        o.Title,
		Total:        o.Total().StringFixed(2),
		OldStatus:    string(from),
		NewStatus:    string(to),
		ChangedBy:    actor,
	}
	if pubErr := s.pub.PublishOfferStatusChanged(ctx, evt); pubErr != nil {
		log.ErrorContext(ctx, "Offer status changed, but FAILED to publish event", slog.Any("error", pubErr))
	}

	log.InfoContext(ctx, "Successfully changed offer status", slog.String("from", string(from)))
	return o, nil
}

func (s *offerService) DeleteOffer(ctx context.Context, offerID int64) error {
	log := s.logger.With(slog.Int64("offerID", offerID))
	if err := s.repo.SoftDelete(ctx, offerID); err != nil {
		return s.mapNotFound(ctx, log, err, fmt.Sprintf("delete offer %d", offerID))
	}
	log.InfoContext(ctx, "Successfully soft-deleted offer")
	return nil
}

func (s *offerService) ListOverdueIDs(ctx context.Context, now time.Time) ([]int64, error) {
	ids, err := s.repo.FindOverdueIDs(ctx, now)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error finding overdue offers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to find overdue offers: %w", err)
	}
	return ids, nil
}

func (s *offerService) CountByStatus(ctx context.Context, customerID *int64) (map[Status]int, error) {
	counts, err := s.repo.CountByStatus(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error counting offers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to count offers: %w", err)
	}
	for _, st := range AllStatuses {
		if _, ok := counts[st]; !ok {
			counts[st] = 0
		}
	}
	return counts, nil
}
