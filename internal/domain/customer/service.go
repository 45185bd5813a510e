package customer

import (
	"context"
	"crm-admin/internal/event"
	"crm-admin/internal/infrastructure/monitoring"
	"crm-admin/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
)

const (
	customerNotFound = "Customer not found by repository"

	actionUpdated  = "updated"
	actionDeleted  = "deleted"
	actionRestored = "restored"
)

type Service interface {
	CreateCustomer(ctx context.Context, details Details) (*Customer, error)
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
	ListCustomers(ctx context.Context, filter ListFilter) (*Page, error)
	UpdateCustomer(ctx context.Context, customerID int64, details Details) (*Customer, error)
	DeleteCustomer(ctx context.Context, customerID int64) error
	RestoreCustomer(ctx context.Context, customerID int64) (*Customer, error)
	CheckDuplicates(ctx context.Context, probe DuplicateProbe, excludeID int64) ([]DuplicateMatch, error)
	FindDuplicatesOf(ctx context.Context, customerID int64) ([]DuplicateMatch, error)
	GetStats(ctx context.Context) (*Stats, error)
}

var _ Service = (*customerService)(nil)

type customerService struct {
	repo     Repository
	tx       Transactor
	pub      event.EventPublisher
	detector DuplicateDetector
	logger   *slog.Logger
}

func NewCustomerService(repo Repository, tx Transactor, pub event.EventPublisher, detector DuplicateDetector, logger *slog.Logger) Service {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}
	if pub == nil {
		logger.Warn("No event publisher provided to NewCustomerService, events will be dropped")
		pub = event.NopPublisher{}
	}
	if detector.MaxResults == 0 {
		detector = NewDuplicateDetector(detector.Threshold, detector.MaxResults)
	}

	return &customerService{
		repo:     repo,
		tx:       tx,
		pub:      pub,
		detector: detector,
		logger:   logger.With(slog.String("component", "customerService")),
	}
}

func NewCustomerEventPayload(c *Customer) event.CustomerEventPayload {
	if c == nil {
		return event.CustomerEventPayload{}
	}
	return event.CustomerEventPayload{
		CustomerID:  c.ID,
		CompanyName: c.CompanyName,
		TaxID:       c.TaxID,
		Email:       c.Email,
		Phone:       c.Phone,
		IsCompany:   c.IsCompany,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		DeletedAt:   c.DeletedAt,
	}
}

func (s *customerService) withinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.WithinTransaction(ctx, fn)
}

func (s *customerService) publishUpdated(ctx context.Context, c *Customer, action string) {
	log := s.logger.With(slog.Int64("customerID", c.ID), slog.String("action", action))
	evt := event.CustomerUpdatedEvent{
		Timestamp: time.Now(),
		Action:    action,
		Payload:   NewCustomerEventPayload(c),
	}
	if err := s.pub.PublishCustomerUpdated(ctx, evt); err != nil {
		log.ErrorContext(ctx, "Failed to publish customer update event", slog.Any("error", err))
		return
	}
	log.DebugContext(ctx, "Published customer update event")
}

func (s *customerService) CreateCustomer(ctx context.Context, details Details) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to create new customer")

	c := NewCustomer(details)
	if err := c.Validate(); err != nil {
		s.logger.WarnContext(ctx, "Validation failed for new customer", slog.Any("error", err))
		return nil, err
	}

	if err := s.repo.Save(ctx, c); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}
	log := s.logger.With(slog.Int64("customerID", c.ID))
	monitoring.RecordCustomerCreated("admin")

	createdEvent := event.CustomerCreatedEvent{
		Timestamp: time.Now(),
		Payload:   NewCustomerEventPayload(c),
	}
	if pubErr := s.pub.PublishCustomerCreated(ctx, createdEvent); pubErr != nil {
		log.ErrorContext(ctx, "Customer created, but FAILED to publish creation event", slog.Any("error", pubErr))
	}

	log.InfoContext(ctx, "Successfully created new customer")
	return c, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	log := s.logger.With(slog.Int64("customerID", customerID))
	log.DebugContext(ctx, "Attempting to get customer by ID")

	c, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.WarnContext(ctx, customerNotFound)
			return nil, apperrors.ErrNotFound
		}
		log.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}
	return c, nil
}

func (s *customerService) ListCustomers(ctx context.Context, filter ListFilter) (*Page, error) {
	filter = filter.Sanitize()
	s.logger.DebugContext(ctx, "Listing customers",
		slog.String("search", filter.Search), slog.Int("limit", filter.Limit), slog.Int("offset", filter.Offset))

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully listed customers", slog.Int("count", len(items)), slog.Int("total", total))
	return &Page{Items: items, Total: total}, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID int64, details Details) (*Customer, error) {
	log := s.logger.With(slog.Int64("customerID", customerID))
	log.InfoContext(ctx, "Attempting to update customer")

	normalized := details.Normalize()
	if err := normalized.Validate(); err != nil {
		log.WarnContext(ctx, "Validation failed for customer update", slog.Any("error", err))
		return nil, err
	}

	c, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.WarnContext(ctx, customerNotFound)
			return nil, apperrors.ErrNotFound
		}
		log.ErrorContext(ctx, "Repository error finding customer for update", slog.Any("error", err))
		return nil, fmt.Errorf("cannot find customer %d to update: %w", customerID, err)
	}

	if !c.Apply(normalized) {
		log.InfoContext(ctx, "No changes detected, skipping save")
		return c, nil
	}

	if err := s.repo.Save(ctx, c); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.ErrorContext(ctx, "Customer disappeared before save completed")
			return nil, apperrors.ErrNotFound
		}
		log.ErrorContext(ctx, "Repository failed to save updated customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save customer %d: %w", customerID, err)
	}

	s.publishUpdated(ctx, c, actionUpdated)
	log.InfoContext(ctx, "Successfully updated customer")
	return c, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	log := s.logger.With(slog.Int64("customerID", customerID))
	log.InfoContext(ctx, "Attempting to soft-delete customer")

	err := s.withinTx(ctx, func(ctx context.Context) error {
		return s.repo.SoftDelete(ctx, customerID)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.WarnContext(ctx, customerNotFound)
			return apperrors.ErrNotFound
		}
		log.ErrorContext(ctx, "Repository error deleting customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}

	deleted, fetchErr := s.repo.FindByIDIncludingDeleted(ctx, customerID)
	if fetchErr != nil {
		log.ErrorContext(ctx, "Customer deleted, but FAILED to re-fetch it for event publishing", slog.Any("error", fetchErr))
	} else {
		s.publishUpdated(ctx, deleted, actionDeleted)
	}

	log.InfoContext(ctx, "Successfully soft-deleted customer")
	return nil
}

func (s *customerService) RestoreCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	log := s.logger.With(slog.Int64("customerID", customerID))
	log.InfoContext(ctx, "Attempting to restore customer")

	err := s.withinTx(ctx, func(ctx context.Context) error {
		return s.repo.Restore(ctx, customerID)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.WarnContext(ctx, "No deleted customer found to restore")
			return nil, apperrors.ErrNotFound
		}
		log.ErrorContext(ctx, "Repository error restoring customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to restore customer %d: %w", customerID, err)
	}

	c, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		log.ErrorContext(ctx, "Customer restored, but FAILED to re-fetch it", slog.Any("error", err))
		return nil, fmt.Errorf("failed to load restored customer %d: %w", customerID, err)
	}

	s.publishUpdated(ctx, c, actionRestored)
	log.InfoContext(ctx, "Successfully restored customer")
	return c, nil
}

func (s *customerService) CheckDuplicates(ctx context.Context, probe DuplicateProbe, excludeID int64) ([]DuplicateMatch, error) {
	if probe.IsEmpty() {
		return []DuplicateMatch{}, nil
	}

	candidates, err := s.repo.FindDuplicateCandidates(ctx, excludeID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error loading duplicate candidates", slog.Any("error", err))
		return nil, fmt.Errorf("failed to load duplicate candidates: %w", err)
	}

	matches := s.detector.Find(probe, candidates)
	if len(matches) > 0 {
		monitoring.RecordDuplicatesFlagged(len(matches))
		s.logger.InfoContext(ctx, "Possible duplicate customers found",
			slog.Int("matches", len(matches)), slog.Float64("topScore", matches[0].Score))
	}
	return matches, nil
}

func (s *customerService) FindDuplicatesOf(ctx context.Context, customerID int64) ([]DuplicateMatch, error) {
	c, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.CheckDuplicates(ctx, c.Probe(), c.ID)
}

func (s *customerService) GetStats(ctx context.Context) (*Stats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error computing customer stats", slog.Any("error", err))
		return nil, fmt.Errorf("failed to compute customer stats: %w", err)
	}
	return stats, nil
}
