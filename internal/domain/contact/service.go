package contact

import (
	"context"
	"crm-admin/internal/domain/customer"
	"crm-admin/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
)

type Service interface {
	CreateContact(ctx context.Context, customerID int64, details Details) (*Contact, error)
	GetContact(ctx context.Context, contactID int64) (*Contact, error)
	ListContacts(ctx context.Context, customerID int64) ([]*Contact, error)
	UpdateContact(ctx context.Context, contactID int64, details Details) (*Contact, error)
	DeleteContact(ctx context.Context, contactID int64) error
	SetPrimary(ctx context.Context, contactID int64) (*Contact, error)
}

var _ Service = (*contactService)(nil)

type contactService struct {
	repo      Repository
	customers CustomerFinder
	tx        customer.Transactor
	logger    *slog.Logger
}

func NewContactService(repo Repository, customers CustomerFinder, tx customer.Transactor, logger *slog.Logger) Service {
	if repo == nil {
		panic("contact repository cannot be nil")
	}
	if customers == nil {
		panic("customer finder cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewContactService, using default stderr handler")
	}
	return &contactService{
		repo:      repo,
		customers: customers,
		tx:        tx,
		logger:    logger.With(slog.String("component", "contactService")),
	}
}

func (s *contactService) withinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.WithinTransaction(ctx, fn)
}

func (s *contactService) CreateContact(ctx context.Context, customerID int64, details Details) (*Contact, error) {
	log := s.logger.With(slog.Int64("customerID", customerID))
	log.InfoContext(ctx, "Attempting to create contact")

	c := NewContact(customerID, details)
	if err := c.Validate(); err != nil {
		log.WarnContext(ctx, "Validation failed for new contact", slog.Any("error", err))
		return nil, err
	}

	err := s.withinTx(ctx, func(ctx context.Context) error {
		if _, err := s.customers.FindByID(ctx, customerID); err != nil {
			return err
		}
		count, err := s.repo.CountByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		if count == 0 {
			c.IsPrimary = true
		}
		if c.IsPrimary && count > 0 {
			if err := s.repo.ClearPrimary(ctx, customerID); err != nil {
				return err
			}
		}
		return s.repo.Create(ctx, c)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.WarnContext(ctx, "Customer not found for new contact")
			return nil, apperrors.ErrNotFound
		}
		log.ErrorContext(ctx, "Failed to create contact", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create contact for customer %d: %w", customerID, err)
	}

	log.InfoContext(ctx, "Successfully created contact", slog.Int64("contactID", c.ID), slog.Bool("primary", c.IsPrimary))
	return c, nil
}

func (s *contactService) GetContact(ctx context.Context, contactID int64) (*Contact, error) {
	c, err := s.repo.FindByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Contact not found", slog.Int64("contactID", contactID))
			return nil, apperrors.ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding contact", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get contact %d: %w", contactID, err)
	}
	return c, nil
}

func (s *contactService) ListContacts(ctx context.Context, customerID int64) ([]*Contact, error) {
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to check customer %d: %w", customerID, err)
	}

	contacts, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing contacts", slog.Int64("customerID", customerID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to list contacts for customer %d: %w", customerID, err)
	}
	return contacts, nil
}

func (s *contactService) UpdateContact(ctx context.Context, contactID int64, details Details) (*Contact, error) {
	log := s.logger.With(slog.Int64("contactID", contactID))
	log.InfoContext(ctx, "Attempting to update contact")

	details = details.Normalize()
	if err := details.Validate(); err != nil {
		log.WarnContext(ctx, "Validation failed for contact update", slog.Any("error", err))
		return nil, err
	}

	var updated *Contact
	err := s.withinTx(ctx, func(ctx context.Context) error {
		c, err := s.repo.FindByID(ctx, contactID)
		if err != nil {
			return err
		}
		if details.IsPrimary && !c.IsPrimary {
			if err := s.repo.ClearPrimary(ctx, c.CustomerID); err != nil {
				return err
			}
		}
		c.Details = details
		c.UpdatedAt = time.Now()
		if err := s.repo.Update(ctx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.WarnContext(ctx, "Contact not found for update")
			return nil, apperrors.ErrNotFound
		}
		log.ErrorContext(ctx, "Failed to update contact", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update contact %d: %w", contactID, err)
	}

	log.InfoContext(ctx, "Successfully updated contact")
	return updated, nil
}

func (s *contactService) DeleteContact(ctx context.Context, contactID int64) error {
	log := s.logger.With(slog.Int64("contactID", contactID))
	log.InfoContext(ctx, "Attempting to soft-delete contact")

	err := s.withinTx(ctx, func(ctx context.Context) error {
		c, err := s.repo.FindByID(ctx, contactID)
		if err != nil {
			return err
		}
		if err := s.repo.SoftDelete(ctx, contactID); err != nil {
			return err
		}
		if c.IsPrimary {
			return s.repo.PromoteOldest(ctx, c.CustomerID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.WarnContext(ctx, "Contact not found for delete")
			return apperrors.ErrNotFound
		}
		log.ErrorContext(ctx, "Failed to delete contact", slog.Any("error", err))
		return fmt.Errorf("failed to delete contact %d: %w", contactID, err)
	}

	log.InfoContext(ctx, "Successfully soft-deleted contact")
	return nil
}

func (s *contactService) SetPrimary(ctx context.Context, contactID int64) (*Contact, error) {
	log := s.logger.With(slog.Int64("contactID", contactID))
	log.InfoContext(ctx, "Attempting to set primary contact")

	var primary *Contact
	err := s.withinTx(ctx, func(ctx context.Context) error {
		c, err := s.repo.FindByID(ctx, contactID)
		if err != nil {
			return err
		}
		if c.IsPrimary {
			primary = c
			return nil
		}
		if err := s.repo.ClearPrimary(ctx, c.CustomerID); err != nil {
			return err
		}
		c.IsPrimary = true
		c.UpdatedAt = time.Now()
		if err := s.repo.Update(ctx, c); err != nil {
			return err
		}
		primary = c
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.WarnContext(ctx, "Contact not found")
			return nil, apperrors.ErrNotFound
		}
		log.ErrorContext(ctx, "Failed to set primary contact", slog.Any("error", err))
		return nil, fmt.Errorf("failed to set primary contact %d: %w", contactID, err)
	}

	log.InfoContext(ctx, "Primary contact set", slog.Int64("customerID", primary.CustomerID))
	return primary, nil
}
