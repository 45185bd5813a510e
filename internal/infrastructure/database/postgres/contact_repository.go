package postgres

import (
	"context"
	"crm-admin/internal/domain/contact"
	"crm-admin/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

const contactColumns = `id, customer_id, first_name, last_name, email, phone, mobile, position, notes, is_primary,
        created_at, updated_at, deleted_at`

type ContactRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ contact.Repository = (*ContactRepository)(nil)

func NewContactRepository(db DBPool, logger *slog.Logger) *ContactRepository {
	if db == nil {
		panic("DBPool cannot be nil for ContactRepository")
	}
	return &ContactRepository{db: db, logger: logger.With("component", "ContactRepository")}
}

func scanContact(row scanner) (*contact.Contact, error) {
	var c contact.Contact
	err := row.Scan(
		&c.ID,
		&c.CustomerID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.Mobile,
		&c.Position,
		&c.Notes,
		&c.IsPrimary,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepository) Create(ctx context.Context, c *contact.Contact) error {
	if c == nil {
		return fmt.Errorf("%w: contact cannot be nil", apperrors.ErrInvalidArgument)
	}
	log := r.logger.With(slog.Int64("customerID", c.CustomerID))

	query := `
        INSERT INTO contacts (customer_id, first_name, last_name, email, phone, mobile, position, notes, is_primary, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := conn(ctx, r.db).QueryRow(ctx, query,
		c.CustomerID,
		c.FirstName,
		c.LastName,
		c.Email,
		c.Phone,
		c.Mobile,
		c.Position,
		c.Notes,
		c.IsPrimary,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		log.ErrorContext(ctx, "Failed to insert contact", slog.Any("error", err))
		return translateDBError(err, log)
	}

	log.InfoContext(ctx, "Contact inserted successfully", slog.Int64("contactID", c.ID))
	return nil
}

func (r *ContactRepository) Update(ctx context.Context, c *contact.Contact) error {
	log := r.logger.With(slog.Int64("contactID", c.ID))

	query := `
        UPDATE contacts
        SET first_name = $1,
            last_name = $2,
            email = $3,
            phone = $4,
            mobile = $5,
            position = $6,
            notes = $7,
            is_primary = $8,
            updated_at = NOW()
        WHERE id = $9 AND deleted_at IS NULL`

	cmdTag, err := conn(ctx, r.db).Exec(ctx, query,
		c.FirstName,
		c.LastName,
		c.Email,
		c.Phone,
		c.Mobile,
		c.Position,
		c.Notes,
		c.IsPrimary,
		c.ID,
	)
	if err != nil {
		log.ErrorContext(ctx, "Failed to update contact", slog.Any("error", err))
		return translateDBError(err, log)
	}
	if cmdTag.RowsAffected() == 0 {
		log.WarnContext(ctx, "Update affected zero rows, contact likely not found")
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ContactRepository) FindByID(ctx context.Context, contactID int64) (*contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1 AND deleted_at IS NULL`

	c, err := scanContact(conn(ctx, r.db).QueryRow(ctx, query, contactID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Contact not found", slog.Int64("contactID", contactID))
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan contact by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get contact by ID: %w", apperrors.ErrDatabase, err)
	}
	return c, nil
}

func (r *ContactRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts
        WHERE customer_id = $1 AND deleted_at IS NULL
        ORDER BY is_primary DESC, created_at ASC, id ASC`

	rows, err := conn(ctx, r.db).Query(ctx, query, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query contacts", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query contacts: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	contacts := make([]*contact.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan contact row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan contact row: %w", apperrors.ErrDatabase, err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating contact rows: %w", apperrors.ErrDatabase, err)
	}
	return contacts, nil
}

func (r *ContactRepository) CountByCustomer(ctx context.Context, customerID int64) (int, error) {
	var n int
	err := conn(ctx, r.db).QueryRow(ctx,
		`SELECT COUNT(*) FROM contacts WHERE customer_id = $1 AND deleted_at IS NULL`, customerID).Scan(&n)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to count contacts", slog.Any("error", err))
		return 0, fmt.Errorf("%w: failed to count contacts: %w", apperrors.ErrDatabase, err)
	}
	return n, nil
}

func (r *ContactRepository) SoftDelete(ctx context.Context, contactID int64) error {
	cmdTag, err := conn(ctx, r.db).Exec(ctx,
		`UPDATE contacts SET deleted_at = NOW(), is_primary = FALSE, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, contactID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to soft-delete contact", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete contact: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ContactRepository) ClearPrimary(ctx context.Context, customerID int64) error {
	_, err := conn(ctx, r.db).Exec(ctx,
		`UPDATE contacts SET is_primary = FALSE, updated_at = NOW() WHERE customer_id = $1 AND is_primary AND deleted_at IS NULL`, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to clear primary contact", slog.Any("error", err))
		return fmt.Errorf("%w: failed to clear primary contact: %w", apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *ContactRepository) PromoteOldest(ctx context.Context, customerID int64) error {
	query := `
        UPDATE contacts SET is_primary = TRUE, updated_at = NOW()
        WHERE id = (
            SELECT id FROM contacts
            WHERE customer_id = $1 AND deleted_at IS NULL
            ORDER BY created_at ASC, id ASC
            LIMIT 1
        )`

	cmdTag, err := conn(ctx, r.db).Exec(ctx, query, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to promote contact to primary", slog.Any("error", err))
		return fmt.Errorf("%w: failed to promote contact: %w", apperrors.ErrDatabase, err)
	}
	r.logger.DebugContext(ctx, "Promoted oldest contact", slog.Int64("customerID", customerID), slog.Int64("rows", cmdTag.RowsAffected()))
	return nil
}
