package postgres

import (
	"context"
	"crm-admin/internal/domain/offer"
	"crm-admin/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Numeric columns travel as text so decimal values never pass through float64.
const offerSelect = `
        SELECT o.id, o.customer_id, c.company_name, o.title, o.description, o.amount::text, o.vat_rate::text,
            o.status, o.valid_until, o.sent_at, o.decided_at, o.notes, o.created_at, o.updated_at, o.deleted_at
        FROM offers o
        JOIN customers c ON c.id = o.customer_id`

type OfferRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ offer.Repository = (*OfferRepository)(nil)

func NewOfferRepository(db DBPool, logger *slog.Logger) *OfferRepository {
	if db == nil {
		panic("DBPool cannot be nil for OfferRepository")
	}
	return &OfferRepository{db: db, logger: logger.With("component", "OfferRepository")}
}

func scanOffer(row scanner) (*offer.Offer, error) {
	var (
		o               offer.Offer
		amount, vatRate string
		status          string
	)
	err := row.Scan(
		&o.ID,
		&o.CustomerID,
		&o.CustomerName,
		&o.Title,
		&o.Description,
		&amount,
		&vatRate,
		&status,
		&o.ValidUntil,
		&o.SentAt,
		&o.DecidedAt,
		&o.Notes,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if o.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if o.VATRate, err = decimal.NewFromString(vatRate); err != nil {
		return nil, fmt.Errorf("invalid vat rate %q: %w", vatRate, err)
	}
	o.Status = offer.Status(status)
	return &o, nil
}

func (r *OfferRepository) Save(ctx context.Context, o *offer.Offer) error {
	if o == nil {
		return fmt.Errorf("%w: offer cannot be nil", apperrors.ErrInvalidArgument)
	}
	if o.ID == 0 {
		return r.createOffer(ctx, o)
	}
	return r.updateOffer(ctx, o)
}

func (r *OfferRepository) createOffer(ctx context.Context, o *offer.Offer) error {
	log := r.logger.With(slog.Int64("customerID", o.CustomerID))

	query := `
        INSERT INTO offers (customer_id, title, description, amount, vat_rate, status, valid_until, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, $7, $8, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := conn(ctx, r.db).QueryRow(ctx, query,
		o.CustomerID,
		o.Title,
		o.Description,
		o.Amount.String(),
		o.VATRate.String(),
		string(o.Status),
		o.ValidUntil,
		o.Notes,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.ErrorContext(ctx, "Failed to insert offer", slog.Any("error", err))
		return translateDBError(err, log)
	}

	log.InfoContext(ctx, "Offer inserted successfully", slog.Int64("offerID", o.ID))
	return nil
}

func (r *OfferRepository) updateOffer(ctx context.Context, o *offer.Offer) error {
	log := r.logger.With(slog.Int64("offerID", o.ID))

	query := `
        UPDATE offers
        SET title = $1,
            description = $2,
            amount = $3::numeric,
            vat_rate = $4::numeric,
            valid_until = $5,
            notes = $6,
            updated_at = NOW()
        WHERE id = $7 AND deleted_at IS NULL`

	cmdTag, err := conn(ctx, r.db).Exec(ctx, query,
		o.Title,
		o.Description,
		o.Amount.String(),
		o.VATRate.String(),
		o.ValidUntil,
		o.Notes,
		o.ID,
	)
	if err != nil {
		log.ErrorContext(ctx, "Failed to update offer", slog.Any("error", err))
		return translateDBError(err, log)
	}
	if cmdTag.RowsAffected() == 0 {
		log.WarnContext(ctx, "Update affected zero rows, offer likely not found")
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OfferRepository) FindByID(ctx context.Context, offerID int64) (*offer.Offer, error) {
	query := offerSelect + ` WHERE o.id = $1 AND o.deleted_at IS NULL`

	o, err := scanOffer(conn(ctx, r.db).QueryRow(ctx, query, offerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Offer not found", slog.Int64("offerID", offerID))
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan offer by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get offer by ID: %w", apperrors.ErrDatabase, err)
	}
	return o, nil
}

func offerListWhere(filter offer.ListFilter) *whereBuilder {
	w := &whereBuilder{}
	w.add("o.deleted_at IS NULL")
	if filter.CustomerID != nil {
		w.add("o.customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != nil {
		w.add("o.status = ?", string(*filter.Status))
	}
	return w
}

func (r *OfferRepository) List(ctx context.Context, filter offer.ListFilter) ([]*offer.Offer, int, error) {
	log := r.logger.With(slog.String("operation", "List"))
	w := offerListWhere(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM offers o` + w.String()
	if err := conn(ctx, r.db).QueryRow(ctx, countQuery, w.args...).Scan(&total); err != nil {
		log.ErrorContext(ctx, "Failed to count offers", slog.Any("error", err))
		return nil, 0, fmt.Errorf("%w: failed to count offers: %w", apperrors.ErrDatabase, err)
	}

	query := offerSelect + w.String() +
		` ORDER BY o.created_at DESC, o.id DESC LIMIT ` + w.arg(filter.Limit) + ` OFFSET ` + w.arg(filter.Offset)

	rows, err := conn(ctx, r.db).Query(ctx, query, w.args...)
	if err != nil {
		log.ErrorContext(ctx, "Failed to query offers", slog.Any("error", err))
		return nil, 0, fmt.Errorf("%w: failed to query offers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	offers := make([]*offer.Offer, 0)
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			log.ErrorContext(ctx, "Failed to scan offer row", slog.Any("error", err))
			return nil, 0, fmt.Errorf("%w: failed to scan offer row: %w", apperrors.ErrDatabase, err)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: error iterating offer rows: %w", apperrors.ErrDatabase, err)
	}
	return offers, total, nil
}

func (r *OfferRepository) UpdateStatus(ctx context.Context, o *offer.Offer, from offer.Status) error {
	log := r.logger.With(slog.Int64("offerID", o.ID), slog.String("from", string(from)), slog.String("to", string(o.Status)))

	query := `
        UPDATE offers
        SET status = $1, sent_at = $2, decided_at = $3, updated_at = NOW()
        WHERE id = $4 AND status = $5 AND deleted_at IS NULL`

	cmdTag, err := conn(ctx, r.db).Exec(ctx, query, string(o.Status), o.SentAt, o.DecidedAt, o.ID, string(from))
	if err != nil {
		log.ErrorContext(ctx, "Failed to update offer status", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update offer status: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		log.WarnContext(ctx, "Status update affected zero rows, offer changed concurrently or was deleted")
		return fmt.Errorf("%w: offer %d is not in status %s", apperrors.ErrConflict, o.ID, from)
	}

	log.InfoContext(ctx, "Offer status updated")
	return nil
}

func (r *OfferRepository) SoftDelete(ctx context.Context, offerID int64) error {
	cmdTag, err := conn(ctx, r.db).Exec(ctx,
		`UPDATE offers SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, offerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to soft-delete offer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete offer: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OfferRepository) FindOverdueIDs(ctx context.Context, now time.Time) ([]int64, error) {
	logCtx := r.logger.With(slog.String("operation", "FindOverdueIDs"))

	query := `
        SELECT id FROM offers
        WHERE status = $1 AND valid_until < $2 AND deleted_at IS NULL
        ORDER BY id`

	rows, err := conn(ctx, r.db).Query(ctx, query, string(offer.StatusSent), now)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to query overdue offer IDs", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query overdue offers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			logCtx.ErrorContext(ctx, "Failed to scan overdue offer ID row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan overdue offer ID: %w", apperrors.ErrDatabase, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating overdue offers: %w", apperrors.ErrDatabase, err)
	}
	logCtx.DebugContext(ctx, "Found overdue offers", slog.Int("count", len(ids)))
	return ids, nil
}

func (r *OfferRepository) CountByStatus(ctx context.Context, customerID *int64) (map[offer.Status]int, error) {
	w := &whereBuilder{}
	w.add("deleted_at IS NULL")
	if customerID != nil {
		w.add("customer_id = ?", *customerID)
	}
	query := `SELECT status, COUNT(*) FROM offers` + w.String() + ` GROUP BY status`

	rows, err := conn(ctx, r.db).Query(ctx, query, w.args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to count offers by status", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to count offers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	counts := make(map[offer.Status]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("%w: failed to scan offer count: %w", apperrors.ErrDatabase, err)
		}
		counts[offer.Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating offer counts: %w", apperrors.ErrDatabase, err)
	}
	return counts, nil
}
