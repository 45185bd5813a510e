package postgres

import (
	"context"
	"crm-admin/internal/domain/formlink"
	"crm-admin/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

const formLinkColumns = `id, token, customer_id, recipient_email, recipient_name, status, expires_at, submitted_at,
        created_by, created_at, updated_at`

type FormLinkRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ formlink.Repository = (*FormLinkRepository)(nil)

func NewFormLinkRepository(db DBPool, logger *slog.Logger) *FormLinkRepository {
	if db == nil {
		panic("DBPool cannot be nil for FormLinkRepository")
	}
	return &FormLinkRepository{db: db, logger: logger.With("component", "FormLinkRepository")}
}

func scanFormLink(row scanner) (*formlink.FormLink, error) {
	var (
		l      formlink.FormLink
		status string
	)
	err := row.Scan(
		&l.ID,
		&l.Token,
		&l.CustomerID,
		&l.RecipientEmail,
		&l.RecipientName,
		&status,
		&l.ExpiresAt,
		&l.SubmittedAt,
		&l.CreatedBy,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Status = formlink.Status(status)
	return &l, nil
}

func (r *FormLinkRepository) Create(ctx context.Context, link *formlink.FormLink) error {
	if link == nil {
		return fmt.Errorf("%w: form link cannot be nil", apperrors.ErrInvalidArgument)
	}

	query := `
        INSERT INTO form_links (token, customer_id, recipient_email, recipient_name, status, expires_at, created_by, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := conn(ctx, r.db).QueryRow(ctx, query,
		link.Token,
		link.CustomerID,
		link.RecipientEmail,
		link.RecipientName,
		string(link.Status),
		link.ExpiresAt,
		link.CreatedBy,
	).Scan(&link.ID, &link.CreatedAt, &link.UpdatedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert form link", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}

	r.logger.InfoContext(ctx, "Form link inserted successfully", slog.Int64("linkID", link.ID))
	return nil
}

func (r *FormLinkRepository) findOne(ctx context.Context, where string, arg any) (*formlink.FormLink, error) {
	query := `SELECT ` + formLinkColumns + ` FROM form_links WHERE ` + where

	link, err := scanFormLink(conn(ctx, r.db).QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan form link", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get form link: %w", apperrors.ErrDatabase, err)
	}
	return link, nil
}

func (r *FormLinkRepository) FindByID(ctx context.Context, linkID int64) (*formlink.FormLink, error) {
	return r.findOne(ctx, `id = $1`, linkID)
}

func (r *FormLinkRepository) FindByToken(ctx context.Context, token string) (*formlink.FormLink, error) {
	return r.findOne(ctx, `token = $1`, token)
}

func (r *FormLinkRepository) FindByTokenForUpdate(ctx context.Context, token string) (*formlink.FormLink, error) {
	if txFrom(ctx) == nil {
		r.logger.WarnContext(ctx, "FindByTokenForUpdate called outside a transaction, row lock is released immediately")
	}
	return r.findOne(ctx, `token = $1 FOR UPDATE`, token)
}

func (r *FormLinkRepository) List(ctx context.Context, filter formlink.ListFilter) ([]*formlink.FormLink, int, error) {
	w := &whereBuilder{}
	if filter.Status != nil {
		w.add("status = ?", string(*filter.Status))
	}
	if filter.CustomerID != nil {
		w.add("customer_id = ?", *filter.CustomerID)
	}

	var total int
	if err := conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM form_links`+w.String(), w.args...).Scan(&total); err != nil {
		r.logger.ErrorContext(ctx, "Failed to count form links", slog.Any("error", err))
		return nil, 0, fmt.Errorf("%w: failed to count form links: %w", apperrors.ErrDatabase, err)
	}

	query := `SELECT ` + formLinkColumns + ` FROM form_links` + w.String() +
		` ORDER BY created_at DESC, id DESC LIMIT ` + w.arg(filter.Limit) + ` OFFSET ` + w.arg(filter.Offset)

	rows, err := conn(ctx, r.db).Query(ctx, query, w.args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query form links", slog.Any("error", err))
		return nil, 0, fmt.Errorf("%w: failed to query form links: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	links := make([]*formlink.FormLink, 0)
	for rows.Next() {
		link, err := scanFormLink(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: failed to scan form link row: %w", apperrors.ErrDatabase, err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: error iterating form link rows: %w", apperrors.ErrDatabase, err)
	}
	return links, total, nil
}

func (r *FormLinkRepository) MarkSubmitted(ctx context.Context, linkID, customerID int64, at time.Time) error {
	query := `
        UPDATE form_links
        SET status = $1, submitted_at = $2, customer_id = $3, updated_at = NOW()
        WHERE id = $4 AND status = $5`

	cmdTag, err := conn(ctx, r.db).Exec(ctx, query,
		string(formlink.StatusSubmitted), at, customerID, linkID, string(formlink.StatusPending))
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to mark form link submitted", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: form link %d is no longer pending", apperrors.ErrConflict, linkID)
	}
	return nil
}

func (r *FormLinkRepository) UpdateStatus(ctx context.Context, linkID int64, status formlink.Status) error {
	cmdTag, err := conn(ctx, r.db).Exec(ctx,
		`UPDATE form_links SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		string(status), linkID, string(formlink.StatusPending))
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update form link status", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update form link status: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: form link %d is no longer pending", apperrors.ErrConflict, linkID)
	}
	return nil
}

func (r *FormLinkRepository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	cmdTag, err := conn(ctx, r.db).Exec(ctx,
		`UPDATE form_links SET status = $1, updated_at = NOW() WHERE status = $2 AND expires_at <= $3`,
		string(formlink.StatusExpired), string(formlink.StatusPending), now)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to expire pending form links", slog.Any("error", err))
		return 0, fmt.Errorf("%w: failed to expire form links: %w", apperrors.ErrDatabase, err)
	}
	return cmdTag.RowsAffected(), nil
}
