package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"crm-admin/internal/domain/customer"
	"crm-admin/internal/domain/offer"
	"crm-admin/internal/pkg/apperrors"
	"crm-admin/internal/pkg/textnorm"

	"github.com/jackc/pgx/v5"
)

const customerColumns = `id, company_name, trade_name, tax_id, tax_office, profession, email, phone, mobile,
        address, city, postal_code, notes, is_company, created_at, updated_at, deleted_at`

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.Repository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func scanCustomer(row scanner) (*customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(
		&c.ID,
		&c.CompanyName,
		&c.TradeName,
		&c.TaxID,
		&c.TaxOffice,
		&c.Profession,
		&c.Email,
		&c.Phone,
		&c.Mobile,
		&c.Address,
		&c.City,
		&c.PostalCode,
		&c.Notes,
		&c.IsCompany,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) Save(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	if cust.ID == 0 {
		return r.createCustomer(ctx, cust)
	}
	return r.updateCustomer(ctx, cust)
}

func (r *CustomerRepository) createCustomer(ctx context.Context, cust *customer.Customer) error {
	r.logger.InfoContext(ctx, "Attempting to insert new customer")

	query := `
        INSERT INTO customers (company_name, name_key, trade_name, tax_id, tax_office, profession, email, phone, mobile,
            address, city, postal_code, notes, is_company, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := conn(ctx, r.db).QueryRow(ctx, query,
		cust.CompanyName,
		textnorm.Name(cust.CompanyName),
		cust.TradeName,
		cust.TaxID,
		cust.TaxOffice,
		cust.Profession,
		cust.Email,
		cust.Phone,
		cust.Mobile,
		cust.Address,
		cust.City,
		cust.PostalCode,
		cust.Notes,
		cust.IsCompany,
	).Scan(
		&cust.ID,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)
	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to insert customer due to unique constraint violation")
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert customer: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.ID))
	return nil
}

func (r *CustomerRepository) updateCustomer(ctx context.Context, cust *customer.Customer) error {
	log := r.logger.With(slog.Int64("customerID", cust.ID))
	log.InfoContext(ctx, "Attempting to update customer")

	query := `
        UPDATE customers
        SET company_name = $1,
            name_key = $2,
            trade_name = $3,
            tax_id = $4,
            tax_office = $5,
            profession = $6,
            email = $7,
            phone = $8,
            mobile = $9,
            address = $10,
            city = $11,
            postal_code = $12,
            notes = $13,
            is_company = $14,
            updated_at = NOW()
        WHERE id = $15 AND deleted_at IS NULL`

	cmdTag, err := conn(ctx, r.db).Exec(ctx, query,
		cust.CompanyName,
		textnorm.Name(cust.CompanyName),
		cust.TradeName,
		cust.TaxID,
		cust.TaxOffice,
		cust.Profession,
		cust.Email,
		cust.Phone,
		cust.Mobile,
		cust.Address,
		cust.City,
		cust.PostalCode,
		cust.Notes,
		cust.IsCompany,
		cust.ID,
	)
	if err != nil {
		log.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return translateDBError(err, log)
	}

	if cmdTag.RowsAffected() == 0 {
		log.WarnContext(ctx, "Update affected zero rows, customer likely not found")
		return apperrors.ErrNotFound
	}

	log.InfoContext(ctx, "Customer updated successfully")
	return nil
}

func (r *CustomerRepository) findOne(ctx context.Context, customerID int64, includeDeleted bool) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}

	cust, err := scanCustomer(conn(ctx, r.db).QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Customer not found", slog.Int64("customerID", customerID))
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan customer by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get customer by ID: %w", apperrors.ErrDatabase, err)
	}
	return cust, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	return r.findOne(ctx, customerID, false)
}

func (r *CustomerRepository) FindByIDIncludingDeleted(ctx context.Context, customerID int64) (*customer.Customer, error) {
	return r.findOne(ctx, customerID, true)
}

func customerListWhere(filter customer.ListFilter) *whereBuilder {
	w := &whereBuilder{}
	if !filter.IncludeDeleted {
		w.add("deleted_at IS NULL")
	}
	if filter.Search != "" {
		raw := likePattern(filter.Search)
		key := likePattern(textnorm.Name(filter.Search))
		digits := textnorm.Digits(filter.Search)
		cond := "(company_name ILIKE ? OR trade_name ILIKE ? OR email ILIKE ? OR name_key LIKE ?"
		args := []any{raw, raw, raw, key}
		if digits != "" {
			cond += " OR tax_id LIKE ? OR phone LIKE ? OR mobile LIKE ?"
			digitPattern := likePattern(digits)
			args = append(args, digitPattern, digitPattern, digitPattern)
		}
		w.add(cond+")", args...)
	}
	return w
}

func (r *CustomerRepository) List(ctx context.Context, filter customer.ListFilter) ([]*customer.Customer, int, error) {
	log := r.logger.With(slog.String("operation", "List"))
	log.DebugContext(ctx, "Attempting to list customers")

	w := customerListWhere(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM customers` + w.String()
	if err := conn(ctx, r.db).QueryRow(ctx, countQuery, w.args...).Scan(&total); err != nil {
		log.ErrorContext(ctx, "Failed to count customers", slog.Any("error", err))
		return nil, 0, fmt.Errorf("%w: failed to count customers: %w", apperrors.ErrDatabase, err)
	}

	query := `SELECT ` + customerColumns + ` FROM customers` + w.String() +
		` ORDER BY company_name ASC, id ASC LIMIT ` + w.arg(filter.Limit) + ` OFFSET ` + w.arg(filter.Offset)

	rows, err := conn(ctx, r.db).Query(ctx, query, w.args...)
	if err != nil {
		log.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, 0, fmt.Errorf("%w: failed to query customers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		cust, err := scanCustomer(rows)
		if err != nil {
			log.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, 0, fmt.Errorf("%w: failed to scan customer row: %w", apperrors.ErrDatabase, err)
		}
		customers = append(customers, cust)
	}
	if err = rows.Err(); err != nil {
		log.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, 0, fmt.Errorf("%w: error iterating customer rows: %w", apperrors.ErrDatabase, err)
	}

	log.DebugContext(ctx, "Finished listing customers", slog.Int("count", len(customers)), slog.Int("total", total))
	return customers, total, nil
}

func (r *CustomerRepository) SoftDelete(ctx context.Context, customerID int64) error {
	log := r.logger.With(slog.Int64("customerID", customerID))
	log.InfoContext(ctx, "Attempting to soft-delete customer")
	q := conn(ctx, r.db)

	cmdTag, err := q.Exec(ctx, `UPDATE customers SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, customerID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to execute soft-delete customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete customer: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		log.WarnContext(ctx, "Soft-delete affected zero rows, customer likely not found")
		return apperrors.ErrNotFound
	}

	contactsTag, err := q.Exec(ctx, `
        UPDATE contacts
        SET deleted_at = c.deleted_at, updated_at = NOW()
        FROM customers c
        WHERE contacts.customer_id = c.id AND c.id = $1 AND contacts.deleted_at IS NULL`, customerID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to soft-delete contacts of customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete contacts: %w", apperrors.ErrDatabase, err)
	}

	log.InfoContext(ctx, "Customer soft-deleted successfully", slog.Int64("contacts", contactsTag.RowsAffected()))
	return nil
}

// Restore undeletes the customer together with the contacts that were deleted with it.
func (r *CustomerRepository) Restore(ctx context.Context, customerID int64) error {
	log := r.logger.With(slog.Int64("customerID", customerID))
	log.InfoContext(ctx, "Attempting to restore customer")
	q := conn(ctx, r.db)

	_, err := q.Exec(ctx, `
        UPDATE contacts
        SET deleted_at = NULL, updated_at = NOW()
        FROM customers c
        WHERE contacts.customer_id = c.id AND c.id = $1 AND contacts.deleted_at = c.deleted_at`, customerID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to restore contacts of customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to restore contacts: %w", apperrors.ErrDatabase, err)
	}

	cmdTag, err := q.Exec(ctx, `UPDATE customers SET deleted_at = NULL, updated_at = NOW() WHERE id = $1 AND deleted_at IS NOT NULL`, customerID)
	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if !errors.Is(translatedErr, apperrors.ErrDatabase) {
			log.WarnContext(ctx, "Restore rejected by a constraint", slog.Any("error", err))
			return translatedErr
		}
		log.ErrorContext(ctx, "Failed to restore customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to restore customer: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		log.WarnContext(ctx, "Restore affected zero rows, no deleted customer with this ID")
		return apperrors.ErrNotFound
	}

	log.InfoContext(ctx, "Customer restored successfully")
	return nil
}

func (r *CustomerRepository) FindDuplicateCandidates(ctx context.Context, excludeID int64) ([]customer.DuplicateCandidate, error) {
	query := `
        SELECT id, company_name, phone, mobile, tax_id
        FROM customers
        WHERE deleted_at IS NULL AND id <> $1
        ORDER BY id`

	rows, err := conn(ctx, r.db).Query(ctx, query, excludeID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query duplicate candidates", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query duplicate candidates: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	candidates := make([]customer.DuplicateCandidate, 0)
	for rows.Next() {
		var c customer.DuplicateCandidate
		if err := rows.Scan(&c.ID, &c.CompanyName, &c.Phone, &c.Mobile, &c.TaxID); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan duplicate candidate row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan duplicate candidate: %w", apperrors.ErrDatabase, err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating duplicate candidates: %w", apperrors.ErrDatabase, err)
	}
	return candidates, nil
}

func (r *CustomerRepository) Stats(ctx context.Context) (*customer.Stats, error) {
	query := `
        SELECT
            COUNT(*) FILTER (WHERE deleted_at IS NULL),
            COUNT(*) FILTER (WHERE deleted_at IS NOT NULL),
            COUNT(*) FILTER (WHERE deleted_at IS NULL AND is_company),
            COUNT(*) FILTER (WHERE deleted_at IS NULL AND NOT is_company),
            (SELECT COUNT(*) FROM contacts WHERE deleted_at IS NULL),
            (SELECT COUNT(*) FROM form_links WHERE status = 'pending' AND expires_at > NOW())
        FROM customers`

	var s customer.Stats
	err := conn(ctx, r.db).QueryRow(ctx, query).Scan(
		&s.ActiveCustomers,
		&s.DeletedCustomers,
		&s.Companies,
		&s.Individuals,
		&s.ActiveContacts,
		&s.PendingFormLinks,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to compute customer stats", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to compute customer stats: %w", apperrors.ErrDatabase, err)
	}

	s.OffersByStatus, err = r.offerStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CustomerRepository) offerStatusCounts(ctx context.Context) (map[string]int, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `
        SELECT o.status, COUNT(*)
        FROM offers o
        JOIN customers c ON c.id = o.customer_id AND c.deleted_at IS NULL
        WHERE o.deleted_at IS NULL
        GROUP BY o.status`)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to count offers for stats", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to count offers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	counts := make(map[string]int, len(offer.AllStatuses))
	for _, st := range offer.AllStatuses {
		counts[string(st)] = 0
	}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("%w: failed to scan offer count: %w", apperrors.ErrDatabase, err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating offer counts: %w", apperrors.ErrDatabase, err)
	}
	return counts, nil
}
