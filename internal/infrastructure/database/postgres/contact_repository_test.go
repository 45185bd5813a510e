package postgres

import (
	"context"
	"crm-admin/internal/domain/contact"
	"crm-admin/internal/pkg/apperrors"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contactRowColumns = []string{
	"id", "customer_id", "first_name", "last_name", "email", "phone", "mobile", "position", "notes", "is_primary",
	"created_at", "updated_at", "deleted_at",
}

func testContact() *contact.Contact {
	at := time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)
	return &contact.Contact{
		ID:         5,
		CustomerID: 1,
		Details: contact.Details{
			FirstName: "Μαρία",
			LastName:  "Παπαδοπούλου",
			Email:     "maria@alfa.gr",
			Mobile:    "6971234567",
			Position:  "Λογίστρια",
			IsPrimary: true,
		},
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func contactRow(rows *pgxmock.Rows, c *contact.Contact) *pgxmock.Rows {
	return rows.AddRow(c.ID, c.CustomerID, c.FirstName, c.LastName, c.Email, c.Phone, c.Mobile, c.Position, c.Notes,
		c.IsPrimary, c.CreatedAt, c.UpdatedAt, c.DeletedAt)
}

func setupContactRepo(t *testing.T) (context.Context, *ContactRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool := newMockPool(t)
	return context.Background(), NewContactRepository(mockPool, logger), mockPool
}

func TestCreateContact(t *testing.T) {
	ctx, repo, mockPool := setupContactRepo(t)
	c := testContact()
	c.ID = 0
	created := time.Date(2026, 2, 2, 9, 30, 0, 0, time.UTC)

	mockPool.ExpectQuery(regexp.QuoteMeta(`INSERT INTO contacts (customer_id, first_name`)).
		WithArgs(c.CustomerID, c.FirstName, c.LastName, c.Email, c.Phone, c.Mobile, c.Position, c.Notes, c.IsPrimary).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), created, created))

	require.NoError(t, repo.Create(ctx, c))
	assert.Equal(t, int64(11), c.ID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCreateContactSecondPrimaryRejected(t *testing.T) {
	ctx, repo, mockPool := setupContactRepo(t)
	c := testContact()
	c.ID = 0

	mockPool.ExpectQuery(regexp.QuoteMeta(`INSERT INTO contacts`)).
		WithArgs(c.CustomerID, c.FirstName, c.LastName, c.Email, c.Phone, c.Mobile, c.Position, c.Notes, c.IsPrimary).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "contacts_one_primary_per_customer"})

	assert.ErrorIs(t, repo.Create(ctx, c), apperrors.ErrAlreadyExists)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCreateContactUnknownCustomer(t *testing.T) {
	ctx, repo, mockPool := setupContactRepo(t)
	c := testContact()
	c.ID = 0

	mockPool.ExpectQuery(regexp.QuoteMeta(`INSERT INTO contacts`)).
		WithArgs(c.CustomerID, c.FirstName, c.LastName, c.Email, c.Phone, c.Mobile, c.Position, c.Notes, c.IsPrimary).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "contacts_customer_id_fkey"})

	assert.ErrorIs(t, repo.Create(ctx, c), apperrors.ErrInvalidArgument)
}

func TestUpdateContact(t *testing.T) {
	ctx, repo, mockPool := setupContactRepo(t)
	c := testContact()

	mockPool.ExpectExec(regexp.QuoteMeta(`UPDATE contacts
        SET first_name = $1,`)).
		WithArgs(c.FirstName, c.LastName, c.Email, c.Phone, c.Mobile, c.Position, c.Notes, c.IsPrimary, c.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.Update(ctx, c))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestUpdateMissingContact(t *testing.T) {
	ctx, repo, mockPool := setupContactRepo(t)
	c := testContact()

	mockPool.ExpectExec(regexp.QuoteMeta(`UPDATE contacts`)).
		WithArgs(c.FirstName, c.LastName, c.Email, c.Phone, c.Mobile, c.Position, c.Notes, c.IsPrimary, c.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.ErrorIs(t, repo.Update(ctx, c), apperrors.ErrNotFound)
}

func TestFindContactByID(t *testing.T) {
	ctx, repo, mockPool := setupContactRepo(t)
	c := testContact()

	mockPool.ExpectQuery(regexp.QuoteMeta(`FROM contacts WHERE id = $1 AND deleted_at IS NULL`)).
		WithArgs(c.ID).
		WillReturnRows(contactRow(pgxmock.NewRows(contactRowColumns), c))

	result, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, result)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindContactByIDNotFound(t *testing.T) {
	ctx, repo, mockPool := setupContactRepo(t)

	mockPool.ExpectQuery(regexp.QuoteMeta(`FROM contacts WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListContactsByCustomerPrimaryFirst(t *testing.T) {
	ctx, repo, mockPool := setupContactRepo(t)
	primary := testContact()
	other := testContact()
	other.ID = 6
	other.FirstName = "Γιώργος"
	other.IsPrimary = false

	mockPool.ExpectQuery(regexp.QuoteMeta(`ORDER BY is_primary DESC, created_at ASC, id ASC`)).
		WithArgs(int64(1)).
		WillReturnRows(contactRow(contactRow(pgxmock.NewRows(contactRowColumns), primary), other))

	contacts, err := repo.ListByCustomer(ctx, 1)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.True(t, contacts[0].IsPrimary)
	assert.Equal(t, "Γιώργος", contacts[1].FirstName)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestListContactsQueryFailure(t *testing.T) {
	ctx, repo, mockPool := setupContactRepo(t)

	mockPool.ExpectQuery(regexp.QuoteMeta(`FROM contacts`)).
		WithArgs(int64(1)).
		WillReturnError(errors.New("timeout"))

	_, err := repo.ListByCustomer(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrDatabase)
}

func TestCountContactsByCustomer(t *testing.T) {
	ctx, repo, mockPool := setupContactRepo(t)

	mockPool.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM contacts WHERE customer_id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountByCustomer(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSoftDeleteContact(t *testing.T) {
	ctx, repo, mockPool := setupContactRepo(t)

	mockPool.ExpectExec(regexp.QuoteMeta(`UPDATE contacts SET deleted_at = NOW(), is_primary = FALSE`)).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectExec(regexp.QuoteMeta(`UPDATE contacts SET deleted_at = NOW()`)).
		WithArgs(int64(6)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.NoError(t, repo.SoftDelete(ctx, 5))
	assert.ErrorIs(t, repo.SoftDelete(ctx, 6), apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestClearPrimaryAndPromoteOldest(t *testing.T) {
	ctx, repo, mockPool := setupContactRepo(t)

	mockPool.ExpectExec(regexp.QuoteMeta(`SET is_primary = FALSE, updated_at = NOW() WHERE customer_id = $1 AND is_primary`)).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectExec(regexp.QuoteMeta(`ORDER BY created_at ASC, id ASC
            LIMIT 1`)).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.ClearPrimary(ctx, 1))
	assert.NoError(t, repo.PromoteOldest(ctx, 1))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
