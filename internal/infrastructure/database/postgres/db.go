package postgres

import (
	"context"
	"crm-admin/internal/domain/customer"
	"crm-admin/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

var errMsgFormat = "%w: %w"

// querier is satisfied by both the pool and an open pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type scanner interface {
	Scan(dest ...any) error
}

type txKey struct{}

func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFrom(ctx context.Context) pgx.Tx {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return nil
}

// conn returns the transaction carried by ctx, or the pool when there is none.
func conn(ctx context.Context, db DBPool) querier {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return db
}

type Transactor struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.Transactor = (*Transactor)(nil)

func NewTransactor(db DBPool, logger *slog.Logger) *Transactor {
	if db == nil {
		panic("DBPool cannot be nil for Transactor")
	}
	return &Transactor{db: db, logger: logger.With("component", "Transactor")}
}

// WithinTransaction runs fn in a transaction stored in the context handed to fn.
// Calls made while a transaction is already open join it.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}

	tx, err := t.db.Begin(ctx)
	if err != nil {
		t.logger.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%w: failed to begin transaction: %w", apperrors.ErrDatabase, err)
	}

	defer func() {
		if p := recover(); p != nil {
			t.rollback(ctx, tx)
			panic(p)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		t.rollback(ctx, tx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		t.logger.ErrorContext(ctx, "Failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf("%w: failed to commit transaction: %w", apperrors.ErrDatabase, err)
	}
	return nil
}

func (t *Transactor) rollback(ctx context.Context, tx pgx.Tx) {
	err := tx.Rollback(context.WithoutCancel(ctx))
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		t.logger.ErrorContext(ctx, "Failed to rollback transaction", slog.Any("error", err))
		return
	}
	t.logger.DebugContext(ctx, "Transaction rolled back")
}

func translateDBError(err error, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			contextLogger.Warn("Database unique constraint violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, pgErr.ConstraintName)
		case "23503":
			contextLogger.Warn("Database foreign key violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrInvalidArgument, pgErr.ConstraintName)
		}

		contextLogger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
		return fmt.Errorf("%w: db error code %s", apperrors.ErrDatabase, pgErr.Code)
	}

	contextLogger.Error("Generic database error", "error", err)
	return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
}

// likePattern wraps s for a substring LIKE match, escaping the LIKE metacharacters.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// whereBuilder collects AND-ed conditions with positional arguments.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

func (w *whereBuilder) arg(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}
