package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/optionfolio/trading-backend/internal/domain"
)

const transactionColumns = "id, time, user_id, option_abbr, transaction_type, direction, quantity, price, fee"

// Ordering expression for the profit sort field: the signed cash
// effect of each row, computed in the store so the sort never needs a
// materialized list.
const profitExpr = "(CASE WHEN direction = 'SELL' THEN quantity * price ELSE -(quantity * price) END - fee)"

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create inserts a new transaction and returns the assigned ID
func (r *transactionRepository) Create(ctx context.Context, t *domain.Transaction) (int64, error) {
	query := `
		INSERT INTO transactions (time, user_id, option_abbr, transaction_type, direction, quantity, price, fee)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		t.Time,
		t.UserID,
		t.OptionAbbr,
		string(t.Type),
		string(t.Direction),
		t.Quantity,
		t.Price.String(),
		t.Fee.String(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}

	return id, nil
}

// CreateWithDebit debits the user's balance and inserts the
// transaction inside one database transaction. The debit only applies
// when the balance still covers the cost, so concurrent purchases for
// the same user cannot both spend the same funds.
func (r *transactionRepository) CreateWithDebit(ctx context.Context, t *domain.Transaction, cost decimal.Decimal) (int64, error) {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	debitQuery := `
		UPDATE users
		SET balance = balance - $2
		WHERE id = $1 AND balance >= $2
	`

	res, err := dbTx.ExecContext(ctx, debitQuery, t.UserID, cost.String())
	if err != nil {
		return 0, fmt.Errorf("failed to debit balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read debit result: %w", err)
	}
	if affected == 0 {
		return 0, domain.ErrInsufficientFunds
	}

	insertQuery := `
		INSERT INTO transactions (time, user_id, option_abbr, transaction_type, direction, quantity, price, fee)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err = dbTx.QueryRowContext(ctx, insertQuery,
		t.Time,
		t.UserID,
		t.OptionAbbr,
		string(t.Type),
		string(t.Direction),
		t.Quantity,
		t.Price.String(),
		t.Fee.String(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

// Update replaces the stored record with the given one, creating it
// if the ID is not present (upsert)
func (r *transactionRepository) Update(ctx context.Context, t *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, time, user_id, option_abbr, transaction_type, direction, quantity, price, fee)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			time = EXCLUDED.time,
			user_id = EXCLUDED.user_id,
			option_abbr = EXCLUDED.option_abbr,
			transaction_type = EXCLUDED.transaction_type,
			direction = EXCLUDED.direction,
			quantity = EXCLUDED.quantity,
			price = EXCLUDED.price,
			fee = EXCLUDED.fee
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Time,
		t.UserID,
		t.OptionAbbr,
		string(t.Type),
		string(t.Direction),
		t.Quantity,
		t.Price.String(),
		t.Fee.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	return nil
}

// Delete removes the transaction with the given ID
func (r *transactionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// GetByID retrieves a transaction by its ID
func (r *transactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE id = $1`, transactionColumns)

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get transaction by ID: %w", err)
	}

	return t, nil
}

// List retrieves every transaction in insertion order
func (r *transactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions ORDER BY id`, transactionColumns)

	return r.queryTransactions(ctx, query)
}

// ListByUser retrieves one user's transactions, newest first
func (r *transactionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM transactions
		WHERE user_id = $1
		ORDER BY time DESC
	`, transactionColumns)

	return r.queryTransactions(ctx, query, userID)
}

// ListByUserInPeriod retrieves one user's transactions with
// start <= time < end, newest first
func (r *transactionRepository) ListByUserInPeriod(ctx context.Context, userID string, start, end time.Time) ([]*domain.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM transactions
		WHERE user_id = $1 AND time >= $2 AND time < $3
		ORDER BY time DESC
	`, transactionColumns)

	return r.queryTransactions(ctx, query, userID, start, end)
}

// Search translates a composed term query into SQL, pushing both the
// predicates and the ordering into the store
func (r *transactionRepository) Search(ctx context.Context, q *domain.TransactionQuery) ([]*domain.Transaction, error) {
	var (
		where []string
		args  []interface{}
	)

	if q.Period != nil {
		where = append(where, fmt.Sprintf("time >= $%d AND time < $%d", len(args)+1, len(args)+2))
		args = append(args, q.Period.Start, q.Period.End)
	}

	if len(q.Portfolio) > 0 {
		where = append(where, fmt.Sprintf("option_abbr = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(q.Portfolio))
	}

	var orderBy []string
	for _, key := range q.Sort {
		expr, err := sortExpression(key.Field)
		if err != nil {
			return nil, err
		}
		if key.Descending {
			expr += " DESC"
		}
		orderBy = append(orderBy, expr)
	}

	query := fmt.Sprintf("SELECT %s FROM transactions", transactionColumns)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if len(orderBy) > 0 {
		query += " ORDER BY " + strings.Join(orderBy, ", ")
	}

	return r.queryTransactions(ctx, query, args...)
}

func sortExpression(field domain.SortField) (string, error) {
	switch field {
	case domain.SortFieldTime:
		return "time", nil
	case domain.SortFieldProfit:
		return profitExpr, nil
	default:
		return "", fmt.Errorf("%w: unknown sort field %q", domain.ErrInvalidTerm, field)
	}
}

func (r *transactionRepository) queryTransactions(ctx context.Context, query string, args ...interface{}) ([]*domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		t                 domain.Transaction
		priceStr, feeStr  string
		typeStr, direcStr string
	)

	err := row.Scan(
		&t.ID,
		&t.Time,
		&t.UserID,
		&t.OptionAbbr,
		&typeStr,
		&direcStr,
		&t.Quantity,
		&priceStr,
		&feeStr,
	)
	if err != nil {
		return nil, err
	}

	t.Type = domain.TransactionType(typeStr)
	t.Direction = domain.TransactionDirection(direcStr)

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price: %w", err)
	}
	t.Price = price

	fee, err := decimal.NewFromString(feeStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fee: %w", err)
	}
	t.Fee = fee

	return &t, nil
}
