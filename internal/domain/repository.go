package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRepository defines the interface for transaction persistence operations
type TransactionRepository interface {
	// Create inserts a new transaction and returns its store-assigned ID.
	// A zero ID is never returned on success.
	Create(ctx context.Context, t *Transaction) (int64, error)

	// CreateWithDebit atomically debits cost from the owning user's
	// balance and inserts the transaction. The debit is conditional on
	// the balance covering the cost at commit time; if it does not,
	// ErrInsufficientFunds is returned and nothing is written.
	CreateWithDebit(ctx context.Context, t *Transaction, cost decimal.Decimal) (int64, error)

	// Update replaces the stored record with the given one, matched by
	// ID. Upsert semantics: a missing record is created.
	Update(ctx context.Context, t *Transaction) error

	// Delete removes the transaction with the given ID.
	// Returns ErrNotFound if no such record exists.
	Delete(ctx context.Context, id int64) error

	// GetByID retrieves a transaction by its ID.
	// Returns ErrNotFound if no such record exists.
	GetByID(ctx context.Context, id int64) (*Transaction, error)

	// List retrieves every transaction in store order.
	List(ctx context.Context) ([]*Transaction, error)

	// ListByUser retrieves one user's transactions, newest first.
	ListByUser(ctx context.Context, userID string) ([]*Transaction, error)

	// ListByUserInPeriod retrieves one user's transactions with
	// start <= time < end, newest first.
	ListByUserInPeriod(ctx context.Context, userID string, start, end time.Time) ([]*Transaction, error)

	// Search runs a composed term query against the store, pushing
	// ordering and filtering into the query itself.
	Search(ctx context.Context, q *TransactionQuery) ([]*Transaction, error)
}

// OptionRepository defines the interface for option quote persistence operations
type OptionRepository interface {
	// GetLatestQuote retrieves the most recent quote for an
	// abbreviation. Returns ErrNotFound if the contract has no quotes.
	GetLatestQuote(ctx context.Context, optionAbbr string) (*Option, error)

	// AddQuote appends a quote to the contract's price history.
	AddQuote(ctx context.Context, o *Option) error
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	// GetByID retrieves a user by ID.
	// Returns ErrNotFound if no such user exists.
	GetByID(ctx context.Context, id string) (*User, error)

	// Create creates a new user.
	Create(ctx context.Context, u *User) error
}
