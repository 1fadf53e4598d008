package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/optionfolio/trading-backend/internal/domain"
	"github.com/optionfolio/trading-backend/internal/usecase/income"
)

// PurchaseInput represents the input for purchasing an option contract
type PurchaseInput struct {
	OptionAbbr string
	Type       domain.TransactionType
	Direction  domain.TransactionDirection
	Quantity   int
	UserID     string
}

// LedgerService orchestrates transaction record keeping: purchases
// with balance debits, CRUD over records, term queries and income
// aggregation. It holds no state between calls; every read goes to
// the repositories.
type LedgerService struct {
	TransactionRepo domain.TransactionRepository
	OptionRepo      domain.OptionRepository
	UserRepo        domain.UserRepository
}

// NewLedgerService creates a new LedgerService instance
func NewLedgerService(
	transactionRepo domain.TransactionRepository,
	optionRepo domain.OptionRepository,
	userRepo domain.UserRepository,
) *LedgerService {
	return &LedgerService{
		TransactionRepo: transactionRepo,
		OptionRepo:      optionRepo,
		UserRepo:        userRepo,
	}
}

// PurchaseOption buys quantity contracts of an option at its most
// recent quoted price, on behalf of a user.
// Logic:
//  1. Fetch the user and the option's latest quote
//  2. Cost = latest price * quantity; balance < cost fails with
//     ErrInsufficientFunds
//  3. Debit the balance and insert the stamped transaction in one
//     store transaction; either both writes land or neither does
//
// The returned transaction carries the store-assigned ID.
func (s *LedgerService) PurchaseOption(ctx context.Context, input PurchaseInput) (*domain.Transaction, error) {
	if input.Quantity <= 0 {
		return nil, errors.New("purchase quantity must be positive")
	}

	user, err := s.UserRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	quote, err := s.OptionRepo.GetLatestQuote(ctx, input.OptionAbbr)
	if err != nil {
		return nil, err
	}

	cost := quote.LatestPrice.Mul(decimal.NewFromInt(int64(input.Quantity)))
	if user.UserInfo.Balance.LessThan(cost) {
		return nil, domain.ErrInsufficientFunds
	}

	t := &domain.Transaction{
		Time:       time.Now(),
		UserID:     input.UserID,
		OptionAbbr: input.OptionAbbr,
		Type:       input.Type,
		Direction:  input.Direction,
		Quantity:   input.Quantity,
		Price:      quote.LatestPrice,
		Fee:        decimal.Zero,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	// The debit re-checks the balance inside the store transaction, so
	// two concurrent purchases cannot both spend the same funds.
	id, err := s.TransactionRepo.CreateWithDebit(ctx, t, cost)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, errors.New("store did not assign a transaction id")
	}

	t.ID = id
	return t, nil
}

// AddTransaction persists a caller-supplied record as-is. This is the
// administrative entry path: it bypasses the balance check and does
// not touch the user's funds.
func (s *LedgerService) AddTransaction(ctx context.Context, t *domain.Transaction) error {
	id, err := s.TransactionRepo.Create(ctx, t)
	if err != nil {
		return err
	}

	t.ID = id
	return nil
}

// DeleteTransaction removes a single record, matched by the supplied
// record's ID. Returns ErrNotFound if the record does not exist.
func (s *LedgerService) DeleteTransaction(ctx context.Context, t *domain.Transaction) error {
	return s.TransactionRepo.Delete(ctx, t.ID)
}

// DeleteTransactionInBatch deletes each ID independently. Every ID is
// attempted even after a failure; the first error encountered is
// returned once the loop completes. Deletions that already happened
// are not rolled back, so a failed batch can still have removed
// records.
func (s *LedgerService) DeleteTransactionInBatch(ctx context.Context, ids []int64) error {
	var firstErr error

	for _, id := range ids {
		if err := s.TransactionRepo.Delete(ctx, id); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// ModifyTransaction replaces the stored record with the supplied one,
// matched by ID. Upsert semantics at the storage boundary; applying
// the same record twice leaves the same stored state as applying it
// once.
func (s *LedgerService) ModifyTransaction(ctx context.Context, t *domain.Transaction) error {
	return s.TransactionRepo.Update(ctx, t)
}

// FindTransactionByID retrieves one record by ID. Returns ErrNotFound
// when the ID does not exist.
func (s *LedgerService) FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	return s.TransactionRepo.GetByID(ctx, id)
}

// FindAllTransactions returns every record in store order.
func (s *LedgerService) FindAllTransactions(ctx context.Context) ([]*domain.Transaction, error) {
	return s.TransactionRepo.List(ctx)
}

// FindTransactionsByUser returns one user's records, newest first.
func (s *LedgerService) FindTransactionsByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	return s.TransactionRepo.ListByUser(ctx, userID)
}

// FindTransactionsByTerm composes the given terms into a single query
// and runs it against the store. A malformed term fails the whole
// query; no partial result is returned.
func (s *LedgerService) FindTransactionsByTerm(ctx context.Context, terms []domain.SearchTerm) ([]*domain.Transaction, error) {
	q, err := domain.BuildQuery(terms)
	if err != nil {
		return nil, err
	}

	return s.TransactionRepo.Search(ctx, q)
}

// CalcIncome reduces all of a user's transactions into their signed
// cash income. A user with no transactions has zero income.
func (s *LedgerService) CalcIncome(ctx context.Context, userID string) (decimal.Decimal, error) {
	transactions, err := s.TransactionRepo.ListByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	return income.Calculate(transactions), nil
}

// CalcIncomeYesterday is CalcIncome restricted to yesterday's
// reporting window (00:00:00 inclusive to 23:59:00 exclusive).
func (s *LedgerService) CalcIncomeYesterday(ctx context.Context, userID string) (decimal.Decimal, error) {
	start, end := income.YesterdayRange(time.Now())

	transactions, err := s.TransactionRepo.ListByUserInPeriod(ctx, userID, start, end)
	if err != nil {
		return decimal.Zero, err
	}

	return income.Calculate(transactions), nil
}
