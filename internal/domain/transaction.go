package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes opening a position from closing one.
// It is recorded as-is and does not affect income math.
type TransactionType string

const (
	TransactionTypeOpen  TransactionType = "OPEN"
	TransactionTypeClose TransactionType = "CLOSE"
)

// TransactionDirection is the cash direction of a trade.
type TransactionDirection string

const (
	DirectionBuy  TransactionDirection = "BUY"
	DirectionSell TransactionDirection = "SELL"
)

// Transaction represents one recorded option trade in the ledger.
// ID is assigned by the store on insert; a zero ID means the record
// was never persisted.
type Transaction struct {
	ID         int64
	Time       time.Time
	UserID     string
	OptionAbbr string
	Type       TransactionType
	Direction  TransactionDirection
	Quantity   int
	Price      decimal.Decimal
	Fee        decimal.Decimal
}

// Validate ensures the transaction adheres to domain rules.
// Returns an error if validation fails.
func (t *Transaction) Validate() error {
	if t.UserID == "" {
		return errors.New("transaction must reference a user")
	}

	if t.OptionAbbr == "" {
		return errors.New("transaction must reference an option contract")
	}

	if t.Type != TransactionTypeOpen && t.Type != TransactionTypeClose {
		return errors.New("transaction type must be OPEN or CLOSE")
	}

	if t.Direction != DirectionBuy && t.Direction != DirectionSell {
		return errors.New("transaction direction must be BUY or SELL")
	}

	if t.Quantity <= 0 {
		return errors.New("transaction quantity must be positive")
	}

	if t.Price.IsNegative() {
		return errors.New("transaction price cannot be negative")
	}

	if t.Fee.IsNegative() {
		return errors.New("transaction fee cannot be negative")
	}

	return nil
}

// CashEffect returns the signed cash flow of the transaction:
// quantity x price, positive for SELL and negative for BUY, minus the
// fee in either direction. Income over a period is the sum of cash
// effects of its transactions.
func (t *Transaction) CashEffect() decimal.Decimal {
	amount := t.Price.Mul(decimal.NewFromInt(int64(t.Quantity)))

	if t.Direction != DirectionSell {
		amount = amount.Neg()
	}

	return amount.Sub(t.Fee)
}
