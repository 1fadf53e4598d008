package domain

import (
	"github.com/shopspring/decimal"
)

// UserInfo holds the mutable account data embedded in a user record.
type UserInfo struct {
	Balance decimal.Decimal
}

// User represents a platform user. Balance is only ever changed by
// the purchase operation, in the same store transaction as the ledger
// insert.
type User struct {
	ID       string
	UserInfo UserInfo
}
