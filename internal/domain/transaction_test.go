package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validTransaction() Transaction {
	return Transaction{
		Time:       time.Now(),
		UserID:     "alice",
		OptionAbbr: "AU2012C",
		Type:       TransactionTypeOpen,
		Direction:  DirectionBuy,
		Quantity:   5,
		Price:      decimal.NewFromFloat(12.5),
		Fee:        decimal.NewFromFloat(0.5),
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(tx *Transaction)
		wantErr bool
	}{
		{
			name:    "valid transaction passes",
			mutate:  func(tx *Transaction) {},
			wantErr: false,
		},
		{
			name:    "missing user fails",
			mutate:  func(tx *Transaction) { tx.UserID = "" },
			wantErr: true,
		},
		{
			name:    "missing option abbreviation fails",
			mutate:  func(tx *Transaction) { tx.OptionAbbr = "" },
			wantErr: true,
		},
		{
			name:    "unknown type fails",
			mutate:  func(tx *Transaction) { tx.Type = "HOLD" },
			wantErr: true,
		},
		{
			name:    "unknown direction fails",
			mutate:  func(tx *Transaction) { tx.Direction = "SHORT" },
			wantErr: true,
		},
		{
			name:    "zero quantity fails",
			mutate:  func(tx *Transaction) { tx.Quantity = 0 },
			wantErr: true,
		},
		{
			name:    "negative quantity fails",
			mutate:  func(tx *Transaction) { tx.Quantity = -3 },
			wantErr: true,
		},
		{
			name:    "negative price fails",
			mutate:  func(tx *Transaction) { tx.Price = decimal.NewFromInt(-1) },
			wantErr: true,
		},
		{
			name:    "negative fee fails",
			mutate:  func(tx *Transaction) { tx.Fee = decimal.NewFromInt(-1) },
			wantErr: true,
		},
		{
			name:    "zero price is allowed",
			mutate:  func(tx *Transaction) { tx.Price = decimal.Zero },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)

			err := tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_CashEffect(t *testing.T) {
	sell := Transaction{
		Direction: DirectionSell,
		Quantity:  10,
		Price:     decimal.NewFromInt(5),
		Fee:       decimal.NewFromInt(1),
	}
	// 10 * 5 - 1 = 49
	assert.True(t, decimal.NewFromInt(49).Equal(sell.CashEffect()))

	buy := Transaction{
		Direction: DirectionBuy,
		Quantity:  2,
		Price:     decimal.NewFromInt(3),
		Fee:       decimal.NewFromFloat(0.5),
	}
	// -(2 * 3) - 0.5 = -6.5
	assert.True(t, decimal.NewFromFloat(-6.5).Equal(buy.CashEffect()))
}
