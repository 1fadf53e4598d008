package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/optionfolio/trading-backend/internal/domain"
)

// transactionPayload is the wire representation of a ledger record.
type transactionPayload struct {
	TID        int64           `json:"tid"`
	Time       time.Time       `json:"time"`
	UserID     string          `json:"userId"`
	OptionAbbr string          `json:"optionAbbr"`
	Type       string          `json:"transactionType"`
	Direction  string          `json:"transactionDirection"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Fee        decimal.Decimal `json:"fee"`
}

func (p transactionPayload) toDomain() *domain.Transaction {
	return &domain.Transaction{
		ID:         p.TID,
		Time:       p.Time,
		UserID:     p.UserID,
		OptionAbbr: p.OptionAbbr,
		Type:       domain.TransactionType(p.Type),
		Direction:  domain.TransactionDirection(p.Direction),
		Quantity:   p.Quantity,
		Price:      p.Price,
		Fee:        p.Fee,
	}
}

func fromDomain(t *domain.Transaction) transactionPayload {
	return transactionPayload{
		TID:        t.ID,
		Time:       t.Time,
		UserID:     t.UserID,
		OptionAbbr: t.OptionAbbr,
		Type:       string(t.Type),
		Direction:  string(t.Direction),
		Quantity:   t.Quantity,
		Price:      t.Price,
		Fee:        t.Fee,
	}
}

func fromDomainList(transactions []*domain.Transaction) []transactionPayload {
	payloads := make([]transactionPayload, 0, len(transactions))
	for _, t := range transactions {
		payloads = append(payloads, fromDomain(t))
	}
	return payloads
}
