package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Option is a single quote for an option contract. The same
// abbreviation appears once per quote, so the full set of rows for an
// abbreviation forms its price history; the current price is the most
// recent row by time. The ledger never mutates quotes.
type Option struct {
	ID          int64
	OptionAbbr  string
	Time        time.Time
	LatestPrice decimal.Decimal
}
