package income

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/optionfolio/trading-backend/internal/domain"
)

// Calculate reduces a sequence of transactions into a signed cash
// total: SELL amounts add, BUY amounts subtract, fees always subtract.
// Pure and order-independent; an empty sequence yields zero.
func Calculate(transactions []*domain.Transaction) decimal.Decimal {
	total := decimal.Zero

	for _, t := range transactions {
		total = total.Add(t.CashEffect())
	}

	return total
}

// YesterdayRange returns the reporting window for "yesterday" relative
// to now: start is yesterday at 00:00:00 inclusive, end is yesterday
// at 23:59:00 exclusive. The window ends at 23:59, not midnight, so
// the final minute of the day is never counted.
func YesterdayRange(now time.Time) (start, end time.Time) {
	y := now.AddDate(0, 0, -1)

	start = time.Date(y.Year(), y.Month(), y.Day(), 0, 0, 0, 0, y.Location())
	end = time.Date(y.Year(), y.Month(), y.Day(), 23, 59, 0, 0, y.Location())
	return start, end
}
