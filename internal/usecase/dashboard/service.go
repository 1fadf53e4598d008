package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/optionfolio/trading-backend/internal/domain"
	"github.com/optionfolio/trading-backend/internal/usecase/income"
)

// How many of the newest transactions a summary carries.
const recentTransactionLimit = 10

// UserSummary represents the aggregated view of one user's account
type UserSummary struct {
	UserID             string
	Balance            decimal.Decimal
	TotalIncome        decimal.Decimal
	YesterdayIncome    decimal.Decimal
	TransactionCount   int
	RecentTransactions []*domain.Transaction
}

// DashboardService handles account summary aggregation
type DashboardService struct {
	UserRepo        domain.UserRepository
	TransactionRepo domain.TransactionRepository
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(
	userRepo domain.UserRepository,
	transactionRepo domain.TransactionRepository,
) *DashboardService {
	return &DashboardService{
		UserRepo:        userRepo,
		TransactionRepo: transactionRepo,
	}
}

// GetUserSummary aggregates one user's balance, income figures and
// most recent transactions into a single view.
func (s *DashboardService) GetUserSummary(ctx context.Context, userID string) (*UserSummary, error) {
	user, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.TransactionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	start, end := income.YesterdayRange(time.Now())
	yesterdayTransactions, err := s.TransactionRepo.ListByUserInPeriod(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list yesterday's transactions: %w", err)
	}

	recent := transactions
	if len(recent) > recentTransactionLimit {
		recent = recent[:recentTransactionLimit]
	}

	return &UserSummary{
		UserID:             user.ID,
		Balance:            user.UserInfo.Balance,
		TotalIncome:        income.Calculate(transactions),
		YesterdayIncome:    income.Calculate(yesterdayTransactions),
		TransactionCount:   len(transactions),
		RecentTransactions: recent,
	}, nil
}
