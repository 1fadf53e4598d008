package seeder

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/optionfolio/trading-backend/internal/domain"
)

// DemoSeeder ensures a demo trading account exists so a fresh
// deployment can take purchases immediately.
type DemoSeeder struct {
	repo domain.UserRepository
}

// NewDemoSeeder creates a new DemoSeeder instance
func NewDemoSeeder(repo domain.UserRepository) *DemoSeeder {
	return &DemoSeeder{
		repo: repo,
	}
}

// Seed creates the user with the given ID and starting balance if it
// does not exist yet. An existing user is left untouched, balance
// included.
func (s *DemoSeeder) Seed(ctx context.Context, userID string, startingBalance decimal.Decimal) error {
	_, err := s.repo.GetByID(ctx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	return s.repo.Create(ctx, &domain.User{
		ID:       userID,
		UserInfo: domain.UserInfo{Balance: startingBalance},
	})
}
