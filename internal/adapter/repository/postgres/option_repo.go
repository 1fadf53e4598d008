package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/optionfolio/trading-backend/internal/domain"
)

// optionRepository implements domain.OptionRepository
type optionRepository struct {
	db *DB
}

// NewOptionRepository creates a new option quote repository
func NewOptionRepository(db *DB) domain.OptionRepository {
	return &optionRepository{db: db}
}

// GetLatestQuote retrieves the most recent quote for an abbreviation
func (r *optionRepository) GetLatestQuote(ctx context.Context, optionAbbr string) (*domain.Option, error) {
	query := `
		SELECT id, option_abbr, time, latest_price
		FROM option_quotes
		WHERE option_abbr = $1
		ORDER BY time DESC
		LIMIT 1
	`

	var o domain.Option
	var priceStr string

	err := r.db.QueryRowContext(ctx, query, optionAbbr).Scan(
		&o.ID,
		&o.OptionAbbr,
		&o.Time,
		&priceStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("option %s has no quotes: %w", optionAbbr, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get latest quote: %w", err)
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse latest_price: %w", err)
	}
	o.LatestPrice = price

	return &o, nil
}

// AddQuote appends a quote to the contract's price history
func (r *optionRepository) AddQuote(ctx context.Context, o *domain.Option) error {
	query := `
		INSERT INTO option_quotes (option_abbr, time, latest_price)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		o.OptionAbbr,
		o.Time,
		o.LatestPrice.String(),
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("failed to insert option quote: %w", err)
	}

	return nil
}
