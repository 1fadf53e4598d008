package domain

import (
	"fmt"
	"time"
)

// SortField enumerates the keys a transaction query can be ordered by.
type SortField string

const (
	SortFieldTime   SortField = "time"
	SortFieldProfit SortField = "profit"
)

// SortKey is one ordering criterion of a composed query. Keys are
// applied in the order they were added; later keys break ties left by
// earlier ones.
type SortKey struct {
	Field      SortField
	Descending bool
}

// Period is a half-open time interval: Start inclusive, End exclusive.
type Period struct {
	Start time.Time
	End   time.Time
}

// TransactionQuery is the composed ordering-and-filter specification
// built from a list of search terms. Repositories translate it into
// the store's native query so sorting and filtering happen in the
// store, not on a materialized list.
type TransactionQuery struct {
	Sort      []SortKey
	Period    *Period
	Portfolio []string
}

// SearchTerm is one caller-supplied sorting or filtering instruction.
// Terms contribute to a TransactionQuery in the order given; a
// malformed term rejects the whole query.
type SearchTerm interface {
	applyTo(q *TransactionQuery) error
}

// BuildQuery composes an ordered list of terms into a single query.
// Returns ErrInvalidTerm (wrapped) if any term is malformed; in that
// case the query must not be executed.
func BuildQuery(terms []SearchTerm) (*TransactionQuery, error) {
	q := &TransactionQuery{}

	for i, term := range terms {
		if term == nil {
			return nil, fmt.Errorf("%w: term %d is empty", ErrInvalidTerm, i)
		}
		if err := term.applyTo(q); err != nil {
			return nil, fmt.Errorf("term %d: %w", i, err)
		}
	}

	return q, nil
}

// AscendingTime orders results oldest first.
type AscendingTime struct{}

func (AscendingTime) applyTo(q *TransactionQuery) error {
	q.Sort = append(q.Sort, SortKey{Field: SortFieldTime})
	return nil
}

// DescendingTime orders results newest first.
type DescendingTime struct{}

func (DescendingTime) applyTo(q *TransactionQuery) error {
	q.Sort = append(q.Sort, SortKey{Field: SortFieldTime, Descending: true})
	return nil
}

// WithinPeriod keeps only transactions with Start <= time < End.
// Multiple period terms intersect.
type WithinPeriod struct {
	Start time.Time
	End   time.Time
}

func (p WithinPeriod) applyTo(q *TransactionQuery) error {
	if p.Start.IsZero() || p.End.IsZero() {
		return fmt.Errorf("%w: period bounds must be set", ErrInvalidTerm)
	}
	if !p.End.After(p.Start) {
		return fmt.Errorf("%w: period end must be after start", ErrInvalidTerm)
	}

	if q.Period == nil {
		q.Period = &Period{Start: p.Start, End: p.End}
		return nil
	}

	if p.Start.After(q.Period.Start) {
		q.Period.Start = p.Start
	}
	if p.End.Before(q.Period.End) {
		q.Period.End = p.End
	}
	return nil
}

// ByProfit orders results by the signed cash effect of each
// transaction, most profitable first.
type ByProfit struct{}

func (ByProfit) applyTo(q *TransactionQuery) error {
	q.Sort = append(q.Sort, SortKey{Field: SortFieldProfit, Descending: true})
	return nil
}

// ByPortfolio keeps only transactions whose option contract is in the
// given set of abbreviations.
type ByPortfolio struct {
	OptionAbbrs []string
}

func (p ByPortfolio) applyTo(q *TransactionQuery) error {
	if len(p.OptionAbbrs) == 0 {
		return fmt.Errorf("%w: portfolio term needs at least one option", ErrInvalidTerm)
	}

	for _, abbr := range p.OptionAbbrs {
		if abbr == "" {
			return fmt.Errorf("%w: portfolio term contains an empty option abbreviation", ErrInvalidTerm)
		}
		q.Portfolio = append(q.Portfolio, abbr)
	}
	return nil
}
