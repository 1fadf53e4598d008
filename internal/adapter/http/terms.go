package http

import (
	"fmt"
	"time"

	"github.com/optionfolio/trading-backend/internal/domain"
)

// Term kinds accepted on the wire.
const (
	termAscTime   = "ASC_TIME"
	termDescTime  = "DESC_TIME"
	termPeriod    = "PERIOD"
	termProfit    = "PROFIT"
	termPortfolio = "PORTFOLIO"
)

// termDescriptor is the wire representation of one search term.
// Start/End apply to PERIOD, Options to PORTFOLIO.
type termDescriptor struct {
	Kind    string    `json:"kind"`
	Start   time.Time `json:"start,omitempty"`
	End     time.Time `json:"end,omitempty"`
	Options []string  `json:"options,omitempty"`
}

// parseTerms maps wire descriptors onto domain search terms, keeping
// their order. An unknown kind rejects the whole list.
func parseTerms(descriptors []termDescriptor) ([]domain.SearchTerm, error) {
	terms := make([]domain.SearchTerm, 0, len(descriptors))

	for _, d := range descriptors {
		switch d.Kind {
		case termAscTime:
			terms = append(terms, domain.AscendingTime{})
		case termDescTime:
			terms = append(terms, domain.DescendingTime{})
		case termPeriod:
			terms = append(terms, domain.WithinPeriod{Start: d.Start, End: d.End})
		case termProfit:
			terms = append(terms, domain.ByProfit{})
		case termPortfolio:
			terms = append(terms, domain.ByPortfolio{OptionAbbrs: d.Options})
		default:
			return nil, fmt.Errorf("%w: unknown term kind %q", domain.ErrInvalidTerm, d.Kind)
		}
	}

	return terms, nil
}
