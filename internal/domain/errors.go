package domain

import "errors"

// Sentinel errors classifying operation failures. The legacy surface
// collapsed every failure into a single FAILURE signal; services here
// return one of these kinds instead and the transport layer decides
// how much of the distinction to expose.
var (
	// ErrNotFound indicates the referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientFunds indicates the user's balance cannot cover
	// the cost of a purchase.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidTerm indicates a malformed search term; the whole
	// query it belongs to is rejected.
	ErrInvalidTerm = errors.New("invalid search term")
)
