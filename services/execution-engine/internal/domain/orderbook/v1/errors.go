package orderbookv1

import "github.com/i-onlabs/sigmax/pkg/errors"

// Sentinels compare by code, so errors.Is matches any error carrying the
// same code regardless of message or field.
var (
	ErrInvalidOrder       = errors.NewErrorDetails("invalid order", string(errors.InvalidOrderError), "")
	ErrUnknownSymbol      = errors.NewErrorDetails("unknown symbol", string(errors.UnknownSymbolError), "symbol")
	ErrDuplicateSymbol    = errors.NewErrorDetails("symbol already registered", string(errors.DuplicateSymbolError), "symbol")
	ErrCancelNotFound     = errors.NewErrorDetails("order not found or already terminal", string(errors.CancelNotFoundError), "orderID")
	ErrInvariantViolation = errors.NewErrorDetails("order book invariant violated", string(errors.InvariantViolationError), "")
	ErrSymbolHalted       = errors.NewErrorDetails("symbol halted", string(errors.SymbolHaltedError), "symbol")
)
