package domain

import "errors"

// Sentinel errors for domain-level error handling. Callers match these
// with errors.Is. Every failing market operation returns one of these with
// zero side effects.
var (
	ErrActorAlreadyExists = errors.New("actor_already_exists")
	ErrActorNotFound      = errors.New("actor_not_found")
	ErrOrderNotFound      = errors.New("order_not_found")
	ErrOrderRejected      = errors.New("order_rejected")
	ErrInsufficientFunds  = errors.New("insufficient_funds")
	ErrUnknownCommodity   = errors.New("unknown_commodity")
)
