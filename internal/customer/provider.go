package customer

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a provider has no record for the requested ID.
var ErrNotFound = errors.New("customer not found")

// Provider supplies customer records to the decision engine. Implementations
// own freshness and sourcing; the engine only shape-validates what it receives.
type Provider interface {
	Lookup(ctx context.Context, customerID string) (Record, error)
	List(ctx context.Context, limit int) ([]Record, error)
}
