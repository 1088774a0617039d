// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrValidation, ErrPersistence, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/jsamuelsen/quotation-service/internal/domain"
)

// QuotationStore is the document store holding quotation records.
//
// Implementations assign the identity and creation timestamp, and must
// wrap every failure in a *domain.PersistenceError.
type QuotationStore interface {
	// Create persists q and returns the stored record with ID and CreatedAt set.
	// The argument is not modified.
	Create(ctx context.Context, q *domain.Quotation) (*domain.Quotation, error)

	// ListByEventDate returns every record ordered by EventDate ascending.
	ListByEventDate(ctx context.Context) ([]*domain.Quotation, error)

	// ListByCreatedDate returns every record ordered by CreatedAt descending.
	ListByCreatedDate(ctx context.Context) ([]*domain.Quotation, error)
}

// Broadcaster fans a newly persisted quotation out to live subscribers.
//
// Publish is best-effort and at-most-once per subscriber connected at call
// time. It must not block on subscriber I/O and has no failure result.
type Broadcaster interface {
	Publish(ctx context.Context, q *domain.Quotation)
}
