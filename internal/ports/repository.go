// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
package ports

import (
	"context"

	"github.com/jsamuelsen/social-quotes/internal/domain"
)

// QuoteRepository is the persistence contract for the quote collection.
// Implementations map infrastructure failures to domain errors:
// unreachable or failing stores surface as domain.ErrUnavailable, and
// an insert that trips a uniqueness constraint surfaces as
// domain.ErrConflict.
//
// Single-document operations are assumed atomic at the store. No
// transactional guard spans multiple calls, so the service's
// check-then-insert dedup sequence is best-effort by design.
type QuoteRepository interface {
	// List returns every stored quote in store order.
	List(ctx context.Context) ([]domain.Quote, error)

	// FindByText returns all quotes whose text exactly equals text.
	// A zero-match result is an empty slice, not an error.
	FindByText(ctx context.Context, text string) ([]domain.Quote, error)

	// FindByID retrieves a single quote by its identifier.
	// Returns domain.ErrNotFound if no record exists.
	FindByID(ctx context.Context, id string) (*domain.Quote, error)

	// CountByText reports how many stored quotes carry exactly this
	// text. Used as the pre-insert dedup probe.
	CountByText(ctx context.Context, text string) (int64, error)

	// Insert persists a new quote and assigns its ID in place.
	Insert(ctx context.Context, quote *domain.Quote) error

	// Update applies a merge-patch to the record with the given id.
	// Updating a missing id is a no-op, not an error.
	Update(ctx context.Context, id string, patch domain.QuotePatch) error

	// Delete removes the record with the given id if present.
	// Deleting a missing id is a no-op, not an error.
	Delete(ctx context.Context, id string) error
}
