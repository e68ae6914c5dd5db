// Package app contains application services that orchestrate use cases.
// This is the application layer - it coordinates domain logic and
// persistence through ports, and knows nothing about HTTP.
package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/social-quotes/internal/domain"
	"github.com/jsamuelsen/social-quotes/internal/ports"
)

// QuoteService implements the five quote operations: list, search,
// create, update, delete. It depends on the repository port, not a
// concrete store, so tests can substitute an in-memory fake.
type QuoteService struct {
	repo   ports.QuoteRepository
	logger *slog.Logger
}

// QuoteServiceConfig contains dependencies for the quote service.
type QuoteServiceConfig struct {
	Repository ports.QuoteRepository
	Logger     *slog.Logger
}

// NewQuoteService creates a new quote service with the provided dependencies.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteService{
		repo:   cfg.Repository,
		logger: logger,
	}
}

// CreateQuoteInput carries the fields accepted on create. Reference and
// Tags are optional and default to the zero values the store persists.
type CreateQuoteInput struct {
	Text      string
	User      string
	Reference string
	Tags      []string
}

// List returns all stored quotes in store order.
func (s *QuoteService) List(ctx context.Context) ([]domain.Quote, error) {
	quotes, err := s.repo.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list quotes", slog.Any("error", err))
		return nil, err
	}

	return quotes, nil
}

// Search returns quotes whose text exactly equals term. Zero matches
// yield an empty slice; the handler turns that into the distinct
// "nothing matching" outcome.
func (s *QuoteService) Search(ctx context.Context, term string) ([]domain.Quote, error) {
	quotes, err := s.repo.FindByText(ctx, term)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to search quotes", slog.Any("error", err))
		return nil, err
	}

	s.logger.DebugContext(ctx, "searched quotes", slog.Int("matches", len(quotes)))

	return quotes, nil
}

// Create validates the input, probes the store for a quote with
// identical text, and inserts a new record. Field validation happens
// before any store access. The probe and the insert are two separate
// store calls: two concurrent creates with identical text can both
// pass the probe. The store's unique index turns the losing insert
// into a conflict, which is reported like the probe result.
func (s *QuoteService) Create(ctx context.Context, in CreateQuoteInput) (*domain.Quote, error) {
	quote, err := domain.NewQuote(in.Text, in.User, in.Reference, in.Tags)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountByText(ctx, quote.Text)
	if err != nil {
		s.logger.ErrorContext(ctx, "dedup probe failed", slog.Any("error", err))
		return nil, err
	}

	if count > 0 {
		return nil, domain.NewValidationError("", "This quote already exists")
	}

	err = s.repo.Insert(ctx, quote)
	if err != nil {
		if domain.IsConflict(err) {
			// Lost the race against a concurrent identical create.
			return nil, domain.NewValidationError("", "This quote already exists")
		}

		s.logger.ErrorContext(ctx, "failed to insert quote", slog.Any("error", err))

		return nil, err
	}

	s.logger.InfoContext(ctx, "created quote",
		slog.String("quote_id", quote.ID),
		slog.String("user", quote.User),
	)

	return quote, nil
}

// Update applies a merge-patch to the record with the given id. Fields
// absent from the patch keep their stored values. A missing id is a
// silent success: the store's update-by-id is a no-op and the caller
// still gets an acknowledgement.
func (s *QuoteService) Update(ctx context.Context, id string, patch domain.QuotePatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}

	if patch.IsEmpty() {
		// Nothing to write; still an acknowledged success.
		return nil
	}

	err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update quote",
			slog.String("quote_id", id),
			slog.Any("error", err),
		)

		return err
	}

	s.logger.InfoContext(ctx, "updated quote", slog.String("quote_id", id))

	return nil
}

// Delete removes the record with the given id. Deleting an id that was
// never stored is still a success (idempotent delete).
func (s *QuoteService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete quote",
			slog.String("quote_id", id),
			slog.Any("error", err),
		)

		return err
	}

	s.logger.InfoContext(ctx, "deleted quote", slog.String("quote_id", id))

	return nil
}
