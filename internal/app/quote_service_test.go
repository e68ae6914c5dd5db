package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/social-quotes/internal/domain"
	"github.com/jsamuelsen/social-quotes/internal/mocks"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewQuoteService_DefaultsLogger(t *testing.T) {
	mockRepo := mocks.NewMockQuoteRepository(t)

	svc := NewQuoteService(QuoteServiceConfig{
		Repository: mockRepo,
		Logger:     nil, // Should default to slog.Default()
	})

	require.NotNil(t, svc)
}

func TestQuoteService_List(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*mocks.MockQuoteRepository)
		expected  []domain.Quote
		errCheck  func(error) bool
	}{
		{
			name: "success",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().List(mock.Anything).Return([]domain.Quote{
					{ID: "q-1", Text: "First", User: "alice"},
					{ID: "q-2", Text: "Second", User: "bob"},
				}, nil)
			},
			expected: []domain.Quote{
				{ID: "q-1", Text: "First", User: "alice"},
				{ID: "q-2", Text: "Second", User: "bob"},
			},
		},
		{
			name: "empty store",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().List(mock.Anything).Return([]domain.Quote{}, nil)
			},
			expected: []domain.Quote{},
		},
		{
			name: "store unavailable",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().List(mock.Anything).
					Return(nil, domain.NewUnavailableError("quote-store", "connection refused"))
			},
			errCheck: domain.IsUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockQuoteRepository(t)
			tt.setupMock(mockRepo)

			svc := NewQuoteService(QuoteServiceConfig{
				Repository: mockRepo,
				Logger:     discardLogger(),
			})

			quotes, err := svc.List(context.Background())

			if tt.errCheck != nil {
				require.Error(t, err)
				assert.True(t, tt.errCheck(err))
				assert.Nil(t, quotes)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, quotes)
			}
		})
	}
}

func TestQuoteService_Search(t *testing.T) {
	tests := []struct {
		name      string
		term      string
		setupMock func(*mocks.MockQuoteRepository)
		expected  []domain.Quote
	}{
		{
			name: "exact match",
			term: "Talk is cheap.",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().FindByText(mock.Anything, "Talk is cheap.").
					Return([]domain.Quote{{ID: "q-1", Text: "Talk is cheap.", User: "torvalds"}}, nil)
			},
			expected: []domain.Quote{{ID: "q-1", Text: "Talk is cheap.", User: "torvalds"}},
		},
		{
			name: "no match yields empty slice, not an error",
			term: "nothing like this",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().FindByText(mock.Anything, "nothing like this").
					Return([]domain.Quote{}, nil)
			},
			expected: []domain.Quote{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockQuoteRepository(t)
			tt.setupMock(mockRepo)

			svc := NewQuoteService(QuoteServiceConfig{
				Repository: mockRepo,
				Logger:     discardLogger(),
			})

			quotes, err := svc.Search(context.Background(), tt.term)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, quotes)
		})
	}
}

func TestQuoteService_Create(t *testing.T) {
	tests := []struct {
		name      string
		input     CreateQuoteInput
		setupMock func(*mocks.MockQuoteRepository)
		checkErr  func(*testing.T, error)
	}{
		{
			name: "success",
			input: CreateQuoteInput{
				Text:      "Simplicity is prerequisite for reliability.",
				User:      "dijkstra",
				Reference: "EWD498",
				Tags:      []string{"design"},
			},
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().CountByText(mock.Anything, "Simplicity is prerequisite for reliability.").
					Return(0, nil)
				m.EXPECT().Insert(mock.Anything, mock.Anything).
					Run(func(_ context.Context, quote *domain.Quote) {
						quote.ID = "q-new"
					}).
					Return(nil)
			},
		},
		{
			name:  "missing text fails before any store access",
			input: CreateQuoteInput{User: "somebody"},
			setupMock: func(_ *mocks.MockQuoteRepository) {
				// No store calls expected - validation happens first.
			},
			checkErr: func(t *testing.T, err error) {
				t.Helper()

				var validationErr *domain.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, "quote", validationErr.Field)
				assert.Equal(t, "Missing field", validationErr.Message)
			},
		},
		{
			name:  "missing user fails before any store access",
			input: CreateQuoteInput{Text: "An unattributed line"},
			setupMock: func(_ *mocks.MockQuoteRepository) {
			},
			checkErr: func(t *testing.T, err error) {
				t.Helper()

				var validationErr *domain.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, "user", validationErr.Field)
			},
		},
		{
			name:  "duplicate text rejected by probe",
			input: CreateQuoteInput{Text: "Already stored", User: "alice"},
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().CountByText(mock.Anything, "Already stored").Return(1, nil)
			},
			checkErr: func(t *testing.T, err error) {
				t.Helper()

				var validationErr *domain.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Empty(t, validationErr.Field)
				assert.Equal(t, "This quote already exists", validationErr.Message)
			},
		},
		{
			name:  "lost dedup race reported like the probe",
			input: CreateQuoteInput{Text: "Raced", User: "bob"},
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().CountByText(mock.Anything, "Raced").Return(0, nil)
				m.EXPECT().Insert(mock.Anything, mock.Anything).
					Return(domain.NewConflictError("quote", "duplicate content"))
			},
			checkErr: func(t *testing.T, err error) {
				t.Helper()

				assert.True(t, domain.IsValidation(err))

				var validationErr *domain.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, "This quote already exists", validationErr.Message)
			},
		},
		{
			name:  "probe failure surfaces the store error",
			input: CreateQuoteInput{Text: "Whatever", User: "carol"},
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().CountByText(mock.Anything, "Whatever").
					Return(0, domain.NewUnavailableError("quote-store", "timeout"))
			},
			checkErr: func(t *testing.T, err error) {
				t.Helper()
				assert.True(t, domain.IsUnavailable(err))
			},
		},
		{
			name:  "insert failure surfaces the store error",
			input: CreateQuoteInput{Text: "Whatever else", User: "carol"},
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().CountByText(mock.Anything, "Whatever else").Return(0, nil)
				m.EXPECT().Insert(mock.Anything, mock.Anything).
					Return(errors.New("disk full"))
			},
			checkErr: func(t *testing.T, err error) {
				t.Helper()
				assert.EqualError(t, err, "disk full")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockQuoteRepository(t)
			tt.setupMock(mockRepo)

			svc := NewQuoteService(QuoteServiceConfig{
				Repository: mockRepo,
				Logger:     discardLogger(),
			})

			quote, err := svc.Create(context.Background(), tt.input)

			if tt.checkErr != nil {
				require.Error(t, err)
				tt.checkErr(t, err)
				assert.Nil(t, quote)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "q-new", quote.ID, "insert assigns the id in place")
			assert.Equal(t, tt.input.Text, quote.Text)
			assert.Equal(t, tt.input.User, quote.User)
		})
	}
}

func TestQuoteService_Update(t *testing.T) {
	text := "Rewritten"

	tests := []struct {
		name      string
		id        string
		patch     domain.QuotePatch
		setupMock func(*mocks.MockQuoteRepository)
		wantErr   bool
	}{
		{
			name:  "patch passed through to the store",
			id:    "q-1",
			patch: domain.QuotePatch{Text: &text},
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().Update(mock.Anything, "q-1", domain.QuotePatch{Text: &text}).
					Return(nil)
			},
		},
		{
			name:  "empty patch skips the store entirely",
			id:    "q-1",
			patch: domain.QuotePatch{},
			setupMock: func(_ *mocks.MockQuoteRepository) {
				// No Update call expected.
			},
		},
		{
			name:  "blank text is rejected before the store",
			id:    "q-1",
			patch: domain.QuotePatch{Text: func() *string { s := ""; return &s }()},
			setupMock: func(_ *mocks.MockQuoteRepository) {
				// No Update call expected.
			},
			wantErr: true,
		},
		{
			name:  "store failure propagates",
			id:    "q-2",
			patch: domain.QuotePatch{Text: &text},
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().Update(mock.Anything, "q-2", mock.Anything).
					Return(domain.NewUnavailableError("quote-store", "timeout"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockQuoteRepository(t)
			tt.setupMock(mockRepo)

			svc := NewQuoteService(QuoteServiceConfig{
				Repository: mockRepo,
				Logger:     discardLogger(),
			})

			err := svc.Update(context.Background(), tt.id, tt.patch)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestQuoteService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		setupMock func(*mocks.MockQuoteRepository)
		wantErr   bool
	}{
		{
			name: "success",
			id:   "q-1",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().Delete(mock.Anything, "q-1").Return(nil)
			},
		},
		{
			name: "unknown id is still a success",
			id:   "never-stored",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().Delete(mock.Anything, "never-stored").Return(nil)
			},
		},
		{
			name: "store failure propagates",
			id:   "q-2",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().Delete(mock.Anything, "q-2").
					Return(domain.NewUnavailableError("quote-store", "timeout"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockQuoteRepository(t)
			tt.setupMock(mockRepo)

			svc := NewQuoteService(QuoteServiceConfig{
				Repository: mockRepo,
				Logger:     discardLogger(),
			})

			err := svc.Delete(context.Background(), tt.id)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
