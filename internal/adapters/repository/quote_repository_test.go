package repository

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/social-quotes/internal/domain"
	"github.com/jsamuelsen/social-quotes/internal/platform/config"
)

// openTestRepository opens a fresh in-memory store for each test.
func openTestRepository(t *testing.T) *QuoteRepository {
	t.Helper()

	db, err := Open(&config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    ":memory:",
	})
	require.NoError(t, err)

	return NewQuoteRepository(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func mustInsert(t *testing.T, repo *QuoteRepository, text, user, reference string, tags []string) *domain.Quote {
	t.Helper()

	quote, err := domain.NewQuote(text, user, reference, tags)
	require.NoError(t, err)
	require.NoError(t, repo.Insert(context.Background(), quote))
	require.NotEmpty(t, quote.ID)

	return quote
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "postgres", DSN: "whatever"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestQuoteRepository_InsertAndFindByID(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	created := mustInsert(t, repo, "Talk is cheap. Show me the code.", "torvalds", "LKML", []string{"programming"})

	found, err := repo.FindByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Talk is cheap. Show me the code.", found.Text)
	assert.Equal(t, "torvalds", found.User)
	assert.Equal(t, "LKML", found.Reference)
	assert.Equal(t, []string{"programming"}, found.Tags)
}

func TestQuoteRepository_FindByID_NotFound(t *testing.T) {
	repo := openTestRepository(t)

	_, err := repo.FindByID(context.Background(), "never-stored")

	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestQuoteRepository_List(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	quotes, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, quotes, "fresh store lists nothing")

	mustInsert(t, repo, "First", "alice", "", nil)
	mustInsert(t, repo, "Second", "bob", "", nil)

	quotes, err = repo.List(ctx)

	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "First", quotes[0].Text)
	assert.Equal(t, "Second", quotes[1].Text)
}

func TestQuoteRepository_FindByText_ExactMatchOnly(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	mustInsert(t, repo, "Simplicity is prerequisite for reliability.", "dijkstra", "", nil)

	tests := []struct {
		name    string
		term    string
		matches int
	}{
		{"exact text", "Simplicity is prerequisite for reliability.", 1},
		{"substring does not match", "Simplicity", 0},
		{"different case does not match", "simplicity is prerequisite for reliability.", 0},
		{"unknown text", "nothing like this", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quotes, err := repo.FindByText(ctx, tt.term)

			require.NoError(t, err)
			assert.Len(t, quotes, tt.matches)
		})
	}
}

func TestQuoteRepository_CountByText(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	count, err := repo.CountByText(ctx, "A line")
	require.NoError(t, err)
	assert.Zero(t, count)

	mustInsert(t, repo, "A line", "alice", "", nil)

	count, err = repo.CountByText(ctx, "A line")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestQuoteRepository_Insert_DuplicateTextConflicts(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	mustInsert(t, repo, "Only once", "alice", "", nil)

	dup, err := domain.NewQuote("Only once", "bob", "", nil)
	require.NoError(t, err)

	err = repo.Insert(ctx, dup)

	require.Error(t, err)
	assert.True(t, domain.IsConflict(err), "unique index turns the duplicate into a conflict")
}

func TestQuoteRepository_Insert_DefaultsRoundTrip(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	created := mustInsert(t, repo, "Bare minimum", "alice", "", nil)

	found, err := repo.FindByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Empty(t, found.Reference)
	require.NotNil(t, found.Tags, "tags come back as an empty slice, never nil")
	assert.Empty(t, found.Tags)
}

func TestQuoteRepository_Update_MergePatch(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	created := mustInsert(t, repo, "Original text", "alice", "original ref", []string{"old"})

	newText := "Rewritten text"
	err := repo.Update(ctx, created.ID, domain.QuotePatch{Text: &newText})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Rewritten text", found.Text)
	assert.Equal(t, "original ref", found.Reference, "absent fields keep their stored values")
	assert.Equal(t, []string{"old"}, found.Tags)
	assert.Equal(t, "alice", found.User, "user is never updatable")
	assert.Equal(t, created.ID, found.ID)
}

func TestQuoteRepository_Update_ClearsFieldsExplicitly(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	created := mustInsert(t, repo, "Some text", "alice", "some ref", []string{"a", "b"})

	emptyRef := ""
	emptyTags := []string{}
	err := repo.Update(ctx, created.ID, domain.QuotePatch{
		Reference: &emptyRef,
		Tags:      &emptyTags,
	})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Empty(t, found.Reference)
	assert.Empty(t, found.Tags)
	assert.Equal(t, "Some text", found.Text)
}

func TestQuoteRepository_Update_MissingIDIsNoOp(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	newText := "Whatever"
	err := repo.Update(ctx, "never-stored", domain.QuotePatch{Text: &newText})

	require.NoError(t, err, "zero matched rows is still a success")
}

func TestQuoteRepository_Update_EmptyPatchIsNoOp(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	created := mustInsert(t, repo, "Untouched", "alice", "", nil)

	require.NoError(t, repo.Update(ctx, created.ID, domain.QuotePatch{}))

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Untouched", found.Text)
}

func TestQuoteRepository_Delete(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	created := mustInsert(t, repo, "Doomed", "alice", "", nil)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err := repo.FindByID(ctx, created.ID)
	assert.True(t, domain.IsNotFound(err))

	// Idempotent: deleting again still succeeds.
	require.NoError(t, repo.Delete(ctx, created.ID))
}

func TestQuoteRepository_HealthCheck(t *testing.T) {
	repo := openTestRepository(t)

	assert.Equal(t, "quote-store", repo.Name())
	assert.NoError(t, repo.Check(context.Background()))
}

func TestStringArray_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input StringArray
		want  string
	}{
		{"nil encodes as empty array", nil, "[]"},
		{"values encode as JSON", StringArray{"a", "b"}, `["a","b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := tt.input.Value()
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(value.([]byte)))

			var decoded StringArray
			require.NoError(t, decoded.Scan(value))
			assert.Len(t, decoded, len(tt.input))
		})
	}
}

func TestStringArray_ScanNull(t *testing.T) {
	var s StringArray

	require.NoError(t, s.Scan(nil))
	assert.Empty(t, s)
}
