package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuote(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		user      string
		reference string
		tags      []string
		wantField string // empty means success expected
	}{
		{
			name:      "full quote",
			text:      "Talk is cheap. Show me the code.",
			user:      "torvalds",
			reference: "LKML",
			tags:      []string{"programming"},
		},
		{
			name: "minimal quote",
			text: "Simplicity is prerequisite for reliability.",
			user: "dijkstra",
		},
		{
			name:      "missing text",
			user:      "somebody",
			wantField: "quote",
		},
		{
			name:      "missing user",
			text:      "An unattributed line",
			wantField: "user",
		},
		{
			name:      "both missing reports text first",
			wantField: "quote",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := NewQuote(tt.text, tt.user, tt.reference, tt.tags)

			if tt.wantField != "" {
				require.Error(t, err)
				assert.True(t, IsValidation(err))

				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, tt.wantField, validationErr.Field)
				assert.Equal(t, "Missing field", validationErr.Message)
				assert.Nil(t, quote)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.text, quote.Text)
			assert.Equal(t, tt.user, quote.User)
			assert.Equal(t, tt.reference, quote.Reference)
			assert.Empty(t, quote.ID, "id is assigned by the store, not the constructor")
		})
	}
}

func TestNewQuote_NilTagsBecomeEmptySlice(t *testing.T) {
	quote, err := NewQuote("text", "user", "", nil)

	require.NoError(t, err)
	require.NotNil(t, quote.Tags)
	assert.Empty(t, quote.Tags)
}

func TestQuotePatch_IsEmpty(t *testing.T) {
	text := "updated"
	reference := "somewhere"
	tags := []string{"a"}

	tests := []struct {
		name  string
		patch QuotePatch
		want  bool
	}{
		{"no fields", QuotePatch{}, true},
		{"text only", QuotePatch{Text: &text}, false},
		{"reference only", QuotePatch{Reference: &reference}, false},
		{"tags only", QuotePatch{Tags: &tags}, false},
		{"all fields", QuotePatch{Text: &text, Reference: &reference, Tags: &tags}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.patch.IsEmpty())
		})
	}
}

func TestQuotePatch_EmptyStringIsAField(t *testing.T) {
	// Clearing the reference is a real update: a pointer to "" is
	// present, unlike a nil pointer.
	empty := ""
	patch := QuotePatch{Reference: &empty}

	assert.False(t, patch.IsEmpty())
}

func TestQuotePatch_Validate(t *testing.T) {
	text := "Rewritten"
	empty := ""
	emptyTags := []string{}

	tests := []struct {
		name    string
		patch   QuotePatch
		wantErr bool
	}{
		{"empty patch", QuotePatch{}, false},
		{"new text", QuotePatch{Text: &text}, false},
		{"cleared reference", QuotePatch{Reference: &empty}, false},
		{"cleared tags", QuotePatch{Tags: &emptyTags}, false},
		{"blank text", QuotePatch{Text: &empty}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "quote", verr.Field)
			assert.Equal(t, "Missing field", verr.Message)
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	err := NewValidationError("quote", "Missing field")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
}
