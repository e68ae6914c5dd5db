// Package domain contains core business entities and rules.
package domain

// Quote represents a stored quotation attributed to a user.
// This is a domain entity - it has no knowledge of external systems.
type Quote struct {
	// ID is the opaque unique identifier, assigned by the store on
	// creation and immutable thereafter.
	ID string

	// Text is the content of the quote. Never empty for a persisted
	// record.
	Text string

	// User is the free-form attribution. Not necessarily a system
	// account. Never empty for a persisted record, and not updatable.
	User string

	// Reference is an optional citation or source note.
	Reference string

	// Tags are free-form tokens associated with the quote.
	Tags []string
}

// NewQuote validates and constructs an unsaved quote. The store assigns
// the ID on insert. A missing required field yields a ValidationError
// naming the field, before any store access happens.
func NewQuote(text, user, reference string, tags []string) (*Quote, error) {
	if text == "" {
		return nil, NewValidationError("quote", "Missing field")
	}

	if user == "" {
		return nil, NewValidationError("user", "Missing field")
	}

	if tags == nil {
		tags = []string{}
	}

	return &Quote{
		Text:      text,
		User:      user,
		Reference: reference,
		Tags:      tags,
	}, nil
}

// QuotePatch carries a merge-patch update: only non-nil fields are
// applied, everything else keeps its stored value. ID and User are
// deliberately absent - neither is updatable.
type QuotePatch struct {
	Text      *string
	Reference *string
	Tags      *[]string
}

// IsEmpty reports whether the patch carries no fields at all.
func (p QuotePatch) IsEmpty() bool {
	return p.Text == nil && p.Reference == nil && p.Tags == nil
}

// Validate rejects a patch that would blank the quote text. Reference
// and tags may be cleared, but a persisted record never has empty text,
// on update just as on create.
func (p QuotePatch) Validate() error {
	if p.Text != nil && *p.Text == "" {
		return NewValidationError("quote", "Missing field")
	}

	return nil
}
