package dto

import "github.com/jsamuelsen/social-quotes/internal/domain"

// QuoteResponse is the wire representation of a stored quote.
type QuoteResponse struct {
	ID        string   `json:"id"`
	Quote     string   `json:"quote"`
	User      string   `json:"user"`
	Reference string   `json:"reference"`
	Tags      []string `json:"tags"`
}

// CreateQuoteRequest is the POST /quotes body. Presence of quote and
// user is validated in the domain, before any store access; reference
// and tags default to their zero values.
type CreateQuoteRequest struct {
	Quote     string   `json:"quote"`
	User      string   `json:"user"`
	Reference string   `json:"reference"`
	Tags      []string `json:"tags"`
}

// UpdateQuoteRequest is the PUT /quotes/:id body. Pointer fields make
// the merge-patch explicit: a nil field was absent from the body and
// keeps its stored value. The optional id must match the path.
type UpdateQuoteRequest struct {
	ID        string    `json:"id"`
	Quote     *string   `json:"quote"`
	Reference *string   `json:"reference"`
	Tags      *[]string `json:"tags"`
}

// Patch converts the request body to the domain merge-patch.
func (r *UpdateQuoteRequest) Patch() domain.QuotePatch {
	return domain.QuotePatch{
		Text:      r.Quote,
		Reference: r.Reference,
		Tags:      r.Tags,
	}
}

// ToQuoteResponse serializes a domain quote for the wire. A free
// function rather than a method on the entity: representation stays
// decoupled from the domain type.
func ToQuoteResponse(q *domain.Quote) *QuoteResponse {
	tags := q.Tags
	if tags == nil {
		tags = []string{}
	}

	return &QuoteResponse{
		ID:        q.ID,
		Quote:     q.Text,
		User:      q.User,
		Reference: q.Reference,
		Tags:      tags,
	}
}

// ToQuoteResponses serializes a list of domain quotes in order.
func ToQuoteResponses(quotes []domain.Quote) []*QuoteResponse {
	out := make([]*QuoteResponse, 0, len(quotes))
	for i := range quotes {
		out = append(out, ToQuoteResponse(&quotes[i]))
	}

	return out
}
