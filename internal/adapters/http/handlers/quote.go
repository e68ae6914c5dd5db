package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/social-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/social-quotes/internal/app"
)

// QuoteHandler handles the quote resource endpoints.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// List handles GET /quotes
// Returns every stored quote in store order.
func (h *QuoteHandler) List(c *gin.Context) {
	quotes, err := h.service.List(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteResponses(quotes))
}

// Search handles GET /quotes/:searchTerm
// Matching is an exact, case-sensitive comparison against the quote
// text. Zero matches answer 204: the "nothing matching" outcome is the
// status itself, since a 204 cannot carry a body.
func (h *QuoteHandler) Search(c *gin.Context) {
	term := c.Param("searchTerm")

	quotes, err := h.service.Search(c.Request.Context(), term)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if len(quotes) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteResponses(quotes))
}

// Create handles POST /quotes
// Field validation and the dedup probe both happen before the insert;
// a failure of either is a 422 with the ValidationError body. Success
// answers 201 with the created record, including its assigned id.
func (h *QuoteHandler) Create(c *gin.Context) {
	var req dto.CreateQuoteRequest

	if err := dto.BindJSON(c, &req); err != nil {
		dto.HandleBadRequest(c, "request body is not valid JSON")
		return
	}

	quote, err := h.service.Create(c.Request.Context(), app.CreateQuoteInput{
		Text:      req.Quote,
		User:      req.User,
		Reference: req.Reference,
		Tags:      req.Tags,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToQuoteResponse(quote))
}

// Update handles PUT /quotes/:id
// The body is a merge-patch: only fields present in it are written.
// When the body carries an id it must equal the path id; a mismatch is
// a 400 naming both values. Success is an empty 204 even when no
// record with the id exists.
func (h *QuoteHandler) Update(c *gin.Context) {
	pathID := c.Param("id")

	var req dto.UpdateQuoteRequest

	if err := dto.BindJSON(c, &req); err != nil {
		dto.HandleBadRequest(c, "request body is not valid JSON")
		return
	}

	if req.ID != "" && req.ID != pathID {
		dto.HandleBadRequest(c, fmt.Sprintf(
			"Request path id (%s) and request body id (%s) must match",
			pathID, req.ID,
		))

		return
	}

	if err := h.service.Update(c.Request.Context(), pathID, req.Patch()); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /quotes/:id
// Removal is immediate and unrecoverable. The 204 acknowledgement does
// not depend on whether a record existed.
func (h *QuoteHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterQuoteRoutes registers the quote resource on the engine.
// requireAuth gates every route; when requireAuthForRead is false the
// bare listing is open and everything else stays protected.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc, requireAuthForRead bool) {
	quotes := rg.Group("/quotes")

	if requireAuthForRead {
		quotes.GET("", requireAuth, h.List)
	} else {
		quotes.GET("", h.List)
	}

	quotes.GET("/:searchTerm", requireAuth, h.Search)
	quotes.POST("", requireAuth, h.Create)
	quotes.PUT("/:id", requireAuth, h.Update)
	quotes.DELETE("/:id", requireAuth, h.Delete)
}
