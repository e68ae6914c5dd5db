package dto

import (
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
)

// ErrBinding indicates the JSON body could not be decoded.
var ErrBinding = errors.New("binding failed")

// BindJSON decodes the request body into v. An absent body binds as
// the zero value, the same as an explicit "{}": field presence is
// judged in the domain, not by the decoder. Malformed bodies are a
// client fault; the handler maps ErrBinding to a 400.
func BindJSON(c *gin.Context, v any) error {
	err := c.ShouldBindJSON(v)
	if err == nil {
		return nil
	}

	// Truncated JSON surfaces as io.ErrUnexpectedEOF and stays a
	// binding failure; only a fully empty body reads as io.EOF.
	if errors.Is(err, io.EOF) {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrBinding, err)
}
