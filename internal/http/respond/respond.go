// Package respond renders result values as JSON envelopes:
//
//	{"success": true, "value": ...}
//	{"success": false, "error": "BOOK_NOT_FOUND", "message": "Book not found"}
package respond

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/homebranch/server/internal/result"
)

// CodeTooManyRequests is used when a client is temporarily locked out.
const CodeTooManyRequests = "TOO_MANY_REQUESTS"

// Envelope is the body of every JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Value   any    `json:"value,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// StatusFor maps a failure code to an HTTP status. Unknown codes are 500.
func StatusFor(code string) int {
	switch {
	case code == result.CodeNotFound || strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case code == result.CodeConflict:
		return http.StatusConflict
	case code == result.CodeBadRequest:
		return http.StatusBadRequest
	case code == result.CodeForbidden:
		return http.StatusForbidden
	case code == result.CodeUnauthorized:
		return http.StatusUnauthorized
	case code == CodeTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Success writes a 200 envelope carrying value.
func Success(c *gin.Context, value any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Value: value})
}

// Failure writes f with its mapped status and aborts the handler chain.
func Failure(c *gin.Context, f *result.Failure) {
	c.AbortWithStatusJSON(StatusFor(f.Code()), Envelope{
		Success: false,
		Error:   f.Code(),
		Message: f.Message(),
	})
}

// BadRequest aborts with a BAD_REQUEST envelope.
func BadRequest(c *gin.Context, message string) {
	Failure(c, result.NewFailure(result.CodeBadRequest, message))
}

// Result writes r as a success or failure envelope.
func Result[T any](c *gin.Context, r result.Result[T]) {
	if r.IsFailure() {
		Failure(c, r.Failure())
		return
	}
	Success(c, r.Value())
}

// NoContent writes 204 on success and a failure envelope otherwise.
func NoContent[T any](c *gin.Context, r result.Result[T]) {
	if r.IsFailure() {
		Failure(c, r.Failure())
		return
	}
	c.Status(http.StatusNoContent)
}
