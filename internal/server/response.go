package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes returned in the response envelope.
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeInvalidMode     = "INVALID_MODE"
	CodeRateOutOfRange  = "RATE_OUT_OF_RANGE"
	CodeUnknownFormat   = "UNKNOWN_FORMAT"
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	CodeNotFound        = "NOT_FOUND"
	CodeInternal        = "INTERNAL_ERROR"
)

// Response is the envelope of every API response.
type Response struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// Error describes a failed request.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Success:   true,
		Data:      data,
		RequestID: c.GetString(requestIDKey),
	})
}

func fail(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Response{
		Success:   false,
		Error:     &Error{Code: code, Message: message},
		RequestID: c.GetString(requestIDKey),
	})
}
