// internal/api/response/response.go
package response

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key set by the logging middleware.
const RequestIDKey = "request_id"

// Response defines the standard API response envelope.
type Response struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    Meta        `json:"meta"`
}

// ErrorInfo provides details for error responses.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Meta contains request-scoped metadata.
type Meta struct {
	RequestID string `json:"requestId"`
	Timestamp string `json:"timestamp"`
}

// API error codes.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeMultipleContingents = "MULTIPLE_CONTINGENTS"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeUnavailable         = "SERVICE_UNAVAILABLE"
	CodeInternal            = "INTERNAL_ERROR"
)

func meta(c *gin.Context) Meta {
	return Meta{
		RequestID: requestID(c),
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// Success writes a success response with the standard envelope.
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success: true,
		Code:    code,
		Message: message,
		Data:    data,
		Meta:    meta(c),
	})
}

// Error writes an error response with the given API error code.
func Error(c *gin.Context, code int, errCode, message string) {
	FieldError(c, code, errCode, "", message)
}

// FieldError is Error with the offending input field attached.
func FieldError(c *gin.Context, code int, errCode, field, message string) {
	c.JSON(code, errorBody(c, code, errCode, field, message))
}

// Abort writes an error response and stops the handler chain.
func Abort(c *gin.Context, code int, errCode, message string) {
	c.AbortWithStatusJSON(code, errorBody(c, code, errCode, "", message))
}

func errorBody(c *gin.Context, code int, errCode, field, message string) Response {
	return Response{
		Success: false,
		Code:    code,
		Message: message,
		Error: &ErrorInfo{
			Code:    errCode,
			Message: message,
			Field:   field,
		},
		Meta: meta(c),
	}
}

func requestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return uuid.New().String()[:8]
}
