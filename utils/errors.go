package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes surfaced alongside user-facing messages.
const (
	CodeValidationError  = "VALIDATION_ERROR"
	CodeAuthError        = "AUTH_ERROR"
	CodeDeliveryError    = "DELIVERY_ERROR"
	CodeTransactionError = "TRANSACTION_ERROR"
	CodeNotFound         = "RESOURCE_NOT_FOUND"
	CodeForbidden        = "FORBIDDEN"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeBadRequest       = "BAD_REQUEST"
)

// ApiError is the error type returned by every operation in this service.
// Message is a complete, user-presentable sentence; clients render it
// verbatim on both success and failure paths.
type ApiError struct {
	StatusCode int
	Message    string
	ErrorCode  string
}

// Error implements the error interface.
func (e *ApiError) Error() string {
	return e.Message
}

// NewApiError creates an API error.
func NewApiError(message string, statusCode int, errorCode string) *ApiError {
	return &ApiError{
		StatusCode: statusCode,
		Message:    message,
		ErrorCode:  errorCode,
	}
}

// NewValidationError reports a missing or malformed required field.
func NewValidationError(message string) *ApiError {
	return NewApiError(message, http.StatusBadRequest, CodeValidationError)
}

// NewAuthError reports an invalid, expired or revoked mail credential. The
// operator has to restart the authorization flow.
func NewAuthError(message string) *ApiError {
	return NewApiError(message, http.StatusUnauthorized, CodeAuthError)
}

// NewDeliveryError reports a send rejected by the mail provider. Never
// retried automatically.
func NewDeliveryError(message string) *ApiError {
	return NewApiError(message, http.StatusBadGateway, CodeDeliveryError)
}

// NewTransactionError reports a partial failure between linked writes; the
// whole operation is reported as failed and is safe to repeat.
func NewTransactionError(message string) *ApiError {
	return NewApiError(message, http.StatusInternalServerError, CodeTransactionError)
}

// CreateNotFoundError reports a missing resource.
func CreateNotFoundError(resource string) *ApiError {
	return NewApiError(resource+" tidak ditemukan", http.StatusNotFound, CodeNotFound)
}

// CreateUnauthorizedError reports an unauthenticated request.
func CreateUnauthorizedError() *ApiError {
	return NewApiError("Akses tidak diizinkan", http.StatusUnauthorized, CodeUnauthorized)
}

// CreateForbiddenError reports insufficient permission.
func CreateForbiddenError() *ApiError {
	return NewApiError("Anda tidak memiliki akses untuk operasi ini", http.StatusForbidden, CodeForbidden)
}

// CreateBadRequestError reports a malformed request.
func CreateBadRequestError(message string) *ApiError {
	return NewApiError(message, http.StatusBadRequest, CodeBadRequest)
}

// errorCodeOf extracts the error code, empty for non-API errors.
func errorCodeOf(err error) string {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode
	}
	return ""
}

// IsValidationError reports whether err is a validation failure.
func IsValidationError(err error) bool { return errorCodeOf(err) == CodeValidationError }

// IsAuthError reports whether err is a mail-credential failure.
func IsAuthError(err error) bool { return errorCodeOf(err) == CodeAuthError }

// IsDeliveryError reports whether err is a provider send rejection.
func IsDeliveryError(err error) bool { return errorCodeOf(err) == CodeDeliveryError }

// IsTransactionError reports whether err is a partial-write failure.
func IsTransactionError(err error) bool { return errorCodeOf(err) == CodeTransactionError }

// HandleError logs err and writes the matching JSON response.
func HandleError(c *gin.Context, err error) {
	if c == nil {
		return
	}
	errorMessage := err.Error()
	Logger.Error().Str("path", c.Request.URL.Path).Str("method", c.Request.Method).Msg("api error: " + errorMessage)

	LogError(err, map[string]interface{}{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	}, errorMessage)

	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		response := gin.H{"success": false, "error": apiErr.Message}
		if apiErr.ErrorCode != "" {
			response["code"] = apiErr.ErrorCode
		}
		c.JSON(apiErr.StatusCode, response)
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   errorMessage,
	})
}

// SuccessResponse writes a success JSON response.
func SuccessResponse(c *gin.Context, data interface{}, message string, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := gin.H{"success": true}
	if data != nil {
		response["data"] = data
	}
	if message != "" {
		response["message"] = message
	}

	c.JSON(code, response)
}

// ErrorResponse writes a failure JSON response.
func ErrorResponse(c *gin.Context, message string, statusCode int) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}
