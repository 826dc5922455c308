package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/zfogg/resep/pkg/api"
)

// ErrorType categorizes different error types
type ErrorType string

const (
	// Network errors
	ErrorTypeNetwork ErrorType = "network"
	ErrorTypeTimeout ErrorType = "timeout"

	// Validation errors
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeFileNotFound  ErrorType = "file_not_found"
	ErrorTypeInvalidFormat ErrorType = "invalid_format"
	ErrorTypeAvatarSize    ErrorType = "avatar_size"

	// Server errors
	ErrorTypeServer    ErrorType = "server"
	ErrorTypeNotFound  ErrorType = "not_found"
	ErrorTypeRateLimit ErrorType = "rate_limit"

	// Local state errors
	ErrorTypeStorage ErrorType = "storage"

	// Unknown errors
	ErrorTypeUnknown ErrorType = "unknown"
)

// CLIError represents a structured error with context
type CLIError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Suggestion string
	StatusCode int
	RetryAfter int
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// WithSuggestion adds a helpful suggestion to the error
func (e *CLIError) WithSuggestion(suggestion string) *CLIError {
	e.Suggestion = suggestion
	return e
}

// HasSuggestion returns true if the error has a suggestion
func (e *CLIError) HasSuggestion() bool {
	return e.Suggestion != ""
}

// Unwrap returns the underlying error
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// NewCLIError creates a new CLI error
func NewCLIError(errorType ErrorType, message string, cause error) *CLIError {
	return &CLIError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NetworkError creates a network error
func NetworkError(message string) *CLIError {
	err := NewCLIError(ErrorTypeNetwork, message, nil)
	err.Suggestion = "Check that the API is running and api.base_url points at it."
	return err
}

// TimeoutError creates a timeout error
func TimeoutError() *CLIError {
	err := NewCLIError(ErrorTypeTimeout, "Request timed out", nil)
	err.Suggestion = "The server is taking too long to respond. Try again or raise api.timeout."
	return err
}

// ValidationError creates a validation error
func ValidationError(field, reason string) *CLIError {
	message := fmt.Sprintf("Validation error: %s - %s", field, reason)
	return NewCLIError(ErrorTypeValidation, message, nil)
}

// FileNotFoundError creates a file not found error
func FileNotFoundError(path string) *CLIError {
	err := NewCLIError(ErrorTypeFileNotFound, fmt.Sprintf("File not found: %s", path), nil)
	err.Suggestion = "Check the file path and try again."
	return err
}

// InvalidFormatError creates an error for input in an unexpected format
func InvalidFormatError(what string) *CLIError {
	return NewCLIError(ErrorTypeInvalidFormat, fmt.Sprintf("Invalid format: %s", what), nil)
}

// AvatarSizeError creates an avatar size error
func AvatarSizeError(sizeMB float64, maxMB int) *CLIError {
	err := NewCLIError(ErrorTypeAvatarSize,
		fmt.Sprintf("Image too large: %.1f MB (max: %d MB)", sizeMB, maxMB),
		nil)
	err.Suggestion = fmt.Sprintf("Resize the image to under %d MB and try again.", maxMB)
	return err
}

// ServerError creates a server error
func ServerError() *CLIError {
	err := NewCLIError(ErrorTypeServer, "Server error", nil)
	err.Suggestion = "The server encountered an error. Try again in a few moments."
	return err
}

// NotFoundError creates a not found error
func NotFoundError(resourceType, identifier string) *CLIError {
	return NewCLIError(ErrorTypeNotFound,
		fmt.Sprintf("%s not found: %s", resourceType, identifier),
		nil)
}

// RateLimitError creates a rate limit error
func RateLimitError(retryAfter int) *CLIError {
	err := NewCLIError(ErrorTypeRateLimit,
		"Rate limit exceeded. Too many requests.",
		nil)
	err.RetryAfter = retryAfter
	err.Suggestion = fmt.Sprintf("Please wait %d seconds before trying again.", retryAfter)
	return err
}

// StorageError creates an error for local state that could not be saved
func StorageError(cause error) *CLIError {
	err := NewCLIError(ErrorTypeStorage, "Could not save local data", cause)
	err.Suggestion = "Check that storage.dir exists and is writable."
	return err
}

// fromAPIError maps an API error onto the taxonomy by status code
func fromAPIError(apiErr *api.APIError) *CLIError {
	var cliErr *CLIError
	switch {
	case apiErr.StatusCode == http.StatusNotFound:
		cliErr = NewCLIError(ErrorTypeNotFound, apiErr.Message, apiErr)
	case apiErr.StatusCode == http.StatusTooManyRequests:
		cliErr = RateLimitError(60)
		cliErr.Cause = apiErr
	case apiErr.StatusCode >= 500:
		cliErr = NewCLIError(ErrorTypeServer, apiErr.Message, apiErr)
		cliErr.Suggestion = "The server encountered an error. Try again in a few moments."
	case apiErr.StatusCode >= 400:
		cliErr = NewCLIError(ErrorTypeValidation, apiErr.Message, apiErr)
	default:
		cliErr = NewCLIError(ErrorTypeUnknown, apiErr.Message, apiErr)
	}
	cliErr.StatusCode = apiErr.StatusCode
	return cliErr
}

// CategorizeError converts a standard error into a CLIError
func CategorizeError(err error) *CLIError {
	if err == nil {
		return nil
	}

	// Check if it's already a CLIError
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return fromAPIError(apiErr)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return TimeoutError()
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return TimeoutError()
	}

	// Categorize based on error message
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "connection refused"):
		return NetworkError("Could not connect to server. Make sure it's running.")
	case strings.Contains(errMsg, "no such host"):
		return NetworkError("Could not resolve the API host.")
	case strings.Contains(errMsg, "timeout"):
		return TimeoutError()
	case strings.Contains(errMsg, "deadline exceeded"):
		return TimeoutError()
	case strings.Contains(errMsg, "404") || strings.Contains(errMsg, "not found"):
		return NotFoundError("Resource", "unknown")
	case strings.Contains(errMsg, "429") || strings.Contains(errMsg, "rate limit"):
		return RateLimitError(60)
	case strings.Contains(errMsg, "500") || strings.Contains(errMsg, "server error"):
		return ServerError()
	default:
		return NewCLIError(ErrorTypeUnknown, errMsg, err)
	}
}

// FormatError returns a user-friendly error message
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	cliErr := CategorizeError(err)
	var sb strings.Builder

	sb.WriteString("❌ Error")
	if cliErr.Type != ErrorTypeUnknown {
		sb.WriteString(" (")
		sb.WriteString(string(cliErr.Type))
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	sb.WriteString(cliErr.Message)
	sb.WriteString("\n")

	if cliErr.HasSuggestion() {
		sb.WriteString("\n💡 Suggestion: ")
		sb.WriteString(cliErr.Suggestion)
		sb.WriteString("\n")
	}

	// Add retry info for rate limiting
	if cliErr.Type == ErrorTypeRateLimit && cliErr.RetryAfter > 0 {
		sb.WriteString("\n⏱️  Retry in: ")
		sb.WriteString(fmt.Sprintf("%d seconds\n", cliErr.RetryAfter))
	}

	return sb.String()
}
