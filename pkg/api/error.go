package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// APIError represents an API error response
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("[%d] %s", e.StatusCode, e.Message)
}

// ParseError parses an error response from the API
func ParseError(resp *resty.Response) error {
	statusCode := resp.StatusCode()

	if env, err := decodeEnvelope(resp.Body()); err == nil && env.message() != "" {
		return &APIError{
			Message:    env.message(),
			StatusCode: statusCode,
		}
	}

	message := strings.TrimSpace(string(resp.Body()))
	if message == "" {
		message = http.StatusText(statusCode)
	}
	if message == "" {
		message = "An error occurred"
	}

	return &APIError{
		Message:    message,
		StatusCode: statusCode,
	}
}

// IsNotFound checks if error is due to resource not found
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsServerError checks if error is due to server error (5xx)
func IsServerError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return false
}

// CheckResponse checks if response is successful and returns error if not
func CheckResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}

	if !resp.IsSuccess() {
		return ParseError(resp)
	}

	return nil
}

// decodeResponse checks resp and decodes its envelope. A 2xx body with
// "success": false is an error too.
func decodeResponse(resp *resty.Response, err error) (*envelope, error) {
	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	env, err := decodeEnvelope(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if env.failed() {
		message := env.message()
		if message == "" {
			message = "request failed"
		}
		return nil, &APIError{Message: message, StatusCode: resp.StatusCode()}
	}

	return env, nil
}
