package azure

import (
	"errors"
	"fmt"
	"time"
)

// Azure Video Retrieval specific errors.
var (
	// ErrIndexNotFound indicates the index does not exist or is not accessible.
	ErrIndexNotFound = errors.New("azure: index not found")

	// ErrIngestionNotFound indicates the ingestion batch was not found.
	ErrIngestionNotFound = errors.New("azure: ingestion not found")

	// ErrMissingEndpoint indicates the client has no endpoint configured.
	ErrMissingEndpoint = errors.New("azure: endpoint not configured")

	// ErrMissingIndexName indicates the client has no index name configured.
	ErrMissingIndexName = errors.New("azure: index name not configured")
)

// RateLimitError represents a rate limit exceeded error with retry time.
type RateLimitError struct {
	RetryAt time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("azure: rate limit exceeded, retry at %s", e.RetryAt.Format(time.RFC3339))
}

// APIError represents an Azure Video Retrieval API error response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("azure: API error %d (%s): %s (URL: %s)", e.StatusCode, e.Code, e.Message, e.URL)
	}
	return fmt.Sprintf("azure: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return errors.Is(err, ErrIndexNotFound) || errors.Is(err, ErrIngestionNotFound)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates an invalid subscription key.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return false
}

// IsForbidden checks if the error indicates a forbidden resource.
func IsForbidden(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 403
	}
	return false
}
