package sharepoint

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
)

// SharePoint-specific errors.
var (
	// ErrInvalidSiteURL indicates the site URL is not an absolute http(s) URL.
	ErrInvalidSiteURL = errors.New("sharepoint: invalid site URL")

	// ErrMissingCredentials indicates neither NTLM credentials nor a token were given.
	ErrMissingCredentials = errors.New("sharepoint: missing credentials")

	// ErrMalformedResponse indicates the search response could not be decoded.
	ErrMalformedResponse = errors.New("sharepoint: malformed search response")
)

// RateLimitError represents a throttled request with the time it may be retried.
type RateLimitError struct {
	StatusCode int
	RetryAt    time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("sharepoint: throttled (%d), retry at %s", e.StatusCode, e.RetryAt.Format(time.RFC3339))
}

func (e *RateLimitError) Unwrap() error {
	return domain.ErrRateLimited
}

// APIError represents a non-success SharePoint response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("sharepoint: API error %d (%s): %s (URL: %s)", e.StatusCode, e.Code, e.Message, e.URL)
	}
	return fmt.Sprintf("sharepoint: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return domain.ErrAuthInvalid
	}
	return domain.ErrSearchFailed
}

// IsRateLimited checks if the error indicates throttling.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates rejected credentials.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsForbidden checks if the error indicates insufficient permissions.
func IsForbidden(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusForbidden
	}
	return false
}
