package footballdata

import "errors"

// ProviderError represents errors from football-data.org operations
type ProviderError struct {
	Code    string // Error code (e.g. "rate_limit_exceeded")
	Message string // Error message
	Status  int    // HTTP status, 0 when the request never completed
	Err     error  // Underlying error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return "football-data: " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return "football-data: " + e.Code + ": " + e.Message
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Common error codes
const (
	ErrCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrCodeRequestFailed     = "request_failed"
	ErrCodeBadStatus         = "bad_status"
	ErrCodeInvalidPayload    = "invalid_payload"
)

// ErrNoData marks a call that exhausted its attempts or hit a permanent
// provider failure. The pipeline treats it as "this competition
// contributes zero records" and carries on.
var ErrNoData = errors.New("no usable data from provider")

// NewProviderError creates a new provider error
func NewProviderError(code, message string, status int, err error) *ProviderError {
	return &ProviderError{Code: code, Message: message, Status: status, Err: err}
}
