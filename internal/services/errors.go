package services

import (
	"fmt"
)

// ValidationError reports bad caller input. Never retried; no transport
// call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// AuthError reports a failed token exchange. Surfaced immediately, not
// retried within a single createPayment call.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IdGenerationError reports an exhausted id or reference space.
type IdGenerationError struct {
	Prefix   string
	Attempts int
}

func (e *IdGenerationError) Error() string {
	return fmt.Sprintf("failed to generate unique id for prefix %q after %d attempts", e.Prefix, e.Attempts)
}

// ConfigurationError reports a missing default payment method.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// GatewayError is a classified non-retryable gateway failure.
type GatewayError struct {
	Code    int
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway error %d: %s", e.Code, e.Message)
}

// MaxRetriesError reports an exhausted duplicate-id/reference retry loop.
type MaxRetriesError struct {
	Attempts int
	Code     int
	Reason   string
}

func (e *MaxRetriesError) Error() string {
	return fmt.Sprintf("max retries reached after %d attempts (%s)", e.Attempts, e.Reason)
}
