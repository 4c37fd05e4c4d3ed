package types

import "fmt"

// ValidationError indicates user-correctable bad input and maps to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthError indicates a missing or invalid identity and maps to 401.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// UpstreamQuotaError is returned when the AI provider reports rate-limit or
// quota exhaustion. The provider status (429 or 402) is passed through to the
// caller unchanged.
type UpstreamQuotaError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamQuotaError) Error() string {
	return fmt.Sprintf("upstream provider returned %d: %s", e.StatusCode, e.Message)
}

// GenerationFormatError indicates that the model output could not be parsed
// into recipes, or that no recipes were returned. Fatal for the request; the
// pipeline does not retry at this layer.
type GenerationFormatError struct {
	Message string
}

func (e *GenerationFormatError) Error() string {
	return e.Message
}

// PersistenceError indicates that the session write failed. Already generated
// recipes are discarded rather than retried.
type PersistenceError struct {
	Message string
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
