package usecase

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can branch on it instead of matching
// message text.
type Kind int

const (
	// KindInternal is the zero-value bucket for unexpected defects.
	KindInternal Kind = iota
	// KindUnauthenticated means no valid credential accompanied the request.
	KindUnauthenticated
	// KindPermissionDenied means a known identity lacks the required role.
	KindPermissionDenied
	// KindNotFound means the referenced record does not exist.
	KindNotFound
	// KindAlreadyValidated means the one-shot review transition already ran.
	KindAlreadyValidated
	// KindUnsupportedMediaType means the upload is not an image.
	KindUnsupportedMediaType
	// KindInferenceFailure means the scorer errored or timed out.
	KindInferenceFailure
	// KindMalformedScoreVector means the scorer broke its output contract.
	KindMalformedScoreVector
	// KindInvalidRole means a role value outside the closed set.
	KindInvalidRole
	// KindUnavailable means a backing service failed transiently; retryable.
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindPermissionDenied:
		return "permission_denied"
	case KindNotFound:
		return "not_found"
	case KindAlreadyValidated:
		return "already_validated"
	case KindUnsupportedMediaType:
		return "unsupported_media_type"
	case KindInferenceFailure:
		return "inference_failure"
	case KindMalformedScoreVector:
		return "malformed_score_vector"
	case KindInvalidRole:
		return "invalid_role"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error is the tagged failure type returned by every use case operation.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is a transient backend outage. The
// auth middleware uses it to tell an outage apart from a bad credential.
func (e *Error) Retryable() bool {
	return e.Kind == KindUnavailable
}

// NewError builds a tagged error without an underlying cause.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError builds a tagged error around an underlying cause.
func WrapError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from any error in the chain, defaulting to
// KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
