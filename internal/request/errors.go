// Package request provides the resilient pipeline used for all outbound
// provider calls: rate limiting, bounded exponential-backoff retry, response
// schema formatting, and a typed error taxonomy.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"syscall"

	"google.golang.org/api/googleapi"
)

// Kind identifies a category of pipeline failure. The kind determines both
// retryability and the user-facing message the caller renders.
type Kind string

// Error kinds produced by Classify.
const (
	// KindMissingCredential indicates no API key was supplied at call time.
	KindMissingCredential Kind = "missing_credential"
	// KindInvalidCredential indicates the provider rejected the API key (HTTP 401).
	KindInvalidCredential Kind = "invalid_credential"
	// KindRateLimited indicates the provider throttled the request (HTTP 429).
	KindRateLimited Kind = "rate_limited"
	// KindNetworkUnreachable indicates a transport-level failure (DNS, connection refused).
	KindNetworkUnreachable Kind = "network_unreachable"
	// KindMalformedResponse indicates the provider replied but the payload could
	// not be parsed or lacked the expected function-call envelope.
	KindMalformedResponse Kind = "malformed_provider_response"
	// KindSchemaViolation indicates the parsed payload failed the response schema check.
	KindSchemaViolation Kind = "schema_violation"
	// KindUnknown covers everything else; the original message is preserved.
	KindUnknown Kind = "unknown_provider_error"
)

// Error is the typed error produced by the pipeline. It carries the
// originating kind, a human-readable message, and the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Retryable reports whether an attempt failing with this error may be retried.
// Credential and schema failures are terminal on first occurrence.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindRateLimited, KindNetworkUnreachable, KindUnknown:
		return true
	default:
		return false
	}
}

// NewError constructs a typed error with the given kind and message.
func NewError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// ErrMissingCredential is returned by callers that detect an absent API key
// before any provider call is made.
var ErrMissingCredential = &Error{Kind: KindMissingCredential, Message: "no API key configured"}

// Classify converts a heterogeneous transport or provider error into the
// typed taxonomy. First match wins; classification is pure.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	// Already classified; pass through unchanged.
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return NewError(KindInvalidCredential, "provider rejected the API key", err)
		case 429:
			return NewError(KindRateLimited, "provider rate limit exceeded", err)
		}
		return NewError(KindUnknown, apiErr.Message, err)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return NewError(KindNetworkUnreachable, "DNS lookup failed", err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return NewError(KindNetworkUnreachable, "network operation failed", err)
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EHOSTUNREACH) {
		return NewError(KindNetworkUnreachable, "connection refused", err)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return NewError(KindMalformedResponse, "response is not valid JSON", err)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return NewError(KindMalformedResponse, "response JSON has unexpected structure", err)
	}

	return NewError(KindUnknown, err.Error(), err)
}
