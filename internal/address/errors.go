package address

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

func NewLookupError(errType ErrorType, message string, cause error) *LookupError {
	return &LookupError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

func NewInvalidPostcodeError(postcode string) *LookupError {
	err := NewLookupError(ErrInvalidPostcode, fmt.Sprintf("invalid postcode: %q", postcode), nil)
	err.Postcode = postcode
	return err
}

func NewNotFoundError(postcode string) *LookupError {
	err := NewLookupError(ErrNotFound, fmt.Sprintf("postcode %s not found", postcode), nil)
	err.Postcode = postcode
	return err
}

func NewNetworkError(message string, cause error) *LookupError {
	return NewLookupError(ErrNetwork, message, cause)
}

func NewStatusError(code int) *LookupError {
	err := NewLookupError(ErrUnexpectedStatus, fmt.Sprintf("unexpected status %d", code), nil)
	err.Code = code
	return err
}

func NewMalformedResponseError(cause error) *LookupError {
	return NewLookupError(ErrMalformedResponse, "malformed response body", cause)
}

// ClassifyError maps an arbitrary failure onto a LookupError
func ClassifyError(err error) *LookupError {
	if err == nil {
		return nil
	}

	var lookupErr *LookupError
	if errors.As(err, &lookupErr) {
		return lookupErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewLookupError(ErrTimeout, "lookup timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return NewNetworkError("lookup cancelled", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewLookupError(ErrTimeout, "lookup timed out", err)
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded"):
		return NewLookupError(ErrTimeout, "lookup timed out", err)
	case strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "too many requests"):
		return NewLookupError(ErrRateLimited, "rate limited", err)
	default:
		return NewNetworkError("connection failed", err)
	}
}

// IsType reports whether err is a LookupError of the given type
func IsType(err error, errType ErrorType) bool {
	var lookupErr *LookupError
	return errors.As(err, &lookupErr) && lookupErr.Type == errType
}
