package address

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupErrorError(t *testing.T) {
	err := NewLookupError(ErrNotFound, "postcode not found", nil)
	assert.Equal(t, "postcode not found", err.Error())

	cause := errors.New("connection reset")
	err = NewNetworkError("connection failed", cause)
	assert.Equal(t, "connection failed: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{"deadline", context.DeadlineExceeded, ErrTimeout},
		{"wrapped deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), ErrTimeout},
		{"cancelled", context.Canceled, ErrNetwork},
		{"timeout text", errors.New("i/o timeout"), ErrTimeout},
		{"too many requests", errors.New("429 Too Many Requests"), ErrRateLimited},
		{"refused", errors.New("dial tcp: connection refused"), ErrNetwork},
		{"already classified", NewNotFoundError("01001000"), ErrNotFound},
		{"wrapped classified", fmt.Errorf("lookup: %w", NewStatusError(502)), ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyError(tt.err).Type)
		})
	}

	assert.Nil(t, ClassifyError(nil))
}

func TestIsType(t *testing.T) {
	err := fmt.Errorf("fetch: %w", NewInvalidPostcodeError("123"))

	assert.True(t, IsType(err, ErrInvalidPostcode))
	assert.False(t, IsType(err, ErrNotFound))
	assert.False(t, IsType(errors.New("plain"), ErrNetwork))
}
