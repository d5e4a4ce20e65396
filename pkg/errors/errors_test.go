package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	plain := NewNotFoundError("medicine not found")
	assert.Equal(t, "NOT_FOUND: medicine not found", plain.Error())

	wrapped := NewInternalError("query failed", fmt.Errorf("connection reset"))
	assert.Equal(t, "INTERNAL: query failed: connection reset", wrapped.Error())
	assert.EqualError(t, wrapped.Unwrap(), "connection reset")
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrorTypeConflict, TypeOf(NewConflictError("already active")))
	assert.Equal(t, ErrorTypeNotFound, TypeOf(fmt.Errorf("wrapped: %w", NewNotFoundError("gone"))))
	assert.Equal(t, ErrorTypeInternal, TypeOf(fmt.Errorf("plain error")))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("x")))
	assert.False(t, IsNotFound(NewValidationError("x")))
	assert.True(t, IsConflict(NewConflictError("x")))
	assert.False(t, IsConflict(nil))
}
