package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	backendWorded := NewDomainError(ErrNotFound.Code, "No product found with this id")

	assert.ErrorIs(t, backendWorded, ErrNotFound)
	assert.NotErrorIs(t, backendWorded, ErrForbidden)

	// Wrapping keeps the category match
	wrapped := fmt.Errorf("loading product: %w", backendWorded)
	assert.ErrorIs(t, wrapped, ErrNotFound)
}

func TestMessage(t *testing.T) {
	assert.Empty(t, Message(nil))
	assert.Equal(t, "plain failure", Message(errors.New("plain failure")))

	de := NewDomainError(ErrValidation.Code, "Email already in use")
	assert.Equal(t, "Email already in use", Message(de))
	assert.Equal(t, "Email already in use", Message(fmt.Errorf("signup: %w", de)))
}
