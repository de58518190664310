package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Accumulates(t *testing.T) {
	var verr ValidationError
	assert.NoError(t, verr.OrNil())

	verr.Add("first")
	verr.Add("second")
	err := verr.OrNil()
	assert.EqualError(t, err, "first; second")

	var target *ValidationError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &target))
	assert.Equal(t, []string{"first", "second"}, target.Messages)
}

func TestWrappedKinds(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NotFound("Patient not found"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.EqualError(t, NotFound("Patient not found"), "Patient not found")

	assert.ErrorIs(t, Authentication("Invalid credentials"), ErrAuthentication)
	assert.ErrorIs(t, Conflict("taken"), ErrConflict)
}
