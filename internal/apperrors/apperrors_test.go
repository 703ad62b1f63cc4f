package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindConflict, KindOf(Conflict("dup")))
	assert.Equal(t, KindInvalidRequest, KindOf(InvalidRequest("bad")))
	assert.Equal(t, KindStateConflict, KindOf(StateConflict("stale")))
	assert.Equal(t, KindAmbiguous, KindOf(Ambiguous("which one")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("loading product: %w", NotFound("product not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(nil, KindNotFound))
}

func TestErrorMessage_WithViolations(t *testing.T) {
	err := InvalidFields("invalid product request", []FieldViolation{
		{Field: "name", Reason: "name is required"},
		{Field: "selling_price", Reason: "selling price must be positive"},
	})

	assert.Equal(t,
		"invalid product request: name: name is required; selling_price: selling price must be positive",
		err.Error())
	assert.Equal(t, KindInvalidRequest, KindOf(err))
}

func TestInternal_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause, "query failed")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "query failed: connection refused", err.Error())
}
