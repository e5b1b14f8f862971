package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_KindSurvivesWrapping(t *testing.T) {
	t.Run("Wrapped not found is still not found", func(t *testing.T) {
		err := fmt.Errorf("could not get article: %w", NotFound("Not found"))

		assert.True(t, errors.Is(err, ErrNotFound))
		assert.False(t, errors.Is(err, ErrForbidden))
	})

	t.Run("Each constructor carries its own kind", func(t *testing.T) {
		assert.ErrorIs(t, Validation("x"), ErrValidation)
		assert.ErrorIs(t, Unauthenticated("x"), ErrUnauthenticated)
		assert.ErrorIs(t, Forbidden("x"), ErrForbidden)
		assert.ErrorIs(t, NotFound("x"), ErrNotFound)
		assert.ErrorIs(t, Conflict("x"), ErrConflict)
	})
}

func TestMessage(t *testing.T) {
	t.Run("Message from wrapped app error", func(t *testing.T) {
		err := fmt.Errorf("signup: %w", Conflict("User already exists"))
		assert.Equal(t, "User already exists", Message(err, "Server error"))
	})

	t.Run("Fallback for plain errors", func(t *testing.T) {
		err := errors.New("pq: connection refused")
		assert.Equal(t, "Server error", Message(err, "Server error"))
	})
}
