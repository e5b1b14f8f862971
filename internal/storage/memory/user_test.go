package memory

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/VitaminP8/storyline/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMemoryStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	storage := NewUserMemoryStorage()

	t.Run("Successful user creation", func(t *testing.T) {
		user, err := storage.CreateUser(ctx, "testuser", "test@example.com", "hash")
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "testuser", user.Name)
		assert.Equal(t, "test@example.com", user.Email)
	})

	t.Run("Duplicate email is a conflict", func(t *testing.T) {
		_, err := storage.CreateUser(ctx, "dup", "dup@example.com", "hash")
		require.NoError(t, err)

		_, err = storage.CreateUser(ctx, "another", "dup@example.com", "hash")
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("Returned user is a copy", func(t *testing.T) {
		user, err := storage.CreateUser(ctx, "copy", "copy@example.com", "hash")
		require.NoError(t, err)
		user.Name = "changed"

		stored, err := storage.GetUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "copy", stored.Name)
	})

	t.Run("Concurrent user creation", func(t *testing.T) {
		var wg sync.WaitGroup
		numGoroutines := 10

		for i := 0; i < numGoroutines; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()

				email := "concurrent" + strconv.Itoa(idx) + "@example.com"
				user, err := storage.CreateUser(ctx, "concurrent_"+strconv.Itoa(idx), email, "hash")
				assert.NoError(t, err)
				if err == nil {
					assert.Equal(t, email, user.Email)
				}
			}(i)
		}

		wg.Wait()
	})
}

func TestUserMemoryStorage_Lookup(t *testing.T) {
	ctx := context.Background()
	storage := NewUserMemoryStorage()

	first, err := storage.CreateUser(ctx, "Emma", "emma@example.com", "hash")
	require.NoError(t, err)
	_, err = storage.CreateUser(ctx, "Emma", "emma2@example.com", "hash")
	require.NoError(t, err)

	t.Run("Unknown id", func(t *testing.T) {
		_, err := storage.GetUser(ctx, 42)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("Find by email", func(t *testing.T) {
		user, err := storage.FindUserByEmail(ctx, "emma@example.com")
		require.NoError(t, err)
		assert.Equal(t, first.ID, user.ID)

		_, err = storage.FindUserByEmail(ctx, "EMMA@example.com")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("Duplicate names resolve to the earliest user", func(t *testing.T) {
		user, err := storage.FindUserByNameOrEmail(ctx, "Emma")
		require.NoError(t, err)
		assert.Equal(t, first.ID, user.ID)
	})

	t.Run("Name or email miss", func(t *testing.T) {
		_, err := storage.FindUserByNameOrEmail(ctx, "emma")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
