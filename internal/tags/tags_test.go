package tags

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	sets [][]string
	err  error
}

func (s staticSource) ListTagSets(ctx context.Context) ([][]string, error) {
	return s.sets, s.err
}

func TestNormalize(t *testing.T) {
	t.Run("Split, trim and drop empty pieces", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b"}, Normalize("a, b"))
		assert.Equal(t, []string{"b", "c"}, Normalize("b,c"))
		assert.Equal(t, []string{}, Normalize(" "))
		assert.Equal(t, []string{}, Normalize(""))
		assert.Equal(t, []string{"go", "web dev"}, Normalize(" go ,, web dev ,"))
	})

	t.Run("Repeated tags are collapsed keeping first position", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b"}, Normalize("a,b, a ,b"))
	})

	t.Run("Case is preserved", func(t *testing.T) {
		assert.Equal(t, []string{"Go", "go"}, Normalize("Go,go"))
	})
}

func TestIndex_Distinct(t *testing.T) {
	t.Run("Flatten, dedupe and sort", func(t *testing.T) {
		index := NewIndex(staticSource{sets: [][]string{
			Normalize("a, b"),
			Normalize("b,c"),
			Normalize(" "),
		}})

		result, err := index.Distinct(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, result)
	})

	t.Run("Empty corpus gives empty list, not nil", func(t *testing.T) {
		index := NewIndex(staticSource{})

		result, err := index.Distinct(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("Source error is propagated", func(t *testing.T) {
		index := NewIndex(staticSource{err: errors.New("db is down")})

		_, err := index.Distinct(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "db is down")
	})
}
