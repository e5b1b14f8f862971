package memory

import (
	"context"
	"testing"

	"github.com/VitaminP8/storyline/internal/apperr"
	"github.com/VitaminP8/storyline/internal/mocks"
	"github.com/VitaminP8/storyline/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentMemoryStorage(t *testing.T) {
	ctx := context.Background()
	users := NewUserMemoryStorage()
	author, err := users.CreateUser(ctx, "author", "author@example.com", "hash")
	require.NoError(t, err)

	articles := mocks.NewMockArticleStorage()
	article, err := articles.CreateArticle(ctx, model.NewArticle{Title: "t", Body: "b"}, author.ID)
	require.NoError(t, err)

	storage := NewCommentMemoryStorage(articles, users)

	t.Run("Successful comment creation", func(t *testing.T) {
		comment, err := storage.CreateComment(ctx, "Nice", author.ID, article.ID)
		require.NoError(t, err)
		assert.NotZero(t, comment.ID)
		assert.Equal(t, article.ID, comment.ArticleID)
		assert.Equal(t, "author", comment.Author.Name)
		assert.False(t, comment.CreatedAt.IsZero())
	})

	t.Run("Comment on missing article", func(t *testing.T) {
		_, err := storage.CreateComment(ctx, "Nice", author.ID, 404)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("List newest first", func(t *testing.T) {
		second, err := storage.CreateComment(ctx, "Second", author.ID, article.ID)
		require.NoError(t, err)

		list, err := storage.ListCommentsForArticle(ctx, article.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
	})

	t.Run("Delete single comment", func(t *testing.T) {
		comment, err := storage.CreateComment(ctx, "Bye", author.ID, article.ID)
		require.NoError(t, err)

		require.NoError(t, storage.DeleteComment(ctx, comment.ID))
		_, err = storage.GetComment(ctx, comment.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.ErrorIs(t, storage.DeleteComment(ctx, comment.ID), apperr.ErrNotFound)
	})

	t.Run("Delete comments of article", func(t *testing.T) {
		require.NoError(t, storage.DeleteCommentsForArticle(ctx, article.ID))
		list, err := storage.ListCommentsForArticle(ctx, article.ID)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})
}
