package service

import (
	"context"
	"testing"

	"github.com/VitaminP8/storyline/internal/apperr"
	"github.com/VitaminP8/storyline/internal/auth"
	"github.com/VitaminP8/storyline/internal/mocks"
	"github.com/VitaminP8/storyline/internal/storage/postgres"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newSQLService собирает сервис на gorm-хранилищах поверх sqlite в памяти
func newSQLService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.DB().SetMaxOpenConns(1)
	require.NoError(t, postgres.Migrate(db))
	t.Cleanup(func() { _ = postgres.Close(db) })

	tokens, err := auth.NewTokenManager("test_jwt_secret")
	require.NoError(t, err)

	return New(
		postgres.NewUserPostgresStorage(db),
		postgres.NewArticlePostgresStorage(db),
		postgres.NewCommentPostgresStorage(db),
		tokens,
		auth.NewHasher(bcrypt.MinCost),
		mocks.NewMockMediaStore(),
	)
}

func TestService_SQLStorage_EndToEnd(t *testing.T) {
	ctx := context.Background()
	svc := newSQLService(t)

	_, err := svc.Signup(ctx, "Sarah", "sarah@example.com", "pw")
	require.NoError(t, err)

	login, err := svc.Login(ctx, "sarah@example.com", "pw")
	require.NoError(t, err)
	userID, err := svc.Tokens.Resolve(login.Token)
	require.NoError(t, err)
	sarah := createUserContext(userID)

	article, err := svc.CreateArticle(sarah, ArticleInput{Title: "Go tips", Body: "Use interfaces", Tags: strPtr("go, backend, go")})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "backend"}, article.Tags)
	assert.Equal(t, userID, article.OwnerID())

	t.Run("Article is listed by tag", func(t *testing.T) {
		list, err := svc.ArticlesByTag(ctx, "backend")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, article.ID, list[0].ID)
	})

	t.Run("Updating tags replaces the set", func(t *testing.T) {
		updated, err := svc.UpdateArticle(sarah, article.ID, ArticleInput{Tags: strPtr("rust")})
		require.NoError(t, err)
		assert.Equal(t, "Go tips", updated.Title)
		assert.Equal(t, []string{"rust"}, updated.Tags)

		list, err := svc.ArticlesByTag(ctx, "backend")
		require.NoError(t, err)
		assert.Empty(t, list)

		tags, err := svc.Tags(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"rust"}, tags)
	})

	t.Run("Another user cannot update the article", func(t *testing.T) {
		other := signup(t, svc, "Bob", "bob@example.com")
		_, err := svc.UpdateArticle(other, article.ID, ArticleInput{Title: "mine"})
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("Deleting the article removes its comments", func(t *testing.T) {
		_, err := svc.CreateComment(sarah, article.ID, "first")
		require.NoError(t, err)

		require.NoError(t, svc.DeleteArticle(sarah, article.ID))

		_, err = svc.GetArticle(ctx, article.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		comments, err := svc.ListComments(ctx, article.ID)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})
}
