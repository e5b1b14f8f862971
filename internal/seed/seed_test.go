package seed

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/VitaminP8/storyline/internal/auth"
	"github.com/VitaminP8/storyline/internal/model"
	"github.com/VitaminP8/storyline/internal/storage/postgres"
	"github.com/VitaminP8/storyline/models"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.DB().SetMaxOpenConns(1)
	require.NoError(t, postgres.Migrate(db))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	hasher := auth.NewHasher(bcrypt.MinCost)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Seeds users and articles", func(t *testing.T) {
		res, err := Run(db, hasher, rand.New(rand.NewSource(1)), now)
		require.NoError(t, err)
		assert.Equal(t, Result{Users: 5, Articles: 8}, res)
	})

	t.Run("Seeded users can log in", func(t *testing.T) {
		users := postgres.NewUserPostgresStorage(db)
		user, err := users.FindUserByEmail(ctx, "sarah.chen@example.com")
		require.NoError(t, err)
		assert.True(t, hasher.Verify(DefaultPassword, user.PasswordHash))
	})

	t.Run("Creation times are within the last 30 days", func(t *testing.T) {
		list, err := postgres.NewArticlePostgresStorage(db).ListArticles(ctx, model.ArticleFilter{})
		require.NoError(t, err)
		require.Len(t, list, 8)
		for _, a := range list {
			assert.False(t, a.CreatedAt.After(now))
			assert.True(t, a.CreatedAt.After(now.Add(-spread)))
			assert.NotEmpty(t, a.Tags)
		}
	})

	t.Run("Running again replaces the data", func(t *testing.T) {
		_, err := Run(db, hasher, rand.New(rand.NewSource(2)), now)
		require.NoError(t, err)

		var count int
		require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
		assert.Equal(t, 5, count)
	})
}
