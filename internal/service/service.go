// Package service связывает хранилища, проверку токенов и права доступа
// в операции, которые вызывает HTTP слой.
package service

import (
	"context"

	"github.com/VitaminP8/storyline/internal/apperr"
	"github.com/VitaminP8/storyline/internal/article"
	"github.com/VitaminP8/storyline/internal/auth"
	"github.com/VitaminP8/storyline/internal/comment"
	"github.com/VitaminP8/storyline/internal/media"
	"github.com/VitaminP8/storyline/internal/tags"
	"github.com/VitaminP8/storyline/internal/user"
)

// Service служит корневой точкой для всех операций.
// Зависимости внедряются из main
type Service struct {
	Users    user.UserStorage
	Articles article.ArticleStorage
	Comments comment.CommentStorage
	Tokens   *auth.TokenManager
	Hasher   *auth.Hasher
	Media    media.Store
	TagIndex *tags.Index
}

func New(
	users user.UserStorage,
	articles article.ArticleStorage,
	comments comment.CommentStorage,
	tokens *auth.TokenManager,
	hasher *auth.Hasher,
	store media.Store,
) *Service {
	return &Service{
		Users:    users,
		Articles: articles,
		Comments: comments,
		Tokens:   tokens,
		Hasher:   hasher,
		Media:    store,
		TagIndex: tags.NewIndex(articles),
	}
}

// identity - id вызывающего, положенный в контекст middleware RequireAuth
func identity(ctx context.Context) (uint, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return 0, apperr.Unauthenticated("No token")
	}
	return userID, nil
}
