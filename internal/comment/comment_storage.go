package comment

import (
	"context"

	"github.com/VitaminP8/storyline/internal/model"
)

type CommentStorage interface {
	CreateComment(ctx context.Context, text string, authorID, articleID uint) (*model.Comment, error)
	GetComment(ctx context.Context, id uint) (*model.Comment, error)
	ListCommentsForArticle(ctx context.Context, articleID uint) ([]*model.Comment, error)
	DeleteComment(ctx context.Context, id uint) error
	DeleteCommentsForArticle(ctx context.Context, articleID uint) error
}
