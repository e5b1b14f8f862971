package article

import (
	"context"

	"github.com/VitaminP8/storyline/internal/model"
)

type ArticleStorage interface {
	CreateArticle(ctx context.Context, input model.NewArticle, authorID uint) (*model.Article, error)
	GetArticle(ctx context.Context, id uint) (*model.Article, error)
	ListArticles(ctx context.Context, filter model.ArticleFilter) ([]*model.Article, error)
	UpdateArticle(ctx context.Context, id uint, upd model.ArticleUpdate) (*model.Article, error)
	DeleteArticle(ctx context.Context, id uint) error
	// ListTagSets отдает теги каждой статьи (для построения индекса тегов)
	ListTagSets(ctx context.Context) ([][]string, error)
}
