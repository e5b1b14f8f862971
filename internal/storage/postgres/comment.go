package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/storyline/internal/model"
	"github.com/VitaminP8/storyline/models"
	"github.com/jinzhu/gorm"
)

type CommentPostgresStorage struct {
	db *gorm.DB
}

func NewCommentPostgresStorage(db *gorm.DB) *CommentPostgresStorage {
	return &CommentPostgresStorage{db: db}
}

func (s *CommentPostgresStorage) CreateComment(ctx context.Context, text string, authorID, articleID uint) (*model.Comment, error) {
	// комментарий без статьи не создаем
	var article models.Article
	err := s.db.Select("id").First(&article, articleID).Error
	if err != nil {
		return nil, notFoundOr(err, "Not found", "could not get article")
	}

	comment := &models.Comment{
		Text:      text,
		AuthorID:  authorID,
		ArticleID: articleID,
	}

	err = s.db.Set("gorm:save_associations", false).Create(comment).Error
	if err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	return s.GetComment(ctx, comment.ID)
}

func (s *CommentPostgresStorage) GetComment(ctx context.Context, id uint) (*model.Comment, error) {
	var comment models.Comment
	err := s.db.Preload("Author").First(&comment, id).Error
	if err != nil {
		return nil, notFoundOr(err, "Not found", "could not get comment")
	}
	return toComment(&comment), nil
}

func (s *CommentPostgresStorage) ListCommentsForArticle(ctx context.Context, articleID uint) ([]*model.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("Author").
		Where("article_id = ?", articleID).
		Order("created_at desc").Order("id desc").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}

	results := make([]*model.Comment, 0, len(comments))
	for i := range comments {
		results = append(results, toComment(&comments[i]))
	}
	return results, nil
}

func (s *CommentPostgresStorage) DeleteComment(ctx context.Context, id uint) error {
	var comment models.Comment
	err := s.db.First(&comment, id).Error
	if err != nil {
		return notFoundOr(err, "Not found", "could not get comment")
	}

	err = s.db.Delete(&comment).Error
	if err != nil {
		return fmt.Errorf("could not delete comment: %w", err)
	}
	return nil
}

func (s *CommentPostgresStorage) DeleteCommentsForArticle(ctx context.Context, articleID uint) error {
	err := s.db.Where("article_id = ?", articleID).Delete(&models.Comment{}).Error
	if err != nil {
		return fmt.Errorf("could not delete comments: %w", err)
	}
	return nil
}

func toComment(c *models.Comment) *model.Comment {
	author := toAuthor(&c.Author)
	author.ID = c.AuthorID
	return &model.Comment{
		ID:        c.ID,
		Text:      c.Text,
		Author:    author,
		ArticleID: c.ArticleID,
		CreatedAt: c.CreatedAt,
	}
}
