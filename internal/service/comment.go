package service

import (
	"context"
	"strings"

	"github.com/VitaminP8/storyline/internal/access"
	"github.com/VitaminP8/storyline/internal/apperr"
	"github.com/VitaminP8/storyline/internal/model"
)

func (s *Service) ListComments(ctx context.Context, articleID uint) ([]*model.Comment, error) {
	return s.Comments.ListCommentsForArticle(ctx, articleID)
}

func (s *Service) CreateComment(ctx context.Context, articleID uint, text string) (*model.Comment, error) {
	userID, err := identity(ctx)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("Text is required")
	}

	return s.Comments.CreateComment(ctx, text, userID, articleID)
}

func (s *Service) DeleteComment(ctx context.Context, id uint) error {
	userID, err := identity(ctx)
	if err != nil {
		return err
	}

	_, err = access.Load(ctx, userID, func(ctx context.Context) (*model.Comment, error) {
		return s.Comments.GetComment(ctx, id)
	})
	if err != nil {
		return err
	}

	return s.Comments.DeleteComment(ctx, id)
}
