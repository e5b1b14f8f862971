package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/VitaminP8/storyline/internal/access"
	"github.com/VitaminP8/storyline/internal/apperr"
	"github.com/VitaminP8/storyline/internal/media"
	"github.com/VitaminP8/storyline/internal/model"
	"github.com/VitaminP8/storyline/internal/tags"
)

// Upload - файл изображения из multipart запроса
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// ArticleInput - поля статьи как они пришли от клиента.
// Пустые Title/Body при обновлении значат "не менять", Tags == nil - поле не передано
type ArticleInput struct {
	Title string
	Body  string
	Tags  *string
	Image *Upload
}

func (s *Service) ListArticles(ctx context.Context) ([]*model.Article, error) {
	return s.Articles.ListArticles(ctx, model.ArticleFilter{})
}

func (s *Service) GetArticle(ctx context.Context, id uint) (*model.Article, error) {
	return s.Articles.GetArticle(ctx, id)
}

func (s *Service) ArticlesByTag(ctx context.Context, tag string) ([]*model.Article, error) {
	return s.Articles.ListArticles(ctx, model.ArticleFilter{Tag: tag})
}

// ArticlesByUser ищет автора по имени или email и отдает его статьи
func (s *Service) ArticlesByUser(ctx context.Context, identifier string) ([]*model.Article, error) {
	author, err := s.Users.FindUserByNameOrEmail(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return s.Articles.ListArticles(ctx, model.ArticleFilter{AuthorID: author.ID})
}

func (s *Service) Tags(ctx context.Context) ([]string, error) {
	return s.TagIndex.Distinct(ctx)
}

func (s *Service) CreateArticle(ctx context.Context, in ArticleInput) (*model.Article, error) {
	userID, err := identity(ctx)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	body := strings.TrimSpace(in.Body)
	if title == "" || body == "" {
		return nil, apperr.Validation("Title and body are required")
	}

	input := model.NewArticle{
		Title: title,
		Body:  body,
		Tags:  []string{},
	}
	if in.Tags != nil {
		input.Tags = tags.Normalize(*in.Tags)
	}

	if in.Image != nil {
		url, err := s.saveImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		input.Image = url
	}

	return s.Articles.CreateArticle(ctx, input, userID)
}

func (s *Service) UpdateArticle(ctx context.Context, id uint, in ArticleInput) (*model.Article, error) {
	userID, err := identity(ctx)
	if err != nil {
		return nil, err
	}

	_, err = access.Load(ctx, userID, func(ctx context.Context) (*model.Article, error) {
		return s.Articles.GetArticle(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	var upd model.ArticleUpdate
	if title := strings.TrimSpace(in.Title); title != "" {
		upd.Title = &title
	}
	if body := strings.TrimSpace(in.Body); body != "" {
		upd.Body = &body
	}
	if in.Tags != nil {
		normalized := tags.Normalize(*in.Tags)
		upd.Tags = &normalized
	}
	if in.Image != nil {
		url, err := s.saveImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		upd.Image = &url
	}

	return s.Articles.UpdateArticle(ctx, id, upd)
}

// DeleteArticle удаляет статью вместе с ее комментариями
func (s *Service) DeleteArticle(ctx context.Context, id uint) error {
	userID, err := identity(ctx)
	if err != nil {
		return err
	}

	_, err = access.Load(ctx, userID, func(ctx context.Context) (*model.Article, error) {
		return s.Articles.GetArticle(ctx, id)
	})
	if err != nil {
		return err
	}

	if err := s.Articles.DeleteArticle(ctx, id); err != nil {
		return err
	}
	if err := s.Comments.DeleteCommentsForArticle(ctx, id); err != nil {
		return fmt.Errorf("could not delete comments of article %d: %w", id, err)
	}
	return nil
}

func (s *Service) saveImage(ctx context.Context, upload *Upload) (string, error) {
	name, err := media.ObjectName(upload.Filename)
	if err != nil {
		return "", err
	}
	url, err := s.Media.Save(ctx, name, upload.Reader, upload.Size, upload.ContentType)
	if err != nil {
		return "", fmt.Errorf("could not save image: %w", err)
	}
	return url, nil
}
