package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/VitaminP8/storyline/internal/model"
	"github.com/VitaminP8/storyline/models"
	"github.com/jinzhu/gorm"
)

type ArticlePostgresStorage struct {
	db *gorm.DB
}

func NewArticlePostgresStorage(db *gorm.DB) *ArticlePostgresStorage {
	return &ArticlePostgresStorage{db: db}
}

func (s *ArticlePostgresStorage) CreateArticle(ctx context.Context, input model.NewArticle, authorID uint) (*model.Article, error) {
	article := &models.Article{
		Title:    input.Title,
		Body:     input.Body,
		Image:    input.Image,
		AuthorID: authorID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// ассоциации сохраняем сами, чтобы gorm не трогал пользователя-автора
		if err := tx.Set("gorm:save_associations", false).Create(article).Error; err != nil {
			return err
		}
		return replaceTags(tx, article.ID, input.Tags)
	})
	if err != nil {
		return nil, fmt.Errorf("could not create article: %w", err)
	}

	return s.GetArticle(ctx, article.ID)
}

func (s *ArticlePostgresStorage) GetArticle(ctx context.Context, id uint) (*model.Article, error) {
	var article models.Article
	err := s.withRefs().First(&article, id).Error
	if err != nil {
		return nil, notFoundOr(err, "Not found", "could not get article")
	}
	return toArticle(&article), nil
}

func (s *ArticlePostgresStorage) ListArticles(ctx context.Context, filter model.ArticleFilter) ([]*model.Article, error) {
	query := s.withRefs().Order("created_at desc").Order("id desc")

	if filter.AuthorID != 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Tag != "" {
		var ids []uint
		err := s.db.Model(&models.ArticleTag{}).Where("name = ?", filter.Tag).Pluck("article_id", &ids).Error
		if err != nil {
			return nil, fmt.Errorf("could not get articles by tag: %w", err)
		}
		if len(ids) == 0 {
			return []*model.Article{}, nil
		}
		query = query.Where("id IN (?)", ids)
	}

	var articles []models.Article
	if err := query.Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("could not get articles: %w", err)
	}

	results := make([]*model.Article, 0, len(articles))
	for i := range articles {
		results = append(results, toArticle(&articles[i]))
	}
	return results, nil
}

func (s *ArticlePostgresStorage) UpdateArticle(ctx context.Context, id uint, upd model.ArticleUpdate) (*model.Article, error) {
	var article models.Article
	err := s.db.First(&article, id).Error
	if err != nil {
		return nil, notFoundOr(err, "Not found", "could not get article")
	}

	fields := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.Body != nil {
		fields["body"] = *upd.Body
	}
	if upd.Image != nil {
		fields["image"] = *upd.Image
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Set("gorm:save_associations", false).Model(&article).Updates(fields).Error; err != nil {
			return err
		}
		if upd.Tags != nil {
			return replaceTags(tx, article.ID, *upd.Tags)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not update article: %w", err)
	}

	return s.GetArticle(ctx, id)
}

func (s *ArticlePostgresStorage) DeleteArticle(ctx context.Context, id uint) error {
	var article models.Article
	err := s.db.First(&article, id).Error
	if err != nil {
		return notFoundOr(err, "Not found", "could not get article")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&models.ArticleTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&article).Error
	})
	if err != nil {
		return fmt.Errorf("could not delete article: %w", err)
	}
	return nil
}

func (s *ArticlePostgresStorage) ListTagSets(ctx context.Context) ([][]string, error) {
	var rows []models.ArticleTag
	err := s.db.Joins("JOIN articles ON articles.id = article_tags.article_id AND articles.deleted_at IS NULL").
		Order("article_tags.article_id, article_tags.position").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get tags: %w", err)
	}

	var sets [][]string
	var current uint
	for _, row := range rows {
		if len(sets) == 0 || row.ArticleID != current {
			sets = append(sets, []string{})
			current = row.ArticleID
		}
		sets[len(sets)-1] = append(sets[len(sets)-1], row.Name)
	}
	return sets, nil
}

// withRefs подтягивает автора и теги (в исходном порядке)
func (s *ArticlePostgresStorage) withRefs() *gorm.DB {
	return s.db.Preload("Author").Preload("Tags", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	})
}

func replaceTags(tx *gorm.DB, articleID uint, tags []string) error {
	if err := tx.Where("article_id = ?", articleID).Delete(&models.ArticleTag{}).Error; err != nil {
		return err
	}
	for i, name := range tags {
		tag := &models.ArticleTag{ArticleID: articleID, Name: name, Position: i}
		if err := tx.Create(tag).Error; err != nil {
			return err
		}
	}
	return nil
}

func toArticle(a *models.Article) *model.Article {
	tags := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		tags = append(tags, t.Name)
	}
	// id берем из внешнего ключа: строки автора может уже не быть
	author := toAuthor(&a.Author)
	author.ID = a.AuthorID
	return &model.Article{
		ID:        a.ID,
		Title:     a.Title,
		Body:      a.Body,
		Tags:      tags,
		Image:     a.Image,
		Author:    author,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
