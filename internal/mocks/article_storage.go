package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/VitaminP8/storyline/internal/apperr"
	"github.com/VitaminP8/storyline/internal/model"
)

// MockArticleStorage - простое хранилище статей для тестов.
// Если Err задан, любой вызов возвращает его (имитация падения базы)
type MockArticleStorage struct {
	mu       sync.Mutex
	articles map[uint]*model.Article
	nextID   uint

	Err error
}

func NewMockArticleStorage() *MockArticleStorage {
	return &MockArticleStorage{
		articles: make(map[uint]*model.Article),
		nextID:   1,
	}
}

func (m *MockArticleStorage) CreateArticle(ctx context.Context, input model.NewArticle, authorID uint) (*model.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	now := time.Now()
	article := &model.Article{
		ID:        m.nextID,
		Title:     input.Title,
		Body:      input.Body,
		Tags:      append([]string{}, input.Tags...),
		Image:     input.Image,
		Author:    model.Author{ID: authorID},
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.nextID++
	m.articles[article.ID] = article

	copied := *article
	return &copied, nil
}

func (m *MockArticleStorage) GetArticle(ctx context.Context, id uint) (*model.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	article, ok := m.articles[id]
	if !ok {
		return nil, apperr.NotFound("Not found")
	}
	copied := *article
	return &copied, nil
}

func (m *MockArticleStorage) ListArticles(ctx context.Context, filter model.ArticleFilter) ([]*model.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	articles := make([]*model.Article, 0, len(m.articles))
	for _, article := range m.articles {
		copied := *article
		articles = append(articles, &copied)
	}
	return articles, nil
}

func (m *MockArticleStorage) UpdateArticle(ctx context.Context, id uint, upd model.ArticleUpdate) (*model.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	article, ok := m.articles[id]
	if !ok {
		return nil, apperr.NotFound("Not found")
	}
	if upd.Title != nil {
		article.Title = *upd.Title
	}
	if upd.Body != nil {
		article.Body = *upd.Body
	}
	if upd.Tags != nil {
		article.Tags = append([]string{}, (*upd.Tags)...)
	}
	if upd.Image != nil {
		article.Image = *upd.Image
	}
	article.UpdatedAt = time.Now()

	copied := *article
	return &copied, nil
}

func (m *MockArticleStorage) DeleteArticle(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.articles[id]; !ok {
		return apperr.NotFound("Not found")
	}
	delete(m.articles, id)
	return nil
}

func (m *MockArticleStorage) ListTagSets(ctx context.Context) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	sets := make([][]string, 0, len(m.articles))
	for _, article := range m.articles {
		sets = append(sets, append([]string{}, article.Tags...))
	}
	return sets, nil
}
