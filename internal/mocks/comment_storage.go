package mocks

import (
	"context"
	"sync"

	"github.com/VitaminP8/storyline/internal/apperr"
	"github.com/VitaminP8/storyline/internal/model"
)

// MockCommentStorage запоминает каскадные удаления, чтобы тест мог их проверить
type MockCommentStorage struct {
	mu       sync.Mutex
	comments map[uint]*model.Comment
	nextID   uint

	DeletedForArticles []uint
	Err                error
}

func NewMockCommentStorage() *MockCommentStorage {
	return &MockCommentStorage{
		comments: make(map[uint]*model.Comment),
		nextID:   1,
	}
}

func (m *MockCommentStorage) CreateComment(ctx context.Context, text string, authorID, articleID uint) (*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	comment := &model.Comment{
		ID:        m.nextID,
		Text:      text,
		Author:    model.Author{ID: authorID},
		ArticleID: articleID,
	}
	m.nextID++
	m.comments[comment.ID] = comment

	copied := *comment
	return &copied, nil
}

func (m *MockCommentStorage) GetComment(ctx context.Context, id uint) (*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	comment, ok := m.comments[id]
	if !ok {
		return nil, apperr.NotFound("Not found")
	}
	copied := *comment
	return &copied, nil
}

func (m *MockCommentStorage) ListCommentsForArticle(ctx context.Context, articleID uint) ([]*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	comments := make([]*model.Comment, 0)
	for _, comment := range m.comments {
		if comment.ArticleID == articleID {
			copied := *comment
			comments = append(comments, &copied)
		}
	}
	return comments, nil
}

func (m *MockCommentStorage) DeleteComment(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.comments[id]; !ok {
		return apperr.NotFound("Not found")
	}
	delete(m.comments, id)
	return nil
}

func (m *MockCommentStorage) DeleteCommentsForArticle(ctx context.Context, articleID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.DeletedForArticles = append(m.DeletedForArticles, articleID)
	for id, comment := range m.comments {
		if comment.ArticleID == articleID {
			delete(m.comments, id)
		}
	}
	return nil
}
