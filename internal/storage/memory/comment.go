package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/storyline/internal/apperr"
	"github.com/VitaminP8/storyline/internal/article"
	"github.com/VitaminP8/storyline/internal/model"
	"github.com/VitaminP8/storyline/internal/user"
)

type CommentMemoryStorage struct {
	mu       sync.Mutex
	comments map[uint]*model.Comment
	nextID   uint
	articles article.ArticleStorage // Хранилище статей (внедрение зависимости (DI))
	users    user.UserStorage
	now      func() time.Time
}

func NewCommentMemoryStorage(articles article.ArticleStorage, users user.UserStorage) *CommentMemoryStorage {
	return &CommentMemoryStorage{
		comments: make(map[uint]*model.Comment),
		nextID:   1,
		articles: articles,
		users:    users,
		now:      time.Now,
	}
}

func (s *CommentMemoryStorage) CreateComment(ctx context.Context, text string, authorID, articleID uint) (*model.Comment, error) {
	// комментарий без статьи не создаем
	if _, err := s.articles.GetArticle(ctx, articleID); err != nil {
		return nil, err
	}

	author := model.Author{ID: authorID}
	if u, err := s.users.GetUser(ctx, authorID); err == nil {
		author = u.AsAuthor()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	comment := &model.Comment{
		ID:        s.nextID,
		Text:      text,
		Author:    author,
		ArticleID: articleID,
		CreatedAt: s.now(),
	}
	s.nextID++
	s.comments[comment.ID] = comment

	copied := *comment
	return &copied, nil
}

func (s *CommentMemoryStorage) GetComment(ctx context.Context, id uint) (*model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, exists := s.comments[id]
	if !exists {
		return nil, apperr.NotFound("Not found")
	}
	copied := *comment
	return &copied, nil
}

func (s *CommentMemoryStorage) ListCommentsForArticle(ctx context.Context, articleID uint) ([]*model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]*model.Comment, 0)
	for _, comment := range s.comments {
		if comment.ArticleID == articleID {
			copied := *comment
			results = append(results, &copied)
		}
	}

	// сначала новые
	sort.Slice(results, func(i, j int) bool {
		if !results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		}
		return results[i].ID > results[j].ID
	})
	return results, nil
}

func (s *CommentMemoryStorage) DeleteComment(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.comments[id]; !exists {
		return apperr.NotFound("Not found")
	}
	delete(s.comments, id)
	return nil
}

func (s *CommentMemoryStorage) DeleteCommentsForArticle(ctx context.Context, articleID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, comment := range s.comments {
		if comment.ArticleID == articleID {
			delete(s.comments, id)
		}
	}
	return nil
}
