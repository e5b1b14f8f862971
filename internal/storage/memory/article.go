package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/storyline/internal/apperr"
	"github.com/VitaminP8/storyline/internal/model"
	"github.com/VitaminP8/storyline/internal/user"
)

type articleRecord struct {
	article  model.Article
	authorID uint
}

type ArticleMemoryStorage struct {
	mu       sync.Mutex
	articles map[uint]*articleRecord
	nextId   uint
	users    user.UserStorage
	now      func() time.Time
}

// NewArticleMemoryStorage - автор разворачивается из хранилища пользователей при каждом чтении
func NewArticleMemoryStorage(users user.UserStorage) *ArticleMemoryStorage {
	return &ArticleMemoryStorage{
		articles: make(map[uint]*articleRecord),
		nextId:   1,
		users:    users,
		now:      time.Now,
	}
}

func (s *ArticleMemoryStorage) CreateArticle(ctx context.Context, input model.NewArticle, authorID uint) (*model.Article, error) {
	s.mu.Lock()
	now := s.now()
	record := &articleRecord{
		article: model.Article{
			ID:        s.nextId,
			Title:     input.Title,
			Body:      input.Body,
			Tags:      copyTags(input.Tags),
			Image:     input.Image,
			CreatedAt: now,
			UpdatedAt: now,
		},
		authorID: authorID,
	}
	s.nextId++
	s.articles[record.article.ID] = record
	snapshot := *record
	s.mu.Unlock()

	return s.resolve(ctx, &snapshot)
}

func (s *ArticleMemoryStorage) GetArticle(ctx context.Context, id uint) (*model.Article, error) {
	s.mu.Lock()
	record, exists := s.articles[id]
	if !exists {
		s.mu.Unlock()
		return nil, apperr.NotFound("Not found")
	}
	snapshot := *record
	s.mu.Unlock()

	return s.resolve(ctx, &snapshot)
}

func (s *ArticleMemoryStorage) ListArticles(ctx context.Context, filter model.ArticleFilter) ([]*model.Article, error) {
	s.mu.Lock()
	var snapshots []articleRecord
	for _, record := range s.articles {
		if filter.AuthorID != 0 && record.authorID != filter.AuthorID {
			continue
		}
		if filter.Tag != "" && !hasTag(record.article.Tags, filter.Tag) {
			continue
		}
		snapshots = append(snapshots, *record)
	}
	s.mu.Unlock()

	sort.Slice(snapshots, func(i, j int) bool {
		a, b := snapshots[i].article, snapshots[j].article
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	results := make([]*model.Article, 0, len(snapshots))
	for i := range snapshots {
		article, err := s.resolve(ctx, &snapshots[i])
		if err != nil {
			return nil, err
		}
		results = append(results, article)
	}
	return results, nil
}

func (s *ArticleMemoryStorage) UpdateArticle(ctx context.Context, id uint, upd model.ArticleUpdate) (*model.Article, error) {
	s.mu.Lock()
	record, exists := s.articles[id]
	if !exists {
		s.mu.Unlock()
		return nil, apperr.NotFound("Not found")
	}

	if upd.Title != nil {
		record.article.Title = *upd.Title
	}
	if upd.Body != nil {
		record.article.Body = *upd.Body
	}
	if upd.Tags != nil {
		record.article.Tags = copyTags(*upd.Tags)
	}
	if upd.Image != nil {
		record.article.Image = *upd.Image
	}
	record.article.UpdatedAt = s.now()
	snapshot := *record
	s.mu.Unlock()

	return s.resolve(ctx, &snapshot)
}

func (s *ArticleMemoryStorage) DeleteArticle(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.articles[id]; !exists {
		return apperr.NotFound("Not found")
	}
	delete(s.articles, id)
	return nil
}

func (s *ArticleMemoryStorage) ListTagSets(ctx context.Context) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sets := make([][]string, 0, len(s.articles))
	for _, record := range s.articles {
		sets = append(sets, copyTags(record.article.Tags))
	}
	return sets, nil
}

// resolve отдает копию статьи с развернутым автором
func (s *ArticleMemoryStorage) resolve(ctx context.Context, record *articleRecord) (*model.Article, error) {
	article := record.article
	article.Tags = copyTags(record.article.Tags)

	author, err := s.users.GetUser(ctx, record.authorID)
	switch {
	case err == nil:
		article.Author = author.AsAuthor()
	case errors.Is(err, apperr.ErrNotFound):
		article.Author = model.Author{ID: record.authorID}
	default:
		return nil, err
	}
	return &article, nil
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func copyTags(tags []string) []string {
	copied := make([]string, len(tags))
	copy(copied, tags)
	return copied
}
