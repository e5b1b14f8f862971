package memory

import (
	"context"
	"sync"

	"github.com/VitaminP8/storyline/internal/apperr"
	"github.com/VitaminP8/storyline/internal/model"
)

type UserMemoryStorage struct {
	mu      sync.Mutex
	users   map[uint]*model.User
	byEmail map[string]uint
	nextId  uint
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		users:   make(map[uint]*model.User),
		byEmail: make(map[string]uint),
		nextId:  1,
	}
}

func (s *UserMemoryStorage) CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return nil, apperr.Conflict("User already exists")
	}

	user := &model.User{
		ID:           s.nextId,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
	s.nextId++

	s.users[user.ID] = user
	s.byEmail[email] = user.ID

	copied := *user
	return &copied, nil
}

func (s *UserMemoryStorage) GetUser(ctx context.Context, id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[id]
	if !exists {
		return nil, apperr.NotFound("User not found")
	}
	copied := *user
	return &copied, nil
}

func (s *UserMemoryStorage) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, exists := s.byEmail[email]
	if !exists {
		return nil, apperr.NotFound("User not found")
	}
	copied := *s.users[id]
	return &copied, nil
}

func (s *UserMemoryStorage) FindUserByNameOrEmail(ctx context.Context, identifier string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// при совпадении имен побеждает самый ранний пользователь, как и в postgres
	var found *model.User
	for _, user := range s.users {
		if user.Name != identifier && user.Email != identifier {
			continue
		}
		if found == nil || user.ID < found.ID {
			found = user
		}
	}
	if found == nil {
		return nil, apperr.NotFound("User not found")
	}
	copied := *found
	return &copied, nil
}
