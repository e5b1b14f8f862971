package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/VitaminP8/storyline/internal/apperr"
	"github.com/VitaminP8/storyline/internal/model"
)

type AuthResult struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (s *Service) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, apperr.Validation("All fields are required")
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	created, err := s.Users.CreateUser(ctx, name, email, hash)
	if err != nil {
		return nil, err
	}

	return s.issue(created)
}

func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("All fields are required")
	}

	found, err := s.Users.FindUserByEmail(ctx, email)
	if err != nil {
		// нет пользователя и неверный пароль неотличимы для клиента
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Validation("Invalid credentials")
		}
		return nil, err
	}

	if !s.Hasher.Verify(password, found.PasswordHash) {
		return nil, apperr.Validation("Invalid credentials")
	}

	return s.issue(found)
}

func (s *Service) issue(u *model.User) (*AuthResult, error) {
	token, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("could not issue token: %w", err)
	}
	return &AuthResult{User: u, Token: token}, nil
}
