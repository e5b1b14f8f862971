package user

import (
	"context"

	"github.com/VitaminP8/storyline/internal/model"
)

type UserStorage interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	// FindUserByNameOrEmail ищет по точному совпадению имени или email
	FindUserByNameOrEmail(ctx context.Context, identifier string) (*model.User, error)
}
