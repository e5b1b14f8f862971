package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/storyline/internal/apperr"
	"github.com/VitaminP8/storyline/internal/model"
	"github.com/VitaminP8/storyline/models"
	"github.com/jinzhu/gorm"
)

type UserPostgresStorage struct {
	db *gorm.DB
}

func NewUserPostgresStorage(db *gorm.DB) *UserPostgresStorage {
	return &UserPostgresStorage{db: db}
}

func (s *UserPostgresStorage) CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	// проверка - существует ли пользователь с таким email
	var existUser models.User
	err := s.db.Where("email = ?", email).First(&existUser).Error
	if err == nil {
		return nil, apperr.Conflict("User already exists")
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("could not check user: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: passwordHash,
	}

	err = s.db.Create(user).Error
	if err != nil {
		// параллельная регистрация с тем же email упирается в уникальный индекс
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("User already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toUser(user), nil
}

func (s *UserPostgresStorage) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if err != nil {
		return nil, notFoundOr(err, "User not found", "could not get user")
	}
	return toUser(&user), nil
}

func (s *UserPostgresStorage) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, notFoundOr(err, "User not found", "could not find user")
	}
	return toUser(&user), nil
}

func (s *UserPostgresStorage) FindUserByNameOrEmail(ctx context.Context, identifier string) (*model.User, error) {
	var user models.User
	err := s.db.Where("name = ? OR email = ?", identifier, identifier).First(&user).Error
	if err != nil {
		return nil, notFoundOr(err, "User not found", "could not find user")
	}
	return toUser(&user), nil
}

func toUser(u *models.User) *model.User {
	return &model.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.Password,
	}
}

func toAuthor(u *models.User) model.Author {
	return model.Author{ID: u.ID, Name: u.Name, Email: u.Email}
}

// notFoundOr превращает "record not found" в apperr.NotFound, остальное оборачивает
func notFoundOr(err error, notFoundMsg, wrapMsg string) error {
	if gorm.IsRecordNotFoundError(err) {
		return apperr.NotFound(notFoundMsg)
	}
	return fmt.Errorf("%s: %w", wrapMsg, err)
}
