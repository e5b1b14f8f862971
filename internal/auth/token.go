package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/VitaminP8/storyline/internal/apperr"
	"github.com/golang-jwt/jwt/v4"
)

// TokenTTL - срок жизни токена. Refresh и отзыва нет, logout делается на клиенте
const TokenTTL = 7 * 24 * time.Hour

type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("JWT secret is not set")
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    TokenTTL,
		now:    time.Now,
	}, nil
}

// Issue выпускает токен: subject = id пользователя, exp = сейчас + 7 дней
func (m *TokenManager) Issue(userID uint) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	})

	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Resolve проверяет подпись и срок действия и возвращает id пользователя
func (m *TokenManager) Resolve(tokenStr string) (uint, error) {
	if tokenStr == "" {
		return 0, apperr.Unauthenticated("Invalid token")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, apperr.Unauthenticated("Invalid token")
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Unauthenticated("Invalid token")
	}
	return uint(id), nil
}
