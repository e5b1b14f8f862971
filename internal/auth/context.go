// internal/auth/context.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/VitaminP8/storyline/internal/apperr"
)

type contextKey string

const userIDKey = contextKey("userID")

// Сохраняет userID в контексте
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Достает userID из контекста
func GetUserIDFromContext(ctx context.Context) (uint, error) {
	val := ctx.Value(userIDKey)
	id, ok := val.(uint)
	if !ok || id == 0 {
		return 0, errors.New("user ID not found in context")
	}
	return id, nil
}

// RequireAuth пропускает запрос дальше только с валидным Bearer токеном.
// userID берется из токена и кладется в context, тело запроса для этого не используется
func (m *TokenManager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if strings.TrimSpace(header) == "" {
			writeUnauthorized(w, "No token")
			return
		}

		userID, err := m.Resolve(extractTokenFromHeader(header))
		if err != nil {
			writeUnauthorized(w, apperr.Message(err, "Invalid token"))
			return
		}

		ctx := WithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractTokenFromHeader(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
