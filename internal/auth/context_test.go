package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret"

func newTestManager(t *testing.T) *TokenManager {
	m, err := NewTokenManager(testSecret)
	require.NoError(t, err)
	return m
}

func TestWithUserIDAndGetUserIDFromContext(t *testing.T) {
	t.Run("Store and retrieve user ID from context", func(t *testing.T) {
		ctx := context.Background()

		userID := uint(123)
		ctx = WithUserID(ctx, userID)

		retrievedID, err := GetUserIDFromContext(ctx)
		assert.NoError(t, err)
		assert.Equal(t, userID, retrievedID)
	})

	t.Run("Error when user ID not in context", func(t *testing.T) {
		ctx := context.Background()

		_, err := GetUserIDFromContext(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found in context")
	})

	t.Run("Error when context value is not uint", func(t *testing.T) {
		// Создаем контекст с неправильным типом значения
		ctx := context.WithValue(context.Background(), userIDKey, "not-a-uint")

		_, err := GetUserIDFromContext(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found in context")
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	t.Run("Valid Bearer token", func(t *testing.T) {
		assert.Equal(t, "token123", extractTokenFromHeader("Bearer token123"))
	})

	t.Run("Invalid format - no Bearer prefix", func(t *testing.T) {
		assert.Equal(t, "", extractTokenFromHeader("NotBearer token123"))
	})

	t.Run("Invalid format - no space", func(t *testing.T) {
		assert.Equal(t, "", extractTokenFromHeader("Bearertoken123"))
	})

	t.Run("Empty header", func(t *testing.T) {
		assert.Equal(t, "", extractTokenFromHeader(""))
	})
}

func TestRequireAuth(t *testing.T) {
	// Тестовый обработчик проверяет наличие userID в контексте
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := GetUserIDFromContext(r.Context())
		if err == nil {
			fmt.Fprintf(w, "User ID: %d", userID)
		} else {
			fmt.Fprint(w, "No user ID in context")
		}
	})

	manager := newTestManager(t)
	handler := manager.RequireAuth(testHandler)

	t.Run("Valid token", func(t *testing.T) {
		tokenString, err := manager.Issue(123)
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "User ID: 123", w.Body.String())
	})

	t.Run("Invalid token signature", func(t *testing.T) {
		other, err := NewTokenManager("wrong_secret")
		require.NoError(t, err)
		tokenString, err := other.Issue(123)
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Invalid token"}`, w.Body.String())
	})

	t.Run("Expired token", func(t *testing.T) {
		expired := newTestManager(t)
		expired.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
		tokenString, err := expired.Issue(123)
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("No token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"No token"}`, w.Body.String())
	})

	t.Run("Invalid token format", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", nil)
		req.Header.Set("Authorization", "InvalidFormat")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Invalid token"}`, w.Body.String())
	})

	t.Run("User ID in body is ignored", func(t *testing.T) {
		tokenString, err := manager.Issue(5)
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/?user_id=9", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		req.Header.Set("X-User-Id", "9")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "User ID: 5", w.Body.String())
	})
}

func TestTokenManager(t *testing.T) {
	t.Run("Empty secret is rejected", func(t *testing.T) {
		_, err := NewTokenManager("")
		assert.Error(t, err)
	})

	t.Run("Issued token carries subject and 7 day expiry", func(t *testing.T) {
		manager := newTestManager(t)
		fixed := time.Now().Truncate(time.Second)
		manager.now = func() time.Time { return fixed }

		tokenString, err := manager.Issue(42)
		require.NoError(t, err)

		claims := &jwt.RegisteredClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		assert.Equal(t, "42", claims.Subject)
		assert.Equal(t, fixed.Add(7*24*time.Hour).Unix(), claims.ExpiresAt.Unix())

		id, err := manager.Resolve(tokenString)
		require.NoError(t, err)
		assert.Equal(t, uint(42), id)
	})

	t.Run("Token with non HMAC algorithm is rejected", func(t *testing.T) {
		manager := newTestManager(t)
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = manager.Resolve(tokenString)
		assert.Error(t, err)
	})

	t.Run("Token without numeric subject is rejected", func(t *testing.T) {
		manager := newTestManager(t)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": float64(123),
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		tokenString, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = manager.Resolve(tokenString)
		assert.Error(t, err)
	})
}

func TestHasher(t *testing.T) {
	hasher := NewHasher(4)

	t.Run("Hash verifies with same password only", func(t *testing.T) {
		hash, err := hasher.Hash("pw")
		require.NoError(t, err)
		assert.NotEqual(t, "pw", hash)

		assert.True(t, hasher.Verify("pw", hash))
		assert.False(t, hasher.Verify("other", hash))
	})

	t.Run("Garbage hash never verifies", func(t *testing.T) {
		assert.False(t, hasher.Verify("pw", "not-a-bcrypt-hash"))
	})
}
