package media

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/VitaminP8/storyline/internal/apperr"
	"github.com/google/uuid"
)

// Store сохраняет загруженное изображение и возвращает URL, по которому оно доступно
type Store interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
}

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// ObjectName проверяет расширение исходного файла и генерирует уникальное имя для хранения
func ObjectName(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", apperr.Validation("Only image files are allowed")
	}
	return uuid.NewString() + ext, nil
}
