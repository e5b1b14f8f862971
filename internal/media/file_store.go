package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileStore кладет файлы в локальный каталог, который отдается через /uploads
type FileStore struct {
	dir     string
	baseURL string
}

func NewFileStore(dir, baseURL string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	// имя приходит из ObjectName, но путь все равно не выпускаем за пределы каталога
	name = filepath.Base(name)

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	_, err = io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(filepath.Join(s.dir, name))
		return "", fmt.Errorf("write file: %w", err)
	}

	return s.baseURL + "/" + name, nil
}
