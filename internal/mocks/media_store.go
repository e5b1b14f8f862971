package mocks

import (
	"context"
	"io"
	"sync"
)

type SavedMedia struct {
	Name        string
	ContentType string
	Data        []byte
}

// MockMediaStore складывает загруженные файлы в память и отдает URL вида BaseURL/name
type MockMediaStore struct {
	mu    sync.Mutex
	Saved []SavedMedia

	BaseURL string
	Err     error
}

func NewMockMediaStore() *MockMediaStore {
	return &MockMediaStore{BaseURL: "/uploads"}
}

func (m *MockMediaStore) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saved = append(m.Saved, SavedMedia{Name: name, ContentType: contentType, Data: data})
	return m.BaseURL + "/" + name, nil
}
