package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore — файловая реализация Store.
//
// Пара хранится одним JSON-файлом с правами 0600. Запись атомарная:
// сначала во временный файл рядом, затем rename, чтобы параллельный
// читатель не увидел обрезанный JSON.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore создаёт FileStore и каталог под файл токенов.
func NewFileStore(path string) (*FileStore, error) {
	const op = "tokenstore.file.NewFileStore"

	if path == "" {
		return nil, fmt.Errorf("%s: empty path", op)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &FileStore{path: path}, nil
}

func (s *FileStore) Load() (Pair, error) {
	const op = "tokenstore.file.Load"

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(op)
}

func (s *FileStore) Save(p Pair) error {
	const op = "tokenstore.file.Save"

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(op, p)
}

func (s *FileStore) SetAccess(access string) error {
	const op = "tokenstore.file.SetAccess"

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load(op)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			p = Pair{}
		} else {
			return err
		}
	}

	p.AccessToken = access

	return s.write(op, p)
}

func (s *FileStore) Clear() error {
	const op = "tokenstore.file.Clear"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *FileStore) load(op string) (Pair, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Pair{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return Pair{}, fmt.Errorf("%s: %w", op, err)
	}

	var p Pair
	if err := json.Unmarshal(raw, &p); err != nil {
		return Pair{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (s *FileStore) write(op string, p Pair) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
