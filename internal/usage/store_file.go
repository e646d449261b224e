package usage

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// DefaultFile is the JSON file used when no path is configured.
const DefaultFile = "token_usage.json"

type fileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore constructs a store that keeps a {"YYYY-MM-DD": tokens} JSON object on disk.
func NewFileStore(path string) *fileStore {
	if path == "" {
		path = DefaultFile
	}
	return &fileStore{path: path}
}

func (s *fileStore) Add(ctx context.Context, date string, tokens int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.read()
	if err != nil {
		return 0, err
	}
	data[date] += tokens
	if err := s.write(data); err != nil {
		return 0, err
	}
	return data[date], nil
}

func (s *fileStore) Get(ctx context.Context, date string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.read()
	if err != nil {
		return 0, err
	}
	return data[date], nil
}

func (s *fileStore) read() (map[string]int, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]int{}, nil
	}
	if err != nil {
		return nil, err
	}
	data := map[string]int{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *fileStore) write(data map[string]int) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
