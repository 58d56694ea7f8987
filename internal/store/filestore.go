package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/fairwaylab/studio_scheduler/internal/model"
)

// FileStore keeps the whole booking set in one JSON file. The file is read
// wholesale at startup and rewritten wholesale on every mutation, matching
// the portal's original single-key persistence. Unparseable content fails
// closed to an empty set.
type FileStore struct {
	mu     sync.Mutex
	path   string
	mem    *MemoryStore
	logger *zap.Logger
}

func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		mem:    NewMemoryStore(),
		logger: logger,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read booking file: %w", err)
	}

	var bookings []*model.Booking
	if err := json.Unmarshal(raw, &bookings); err != nil {
		// Corrupt state is recoverable: start empty rather than crash.
		s.logger.Warn("booking file is not valid JSON, starting with empty set",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return nil
	}

	for _, b := range bookings {
		_ = s.mem.Put(context.Background(), b)
	}
	return nil
}

// flush rewrites the entire set. No partial writes: marshal first, then a
// single WriteFile.
func (s *FileStore) flush(ctx context.Context) error {
	bookings, _ := s.mem.List(ctx)
	raw, err := json.MarshalIndent(bookings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal bookings: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create booking dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write booking file: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mem.List(ctx)
}

func (s *FileStore) Put(ctx context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mem.Put(ctx, b); err != nil {
		return err
	}
	return s.flush(ctx)
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mem.Delete(ctx, id); err != nil {
		return err
	}
	return s.flush(ctx)
}
