package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Storage хранит записи в памяти процесса; используется, когда внешнее хранилище не настроено.
type Storage struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewStorage() *Storage {
	return &Storage{records: make(map[string][]byte)}
}

func (s *Storage) Get(ctx context.Context, key string, dst any) (bool, error) {
	const op = "memory.Get"

	s.mu.RLock()
	raw, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

func (s *Storage) Set(ctx context.Context, key string, value any) error {
	const op = "memory.Set"

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.mu.Lock()
	s.records[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *Storage) Close() error {
	return nil
}
