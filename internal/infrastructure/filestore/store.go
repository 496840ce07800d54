// Package filestore keeps every customer balance in a single JSON or YAML
// document that is loaded whole on open and rewritten whole on every save.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Xausdorf/loyalty-points/internal/domain/entity"
	"github.com/Xausdorf/loyalty-points/internal/domain/repository"
)

// DefaultPath is where balances live when no path is configured.
const DefaultPath = "customers.json"

type record struct {
	ID     string `json:"id" yaml:"id"`
	Points int64  `json:"points" yaml:"points"`
}

type codec struct {
	marshal   func([]record) ([]byte, error)
	unmarshal func([]byte, *[]record) error
}

var jsonCodec = codec{
	marshal: func(rs []record) ([]byte, error) {
		return json.MarshalIndent(rs, "", "  ")
	},
	unmarshal: func(data []byte, rs *[]record) error {
		return json.Unmarshal(data, rs)
	},
}

var yamlCodec = codec{
	marshal: func(rs []record) ([]byte, error) {
		return yaml.Marshal(rs)
	},
	unmarshal: func(data []byte, rs *[]record) error {
		return yaml.Unmarshal(data, rs)
	},
}

func codecFor(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec
	default:
		return jsonCodec
	}
}

type Store struct {
	path   string
	codec  codec
	logger *slog.Logger

	mu        sync.RWMutex
	order     []string
	customers map[string]int64
}

// Open loads the document at path. A missing file yields an empty store; an
// unreadable or corrupt one is logged and also yields an empty store.
func Open(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		path = DefaultPath
	}

	s := &Store{
		path:      path,
		codec:     codecFor(path),
		logger:    logger,
		customers: make(map[string]int64),
	}

	if err := s.load(); err != nil {
		logger.Warn("could not load existing data, starting with empty storage",
			"path", path,
			"error", err,
		)
		s.order = nil
		s.customers = make(map[string]int64)
	}
	return s
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Find(_ context.Context, id string) (*entity.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	points, ok := s.customers[id]
	if !ok {
		return nil, nil
	}
	return entity.NewCustomer(id, points), nil
}

// Save upserts the customer and rewrites the whole document. On a failed
// write the in-memory upsert is kept and an error wrapping
// repository.ErrPersist is returned.
func (s *Store) Save(_ context.Context, customer *entity.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.put(customer.ID(), customer.Points())
	if err := s.flush(); err != nil {
		return fmt.Errorf("%w: %s: %w", repository.ErrPersist, s.path, err)
	}
	return nil
}

func (s *Store) List(_ context.Context) ([]*entity.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.Customer, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, entity.NewCustomer(id, s.customers[id]))
	}
	return out, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", s.path, err)
	}

	var records []record
	if err := s.codec.unmarshal(data, &records); err != nil {
		return fmt.Errorf("parsing %s: %w", s.path, err)
	}
	for i, r := range records {
		if r.ID == "" || r.Points < 0 {
			return fmt.Errorf("parsing %s: invalid record at index %d", s.path, i)
		}
		s.put(r.ID, r.Points)
	}
	return nil
}

func (s *Store) flush() error {
	records := make([]record, 0, len(s.order))
	for _, id := range s.order {
		records = append(records, record{ID: id, Points: s.customers[id]})
	}

	data, err := s.codec.marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling: %w", err)
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return os.WriteFile(s.path, data, 0o644)
}

// put keeps first-seen order; a repeated id overwrites the earlier value.
func (s *Store) put(id string, points int64) {
	if _, ok := s.customers[id]; !ok {
		s.order = append(s.order, id)
	}
	s.customers[id] = points
}
