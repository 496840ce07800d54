// Package memory provides a Record Store that lives only for the process lifetime.
package memory

import (
	"context"
	"sync"

	"github.com/Xausdorf/loyalty-points/internal/domain/entity"
)

type Store struct {
	mu        sync.RWMutex
	order     []string
	customers map[string]int64
}

func NewStore(seed ...*entity.Customer) *Store {
	s := &Store{customers: make(map[string]int64)}
	for _, c := range seed {
		s.put(c)
	}
	return s
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

func (s *Store) Save(_ context.Context, customer *entity.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.put(customer)
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

func (s *Store) put(c *entity.Customer) {
	if _, ok := s.customers[c.ID()]; !ok {
		s.order = append(s.order, c.ID())
	}
	s.customers[c.ID()] = c.Points()
}
