package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"kharcha/internal/core"
)

// Store is an in-memory record store for local runs and tests.
type Store struct {
	mu       sync.RWMutex
	expenses []core.Expense
}

func New() *Store {
	return &Store{expenses: []core.Expense{}}
}

func (s *Store) List(_ context.Context) ([]core.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out, nil
}

func (s *Store) Create(_ context.Context, e core.Expense) (core.Expense, error) {
	e.ID = uuid.NewString()
	s.mu.Lock()
	s.expenses = append(s.expenses, e)
	s.mu.Unlock()
	return e, nil
}

func (s *Store) Update(_ context.Context, id string, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses[i] = e.WithID(id)
			return nil
		}
	}
	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close(context.Context) error { return nil }
